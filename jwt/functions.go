package jwt

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrMalformed = errors.New("malformed jwt")
	ErrExpired   = errors.New("jwt is already expired")
)

type Header struct {
	Type      string `json:"typ"`
	Algorithm string `json:"alg"`
	KeyID     string `json:"kid,omitempty"`
}

// Claims holds the registered claims the BFF looks at.
type Claims struct {
	Subject        string `json:"sub,omitempty"`
	ExpirationTime int64  `json:"exp,omitempty"`
	IssuedAt       int64  `json:"iat,omitempty"`
}

// Expires returns the expiration instant and whether the token has one.
func (c Claims) Expires() (time.Time, bool) {
	if c.ExpirationTime == 0 {
		return time.Time{}, false
	}
	return time.Unix(c.ExpirationTime, 0), true
}

// Inspect decodes jwt and checks exp against now. The signature is not
// checked here; the upstream API verifies every request it receives.
func Inspect(jwt string, now time.Time) (*Header, *Claims, error) {
	split := strings.Split(jwt, ".")
	if len(split) != 3 {
		return nil, nil, ErrMalformed
	}

	var header Header
	headerBytes, err := base64.RawURLEncoding.DecodeString(split[0])
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformed, err.Error())
	}
	err = json.Unmarshal(headerBytes, &header)
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformed, err.Error())
	}

	payloadBytes, err := base64.RawURLEncoding.DecodeString(split[1])
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformed, err.Error())
	}

	var claims Claims
	err = json.Unmarshal(payloadBytes, &claims)
	if err != nil {
		return nil, nil, errors.Wrap(ErrMalformed, err.Error())
	}

	if exp, ok := claims.Expires(); ok && exp.Before(now) {
		return &header, &claims, ErrExpired
	}

	return &header, &claims, nil
}
