package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/petalert/petalert/internal/interface/rest/presenter"
	"github.com/petalert/petalert/jwt"
)

type ctxKey struct{}

// Token returns the bearer token stored by RequireToken.
func Token(ctx context.Context) string {
	token, _ := ctx.Value(ctxKey{}).(string)
	return token
}

func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// bearer extracts the token of an "Authorization: Bearer <token>" header.
func bearer(header string) (string, bool) {
	authType, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(authType, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// RequireToken rejects requests without a bearer token, or with a jwt that
// has already expired, and forwards the token to the handlers through the
// request context. Opaque tokens are passed on as is.
func RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearer(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return presenter.Unauthorized(c, "bearer token required")
		}
		if _, _, err := jwt.Inspect(token, time.Now()); errors.Is(err, jwt.ErrExpired) {
			return presenter.Unauthorized(c, "token expired")
		}

		ctx := WithToken(c.Request().Context(), token)
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
