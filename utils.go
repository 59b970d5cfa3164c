package petalert

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// HashKey derives a fixed-width key from its parts. Secrets such as bearer
// tokens go through here before they are used as map or cache keys.
func HashKey(parts ...string) string {
	sum := xxh3.HashString128(strings.Join(parts, "\x00"))
	return fmt.Sprintf("%016x%016x", sum.Hi, sum.Lo)
}

// JoinPath joins a resource path and an id, trimming duplicate slashes.
func JoinPath(base string, elems ...string) string {
	out := strings.TrimRight(base, "/")
	for _, e := range elems {
		e = strings.Trim(e, "/")
		if e == "" {
			continue
		}
		out += "/" + e
	}
	if out == "" {
		return "/"
	}
	return out
}
