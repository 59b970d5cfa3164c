package petalert

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashKey(t *testing.T) {
	a := HashKey("token-a", "/memorials")
	b := HashKey("token-b", "/memorials")
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, HashKey("token-a", "/memorials"))
	assert.NotContains(t, a, "token")

	// separator keeps part boundaries distinct
	assert.NotEqual(t, HashKey("ab", "c"), HashKey("a", "bc"))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/memorials/abc", JoinPath("/memorials", "abc"))
	assert.Equal(t, "/memorials/abc", JoinPath("/memorials/", "/abc/"))
	assert.Equal(t, "/memorials", JoinPath("/memorials", ""))
	assert.Equal(t, "/", JoinPath(""))
}
