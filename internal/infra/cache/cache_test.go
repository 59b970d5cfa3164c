package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocal(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(time.Minute)

	_, ok := l.Get(ctx, "k")
	assert.False(t, ok)

	l.Set(ctx, "k", []byte(`[]`), time.Minute)
	v, ok := l.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, []byte(`[]`), v)

	l.Delete(ctx, "k")
	_, ok = l.Get(ctx, "k")
	assert.False(t, ok)
}

func TestLocalExpiry(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(time.Minute)
	l.Set(ctx, "k", []byte(`[]`), 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	_, ok := l.Get(ctx, "k")
	assert.False(t, ok)
}

func TestExpiration(t *testing.T) {
	assert.Equal(t, int32(0), expiration(0))
	assert.Equal(t, int32(1), expiration(200*time.Millisecond))
	assert.Equal(t, int32(30), expiration(30*time.Second))
	assert.Equal(t, int32(31), expiration(30*time.Second+time.Millisecond))
}
