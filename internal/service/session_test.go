package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/petalert/petalert/internal/usecase"
)

func TestSessionServiceReusesPerToken(t *testing.T) {
	built := map[string]int{}
	svc := NewSessionService(func(token string) *usecase.Session {
		built[token]++
		return usecase.NewSession(usecase.Gateways{})
	}, time.Minute)

	ctx := context.Background()
	a1 := svc.Get(ctx, "token-a")
	a2 := svc.Get(ctx, "token-a")
	b := svc.Get(ctx, "token-b")

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, map[string]int{"token-a": 1, "token-b": 1}, built)
	assert.Equal(t, 2, svc.Count())

	svc.Forget("token-a")
	a3 := svc.Get(ctx, "token-a")
	assert.NotSame(t, a1, a3)
	assert.Equal(t, 2, built["token-a"])
}

func TestSessionServiceExpires(t *testing.T) {
	n := 0
	svc := NewSessionService(func(token string) *usecase.Session {
		n++
		return usecase.NewSession(usecase.Gateways{})
	}, 20*time.Millisecond)

	svc.Get(context.Background(), "tok")
	time.Sleep(50 * time.Millisecond)
	svc.Get(context.Background(), "tok")
	assert.Equal(t, 2, n)
}
