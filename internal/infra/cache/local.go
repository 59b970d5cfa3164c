package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/petalert/petalert/client"
)

// Local is an in-process list cache.
type Local struct {
	cache *gocache.Cache
}

func NewLocal(ttl time.Duration) *Local {
	return &Local{
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (l *Local) Get(ctx context.Context, key string) ([]byte, bool) {
	x, found := l.cache.Get(key)
	if !found {
		return nil, false
	}
	return x.([]byte), true
}

func (l *Local) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	l.cache.Set(key, value, ttl)
}

func (l *Local) Delete(ctx context.Context, key string) {
	l.cache.Delete(key)
}

var _ client.ListCache = (*Local)(nil)
