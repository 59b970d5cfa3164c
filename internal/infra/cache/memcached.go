package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/petalert/petalert/client"
)

// Memcached shares list responses between BFF instances.
type Memcached struct {
	mc *memcache.Client
}

func NewMemcached(server string) *Memcached {
	return &Memcached{mc: memcache.New(server)}
}

func (m *Memcached) Get(ctx context.Context, key string) ([]byte, bool) {
	item, err := m.mc.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			slog.WarnContext(ctx, "memcached get failed", slog.String("error", err.Error()), slog.String("module", "cache"))
		}
		return nil, false
	}
	return item.Value, true
}

func (m *Memcached) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	err := m.mc.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: expiration(ttl),
	})
	if err != nil {
		slog.WarnContext(ctx, "memcached set failed", slog.String("error", err.Error()), slog.String("module", "cache"))
	}
}

func (m *Memcached) Delete(ctx context.Context, key string) {
	err := m.mc.Delete(key)
	if err != nil && err != memcache.ErrCacheMiss {
		slog.WarnContext(ctx, "memcached delete failed", slog.String("error", err.Error()), slog.String("module", "cache"))
	}
}

// Ping checks the connection; used at startup.
func (m *Memcached) Ping() error {
	return m.mc.Ping()
}

// memcached expiration is in whole seconds; sub-second ttls round up so a
// value is never stored without expiry.
func expiration(ttl time.Duration) int32 {
	if ttl <= 0 {
		return 0
	}
	secs := int32((ttl + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}

var _ client.ListCache = (*Memcached)(nil)
