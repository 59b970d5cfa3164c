package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"

	"github.com/petalert/petalert"
	"github.com/petalert/petalert/internal/usecase"
)

var tracer = otel.Tracer("session")

// SessionFactory builds the screens for one bearer token.
type SessionFactory func(token string) *usecase.Session

// SessionService keeps one Session per signed-in user. Sessions expire after
// the idle ttl; every lookup extends it.
type SessionService struct {
	factory SessionFactory
	ttl     time.Duration
	cache   *cache.Cache
	mu      sync.Mutex
}

func NewSessionService(factory SessionFactory, ttl time.Duration) *SessionService {
	c := cache.New(ttl, ttl/2+time.Second)
	c.OnEvicted(func(key string, _ interface{}) {
		slog.Debug("session evicted", slog.String("session", key[:8]), slog.String("module", "session"))
	})
	return &SessionService{
		factory: factory,
		ttl:     ttl,
		cache:   c,
	}
}

// Get returns the session for token, creating it on first use. The token is
// hashed before it is used as a key.
func (s *SessionService) Get(ctx context.Context, token string) *usecase.Session {
	_, span := tracer.Start(ctx, "Session.Service.Get")
	defer span.End()

	key := petalert.HashKey("session", token)

	s.mu.Lock()
	defer s.mu.Unlock()

	if x, found := s.cache.Get(key); found {
		session := x.(*usecase.Session)
		s.cache.Set(key, session, s.ttl)
		return session
	}

	session := s.factory(token)
	s.cache.Set(key, session, s.ttl)
	slog.DebugContext(ctx, "session created", slog.String("session", key[:8]), slog.String("module", "session"))
	return session
}

// Forget drops the session for token, e.g. after the upstream rejected it.
func (s *SessionService) Forget(token string) {
	s.cache.Delete(petalert.HashKey("session", token))
}

func (s *SessionService) Count() int {
	return s.cache.ItemCount()
}
