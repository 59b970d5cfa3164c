package usecase

import (
	"context"

	"github.com/petalert/petalert/internal/domain"
)

// RecordGateway is the upstream store for one record kind, bound to one
// session's credentials.
type RecordGateway[T domain.Record] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, draft T) (T, error)
	Delete(ctx context.Context, id string) error
}
