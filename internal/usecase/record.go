package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/petalert/petalert/internal/collection"
	"github.com/petalert/petalert/internal/domain"
)

var tracer = otel.Tracer("usecase")

// ErrStaleResult is returned by Refresh when a newer fetch or mutation was
// applied while the request was in flight. The late result is discarded.
var ErrStaleResult = errors.New("stale result discarded")

// RecordUsecase owns the collection of one screen. Network calls run outside
// the collection lock; mutations are serialized so at most one edit is in
// flight.
type RecordUsecase[T domain.Record] struct {
	kind    domain.Kind
	gateway RecordGateway[T]

	mu      sync.Mutex
	records *collection.Collection[T]
	issued  uint64
	applied uint64

	edit sync.Mutex
}

func NewRecordUsecase[T domain.Record](kind domain.Kind, gateway RecordGateway[T], opts ...collection.Option) *RecordUsecase[T] {
	return &RecordUsecase[T]{
		kind:    kind,
		gateway: gateway,
		records: collection.New[T](opts...),
	}
}

func (uc *RecordUsecase[T]) Kind() domain.Kind { return uc.kind }

// next hands out the sequence number for a request about to be issued.
func (uc *RecordUsecase[T]) next() uint64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.issued++
	return uc.issued
}

// Refresh fetches the list and replaces the collection with it. On failure
// the previous contents stay in place.
func (uc *RecordUsecase[T]) Refresh(ctx context.Context) (collection.State, error) {
	ctx, span := tracer.Start(ctx, "Record.Usecase.Refresh")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(uc.kind)))

	seq := uc.next()

	records, err := uc.gateway.List(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err != nil {
		span.RecordError(err)
		return uc.records.State(), err
	}

	if seq < uc.applied {
		slog.DebugContext(
			ctx, "discarding late list result",
			slog.String("kind", string(uc.kind)),
			slog.Uint64("seq", seq),
			slog.Uint64("applied", uc.applied),
			slog.String("module", "usecase"),
		)
		return uc.records.State(), ErrStaleResult
	}

	uc.applied = seq
	state := uc.records.ReplaceAll(records)
	span.SetAttributes(attribute.Int("count", uc.records.Len()), attribute.String("state", state.String()))
	return state, nil
}

// EnsureLoaded refreshes only when nothing has been fetched yet.
func (uc *RecordUsecase[T]) EnsureLoaded(ctx context.Context) (collection.State, error) {
	uc.mu.Lock()
	state := uc.records.State()
	uc.mu.Unlock()

	if state.Loaded() {
		return state, nil
	}
	return uc.Refresh(ctx)
}

func validate[T domain.Record](draft T) error {
	if d, ok := any(draft).(domain.Draft); ok {
		return d.Validate()
	}
	return nil
}

// apply records a mutation result. Fetches issued before the mutation are
// older than it and will be discarded when they land.
func (uc *RecordUsecase[T]) apply(seq uint64, fn func(*collection.Collection[T])) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if seq > uc.applied {
		uc.applied = seq
	}
	fn(uc.records)
}

func (uc *RecordUsecase[T]) Create(ctx context.Context, draft T) (T, error) {
	ctx, span := tracer.Start(ctx, "Record.Usecase.Create")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(uc.kind)))

	var zero T
	if err := validate(draft); err != nil {
		return zero, err
	}

	uc.edit.Lock()
	defer uc.edit.Unlock()

	seq := uc.next()
	created, err := uc.gateway.Create(ctx, draft)
	if err != nil {
		span.RecordError(err)
		return zero, err
	}

	uc.apply(seq, func(c *collection.Collection[T]) { c.Upsert(created) })
	return created, nil
}

func (uc *RecordUsecase[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	ctx, span := tracer.Start(ctx, "Record.Usecase.Update")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(uc.kind)), attribute.String("id", id))

	var zero T
	if id == "" {
		return zero, domain.ValidationError{Field: "id", Reason: "required"}
	}
	if err := validate(draft); err != nil {
		return zero, err
	}

	uc.edit.Lock()
	defer uc.edit.Unlock()

	seq := uc.next()
	updated, err := uc.gateway.Update(ctx, id, draft)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, domain.ErrNotFound) {
			uc.apply(seq, func(c *collection.Collection[T]) { c.Remove(id) })
		}
		return zero, err
	}

	uc.apply(seq, func(c *collection.Collection[T]) {
		// upstream may echo a record without its id
		if updated.RecordID() == "" {
			c.Remove(id)
		}
		c.Upsert(updated)
	})
	return updated, nil
}

// Delete removes a record upstream and then locally. A record that is
// already gone upstream is removed locally and reported as success.
func (uc *RecordUsecase[T]) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Record.Usecase.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(uc.kind)), attribute.String("id", id))

	if id == "" {
		return domain.ValidationError{Field: "id", Reason: "required"}
	}

	uc.edit.Lock()
	defer uc.edit.Unlock()

	seq := uc.next()
	err := uc.gateway.Delete(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		span.RecordError(err)
		return err
	}

	uc.apply(seq, func(c *collection.Collection[T]) { c.Remove(id) })
	return nil
}

// View derives the screen state at now.
func (uc *RecordUsecase[T]) View(now time.Time) View[T] {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	view := View[T]{
		Kind:      uc.kind,
		State:     uc.records.State(),
		Reference: now,
	}

	if uc.kind.Temporal() {
		p := uc.records.PartitionByTime(now)
		view.Upcoming = p.Upcoming
		view.Past = p.Past
		view.Unscheduled = p.Unscheduled
	} else {
		view.Entries = uc.records.SortedDescending()
	}
	return view
}

// Snapshot returns the records in insertion order.
func (uc *RecordUsecase[T]) Snapshot() []T {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.records.All()
}

// SortedDescending returns every record newest first.
func (uc *RecordUsecase[T]) SortedDescending() []T {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.records.SortedDescending()
}

func (uc *RecordUsecase[T]) State() collection.State {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.records.State()
}
