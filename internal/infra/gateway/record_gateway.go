package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/petalert/petalert/client"
	"github.com/petalert/petalert/internal/domain"
	"github.com/petalert/petalert/internal/infra/metrics"
	"github.com/petalert/petalert/internal/usecase"
)

var tracer = otel.Tracer("gateway")

// RecordGateway talks to the upstream REST collection of one kind on behalf
// of one token.
type RecordGateway[T domain.Record] struct {
	client  *client.Client
	metrics *metrics.Metrics
	kind    domain.Kind
	token   string
}

func NewRecordGateway[T domain.Record](cl *client.Client, m *metrics.Metrics, kind domain.Kind, token string) *RecordGateway[T] {
	return &RecordGateway[T]{
		client:  cl,
		metrics: m,
		kind:    kind,
		token:   token,
	}
}

func (g *RecordGateway[T]) List(ctx context.Context) ([]T, error) {
	ctx, span := tracer.Start(ctx, "Record.Gateway.List")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(g.kind)))

	start := time.Now()
	var records []T
	err := g.client.List(ctx, g.token, g.kind.ResourcePath(), &records)
	g.observe("list", err, start)
	if err != nil {
		span.RecordError(err)
		return nil, g.translate(err, "")
	}
	return records, nil
}

func (g *RecordGateway[T]) Create(ctx context.Context, draft T) (T, error) {
	ctx, span := tracer.Start(ctx, "Record.Gateway.Create")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(g.kind)))

	start := time.Now()
	var created T
	err := g.client.Create(ctx, g.token, g.kind.ResourcePath(), draft, &created)
	g.observe("create", err, start)
	if err != nil {
		span.RecordError(err)
		var zero T
		return zero, g.translate(err, "")
	}
	return created, nil
}

func (g *RecordGateway[T]) Update(ctx context.Context, id string, draft T) (T, error) {
	ctx, span := tracer.Start(ctx, "Record.Gateway.Update")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(g.kind)), attribute.String("id", id))

	start := time.Now()
	var updated T
	err := g.client.Update(ctx, g.token, g.kind.ResourcePath(), id, draft, &updated)
	g.observe("update", err, start)
	if err != nil {
		span.RecordError(err)
		var zero T
		return zero, g.translate(err, id)
	}
	return updated, nil
}

func (g *RecordGateway[T]) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Record.Gateway.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("kind", string(g.kind)), attribute.String("id", id))

	start := time.Now()
	err := g.client.Delete(ctx, g.token, g.kind.ResourcePath(), id)
	g.observe("delete", err, start)
	if err != nil {
		span.RecordError(err)
		return g.translate(err, id)
	}
	return nil
}

func (g *RecordGateway[T]) observe(op string, err error, start time.Time) {
	g.metrics.ObserveUpstream(string(g.kind), op, outcome(err), time.Since(start))
}

func outcome(err error) string {
	var se *client.StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &se) && se.Code == http.StatusNotFound:
		return "not_found"
	case errors.As(err, &se):
		return fmt.Sprintf("status_%d", se.Code)
	default:
		return "error"
	}
}

func (g *RecordGateway[T]) translate(err error, id string) error {
	if client.IsStatus(err, http.StatusNotFound) {
		resource := string(g.kind)
		if id != "" {
			resource += " " + id
		}
		return domain.NotFoundError{Resource: resource}
	}
	return errors.Wrapf(err, "%s upstream", g.kind)
}

var (
	_ usecase.RecordGateway[domain.Appointment] = (*RecordGateway[domain.Appointment])(nil)
	_ usecase.RecordGateway[domain.Memorial]    = (*RecordGateway[domain.Memorial])(nil)
)

// NewGateways binds one gateway per kind to token.
func NewGateways(cl *client.Client, m *metrics.Metrics, token string) usecase.Gateways {
	return usecase.Gateways{
		Appointments: NewRecordGateway[domain.Appointment](cl, m, domain.KindAppointment, token),
		Vaccinations: NewRecordGateway[domain.Vaccination](cl, m, domain.KindVaccination, token),
		LostFound:    NewRecordGateway[domain.LostFound](cl, m, domain.KindLostFound, token),
		Memorials:    NewRecordGateway[domain.Memorial](cl, m, domain.KindMemorial, token),
	}
}
