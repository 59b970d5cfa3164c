package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/petalert/petalert"
	"github.com/petalert/petalert/internal/collection"
	"github.com/petalert/petalert/internal/domain"
	"github.com/petalert/petalert/internal/utils"
)

// OverviewRow is one line of an admin table.
type OverviewRow struct {
	ID         string               `json:"id"`
	Kind       domain.Kind          `json:"kind"`
	Date       string               `json:"date"`
	Time       string               `json:"time,omitempty"`
	Author     *petalert.Author     `json:"createdBy,omitempty"`
	Attributes utils.Fields[string] `json:"attributes"`
}

type OverviewSection struct {
	Kind  domain.Kind      `json:"kind"`
	State collection.State `json:"state"`
	Rows  []OverviewRow    `json:"rows"`
}

// Overview is the admin console: every kind, newest first.
type Overview struct {
	Sections []OverviewSection `json:"sections"`
}

type OverviewUsecase struct {
	session *Session
}

func NewOverviewUsecase(session *Session) *OverviewUsecase {
	return &OverviewUsecase{session: session}
}

func (uc *OverviewUsecase) Get(ctx context.Context) (Overview, error) {
	ctx, span := tracer.Start(ctx, "Overview.Usecase.Get")
	defer span.End()

	s := uc.session
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return ignoreStale(s.Appointments.Refresh(gctx)) })
	g.Go(func() error { return ignoreStale(s.Vaccinations.Refresh(gctx)) })
	g.Go(func() error { return ignoreStale(s.LostFound.Refresh(gctx)) })
	g.Go(func() error { return ignoreStale(s.Memorials.Refresh(gctx)) })
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return Overview{}, err
	}

	return Overview{
		Sections: []OverviewSection{
			section(s.Appointments),
			section(s.Vaccinations),
			section(s.LostFound),
			section(s.Memorials),
		},
	}, nil
}

func section[T domain.Record](uc *RecordUsecase[T]) OverviewSection {
	records := uc.SortedDescending()
	rows := make([]OverviewRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, row(uc.Kind(), r))
	}
	return OverviewSection{Kind: uc.Kind(), State: uc.State(), Rows: rows}
}

func row(kind domain.Kind, r domain.Record) OverviewRow {
	schedule := r.OccursOn()
	attrs := utils.Fields[string]{}
	for _, a := range r.Attributes() {
		attrs.Set(a.Name, a.Value)
	}
	out := OverviewRow{
		ID:         r.RecordID(),
		Kind:       kind,
		Date:       schedule.Date,
		Author:     r.Author(),
		Attributes: attrs,
	}
	if schedule.HasTime {
		out.Time = schedule.Time
	}
	return out
}
