package usecase

import (
	"time"

	"github.com/petalert/petalert/internal/collection"
	"github.com/petalert/petalert/internal/domain"
)

// View is the derived, render-ready state of one screen. Temporal kinds fill
// Upcoming, Past and Unscheduled; the others fill Entries.
type View[T domain.Record] struct {
	Kind        domain.Kind      `json:"kind"`
	State       collection.State `json:"state"`
	Reference   time.Time        `json:"reference"`
	Upcoming    []T              `json:"upcoming,omitempty"`
	Past        []T              `json:"past,omitempty"`
	Unscheduled []T              `json:"unscheduled,omitempty"`
	Entries     []T              `json:"entries,omitempty"`
}

// Empty reports whether the screen should show its "no entries" state.
func (v View[T]) Empty() bool {
	return len(v.Upcoming)+len(v.Past)+len(v.Unscheduled)+len(v.Entries) == 0
}
