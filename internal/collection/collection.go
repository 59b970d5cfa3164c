// Package collection holds the in-memory model of one domain's records and
// derives the orderings and temporal partitions the views are built from.
//
// A Collection is a plain owned value. It does no I/O and has no locking;
// its owner serializes access.
package collection

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/petalert/petalert/internal/domain"
)

// Collection is the authoritative set of records for one domain.
type Collection[T domain.Record] struct {
	loc   *time.Location
	keys  []string
	items map[string]T
	state State
	local int
}

type Option func(*options)

type options struct {
	loc *time.Location
}

// WithLocation sets the zone used to resolve date and time strings.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

func New[T domain.Record](opts ...Option) *Collection[T] {
	o := options{loc: time.UTC}
	for _, opt := range opts {
		opt(&o)
	}
	return &Collection[T]{
		loc:   o.loc,
		items: make(map[string]T),
		state: StateUnloaded,
	}
}

// ReplaceAll discards the current contents and stores records in the order
// received. An empty input is reported as StateEmptyResult.
func (c *Collection[T]) ReplaceAll(records []T) State {
	c.keys = make([]string, 0, len(records))
	c.items = make(map[string]T, len(records))
	c.local = 0

	for _, r := range records {
		c.put(r)
	}

	if len(c.keys) == 0 {
		c.state = StateEmptyResult
	} else {
		c.state = StatePopulated
	}
	return c.state
}

// Upsert replaces the record with the same id wholesale, keeping its
// position, or appends it.
func (c *Collection[T]) Upsert(record T) {
	c.put(record)
	c.state = StatePopulated
}

// Remove deletes the record with the given key. Absent keys are a no-op.
func (c *Collection[T]) Remove(id string) {
	if _, ok := c.items[id]; !ok {
		return
	}
	delete(c.items, id)
	c.keys = slices.DeleteFunc(c.keys, func(k string) bool { return k == id })

	if len(c.keys) == 0 {
		c.state = StateDrained
	}
}

func (c *Collection[T]) put(r T) {
	key := r.RecordID()
	if key == "" {
		c.local++
		key = fmt.Sprintf("%s%d", LocalKeyPrefix, c.local)
	}
	if _, exists := c.items[key]; !exists {
		c.keys = append(c.keys, key)
	}
	c.items[key] = r
}

func (c *Collection[T]) State() State { return c.state }

func (c *Collection[T]) Len() int { return len(c.keys) }

func (c *Collection[T]) Get(id string) (T, bool) {
	r, ok := c.items[id]
	return r, ok
}

// Keys returns the record keys in insertion order.
func (c *Collection[T]) Keys() []string {
	return slices.Clone(c.keys)
}

// All returns the records in insertion order.
func (c *Collection[T]) All() []T {
	out := make([]T, 0, len(c.keys))
	for _, k := range c.keys {
		out = append(out, c.items[k])
	}
	return out
}

// LocalKeyPrefix marks keys given to records that arrived without an id.
const LocalKeyPrefix = "local:"

// Partition is the result of PartitionByTime. Every record of the collection
// appears in exactly one of the three sets.
type Partition[T domain.Record] struct {
	Upcoming    []T
	Past        []T
	Unscheduled []T
}

type entry[T domain.Record] struct {
	key     string
	record  T
	instant time.Time
}

func (c *Collection[T]) resolve() (scheduled []entry[T], unscheduled []T) {
	for _, k := range c.keys {
		r := c.items[k]
		at, err := domain.EventInstant(r.OccursOn(), c.loc)
		if err != nil {
			unscheduled = append(unscheduled, r)
			continue
		}
		scheduled = append(scheduled, entry[T]{key: k, record: r, instant: at})
	}
	return scheduled, unscheduled
}

func ascending[T domain.Record](a, b entry[T]) int {
	if n := a.instant.Compare(b.instant); n != 0 {
		return n
	}
	return cmp.Compare(a.key, b.key)
}

func descending[T domain.Record](a, b entry[T]) int {
	if n := b.instant.Compare(a.instant); n != 0 {
		return n
	}
	return cmp.Compare(a.key, b.key)
}

// PartitionByTime splits the records around reference. A record is upcoming
// when its instant is at or after reference. Upcoming is soonest first, past
// is most recent first; equal instants order by id, compared as strings
// ("10" before "9"; upstream ids are fixed-width hex). Records whose date does
// not parse are returned in Unscheduled, in insertion order.
func (c *Collection[T]) PartitionByTime(reference time.Time) Partition[T] {
	scheduled, unscheduled := c.resolve()

	var upcoming, past []entry[T]
	for _, e := range scheduled {
		if e.instant.Before(reference) {
			past = append(past, e)
		} else {
			upcoming = append(upcoming, e)
		}
	}
	slices.SortFunc(upcoming, ascending[T])
	slices.SortFunc(past, descending[T])

	return Partition[T]{
		Upcoming:    records(upcoming),
		Past:        records(past),
		Unscheduled: orEmpty(unscheduled),
	}
}

// SortedDescending returns every record newest first. Records whose date does
// not parse come last in insertion order.
func (c *Collection[T]) SortedDescending() []T {
	scheduled, unscheduled := c.resolve()
	slices.SortFunc(scheduled, descending[T])
	return append(records(scheduled), unscheduled...)
}

func records[T domain.Record](entries []entry[T]) []T {
	out := make([]T, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.record)
	}
	return out
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
