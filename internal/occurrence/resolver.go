// Package occurrence expands an event schedule into its concrete sessions.
package occurrence

import (
	"errors"
	"iter"
	"slices"
	"time"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

const (
	idLayout    = "20060102T150405Z"
	labelLayout = "Mon 02 Jan 2006 15:04"

	// MaxSeriesLength is the longest series ValidateSchedule accepts.
	MaxSeriesLength = 5000
)

var (
	ErrUnboundedSeries  = errors.New("recurring schedule needs an until date or a count")
	ErrUnknownFrequency = errors.New("unknown schedule frequency")
	ErrSeriesTooLong    = errors.New("recurring schedule has too many sessions")
)

type Options struct {
	// Max caps the number of yielded occurrences. Zero means no cap.
	Max int
	// IncludePast also yields occurrences that started before now.
	IncludePast bool
}

type Resolver struct {
	loc *time.Location
	now func() time.Time
}

// NewResolver returns a resolver expanding series in loc. A nil now uses
// time.Now.
func NewResolver(loc *time.Location, now func() time.Time) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}

	return &Resolver{
		loc: loc,
		now: now,
	}
}

// Resolve returns the ordered occurrences of event. The sequence is lazy,
// finite and can be ranged over any number of times.
func (r *Resolver) Resolve(event domain.Event, opts Options) iter.Seq[domain.Occurrence] {
	return func(yield func(domain.Occurrence) bool) {
		now := r.now()
		yielded := 0

		for start := range r.starts(event.Schedule) {
			occ := domain.Occurrence{
				ID:     ID(start),
				Start:  start,
				IsPast: start.Before(now),
			}
			if occ.IsPast && !opts.IncludePast {
				continue
			}
			if !yield(occ) {
				return
			}

			yielded++
			if opts.Max > 0 && yielded >= opts.Max {
				return
			}
		}
	}
}

func (r *Resolver) starts(s domain.Schedule) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if s.StartsAt.IsZero() {
			return
		}

		switch s.Mode {
		case domain.ScheduleFixed:
			yield(s.StartsAt)
		case domain.ScheduleRecurring:
			if s.Until == nil && s.Count == nil {
				return
			}

			interval := s.Interval
			if interval < 1 {
				interval = 1
			}
			first := s.StartsAt.In(r.loc)

			for i := 0; i < MaxSeriesLength; i++ {
				if s.Count != nil && i >= *s.Count {
					return
				}

				start, ok := step(first, s.Frequency, interval*i)
				if !ok {
					return
				}
				if s.Until != nil && start.After(*s.Until) {
					return
				}
				if !yield(start) {
					return
				}
			}
		}
	}
}

// step advances in the resolver location so that a weekly 18:00 session
// stays at 18:00 local time across DST changes.
func step(first time.Time, freq domain.Frequency, n int) (time.Time, bool) {
	switch freq {
	case domain.FrequencyDaily:
		return first.AddDate(0, 0, n), true
	case domain.FrequencyWeekly:
		return first.AddDate(0, 0, 7*n), true
	case domain.FrequencyMonthly:
		return addMonths(first, n), true
	default:
		return time.Time{}, false
	}
}

// addMonths keeps the day of month of first, clamped to the last day of the
// target month: a series on the 31st falls on Feb 28th, then Mar 31st.
func addMonths(first time.Time, n int) time.Time {
	y, m, d := first.Date()
	target := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, first.Location())
	lastDay := time.Date(target.Year(), target.Month()+1, 0, 0, 0, 0, 0, first.Location()).Day()

	return time.Date(target.Year(), target.Month(), min(d, lastDay),
		first.Hour(), first.Minute(), first.Second(), first.Nanosecond(), first.Location())
}

// ValidateSchedule rejects recurring schedules the resolver cannot expand in
// full: no bound, an unknown frequency, or more than MaxSeriesLength
// sessions.
func ValidateSchedule(s domain.Schedule) error {
	if s.Mode != domain.ScheduleRecurring {
		return nil
	}
	if s.Until == nil && s.Count == nil {
		return ErrUnboundedSeries
	}
	if _, ok := step(s.StartsAt, s.Frequency, 0); !ok {
		return ErrUnknownFrequency
	}
	if s.Count != nil && *s.Count <= MaxSeriesLength {
		return nil
	}
	if s.Until == nil {
		return ErrSeriesTooLong
	}

	interval := max(s.Interval, 1)
	first := s.StartsAt
	if beyond, _ := step(first, s.Frequency, interval*MaxSeriesLength); !beyond.After(*s.Until) {
		return ErrSeriesTooLong
	}

	return nil
}

// Collect materialises a sequence.
func Collect(seq iter.Seq[domain.Occurrence]) []domain.Occurrence {
	occurrences := slices.Collect(seq)
	if occurrences == nil {
		return []domain.Occurrence{}
	}

	return occurrences
}

// Selectable lists the occurrences a participant can still pick.
func (r *Resolver) Selectable(event domain.Event) []domain.Occurrence {
	return Collect(r.Resolve(event, Options{}))
}

// Catalog indexes every occurrence of event, past ones included, by id.
func (r *Resolver) Catalog(event domain.Event) map[string]domain.Occurrence {
	catalog := make(map[string]domain.Occurrence)
	for occ := range r.Resolve(event, Options{IncludePast: true}) {
		catalog[occ.ID] = occ
	}

	return catalog
}

func (r *Resolver) HasFuture(event domain.Event) bool {
	for range r.Resolve(event, Options{Max: 1}) {
		return true
	}

	return false
}

// Label renders occ for humans in the resolver location.
func (r *Resolver) Label(occ domain.Occurrence) string {
	return occ.Start.In(r.loc).Format(labelLayout)
}

// ID derives the stable identifier of the occurrence starting at start. The
// same instant always maps to the same id.
func ID(start time.Time) string {
	return start.UTC().Format(idLayout)
}
