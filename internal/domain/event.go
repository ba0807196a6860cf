package domain

import "time"

type ScheduleMode string

const (
	ScheduleFixed     ScheduleMode = "fixed"
	ScheduleRecurring ScheduleMode = "recurring"
)

type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
)

// Schedule describes when an event happens. A fixed schedule is the single
// slot StartsAt..EndsAt. A recurring schedule repeats StartsAt every Interval
// units of Frequency until Until (inclusive) or Count occurrences, whichever
// comes first.
type Schedule struct {
	Mode      ScheduleMode `json:"mode"`
	StartsAt  time.Time    `json:"starts_at"`
	EndsAt    time.Time    `json:"ends_at"`
	Frequency Frequency    `json:"frequency,omitempty"`
	Interval  int          `json:"interval,omitempty"`
	Until     *time.Time   `json:"until,omitempty"`
	Count     *int         `json:"count,omitempty"`
}

type Event struct {
	ID         uint     `json:"id"`
	Title      string   `json:"title"`
	PriceCents int64    `json:"price_cents"`
	Currency   string   `json:"currency"`
	Schedule   Schedule `json:"schedule"`
	// CapacityTotal nil means unlimited, WaitlistTotal nil means no waitlist.
	CapacityTotal              *int       `json:"capacity_total"`
	WaitlistTotal              *int       `json:"waitlist_total"`
	RegistrationDeadline       *time.Time `json:"registration_deadline"`
	RequireOccurrenceSelection bool       `json:"require_occurrence_selection"`
	MinAge                     *int       `json:"min_age,omitempty"`
	MaxAge                     *int       `json:"max_age,omitempty"`
	CreatedAt                  time.Time  `json:"created_at"`
	UpdatedAt                  time.Time  `json:"updated_at"`
}

func (e Event) IsPaid() bool {
	return e.PriceCents > 0
}

// Deadline is the explicit registration deadline, or the event start when
// none was set.
func (e Event) Deadline() time.Time {
	if e.RegistrationDeadline != nil {
		return *e.RegistrationDeadline
	}

	return e.Schedule.StartsAt
}

// Occurrence is one concrete session of an event. It is derived from the
// schedule every time it is needed and never stored.
type Occurrence struct {
	ID     string    `json:"id"`
	Start  time.Time `json:"start"`
	IsPast bool      `json:"is_past"`
	// Label is only filled for display.
	Label string `json:"label,omitempty"`
}
