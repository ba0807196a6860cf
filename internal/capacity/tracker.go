// Package capacity decides where a new registration lands given live counts.
package capacity

import "github.com/vietanh2810/occurrence-registration-api/internal/domain"

type Disposition string

const (
	DispositionActive   Disposition = "active"
	DispositionWaitlist Disposition = "waitlist"
	DispositionRejected Disposition = "rejected"
)

// Evaluation carries the disposition and what is left. A nil remaining value
// means unbounded, which is not the same as zero.
type Evaluation struct {
	Disposition       Disposition `json:"disposition"`
	Remaining         *int        `json:"remaining"`
	WaitlistRemaining *int        `json:"waitlist_remaining"`
}

// Evaluate must be fed counts read from live registrations at decision time.
func Evaluate(event domain.Event, counts domain.Counts) Evaluation {
	eval := Evaluation{
		Remaining:         remaining(event.CapacityTotal, counts.Active),
		WaitlistRemaining: remaining(event.WaitlistTotal, counts.Waitlisted),
	}

	switch {
	case event.CapacityTotal == nil:
		eval.Disposition = DispositionActive
	case counts.Active < *event.CapacityTotal:
		eval.Disposition = DispositionActive
	case event.WaitlistTotal != nil && counts.Waitlisted < *event.WaitlistTotal:
		eval.Disposition = DispositionWaitlist
	default:
		eval.Disposition = DispositionRejected
	}

	return eval
}

// Status maps the disposition to the status of the registration to create.
// ok is false when the registration must be rejected.
func (e Evaluation) Status() (status domain.RegistrationStatus, ok bool) {
	switch e.Disposition {
	case DispositionActive:
		return domain.StatusActive, true
	case DispositionWaitlist:
		return domain.StatusWaitlisted, true
	default:
		return "", false
	}
}

func remaining(total *int, used int) *int {
	if total == nil {
		return nil
	}

	left := max(*total-used, 0)

	return &left
}
