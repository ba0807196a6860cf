package service

import (
	"fmt"
	"time"

	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

// AgeEligibility checks a participant's age, on the day the event starts,
// against the event's age bounds.
type AgeEligibility struct{}

func NewAgeEligibility() *AgeEligibility {
	return &AgeEligibility{}
}

func (c *AgeEligibility) Check(event domain.Event, participant domain.Participant) domain.Eligibility {
	if event.MinAge == nil && event.MaxAge == nil {
		return domain.Eligibility{Eligible: true}
	}
	if participant.BirthDate == nil {
		return domain.Eligibility{Reasons: []string{"birth date is required for this event"}}
	}

	age := ageAt(*participant.BirthDate, event.Schedule.StartsAt)

	var reasons []string
	if event.MinAge != nil && age < *event.MinAge {
		reasons = append(reasons, fmt.Sprintf("participant must be at least %d years old", *event.MinAge))
	}
	if event.MaxAge != nil && age > *event.MaxAge {
		reasons = append(reasons, fmt.Sprintf("participant must be at most %d years old", *event.MaxAge))
	}

	return domain.Eligibility{
		Eligible: len(reasons) == 0,
		Reasons:  reasons,
	}
}

func ageAt(birth, at time.Time) int {
	years := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		years--
	}

	return years
}
