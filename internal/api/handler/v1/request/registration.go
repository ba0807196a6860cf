package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/occurrence-registration-api/internal/assignment"
	"github.com/vietanh2810/occurrence-registration-api/internal/domain"
)

const (
	maxOccurrenceIDs  = 500
	occurrenceIDLimit = 32
)

type RegisterRequest struct {
	ParticipantID uint    `json:"participant_id"`
	Note          *string `json:"note"`
	// Occurrences is the explicit session selection. Leaving it out, or
	// sending AllOccurrences, registers to every session.
	Occurrences    []string `json:"occurrences"`
	AllOccurrences bool     `json:"all_occurrences"`
	Delivery       string   `json:"delivery"`
}

func (req *RegisterRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ParticipantID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Occurrences, validation.Length(0, maxOccurrenceIDs), validation.By(occurrenceIDs)),
		validation.Field(&req.Delivery, validation.In(string(domain.DeliveryImmediate), string(domain.DeliveryDeferred))),
	)
}

func (req *RegisterRequest) Selection() *assignment.Selection {
	return selection(req.Occurrences, req.AllOccurrences)
}

type UpdateRegistrationRequest struct {
	Note           *string  `json:"note"`
	Occurrences    []string `json:"occurrences"`
	AllOccurrences bool     `json:"all_occurrences"`
}

func (req *UpdateRegistrationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Occurrences, validation.Length(0, maxOccurrenceIDs), validation.By(occurrenceIDs)),
	)
}

func (req *UpdateRegistrationRequest) Selection() *assignment.Selection {
	return selection(req.Occurrences, req.AllOccurrences)
}

// selection is nil when the caller did not send one.
func selection(ids []string, all bool) *assignment.Selection {
	if ids == nil && !all {
		return nil
	}

	return &assignment.Selection{All: all, IDs: ids}
}

func occurrenceIDs(value interface{}) error {
	ids, _ := value.([]string)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			return errors.New("must not contain blank ids")
		}
		if len(id) > occurrenceIDLimit {
			return errors.New("contains an id that is too long")
		}
	}

	return nil
}
