package domain

// ReservationView is a read-side projection of a live registration.
type ReservationView struct {
	RegistrationID uint               `json:"registration_id"`
	EventID        uint               `json:"event_id"`
	EventTitle     string             `json:"event_title"`
	ParticipantID  uint               `json:"participant_id"`
	Name           string             `json:"name"`
	Status         RegistrationStatus `json:"status"`
	StatusLabel    string             `json:"status_label"`
	Occurrences    []string           `json:"occurrences"`
	CanCancel      bool               `json:"can_cancel"`
}
