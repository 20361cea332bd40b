package domain

import (
	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// QueueSnapshot is the read-only "now serving / waiting" projection for one
// doctor on one date, ordered by token number. NowServing is nil when no
// patient is checked in.
type QueueSnapshot struct {
	DoctorID   uuid.UUID       `json:"doctorId"`
	ClinicID   uuid.UUID       `json:"clinicId"`
	Date       json_types.Date `json:"date"`
	NowServing *int            `json:"nowServing"`
	Waiting    []int           `json:"waiting"`
}
