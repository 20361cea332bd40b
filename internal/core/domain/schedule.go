package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// DoctorSchedule is a recurring weekly availability rule for one doctor at
// one clinic. At most one active rule may exist per (doctor, clinic, weekday).
type DoctorSchedule struct {
	ID                  uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID            uuid.UUID            `gorm:"type:uuid;index" json:"doctorId"`
	ClinicID            uuid.UUID            `gorm:"type:uuid;index" json:"clinicId"`
	Weekday             time.Weekday         `json:"weekday"`
	StartTime           json_types.TimeOfDay `json:"startTime"`
	EndTime             json_types.TimeOfDay `json:"endTime"`
	SlotDurationMinutes int                  `json:"slotDurationMinutes"`
	MaxPatientsPerSlot  int                  `json:"maxPatientsPerSlot"`
	Active              bool                 `json:"active"`
}

// Validate enforces the rule invariants. Weekday range is guaranteed by the
// time.Weekday type on the wire layer.
func (s DoctorSchedule) Validate() error {
	if s.StartTime.Minutes() >= s.EndTime.Minutes() {
		return ErrValidation
	}
	if s.SlotDurationMinutes <= 0 {
		return ErrValidation
	}
	if s.MaxPatientsPerSlot < 1 {
		return ErrValidation
	}
	if s.Weekday < time.Sunday || s.Weekday > time.Saturday {
		return ErrValidation
	}
	return nil
}

// Window returns the rule's full working window before leave narrowing.
func (s DoctorSchedule) Window() WorkingWindow {
	return WorkingWindow{
		StartMinute:         s.StartTime.Minutes(),
		EndMinute:           s.EndTime.Minutes(),
		SlotDurationMinutes: s.SlotDurationMinutes,
		MaxPatientsPerSlot:  s.MaxPatientsPerSlot,
	}
}
