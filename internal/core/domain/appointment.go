package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCheckedIn AppointmentStatus = "checked_in"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// CountsTowardCapacity reports whether an appointment in this status still
// consumes a place in its slot.
func (s AppointmentStatus) CountsTowardCapacity() bool {
	return s != AppointmentStatusCancelled
}

// Appointment is a committed booking of one patient into one slot. Rows are
// immutable after creation except for status transitions.
type Appointment struct {
	ID            uuid.UUID            `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID      uuid.UUID            `gorm:"type:uuid;index" json:"doctorId"`
	ClinicID      uuid.UUID            `gorm:"type:uuid;index" json:"clinicId"`
	Date          json_types.Date      `gorm:"index" json:"date"`
	SlotStartTime json_types.TimeOfDay `json:"slotStartTime"`
	PatientName   string               `json:"patientName"`
	PatientPhone  string               `json:"patientPhone"`
	Status        AppointmentStatus    `json:"status"`
	TokenNumber   int                  `json:"tokenNumber"`
	CreatedAt     time.Time            `json:"createdAt"`
}
