package domain

import (
	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// DoctorLeave cancels or narrows a doctor's availability on a single date.
// Absent start/end times mean a full-day leave.
type DoctorLeave struct {
	ID        uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	DoctorID  uuid.UUID             `gorm:"type:uuid;index" json:"doctorId"`
	ClinicID  uuid.UUID             `gorm:"type:uuid;index" json:"clinicId"`
	LeaveDate json_types.Date       `gorm:"index" json:"leaveDate"`
	StartTime *json_types.TimeOfDay `json:"startTime,omitempty"`
	EndTime   *json_types.TimeOfDay `json:"endTime,omitempty"`
	Reason    string                `json:"reason"`
}

func (l DoctorLeave) FullDay() bool {
	return l.StartTime == nil || l.EndTime == nil
}

func (l DoctorLeave) Validate() error {
	if l.LeaveDate.IsZero() {
		return ErrValidation
	}
	// Either both bounds or neither.
	if (l.StartTime == nil) != (l.EndTime == nil) {
		return ErrValidation
	}
	if !l.FullDay() && l.StartTime.Minutes() >= l.EndTime.Minutes() {
		return ErrValidation
	}
	return nil
}

// BlockedRange returns the excluded minute range. A full-day leave blocks
// the entire day.
func (l DoctorLeave) BlockedRange() (startMinute, endMinute int) {
	if l.FullDay() {
		return 0, 24 * 60
	}
	return l.StartTime.Minutes(), l.EndTime.Minutes()
}
