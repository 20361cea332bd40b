package domain

import (
	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// WorkingWindow is a contiguous bookable range within one day, expressed as
// minute offsets from midnight. A schedule rule yields one window; partial
// leaves may split or truncate it.
type WorkingWindow struct {
	StartMinute         int
	EndMinute           int
	SlotDurationMinutes int
	MaxPatientsPerSlot  int
}

// Slot is one bookable time unit on one date. Slots are derived on every
// query and never persisted.
type Slot struct {
	StartTime   json_types.TimeOfDay `json:"startTime"`
	EndTime     json_types.TimeOfDay `json:"endTime"`
	Capacity    int                  `json:"capacity"`
	BookedCount int                  `json:"bookedCount"`
	Available   bool                 `json:"available"`
}

// DaySlots is the availability projection for one doctor on one date.
// HasSchedule false means "no schedule that day", an expected empty result
// rather than an error.
type DaySlots struct {
	DoctorID    uuid.UUID       `json:"doctorId"`
	ClinicID    uuid.UUID       `json:"clinicId"`
	Date        json_types.Date `json:"date"`
	HasSchedule bool            `json:"hasSchedule"`
	Slots       []Slot          `json:"slots"`
}

// SlotCacheKey identifies one cached day of slots.
type SlotCacheKey struct {
	DoctorID uuid.UUID
	ClinicID uuid.UUID
	Date     string
}

func NewSlotCacheKey(doctorID, clinicID uuid.UUID, date json_types.Date) SlotCacheKey {
	return SlotCacheKey{DoctorID: doctorID, ClinicID: clinicID, Date: date.String()}
}
