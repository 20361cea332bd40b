package domain

import (
	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// MedicineBatch is one received lot of a medicine with its own expiry date.
// Deduction is first-expired-first-out across a medicine's batches.
type MedicineBatch struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	MedicineID uuid.UUID       `gorm:"type:uuid;index" json:"medicineId"`
	ClinicID   uuid.UUID       `gorm:"type:uuid;index" json:"clinicId"`
	BatchNo    string          `json:"batchNo"`
	ExpiryDate json_types.Date `json:"expiryDate"`
	Quantity   int             `json:"quantity"`
}

func (b MedicineBatch) ExpiredOn(date json_types.Date) bool {
	return b.ExpiryDate.Before(date) || b.ExpiryDate.Equal(date)
}
