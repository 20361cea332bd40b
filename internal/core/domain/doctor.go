package domain

import (
	"strings"

	"github.com/google/uuid"
)

type ProfessionalType string

const (
	ProfessionalTypeDoctor     ProfessionalType = "doctor"
	ProfessionalTypeDentist    ProfessionalType = "dentist"
	ProfessionalTypePharmacist ProfessionalType = "pharmacist"
)

// Doctor is a directory professional. Name is always stored in plain form,
// without any honorific; the prefix is derived at read time.
type Doctor struct {
	ID   uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	Name string           `json:"name"`
	Type ProfessionalType `json:"type"`
}

type Clinic struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `json:"name"`
}

// NormalizeDoctorName strips any leading "Dr."/"Dr" tokens, however many
// were typed, and collapses surrounding whitespace. Applied at write time so
// the stored name is canonical and display derivation never has to strip.
func NormalizeDoctorName(name string) string {
	fields := strings.Fields(name)
	for len(fields) > 0 {
		token := strings.ToLower(strings.TrimSuffix(fields[0], "."))
		if token != "dr" {
			break
		}
		fields = fields[1:]
	}
	return strings.Join(fields, " ")
}

// DisplayName prepends the professional prefix exactly once. Pharmacists are
// never prefixed.
func (d Doctor) DisplayName() string {
	switch d.Type {
	case ProfessionalTypeDoctor, ProfessionalTypeDentist:
		return "Dr. " + d.Name
	default:
		return d.Name
	}
}
