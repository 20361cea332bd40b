package fixtures

import (
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// Fixture is a fixed dataset for reproducible tests: one clinic, a regular
// doctor working Mon-Fri 09:00-17:00 in 30-minute slots with capacity 1, and
// a visiting doctor working Saturdays with capacity 2. Construct one per
// test and pass it by reference; fixtures are never shared package state.
type Fixture struct {
	Clinic         domain.Clinic
	RegularDoctor  domain.Doctor
	VisitingDoctor domain.Doctor
	Schedules      []domain.DoctorSchedule
}

func New() *Fixture {
	clinic := domain.Clinic{ID: uuid.New(), Name: "Swasthya Model Clinic"}
	regular := domain.Doctor{ID: uuid.New(), Name: "Anita Sharma", Type: domain.ProfessionalTypeDoctor}
	visiting := domain.Doctor{ID: uuid.New(), Name: "Bikash Shrestha", Type: domain.ProfessionalTypeDentist}

	f := &Fixture{
		Clinic:         clinic,
		RegularDoctor:  regular,
		VisitingDoctor: visiting,
	}

	for weekday := time.Monday; weekday <= time.Friday; weekday++ {
		f.Schedules = append(f.Schedules, domain.DoctorSchedule{
			ID:                  uuid.New(),
			DoctorID:            regular.ID,
			ClinicID:            clinic.ID,
			Weekday:             weekday,
			StartTime:           json_types.NewTimeOfDay(9, 0),
			EndTime:             json_types.NewTimeOfDay(17, 0),
			SlotDurationMinutes: 30,
			MaxPatientsPerSlot:  1,
			Active:              true,
		})
	}

	f.Schedules = append(f.Schedules, domain.DoctorSchedule{
		ID:                  uuid.New(),
		DoctorID:            visiting.ID,
		ClinicID:            clinic.ID,
		Weekday:             time.Saturday,
		StartTime:           json_types.NewTimeOfDay(10, 0),
		EndTime:             json_types.NewTimeOfDay(13, 0),
		SlotDurationMinutes: 30,
		MaxPatientsPerSlot:  2,
		Active:              true,
	})

	return f
}

// ScheduleFor returns the fixture rule for a doctor and weekday, or nil.
func (f *Fixture) ScheduleFor(doctorID uuid.UUID, weekday time.Weekday) *domain.DoctorSchedule {
	for i := range f.Schedules {
		if f.Schedules[i].DoctorID == doctorID && f.Schedules[i].Weekday == weekday {
			return &f.Schedules[i]
		}
	}
	return nil
}
