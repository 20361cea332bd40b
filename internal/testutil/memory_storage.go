package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/fixtures"
)

// MemoryStorage is an in-memory storage port for service tests. Its
// CreateAppointment honors the same atomicity contract as the postgres
// adapter: capacity re-check and token assignment happen under one lock.
type MemoryStorage struct {
	mu           sync.Mutex
	Doctors      map[uuid.UUID]domain.Doctor
	Clinics      map[uuid.UUID]domain.Clinic
	Schedules    []domain.DoctorSchedule
	Leaves       []domain.DoctorLeave
	Appointments map[uuid.UUID]domain.Appointment
	Batches      map[uuid.UUID]domain.MedicineBatch
}

func NewMemoryStorage(f *fixtures.Fixture) *MemoryStorage {
	s := &MemoryStorage{
		Doctors:      make(map[uuid.UUID]domain.Doctor),
		Clinics:      make(map[uuid.UUID]domain.Clinic),
		Appointments: make(map[uuid.UUID]domain.Appointment),
		Batches:      make(map[uuid.UUID]domain.MedicineBatch),
	}
	if f != nil {
		s.Clinics[f.Clinic.ID] = f.Clinic
		s.Doctors[f.RegularDoctor.ID] = f.RegularDoctor
		s.Doctors[f.VisitingDoctor.ID] = f.VisitingDoctor
		s.Schedules = append(s.Schedules, f.Schedules...)
	}
	return s
}

func (s *MemoryStorage) GetDoctor(ctx context.Context, doctorID uuid.UUID) (*domain.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doctor, ok := s.Doctors[doctorID]
	if !ok {
		return nil, fmt.Errorf("doctor %s: %w", doctorID, domain.ErrNotFound)
	}
	return &doctor, nil
}

func (s *MemoryStorage) GetClinic(ctx context.Context, clinicID uuid.UUID) (*domain.Clinic, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clinic, ok := s.Clinics[clinicID]
	if !ok {
		return nil, fmt.Errorf("clinic %s: %w", clinicID, domain.ErrNotFound)
	}
	return &clinic, nil
}

func (s *MemoryStorage) SaveDoctor(ctx context.Context, doctor *domain.Doctor) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Doctors[doctor.ID] = *doctor
	return nil
}

func (s *MemoryStorage) GetScheduleForWeekday(ctx context.Context, doctorID, clinicID uuid.UUID, weekday time.Weekday) (*domain.DoctorSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.Schedules {
		sc := s.Schedules[i]
		if sc.DoctorID == doctorID && sc.ClinicID == clinicID && sc.Weekday == weekday && sc.Active {
			return &sc, nil
		}
	}
	return nil, nil
}

func (s *MemoryStorage) ListSchedules(ctx context.Context, doctorID, clinicID uuid.UUID) ([]domain.DoctorSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var schedules []domain.DoctorSchedule
	for _, sc := range s.Schedules {
		if sc.DoctorID == doctorID && sc.ClinicID == clinicID {
			schedules = append(schedules, sc)
		}
	}
	return schedules, nil
}

func (s *MemoryStorage) SaveSchedule(ctx context.Context, schedule *domain.DoctorSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.Schedules {
		if s.Schedules[i].ID == schedule.ID {
			s.Schedules[i] = *schedule
			return nil
		}
	}
	s.Schedules = append(s.Schedules, *schedule)
	return nil
}

func (s *MemoryStorage) ListLeaves(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) ([]domain.DoctorLeave, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var leaves []domain.DoctorLeave
	for _, leave := range s.Leaves {
		if leave.DoctorID == doctorID && leave.ClinicID == clinicID && leave.LeaveDate.Equal(date) {
			leaves = append(leaves, leave)
		}
	}
	return leaves, nil
}

func (s *MemoryStorage) SaveLeave(ctx context.Context, leave *domain.DoctorLeave) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Leaves = append(s.Leaves, *leave)
	return nil
}

func (s *MemoryStorage) ListAppointments(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) ([]domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var appointments []domain.Appointment
	for _, appointment := range s.Appointments {
		if appointment.DoctorID == doctorID && appointment.ClinicID == clinicID && appointment.Date.Equal(date) {
			appointments = append(appointments, appointment)
		}
	}
	return appointments, nil
}

func (s *MemoryStorage) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, ok := s.Appointments[appointmentID]
	if !ok {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, domain.ErrNotFound)
	}
	return &appointment, nil
}

func (s *MemoryStorage) CreateAppointment(ctx context.Context, appointment *domain.Appointment, scheduleID uuid.UUID, capacity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booked := 0
	maxToken := 0
	for _, existing := range s.Appointments {
		if existing.ClinicID == appointment.ClinicID && existing.Date.Equal(appointment.Date) {
			if existing.TokenNumber > maxToken {
				maxToken = existing.TokenNumber
			}
		}
		if existing.DoctorID == appointment.DoctorID &&
			existing.ClinicID == appointment.ClinicID &&
			existing.Date.Equal(appointment.Date) &&
			existing.SlotStartTime.Minutes() == appointment.SlotStartTime.Minutes() &&
			existing.Status.CountsTowardCapacity() {
			booked++
		}
	}

	if booked >= capacity {
		return domain.ErrSlotUnavailable
	}

	appointment.TokenNumber = maxToken + 1
	appointment.CreatedAt = time.Now()
	s.Appointments[appointment.ID] = *appointment
	return nil
}

func (s *MemoryStorage) UpdateAppointmentStatus(ctx context.Context, appointmentID uuid.UUID, status domain.AppointmentStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	appointment, ok := s.Appointments[appointmentID]
	if !ok {
		return fmt.Errorf("appointment %s: %w", appointmentID, domain.ErrNotFound)
	}
	appointment.Status = status
	s.Appointments[appointmentID] = appointment
	return nil
}

func (s *MemoryStorage) ListBatches(ctx context.Context, clinicID, medicineID uuid.UUID) ([]domain.MedicineBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var batches []domain.MedicineBatch
	for _, batch := range s.Batches {
		if batch.ClinicID == clinicID && batch.MedicineID == medicineID {
			batches = append(batches, batch)
		}
	}
	return batches, nil
}

func (s *MemoryStorage) UpdateBatchQuantities(ctx context.Context, batches []domain.MedicineBatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, batch := range batches {
		stored, ok := s.Batches[batch.ID]
		if !ok {
			return fmt.Errorf("batch %s: %w", batch.ID, domain.ErrNotFound)
		}
		stored.Quantity = batch.Quantity
		s.Batches[batch.ID] = stored
	}
	return nil
}
