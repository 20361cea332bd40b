package scheduleadmin_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
	"github.com/swasthya-health/appointment-slots-service/internal/core/ports/in"
	"github.com/swasthya-health/appointment-slots-service/internal/core/services/booking"
	"github.com/swasthya-health/appointment-slots-service/internal/core/services/scheduleadmin"
	"github.com/swasthya-health/appointment-slots-service/internal/core/services/slotresolver"
	"github.com/swasthya-health/appointment-slots-service/internal/fixtures"
	"github.com/swasthya-health/appointment-slots-service/internal/testutil"
)

var monday = json_types.NewDate(2025, time.March, 3)

type env struct {
	fixture *fixtures.Fixture
	storage *testutil.MemoryStorage
	admin   *scheduleadmin.Service
	booking *booking.Service
}

func newEnv() *env {
	f := fixtures.New()
	storage := testutil.NewMemoryStorage(f)
	resolver := slotresolver.NewService(storage, nil, testutil.NopLogger{})
	return &env{
		fixture: f,
		storage: storage,
		admin:   scheduleadmin.NewService(storage, resolver, testutil.NopLogger{}),
		booking: booking.NewService(storage, resolver, testutil.NopLogger{}),
	}
}

func TestUpsertScheduleRejectsWeekdayConflict(t *testing.T) {
	e := newEnv()

	// The fixture already has an active Monday rule for the regular doctor.
	conflict := &domain.DoctorSchedule{
		DoctorID:            e.fixture.RegularDoctor.ID,
		ClinicID:            e.fixture.Clinic.ID,
		Weekday:             time.Monday,
		StartTime:           json_types.NewTimeOfDay(10, 0),
		EndTime:             json_types.NewTimeOfDay(14, 0),
		SlotDurationMinutes: 30,
		MaxPatientsPerSlot:  1,
		Active:              true,
	}

	err := e.admin.UpsertSchedule(context.Background(), conflict)
	if !errors.Is(err, domain.ErrScheduleConflict) {
		t.Fatalf("expected ErrScheduleConflict, got %v", err)
	}
}

func TestUpsertScheduleUpdatesExistingRule(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	existing := e.fixture.ScheduleFor(e.fixture.RegularDoctor.ID, time.Monday)
	updated := *existing
	updated.EndTime = json_types.NewTimeOfDay(15, 0)

	if err := e.admin.UpsertSchedule(ctx, &updated); err != nil {
		t.Fatalf("UpsertSchedule: %v", err)
	}

	stored, err := e.storage.GetScheduleForWeekday(ctx, e.fixture.RegularDoctor.ID, e.fixture.Clinic.ID, time.Monday)
	if err != nil {
		t.Fatalf("GetScheduleForWeekday: %v", err)
	}
	if stored.EndTime.String() != "15:00" {
		t.Fatalf("expected end time 15:00, got %s", stored.EndTime)
	}
}

func TestUpsertScheduleNewWeekday(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	schedule := &domain.DoctorSchedule{
		DoctorID:            e.fixture.VisitingDoctor.ID,
		ClinicID:            e.fixture.Clinic.ID,
		Weekday:             time.Sunday,
		StartTime:           json_types.NewTimeOfDay(10, 0),
		EndTime:             json_types.NewTimeOfDay(12, 0),
		SlotDurationMinutes: 30,
		MaxPatientsPerSlot:  2,
		Active:              true,
	}

	if err := e.admin.UpsertSchedule(ctx, schedule); err != nil {
		t.Fatalf("UpsertSchedule: %v", err)
	}
	if schedule.ID == uuid.Nil {
		t.Fatalf("expected an assigned schedule ID")
	}
}

func TestListSchedules(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	schedules, err := e.admin.ListSchedules(ctx, e.fixture.RegularDoctor.ID, e.fixture.Clinic.ID)
	if err != nil {
		t.Fatalf("ListSchedules: %v", err)
	}
	// The fixture gives the regular doctor one rule per weekday, Mon-Fri.
	if len(schedules) != 5 {
		t.Fatalf("expected 5 rules, got %d", len(schedules))
	}

	if _, err := e.admin.ListSchedules(ctx, uuid.New(), e.fixture.Clinic.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown doctor, got %v", err)
	}
}

func TestUpsertScheduleInvalidRule(t *testing.T) {
	e := newEnv()

	schedule := &domain.DoctorSchedule{
		DoctorID:            e.fixture.RegularDoctor.ID,
		ClinicID:            e.fixture.Clinic.ID,
		Weekday:             time.Sunday,
		StartTime:           json_types.NewTimeOfDay(17, 0),
		EndTime:             json_types.NewTimeOfDay(9, 0), // inverted
		SlotDurationMinutes: 30,
		MaxPatientsPerSlot:  1,
		Active:              true,
	}

	if err := e.admin.UpsertSchedule(context.Background(), schedule); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAffectedAppointmentsFullDayLeave(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	book := func(slot json_types.TimeOfDay) *domain.Appointment {
		appointment, err := e.booking.BookAppointment(ctx, in.BookingRequest{
			DoctorID:      e.fixture.RegularDoctor.ID,
			ClinicID:      e.fixture.Clinic.ID,
			Date:          monday,
			SlotStartTime: slot,
			PatientName:   "Sita Koirala",
			PatientPhone:  "9800000001",
		})
		if err != nil {
			t.Fatalf("booking %s: %v", slot, err)
		}
		return appointment
	}

	book(json_types.NewTimeOfDay(9, 0))
	cancelled := book(json_types.NewTimeOfDay(10, 0))
	if err := e.booking.CancelAppointment(ctx, cancelled.ID); err != nil {
		t.Fatalf("CancelAppointment: %v", err)
	}

	affected, err := e.admin.AffectedAppointments(ctx, domain.DoctorLeave{
		DoctorID:  e.fixture.RegularDoctor.ID,
		ClinicID:  e.fixture.Clinic.ID,
		LeaveDate: monday,
	})
	if err != nil {
		t.Fatalf("AffectedAppointments: %v", err)
	}

	// Cancelled appointments are not affected.
	if len(affected) != 1 {
		t.Fatalf("expected 1 affected appointment, got %d", len(affected))
	}
	if affected[0].SlotStartTime.String() != "09:00" {
		t.Fatalf("unexpected affected slot: %s", affected[0].SlotStartTime)
	}
}

func TestAffectedAppointmentsPartialLeave(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	for _, slot := range []json_types.TimeOfDay{
		json_types.NewTimeOfDay(9, 0),
		json_types.NewTimeOfDay(12, 0),
		json_types.NewTimeOfDay(12, 30),
		json_types.NewTimeOfDay(14, 0),
	} {
		if _, err := e.booking.BookAppointment(ctx, in.BookingRequest{
			DoctorID:      e.fixture.RegularDoctor.ID,
			ClinicID:      e.fixture.Clinic.ID,
			Date:          monday,
			SlotStartTime: slot,
			PatientName:   "Sita Koirala",
			PatientPhone:  "9800000001",
		}); err != nil {
			t.Fatalf("booking %s: %v", slot, err)
		}
	}

	start := json_types.NewTimeOfDay(12, 0)
	end := json_types.NewTimeOfDay(13, 0)
	affected, err := e.admin.AffectedAppointments(ctx, domain.DoctorLeave{
		DoctorID:  e.fixture.RegularDoctor.ID,
		ClinicID:  e.fixture.Clinic.ID,
		LeaveDate: monday,
		StartTime: &start,
		EndTime:   &end,
	})
	if err != nil {
		t.Fatalf("AffectedAppointments: %v", err)
	}

	if len(affected) != 2 {
		t.Fatalf("expected 2 affected appointments, got %d", len(affected))
	}
	for _, appointment := range affected {
		minute := appointment.SlotStartTime.Minutes()
		if minute < 12*60 || minute >= 13*60 {
			t.Fatalf("appointment outside leave window reported affected: %s", appointment.SlotStartTime)
		}
	}
}

func TestCreateLeaveValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	start := json_types.NewTimeOfDay(13, 0)
	end := json_types.NewTimeOfDay(12, 0)
	inverted := &domain.DoctorLeave{
		DoctorID:  e.fixture.RegularDoctor.ID,
		ClinicID:  e.fixture.Clinic.ID,
		LeaveDate: monday,
		StartTime: &start,
		EndTime:   &end,
	}
	if err := e.admin.CreateLeave(ctx, inverted); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for inverted leave, got %v", err)
	}

	oneSided := &domain.DoctorLeave{
		DoctorID:  e.fixture.RegularDoctor.ID,
		ClinicID:  e.fixture.Clinic.ID,
		LeaveDate: monday,
		StartTime: &start,
	}
	if err := e.admin.CreateLeave(ctx, oneSided); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for one-sided leave, got %v", err)
	}

	fullDay := &domain.DoctorLeave{
		DoctorID:  e.fixture.RegularDoctor.ID,
		ClinicID:  e.fixture.Clinic.ID,
		LeaveDate: monday,
		Reason:    "conference",
	}
	if err := e.admin.CreateLeave(ctx, fullDay); err != nil {
		t.Fatalf("CreateLeave full day: %v", err)
	}
	if fullDay.ID == uuid.Nil {
		t.Fatalf("expected an assigned leave ID")
	}
}

func TestRegisterDoctorNormalizesName(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	doctor := &domain.Doctor{
		Name: "Dr. Dr. Ramesh Adhikari",
		Type: domain.ProfessionalTypeDoctor,
	}
	if err := e.admin.RegisterDoctor(ctx, doctor); err != nil {
		t.Fatalf("RegisterDoctor: %v", err)
	}

	if doctor.Name != "Ramesh Adhikari" {
		t.Fatalf("expected stored name %q, got %q", "Ramesh Adhikari", doctor.Name)
	}
	if got := doctor.DisplayName(); got != "Dr. Ramesh Adhikari" {
		t.Fatalf("expected display name %q, got %q", "Dr. Ramesh Adhikari", got)
	}
}

func TestRegisterDoctorRejectsUnknownType(t *testing.T) {
	e := newEnv()

	doctor := &domain.Doctor{Name: "Ramesh Adhikari", Type: "surgeon"}
	if err := e.admin.RegisterDoctor(context.Background(), doctor); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestRegisterDoctorRejectsEmptyName(t *testing.T) {
	e := newEnv()

	doctor := &domain.Doctor{Name: "Dr.", Type: domain.ProfessionalTypeDoctor}
	if err := e.admin.RegisterDoctor(context.Background(), doctor); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
