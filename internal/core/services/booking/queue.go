package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// QueueSnapshot projects the checked-in appointments of one doctor and date
// into the "now serving / waiting" view, ordered by token number. Completed
// and cancelled appointments leave the queue.
func (s *Service) QueueSnapshot(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) (*domain.QueueSnapshot, error) {
	if _, err := s.storagePort.GetDoctor(ctx, doctorID); err != nil {
		return nil, fmt.Errorf("queue.doctor: %w", err)
	}

	appointments, err := s.storagePort.ListAppointments(ctx, doctorID, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("queue.appointments: %w", err)
	}

	tokens := make([]int, 0)
	for _, appointment := range appointments {
		if appointment.Status == domain.AppointmentStatusCheckedIn {
			tokens = append(tokens, appointment.TokenNumber)
		}
	}
	sortTokens(tokens)

	snapshot := &domain.QueueSnapshot{
		DoctorID: doctorID,
		ClinicID: clinicID,
		Date:     date,
		Waiting:  []int{},
	}
	if len(tokens) > 0 {
		snapshot.NowServing = &tokens[0]
		snapshot.Waiting = tokens[1:]
	}

	return snapshot, nil
}

func sortTokens(tokens []int) {
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && tokens[j] < tokens[j-1]; j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
}
