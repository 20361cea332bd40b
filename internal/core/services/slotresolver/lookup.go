package slotresolver

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/swasthya-health/appointment-slots-service/internal/core/domain"
	"github.com/swasthya-health/appointment-slots-service/internal/core/json_types"
)

// scheduleWindows returns the working windows for one doctor and date after
// leave narrowing. An empty result means no schedule that day.
func (s *Service) scheduleWindows(ctx context.Context, doctorID, clinicID uuid.UUID, date json_types.Date) ([]domain.WorkingWindow, error) {
	schedule, err := s.storagePort.GetScheduleForWeekday(ctx, doctorID, clinicID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("slots.lookup.schedule: %w", err)
	}
	if schedule == nil || !schedule.Active {
		return nil, nil
	}

	leaves, err := s.storagePort.ListLeaves(ctx, doctorID, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("slots.lookup.leaves: %w", err)
	}

	return NarrowWindows(schedule.Window(), leaves), nil
}

// NarrowWindows excludes every leave's blocked range from the window. A
// partial leave may truncate a window or split it into two; a leave covering
// the whole window (or a full-day leave) removes it. A leave outside the
// window is a no-op.
func NarrowWindows(window domain.WorkingWindow, leaves []domain.DoctorLeave) []domain.WorkingWindow {
	windows := []domain.WorkingWindow{window}

	for _, leave := range leaves {
		blockStart, blockEnd := leave.BlockedRange()

		next := make([]domain.WorkingWindow, 0, len(windows))
		for _, w := range windows {
			next = append(next, subtractRange(w, blockStart, blockEnd)...)
		}
		windows = next
	}

	return windows
}

func subtractRange(w domain.WorkingWindow, blockStart, blockEnd int) []domain.WorkingWindow {
	// No overlap.
	if blockEnd <= w.StartMinute || blockStart >= w.EndMinute {
		return []domain.WorkingWindow{w}
	}

	var result []domain.WorkingWindow
	if blockStart > w.StartMinute {
		left := w
		left.EndMinute = blockStart
		result = append(result, left)
	}
	if blockEnd < w.EndMinute {
		right := w
		right.StartMinute = blockEnd
		result = append(result, right)
	}
	return result
}
