package slotresolver

import "github.com/swasthya-health/appointment-slots-service/internal/core/domain"

type SlotSlice []domain.Slot

// quickSort orders slots chronologically by start time.
func (s SlotSlice) quickSort() SlotSlice {
	if len(s) < 2 {
		return s
	}

	pivot := s[len(s)/2]

	less := SlotSlice{}
	equal := SlotSlice{}
	greater := SlotSlice{}

	for _, slot := range s {
		switch {
		case slot.StartTime.Minutes() < pivot.StartTime.Minutes():
			less = append(less, slot)
		case slot.StartTime.Minutes() == pivot.StartTime.Minutes():
			equal = append(equal, slot)
		default:
			greater = append(greater, slot)
		}
	}

	return append(append(less.quickSort(), equal...), greater.quickSort()...)
}
