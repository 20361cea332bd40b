package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced doctor, clinic or appointment
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned for malformed or invariant-breaking input.
	// Input is never silently clamped or guessed.
	ErrValidation = errors.New("validation failed")

	// ErrSlotUnavailable is returned when a booking loses the capacity race.
	// The client should re-fetch availability and retry with another slot.
	ErrSlotUnavailable = errors.New("slot no longer available")

	// ErrScheduleConflict is returned when a schedule write would leave a
	// doctor with two active rules for the same weekday at one clinic.
	ErrScheduleConflict = errors.New("schedule conflict")
)
