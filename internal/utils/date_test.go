package utils

import (
	"testing"
	"time"
)

func TestStartCurrentDay(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kathmandu")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	moment := time.Date(2025, time.March, 3, 14, 35, 12, 99, loc)
	start := StartCurrentDay(moment)

	if start.Hour() != 0 || start.Minute() != 0 || start.Second() != 0 {
		t.Fatalf("expected midnight, got %v", start)
	}
	if start.Day() != 3 || start.Location() != loc {
		t.Fatalf("date or location changed: %v", start)
	}
}

func TestStartNextDay(t *testing.T) {
	moment := time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC)
	next := StartNextDay(moment)

	if next.Year() != 2025 || next.Month() != time.April || next.Day() != 1 {
		t.Fatalf("expected April 1st, got %v", next)
	}
	if next.Hour() != 0 || next.Minute() != 0 {
		t.Fatalf("expected midnight, got %v", next)
	}
}

func TestParseDateLayouts(t *testing.T) {
	loc := time.UTC

	for _, str := range []string{
		"2025-03-03T10:00:00Z",
		"2025-03-03T10:00:00",
		"2025-03-03",
	} {
		parsed, err := ParseDate(str, loc)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", str, err)
		}
		if parsed.Year() != 2025 || parsed.Month() != time.March || parsed.Day() != 3 {
			t.Fatalf("ParseDate(%q) = %v", str, parsed)
		}
	}

	if _, err := ParseDate("yesterday", loc); err == nil {
		t.Fatalf("expected an error for garbage input")
	}
}
