package json_types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const timeOfDayLayout = "15:04"

// TimeOfDay is a wall-clock time within a day, serialized as "15:04".
// Values with seconds ("15:04:05") are accepted on input.
type TimeOfDay struct {
	Time time.Time
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{Time: time.Date(0, time.January, 1, hour, minute, 0, 0, time.UTC)}
}

func ParseTimeOfDay(str string) (TimeOfDay, error) {
	parsed, err := time.Parse(timeOfDayLayout, str)
	if err != nil {
		parsed, err = time.Parse("15:04:05", str)
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("failed to parse time %q: %w", str, err)
		}
	}
	return TimeOfDay{Time: parsed}, nil
}

func (t TimeOfDay) String() string {
	return t.Time.Format(timeOfDayLayout)
}

// Minutes returns the offset from midnight in minutes.
func (t TimeOfDay) Minutes() int {
	return t.Time.Hour()*60 + t.Time.Minute()
}

// FromMinutes builds a TimeOfDay from a midnight offset.
func FromMinutes(minutes int) TimeOfDay {
	return NewTimeOfDay(minutes/60, minutes%60)
}

// On anchors the wall-clock time onto a concrete date in the given location.
func (t TimeOfDay) On(date Date, loc *time.Location) time.Time {
	d := date.Date
	return time.Date(d.Year(), d.Month(), d.Day(), t.Time.Hour(), t.Time.Minute(), 0, 0, loc)
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("failed to parse time: %s", string(data))
	}
	str := string(data[1 : len(data)-1])

	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseTimeOfDay(v)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case []byte:
		parsed, err := ParseTimeOfDay(string(v))
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	case time.Time:
		*t = NewTimeOfDay(v.Hour(), v.Minute())
		return nil
	default:
		return fmt.Errorf("unsupported time column type %T", src)
	}
}

func (TimeOfDay) GormDataType() string {
	return "varchar(5)"
}
