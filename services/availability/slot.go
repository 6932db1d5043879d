package availability

import (
	"fmt"
	"strings"
	"time"

	"courtbook/utils"

	_ "time/tzdata"
)

const (
	// SlotLayout is the canonical slot form, DD-MM-YYYY HH:mm.
	SlotLayout = "02-01-2006 15:04"
	// BackendLayout is the slot form the remote API stores.
	BackendLayout = "2006-01-02 15:04:05"
	displayLayout = "Monday, 02-01-2006, 03:04 PM"

	DefaultZone = "Pacific/Auckland"

	firstHour = 10
	lastHour  = 21
)

// Slot is a validated booking start time. It holds wall-clock fields only.
type Slot struct {
	t time.Time
}

func (s Slot) IsZero() bool { return s.t.IsZero() }

// Time returns the slot's wall clock in the selector's zone.
func (s Slot) Time() time.Time { return s.t }

func (s Slot) String() string {
	if s.t.IsZero() {
		return ""
	}
	return s.t.Format(SlotLayout)
}

func (s Slot) BackendFormat() string {
	return s.t.Format(BackendLayout)
}

// Display renders the slot the way the booking page shows it.
func (s Slot) Display() string {
	return s.t.Format(displayLayout)
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Rejection reasons carried in the validation error details.
const (
	ReasonPast   = "past"
	ReasonHour   = "hour"
	ReasonMinute = "minute"
	ReasonFormat = "format"
)

// SlotError is a rejected slot selection.
type SlotError struct {
	Reason string
	Value  string
}

func (e *SlotError) Error() string {
	switch e.Reason {
	case ReasonPast:
		return fmt.Sprintf("slot %s is in the past", e.Value)
	case ReasonHour:
		return fmt.Sprintf("slot %s is outside opening hours (%02d:00-%02d:30)", e.Value, firstHour, lastHour)
	case ReasonMinute:
		return fmt.Sprintf("slot %s must start on the hour or half hour", e.Value)
	default:
		return fmt.Sprintf("slot %q is not in DD-MM-YYYY HH:mm form", e.Value)
	}
}

func rejected(reason, value string) error {
	return utils.NewAppError(utils.KindValidation, "Invalid slot", &SlotError{Reason: reason, Value: value})
}

// Selector validates slot selections against the reference time zone.
type Selector struct {
	loc *time.Location
}

// NewSelector loads zone, falling back to DefaultZone when empty.
func NewSelector(zone string) (*Selector, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load slot zone %q: %w", zone, err)
	}
	return &Selector{loc: loc}, nil
}

func (s *Selector) Location() *time.Location { return s.loc }

// earliest is yesterday 23:59:59.999 in the reference zone.
func (s *Selector) earliest(now time.Time) time.Time {
	n := now.In(s.loc)
	return time.Date(n.Year(), n.Month(), n.Day()-1, 23, 59, 59, int(999*time.Millisecond), s.loc)
}

// SelectSlot accepts candidate unless it is before the end of yesterday, its hour is
// outside 10..21 or its minute is not 0 or 30. The candidate's wall clock is read as
// reference-zone time.
func (s *Selector) SelectSlot(candidate, now time.Time) (Slot, error) {
	wall := time.Date(candidate.Year(), candidate.Month(), candidate.Day(),
		candidate.Hour(), candidate.Minute(), 0, 0, s.loc)
	value := wall.Format(SlotLayout)

	if candidate.Hour() < firstHour || candidate.Hour() > lastHour {
		return Slot{}, rejected(ReasonHour, value)
	}
	if m := candidate.Minute(); m != 0 && m != 30 {
		return Slot{}, rejected(ReasonMinute, value)
	}
	if wall.Before(s.earliest(now)) {
		return Slot{}, rejected(ReasonPast, value)
	}
	return Slot{t: wall}, nil
}

// ParseSlot parses the canonical DD-MM-YYYY HH:mm form and validates it.
func (s *Selector) ParseSlot(value string, now time.Time) (Slot, error) {
	value = strings.TrimSpace(value)
	t, err := time.ParseInLocation(SlotLayout, value, s.loc)
	if err != nil {
		return Slot{}, rejected(ReasonFormat, value)
	}
	return s.SelectSlot(t, now)
}

// DisabledHours lists the hours the picker must grey out.
func DisabledHours() []int {
	hours := make([]int, 0, 24-(lastHour-firstHour+1))
	for h := 0; h < 24; h++ {
		if h < firstHour || h > lastHour {
			hours = append(hours, h)
		}
	}
	return hours
}

// DisabledMinutes lists every minute except 0 and 30.
func DisabledMinutes() []int {
	minutes := make([]int, 0, 58)
	for m := 0; m < 60; m++ {
		if m != 0 && m != 30 {
			minutes = append(minutes, m)
		}
	}
	return minutes
}
