package availability

import (
	"errors"
	"testing"
	"time"

	"courtbook/utils"
)

func newSelector(t *testing.T) *Selector {
	t.Helper()
	s, err := NewSelector("")
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	return s
}

func reasonOf(t *testing.T, err error) string {
	t.Helper()
	if utils.KindOf(err) != utils.KindValidation {
		t.Fatalf("expected validation failure, got %v", err)
	}
	var slotErr *SlotError
	if !errors.As(err, &slotErr) {
		t.Fatalf("expected SlotError, got %v", err)
	}
	return slotErr.Reason
}

func TestParseSlot(t *testing.T) {
	s := newSelector(t)
	now := time.Date(2025, 3, 9, 9, 0, 0, 0, s.Location())

	tests := []struct {
		name   string
		value  string
		reason string
	}{
		{"today on the hour", "09-03-2025 11:00", ""},
		{"today half past", "09-03-2025 21:30", ""},
		{"earlier today", "09-03-2025 10:00", ""},
		{"future", "15-04-2025 14:30", ""},
		{"opening hour too early", "10-03-2025 08:00", ReasonHour},
		{"after closing", "10-03-2025 22:00", ReasonHour},
		{"quarter past", "10-03-2025 11:15", ReasonMinute},
		{"yesterday", "08-03-2025 21:30", ReasonPast},
		{"garbage", "2025-03-09 11:00", ReasonFormat},
		{"empty", "", ReasonFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot, err := s.ParseSlot(tt.value, now)
			if tt.reason == "" {
				if err != nil {
					t.Fatalf("expected %q to be accepted: %v", tt.value, err)
				}
				if slot.String() != tt.value {
					t.Errorf("canonical form: got %q, want %q", slot.String(), tt.value)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %q to be rejected", tt.value)
			}
			if got := reasonOf(t, err); got != tt.reason {
				t.Errorf("reason: got %q, want %q", got, tt.reason)
			}
		})
	}
}

func TestSelectSlot_RejectionRuleHoldsForEveryMinuteOfADay(t *testing.T) {
	s := newSelector(t)
	now := time.Date(2025, 3, 9, 12, 0, 0, 0, s.Location())
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, s.Location())

	for i := 0; i < 24*60; i++ {
		candidate := day.Add(time.Duration(i) * time.Minute)
		h, m := candidate.Hour(), candidate.Minute()
		wantReject := h < 10 || h > 21 || (m != 0 && m != 30)

		_, err := s.SelectSlot(candidate, now)
		if (err != nil) != wantReject {
			t.Fatalf("%s: rejected=%v, want %v", candidate.Format(SlotLayout), err != nil, wantReject)
		}
	}
}

func TestSelectSlot_PastBoundaryUsesReferenceZone(t *testing.T) {
	s := newSelector(t)
	// 2025-03-09 11:00 UTC is 2025-03-10 00:00 in Auckland (NZDT, UTC+13).
	now := time.Date(2025, 3, 9, 11, 0, 0, 0, time.UTC)

	if _, err := s.SelectSlot(time.Date(2025, 3, 9, 21, 30, 0, 0, time.UTC), now); err == nil {
		t.Fatal("expected 09-03 slot to be in the past once Auckland has reached 10-03")
	} else if got := reasonOf(t, err); got != ReasonPast {
		t.Errorf("reason: got %q", got)
	}
	if _, err := s.SelectSlot(time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), now); err != nil {
		t.Errorf("expected 10-03 10:00 to be accepted: %v", err)
	}
}

func TestSlotFormats(t *testing.T) {
	s := newSelector(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, s.Location())

	slot, err := s.ParseSlot("09-03-2025 11:00", now)
	if err != nil {
		t.Fatalf("ParseSlot: %v", err)
	}
	if got := slot.BackendFormat(); got != "2025-03-09 11:00:00" {
		t.Errorf("BackendFormat: got %q", got)
	}
	if got := slot.Display(); got != "Sunday, 09-03-2025, 11:00 AM" {
		t.Errorf("Display: got %q", got)
	}
}

func TestDisabledHoursAndMinutes(t *testing.T) {
	hours := DisabledHours()
	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 22, 23}
	if len(hours) != len(want) {
		t.Fatalf("hours: got %v", hours)
	}
	for i := range want {
		if hours[i] != want[i] {
			t.Fatalf("hours: got %v", hours)
		}
	}

	minutes := DisabledMinutes()
	if len(minutes) != 58 {
		t.Fatalf("minutes: expected 58, got %d", len(minutes))
	}
	for _, m := range minutes {
		if m == 0 || m == 30 {
			t.Errorf("minute %d must stay selectable", m)
		}
	}
}
