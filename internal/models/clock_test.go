package models

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:30", 570, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"12", 0, true},
		{"ab:cd", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := ParseClock(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %d", tt.input, m)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m != tt.minutes {
				t.Errorf("expected %d minutes, got %d", tt.minutes, m)
			}
		})
	}
}

func TestAddHours(t *testing.T) {
	tests := []struct {
		start    string
		hours    float64
		expected string
	}{
		{"18:00", 1, "19:00"},
		{"18:00", 1.5, "19:30"},
		{"23:00", 2, "01:00"}, // wraps past midnight
		{"09:15", 0.25, "09:30"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := AddHours(tt.start, tt.hours)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("AddHours(%q, %v): expected %q, got %q", tt.start, tt.hours, tt.expected, got)
			}
		})
	}
}

func TestHoursBetween(t *testing.T) {
	got, err := HoursBetween("09:00", "22:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 13 {
		t.Errorf("expected 13 hours, got %v", got)
	}

	got, err = HoursBetween("10:30", "11:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.5 {
		t.Errorf("expected 0.5 hours, got %v", got)
	}
}

func TestActivityComplete(t *testing.T) {
	a := Activity{DayOfWeek: 1, StartTime: "18:00", EndTime: "19:00"}
	if !a.Complete() {
		t.Error("activity with day and both times should be complete")
	}

	missingEnd := Activity{DayOfWeek: 1, StartTime: "18:00"}
	if missingEnd.Complete() {
		t.Error("activity without end time should not be complete")
	}

	badDay := Activity{DayOfWeek: 7, StartTime: "18:00", EndTime: "19:00"}
	if badDay.Complete() {
		t.Error("activity with day outside 0..6 should not be complete")
	}
}
