package datetime

import (
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateTimeLayout,
			dateStr:  "31/12/2024",
			expected: "31/12/2024",
		},
		{
			name:     "Another valid date",
			layout:   DateTimeLayout,
			dateStr:  "30/06/2030",
			expected: "30/06/2030",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(tt.layout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(tt.layout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"Year end", "31/12/2024", Date(2024, time.December, 31), false},
		{"Mid year", "30/06/2025", Date(2025, time.June, 30), false},
		{"Surrounding spaces", "  01/01/2026 ", Date(2026, time.January, 1), false},
		{"ISO layout rejected", "2024-12-31", time.Time{}, true},
		{"Month first rejected", "12/31/2024", time.Time{}, true},
		{"Impossible day", "31/06/2025", time.Time{}, true},
		{"Empty", "", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseDate(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, expected %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(Date(2025, time.June, 30)); got != "30/06/2025" {
		t.Errorf("FormatDate() = %s, expected 30/06/2025", got)
	}
}

func TestSemesterEnds(t *testing.T) {
	june, december := SemesterEnds(2026)
	if !june.Equal(Date(2026, time.June, 30)) {
		t.Errorf("first semester end = %v", june)
	}
	if !december.Equal(Date(2026, time.December, 31)) {
		t.Errorf("second semester end = %v", december)
	}
}

func TestIsSemesterEnd(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected bool
	}{
		{Date(2024, time.December, 31), true},
		{Date(2025, time.June, 30), true},
		{Date(2025, time.July, 1), false},
		{Date(2025, time.March, 31), false},
	}

	for _, tt := range tests {
		if got := IsSemesterEnd(tt.date); got != tt.expected {
			t.Errorf("IsSemesterEnd(%s) = %t, expected %t", FormatDate(tt.date), got, tt.expected)
		}
	}
}

func TestSameDayIgnoresClock(t *testing.T) {
	a := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)
	b := time.Date(2025, time.June, 30, 17, 45, 0, 0, time.UTC)
	if !SameDay(a, b) {
		t.Error("expected same calendar day")
	}
	if SameDay(a, a.AddDate(0, 0, 1)) {
		t.Error("expected different calendar days")
	}
}

func TestChartLabel(t *testing.T) {
	tests := []struct {
		date     time.Time
		expected string
	}{
		{Date(2024, time.December, 31), "Déc-24"},
		{Date(2025, time.June, 30), "Jun-25"},
		{Date(2027, time.August, 15), "Aoû-27"},
		{Date(2030, time.January, 1), "Jan-30"},
	}

	for _, tt := range tests {
		if got := ChartLabel(tt.date); got != tt.expected {
			t.Errorf("ChartLabel(%s) = %q, expected %q", FormatDate(tt.date), got, tt.expected)
		}
	}
}
