package services

import (
	"testing"
	"time"
)

func TestCurrentSeason(t *testing.T) {
	tests := []struct {
		date     string
		country  string
		expected string
	}{
		{"2026-01-05", "US", "new_year"},
		{"2026-12-28", "US", "new_year"},
		{"2026-12-20", "US", ""},
		{"2026-05-15", "US", "summer"},
		{"2026-07-01", "GB", "summer"},
		{"2026-09-15", "US", ""},
		{"2026-11-20", "AU", "summer"},
		{"2026-05-15", "AU", ""},
	}

	for _, tt := range tests {
		date, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("bad test date %s: %v", tt.date, err)
		}
		if got := CurrentSeason(date, tt.country); got != tt.expected {
			t.Errorf("CurrentSeason(%s, %s) = %q, expected %q", tt.date, tt.country, got, tt.expected)
		}
	}
}

func TestNextWorkday_SkipsWeekend(t *testing.T) {
	s := NewSeasonalService(nil, nil)

	// 2026-03-06 is a Friday; the next workday is Monday the 9th.
	friday := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	got := s.NextWorkday(friday, "US")

	if got.Weekday() == time.Saturday || got.Weekday() == time.Sunday {
		t.Errorf("next workday landed on a weekend: %s", got.Format("2006-01-02"))
	}
	if got.Format("2006-01-02") != "2026-03-09" {
		t.Errorf("NextWorkday(Friday) = %s, expected 2026-03-09", got.Format("2006-01-02"))
	}
}

func TestNextWorkday_SkipsHoliday(t *testing.T) {
	s := NewSeasonalService(nil, nil)

	// 2026-07-02 is a Thursday; July 3rd is the observed Independence Day
	// holiday (the 4th falls on Saturday), so the next workday is Monday.
	thursday := time.Date(2026, 7, 2, 12, 0, 0, 0, time.UTC)
	got := s.NextWorkday(thursday, "US")

	if got.Format("2006-01-02") != "2026-07-06" {
		t.Errorf("NextWorkday before July 4th weekend = %s, expected 2026-07-06", got.Format("2006-01-02"))
	}
}

func TestNextWorkday_UnknownCountryFallsBackToWeekdays(t *testing.T) {
	s := NewSeasonalService(nil, nil)

	friday := time.Date(2026, 3, 6, 12, 0, 0, 0, time.UTC)
	got := s.NextWorkday(friday, "ZZ")

	if got.Format("2006-01-02") != "2026-03-09" {
		t.Errorf("fallback NextWorkday = %s, expected 2026-03-09", got.Format("2006-01-02"))
	}
}
