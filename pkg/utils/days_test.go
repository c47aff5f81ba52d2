package utils_test

import (
	"testing"
	"time"

	"awardsearch-service/pkg/utils"
)

// ── LastDayOfMonth ─────────────────────────────────────────────────────────

func TestLastDayOfMonth(t *testing.T) {
	cases := []struct {
		month string
		want  int
	}{
		{"2026-01", 31},
		{"2026-02", 28},
		{"2024-02", 29},
		{"2026-04", 30},
		{"2026-12", 31},
	}
	for _, c := range cases {
		got, err := utils.LastDayOfMonth(c.month)
		if err != nil {
			t.Errorf("LastDayOfMonth(%q) returned unexpected error: %v", c.month, err)
			continue
		}
		if got != c.want {
			t.Errorf("LastDayOfMonth(%q) = %d, want %d", c.month, got, c.want)
		}
	}
}

func TestLastDayOfMonth_InvalidMonth(t *testing.T) {
	if _, err := utils.LastDayOfMonth("not-a-month"); err == nil {
		t.Error("LastDayOfMonth(\"not-a-month\") expected error, got nil")
	}
}

// ── FirstSearchableDay ─────────────────────────────────────────────────────

func TestFirstSearchableDay_CurrentMonth(t *testing.T) {
	now := time.Date(2026, time.September, 14, 10, 0, 0, 0, time.UTC)
	got, err := utils.FirstSearchableDay("2026-09", now)
	if err != nil {
		t.Fatalf("FirstSearchableDay returned unexpected error: %v", err)
	}
	if got != 14 {
		t.Errorf("FirstSearchableDay(current month) = %d, want 14", got)
	}
}

func TestFirstSearchableDay_FutureMonth(t *testing.T) {
	now := time.Date(2026, time.September, 14, 10, 0, 0, 0, time.UTC)
	got, err := utils.FirstSearchableDay("2026-11", now)
	if err != nil {
		t.Fatalf("FirstSearchableDay returned unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("FirstSearchableDay(future month) = %d, want 1", got)
	}
}

// ── FormatSearchDate / MonthOf / YearOf ────────────────────────────────────

func TestFormatSearchDate(t *testing.T) {
	if got := utils.FormatSearchDate("2026-09", 5); got != "2026-09-05" {
		t.Errorf("FormatSearchDate(\"2026-09\", 5) = %q, want \"2026-09-05\"", got)
	}
	if got := utils.FormatSearchDate("2026-09", 28); got != "2026-09-28" {
		t.Errorf("FormatSearchDate(\"2026-09\", 28) = %q, want \"2026-09-28\"", got)
	}
}

func TestMonthOf(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2026-09", "09"},
		{"2026-09-05", "09"},
		{"bad", ""},
	}
	for _, c := range cases {
		if got := utils.MonthOf(c.date); got != c.want {
			t.Errorf("MonthOf(%q) = %q, want %q", c.date, got, c.want)
		}
	}
}

func TestYearOf(t *testing.T) {
	if got := utils.YearOf("2026-09-05"); got != "2026" {
		t.Errorf("YearOf(\"2026-09-05\") = %q, want \"2026\"", got)
	}
}

// ── DaysBetween ────────────────────────────────────────────────────────────

func TestDaysBetween(t *testing.T) {
	from := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		to   time.Time
		want int
	}{
		{time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC), 0},
		{time.Date(2026, time.September, 4, 0, 0, 0, 0, time.UTC), 3},
		{time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), 30},
	}
	for _, c := range cases {
		if got := utils.DaysBetween(from, c.to); got != c.want {
			t.Errorf("DaysBetween(2026-09-01, %s) = %d, want %d", c.to.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	// A late departure followed by an early one three calendar days later is
	// still a three day gap, not two
	from := time.Date(2026, time.September, 1, 23, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.September, 4, 8, 0, 0, 0, time.UTC)
	if got := utils.DaysBetween(from, to); got != 3 {
		t.Errorf("DaysBetween(09-01 23:00, 09-04 08:00) = %d, want 3", got)
	}
}
