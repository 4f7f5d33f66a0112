package domain_test

import (
	"testing"
	"time"

	"weighttracker/internal/domain"
)

func TestRoundWeight(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already one decimal", 150.1, 150.1},
		{"round down", 150.04, 150.0},
		{"round up", 150.05, 150.1},
		{"round not truncate", 149.96, 150.0},
		{"integer", 150, 150.0},
		{"long fraction", 72.3333333, 72.3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := domain.RoundWeight(tc.in); got != tc.want {
				t.Errorf("RoundWeight(%v) = %v; want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestLocalDay(t *testing.T) {
	// Late evening local time still belongs to the same local day.
	d := time.Date(2024, 1, 5, 23, 45, 0, 0, time.Local)
	if got := domain.LocalDay(d); got != "2024-01-05" {
		t.Errorf("LocalDay = %q; want 2024-01-05", got)
	}
}

func TestParseDay(t *testing.T) {
	if _, err := domain.ParseDay("2024-01-05"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"", "Jan 05 2024", "2024-13-01", "05-01-2024"} {
		if _, err := domain.ParseDay(bad); err == nil {
			t.Errorf("ParseDay(%q): expected error", bad)
		}
	}
}
