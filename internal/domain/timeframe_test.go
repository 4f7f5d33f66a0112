package domain_test

import (
	"testing"
	"time"

	"weighttracker/internal/domain"
)

func TestTimeframeByKey(t *testing.T) {
	tf, ok := domain.TimeframeByKey("1m")
	if !ok {
		t.Fatal("expected 1m to exist")
	}
	if tf.Label != "1 month" {
		t.Errorf("unexpected label %q", tf.Label)
	}

	if _, ok := domain.TimeframeByKey("2w"); ok {
		t.Error("expected 2w to be unknown")
	}
}

func TestCutoffDay(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 30, 0, 0, time.Local)

	tests := []struct {
		key    string
		want   string
		hasCut bool
	}{
		{"1m", "2024-02-15", true},
		{"3m", "2023-12-15", true},
		{"6m", "2023-09-15", true},
		{"1y", "2023-03-15", true},
		{"all", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			tf, ok := domain.TimeframeByKey(tc.key)
			if !ok {
				t.Fatalf("unknown timeframe %q", tc.key)
			}
			day, hasCut := tf.CutoffDay(now)
			if hasCut != tc.hasCut {
				t.Fatalf("hasCut = %v; want %v", hasCut, tc.hasCut)
			}
			if day != tc.want {
				t.Errorf("cutoff = %q; want %q", day, tc.want)
			}
		})
	}
}

func TestCutoffDayDeterministic(t *testing.T) {
	// Same now, same cutoff, regardless of when the test runs.
	tf, _ := domain.TimeframeByKey("1m")
	now := time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local)
	a, _ := tf.CutoffDay(now)
	b, _ := tf.CutoffDay(now)
	if a != b {
		t.Errorf("cutoff not deterministic: %q vs %q", a, b)
	}
}
