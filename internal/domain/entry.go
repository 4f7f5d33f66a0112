package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DayFormat is the canonical layout for a local calendar day. Lexicographic
// order on day strings equals chronological order.
const DayFormat = "2006-01-02"

// WeightEntry is a single weight measurement for one user and calendar day.
type WeightEntry struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Day       string    `json:"day"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// EntryRepository is the port for weight-entry persistence. The store holds
// at most one entry per (user, day): UpsertEntryForDay overwrites the weight
// in place, preserving the entry ID, when the day already exists, and
// inserts otherwise. ListEntries makes no ordering guarantee; ordering is
// the caller's responsibility.
type EntryRepository interface {
	UpsertEntryForDay(ctx context.Context, userID int64, day string, weight float64) (*WeightEntry, error)
	ListEntries(ctx context.Context, userID int64) ([]WeightEntry, error)
}

// LocalDay normalizes t to its local calendar day.
func LocalDay(t time.Time) string {
	return t.In(time.Local).Format(DayFormat)
}

// ParseDay validates a calendar-day string in DayFormat.
func ParseDay(day string) (time.Time, error) {
	return time.ParseInLocation(DayFormat, day, time.Local)
}

// RoundWeight rounds a weight to exactly one fractional digit.
func RoundWeight(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(1).Float64()
	return f
}
