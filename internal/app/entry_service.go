package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"weighttracker/internal/domain"
)

// EntryService encapsulates weight-entry use cases.
type EntryService struct {
	repo domain.EntryRepository
}

// NewEntryService creates an EntryService backed by the given repository.
func NewEntryService(repo domain.EntryRepository) *EntryService {
	return &EntryService{repo: repo}
}

// Upsert validates and stores a measurement for the given day, defaulting to
// today. Saving twice for one day overwrites the weight, never duplicating
// the day. The stored weight carries exactly one fractional digit.
func (s *EntryService) Upsert(ctx context.Context, userID int64, weight float64, day string) (*domain.WeightEntry, error) {
	if weight <= 0 {
		return nil, errors.New("weight must be > 0")
	}
	if day == "" {
		day = domain.LocalDay(time.Now())
	}
	if _, err := domain.ParseDay(day); err != nil {
		return nil, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return s.repo.UpsertEntryForDay(ctx, userID, day, domain.RoundWeight(weight))
}

// List returns all entries for the user sorted by day, oldest first, or
// newest first when descending is set (the history table reads newest
// first).
func (s *EntryService) List(ctx context.Context, userID int64, descending bool) ([]domain.WeightEntry, error) {
	entries, err := s.repo.ListEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(entries, func(i, j int) bool {
		if descending {
			return entries[i].Day > entries[j].Day
		}
		return entries[i].Day < entries[j].Day
	})
	return entries, nil
}
