package app

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"weighttracker/internal/domain"
)

// importDateFormat matches spreadsheet exports, e.g. "Jan 05 2024".
const importDateFormat = "Jan 02 2006"

// ImportStatus is the state of the CSV import pipeline.
type ImportStatus string

// Pipeline states. The pipeline is importing from before the first record
// until after the last, returns to idle on completion, and is left failed
// only by a file-level parse error.
const (
	ImportIdle      ImportStatus = "idle"
	ImportImporting ImportStatus = "importing"
	ImportFailed    ImportStatus = "failed"
)

var (
	// ErrImportInProgress rejects a second import while one is running.
	ErrImportInProgress = errors.New("an import is already in progress")
	// ErrMalformedFile marks file-level parse failures, the only errors
	// that leave the pipeline in the failed state.
	ErrMalformedFile = errors.New("malformed import file")
)

// ImportSummary reports what an import did.
type ImportSummary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportService runs CSV imports of historical weight entries. At most one
// import runs at a time, and rows are upserted strictly sequentially, so two
// rows for the same not-yet-existing day can never race on the day bucket.
type ImportService struct {
	entries *EntryService

	mu      sync.Mutex
	status  ImportStatus
	running bool
}

// NewImportService creates an ImportService writing through the given
// EntryService.
func NewImportService(entries *EntryService) *ImportService {
	return &ImportService{entries: entries, status: ImportIdle}
}

// Status returns the current pipeline state.
func (s *ImportService) Status() ImportStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// InProgress reports whether an import is currently running. Manual saves
// are rejected while one is, so concurrent user actions cannot break the
// one-entry-per-day invariant.
func (s *ImportService) InProgress() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Run parses r as CSV and upserts every valid row in file order, awaiting
// each write before reading the next record. Rows with missing or
// unparseable fields are skipped without aborting the batch; duplicate days
// within the file resolve to the later row via the upsert.
func (s *ImportService) Run(ctx context.Context, userID int64, r io.Reader) (ImportSummary, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ImportSummary{}, ErrImportInProgress
	}
	s.running = true
	s.status = ImportImporting
	s.mu.Unlock()

	summary, err := s.run(ctx, userID, r)

	s.mu.Lock()
	s.running = false
	if errors.Is(err, ErrMalformedFile) {
		s.status = ImportFailed
	} else {
		s.status = ImportIdle
	}
	s.mu.Unlock()

	if err != nil {
		return summary, err
	}
	log.Printf("import: done for user %d: %d imported, %d skipped", userID, summary.Imported, summary.Skipped)
	return summary, nil
}

func (s *ImportService) run(ctx context.Context, userID int64, r io.Reader) (ImportSummary, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return ImportSummary{}, fmt.Errorf("%w: read header: %v", ErrMalformedFile, err)
	}
	dateCol, weightCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			dateCol = i
		case "weight":
			weightCol = i
		}
	}
	if dateCol < 0 || weightCol < 0 {
		return ImportSummary{}, fmt.Errorf("%w: header needs date and weight columns", ErrMalformedFile)
	}

	var sum ImportSummary
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return sum, fmt.Errorf("%w: read record: %v", ErrMalformedFile, err)
		}
		day, weight, ok := parseImportRow(record, dateCol, weightCol)
		if !ok {
			sum.Skipped++
			continue
		}
		if _, err := s.entries.Upsert(ctx, userID, weight, day); err != nil {
			return sum, fmt.Errorf("upsert %s: %w", day, err)
		}
		sum.Imported++
	}
	return sum, nil
}

// parseImportRow extracts a normalized day and weight from one CSV record.
// Missing, empty, or unparseable fields make the row a silent skip.
func parseImportRow(record []string, dateCol, weightCol int) (day string, weight float64, ok bool) {
	if dateCol >= len(record) || weightCol >= len(record) {
		return "", 0, false
	}
	rawDate := strings.TrimSpace(record[dateCol])
	rawWeight := strings.TrimSpace(record[weightCol])
	if rawDate == "" || rawWeight == "" {
		return "", 0, false
	}
	t, err := time.ParseInLocation(importDateFormat, rawDate, time.Local)
	if err != nil {
		log.Printf("import: skipping row, bad date %q: %v", rawDate, err)
		return "", 0, false
	}
	weight, err = strconv.ParseFloat(rawWeight, 64)
	if err != nil || weight <= 0 {
		log.Printf("import: skipping row, bad weight %q", rawWeight)
		return "", 0, false
	}
	return domain.LocalDay(t), weight, true
}
