package postgres

import (
	"context"
	"time"

	"weighttracker/internal/domain"

	"github.com/google/uuid"
)

// UpsertEntryForDay inserts a new entry for the day, or overwrites the
// existing one's weight in place. The UNIQUE(user_id, day) constraint plus
// ON CONFLICT makes the write atomic and keeps the original entry ID; on
// error the single row is untouched.
func (d *DB) UpsertEntryForDay(ctx context.Context, userID int64, day string, weight float64) (*domain.WeightEntry, error) {
	now := time.Now().UTC()
	row := d.sql.QueryRowContext(ctx,
		`INSERT INTO weight_entries(id, user_id, day, weight, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, $5)
		 ON CONFLICT(user_id, day) DO UPDATE SET weight = EXCLUDED.weight, updated_at = EXCLUDED.updated_at
		 RETURNING id, user_id, day, weight, created_at, updated_at;`,
		uuid.NewString(), userID, day, weight, now,
	)

	var e domain.WeightEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.Day, &e.Weight, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEntries returns all of a user's entries. No ordering is guaranteed;
// the caller sorts.
func (d *DB) ListEntries(ctx context.Context, userID int64) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, user_id, day, weight, created_at, updated_at FROM weight_entries WHERE user_id = $1;", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.WeightEntry, 0)
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Day, &e.Weight, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
