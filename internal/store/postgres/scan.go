package postgres

import (
	"database/sql"

	"github.com/alfredjeanlab/intake/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanEvent scans a single row into a model.Event.
// The row must contain columns in the order defined by eventColumns.
func scanEvent(row scannable) (*model.Event, error) {
	var (
		e        model.Event
		unit     string
		calories sql.NullFloat64
		notes    sql.NullString
	)

	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.Timestamp,
		&e.Item,
		&e.Amount,
		&unit,
		&e.Source,
		&calories,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	e.Unit = model.Unit(unit)
	if calories.Valid {
		v := calories.Float64
		e.Calories = &v
	}
	if notes.Valid {
		v := notes.String
		e.Notes = &v
	}
	return &e, nil
}

// nullFloatPtr converts an optional float to a sql.NullFloat64.
func nullFloatPtr(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// nullStringPtr converts an optional string to a sql.NullString. An empty but
// present string stays non-NULL.
func nullStringPtr(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}
