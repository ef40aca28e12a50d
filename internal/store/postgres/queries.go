package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alfredjeanlab/intake/internal/model"
)

// eventColumns is the column list used for SELECT statements on consumption_events.
const eventColumns = `id, user_id, "timestamp", item, amount, unit, source, calories, notes`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// queryUpsertEvent inserts the event or replaces every column of the row
// with the same id. created_at is kept from the first insert.
func queryUpsertEvent(ctx context.Context, db executor, e *model.Event) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO consumption_events (
			id, user_id, "timestamp", item, amount, unit, source, calories, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		)
		ON CONFLICT (id) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			"timestamp" = EXCLUDED."timestamp",
			item = EXCLUDED.item,
			amount = EXCLUDED.amount,
			unit = EXCLUDED.unit,
			source = EXCLUDED.source,
			calories = EXCLUDED.calories,
			notes = EXCLUDED.notes,
			updated_at = NOW()`,
		e.ID,
		e.UserID,
		e.Timestamp,
		e.Item,
		e.Amount,
		string(e.Unit),
		e.Source,
		nullFloatPtr(e.Calories),
		nullStringPtr(e.Notes),
	)
	return err
}

// queryScanEvents selects events matching filter. Date bounds compare the
// first ten characters of the stored timestamp.
func queryScanEvents(ctx context.Context, db executor, filter model.EventFilter) ([]*model.Event, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if filter.Owner != "" {
		whereClauses = append(whereClauses, "user_id = "+nextArg())
		args = append(args, filter.Owner)
	}
	if filter.FromDate != "" {
		whereClauses = append(whereClauses, `LEFT("timestamp", 10) >= `+nextArg())
		args = append(args, filter.FromDate)
	}
	if filter.ToDate != "" {
		whereClauses = append(whereClauses, `LEFT("timestamp", 10) <= `+nextArg())
		args = append(args, filter.ToDate)
	}

	query := `SELECT ` + eventColumns + ` FROM consumption_events`
	if len(whereClauses) > 0 {
		query += " WHERE " + strings.Join(whereClauses, " AND ")
	}
	// COLLATE "C" keeps ordering byte-wise so it matches the date comparison.
	query += ` ORDER BY "timestamp" COLLATE "C" ASC, id ASC`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
