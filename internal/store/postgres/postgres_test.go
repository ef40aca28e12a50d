package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alfredjeanlab/intake/internal/model"
	"github.com/alfredjeanlab/intake/internal/store"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unfulfilled expectations: %v", err)
		}
		db.Close()
	})
	return db, mock
}

// eventRowColumns is the column list for scanEvent results.
var eventRowColumns = []string{
	"id", "user_id", "timestamp", "item", "amount", "unit", "source", "calories", "notes",
}

func float(v float64) *float64 { return &v }

func TestScanHelpers(t *testing.T) {
	if nullFloatPtr(nil).Valid {
		t.Error("nullFloatPtr(nil) should be invalid")
	}
	if nf := nullFloatPtr(float(12.5)); !nf.Valid || nf.Float64 != 12.5 {
		t.Errorf("nullFloatPtr(12.5) = %v", nf)
	}

	if nullStringPtr(nil).Valid {
		t.Error("nullStringPtr(nil) should be invalid")
	}
	empty := ""
	if ns := nullStringPtr(&empty); !ns.Valid {
		t.Error("nullStringPtr(&\"\") should stay valid")
	}
}

func TestQueryUpsertEvent(t *testing.T) {
	db, mock := newMockDB(t)
	notes := "after run"
	e := &model.Event{
		ID: "ev-1", UserID: "alice", Timestamp: "2024-01-15T08:30:00Z",
		Item: "banana", Amount: 1, Unit: model.UnitPiece, Source: "manual",
		Calories: float(105), Notes: &notes,
	}
	mock.ExpectExec(`INSERT INTO consumption_events .+ ON CONFLICT \(id\) DO UPDATE SET`).
		WithArgs("ev-1", "alice", "2024-01-15T08:30:00Z", "banana", 1.0, "piece", "manual", 105.0, "after run").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryUpsertEvent(context.Background(), db, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryUpsertEvent_NullOptionals(t *testing.T) {
	db, mock := newMockDB(t)
	e := &model.Event{
		ID: "ev-2", UserID: "alice", Timestamp: "2024-01-15T08:30:00Z",
		Item: "water", Amount: 500, Unit: model.UnitMl, Source: "manual",
	}
	mock.ExpectExec("INSERT INTO consumption_events").
		WithArgs("ev-2", "alice", "2024-01-15T08:30:00Z", "water", 500.0, "ml", "manual", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := queryUpsertEvent(context.Background(), db, e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryScanEvents_NoFilter(t *testing.T) {
	db, mock := newMockDB(t)
	rows := sqlmock.NewRows(eventRowColumns).
		AddRow("ev-1", "alice", "2024-01-01T08:00:00Z", "toast", 2.0, "piece", "manual", 180.0, nil).
		AddRow("ev-2", "bob", "2024-01-02T08:00:00Z", "juice", 250.0, "ml", "app", nil, "fresh")
	mock.ExpectQuery(`SELECT .+ FROM consumption_events ORDER BY "timestamp"`).
		WillReturnRows(rows)

	events, err := queryScanEvents(context.Background(), db, model.EventFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Calories == nil || *events[0].Calories != 180 {
		t.Errorf("events[0].Calories = %v, want 180", events[0].Calories)
	}
	if events[0].Notes != nil {
		t.Errorf("events[0].Notes = %v, want nil", events[0].Notes)
	}
	if events[1].Calories != nil {
		t.Errorf("events[1].Calories = %v, want nil", *events[1].Calories)
	}
	if events[1].Unit != model.UnitMl || events[1].Notes == nil || *events[1].Notes != "fresh" {
		t.Errorf("events[1] = %+v", events[1])
	}
}

func TestQueryScanEvents_AllFilters(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT .+ FROM consumption_events WHERE user_id = \$1 AND LEFT\("timestamp", 10\) >= \$2 AND LEFT\("timestamp", 10\) <= \$3 ORDER BY`).
		WithArgs("alice", "2024-01-10", "2024-01-31").
		WillReturnRows(sqlmock.NewRows(eventRowColumns))

	events, err := queryScanEvents(context.Background(), db, model.EventFilter{
		Owner: "alice", FromDate: "2024-01-10", ToDate: "2024-01-31",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if events == nil || len(events) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", events)
	}
}

func TestQueryScanEvents_ToDateOnly(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`WHERE LEFT\("timestamp", 10\) <= \$1 ORDER BY`).
		WithArgs("2024-01-31").
		WillReturnRows(sqlmock.NewRows(eventRowColumns))

	if _, err := queryScanEvents(context.Background(), db, model.EventFilter{ToDate: "2024-01-31"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueryScanEvents_QueryError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery("SELECT .+ FROM consumption_events").WillReturnError(sql.ErrConnDone)

	events, err := queryScanEvents(context.Background(), db, model.EventFilter{})
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected sql.ErrConnDone, got %v", err)
	}
	if events != nil {
		t.Errorf("expected no partial results, got %v", events)
	}
}

func TestRunInTransaction_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO consumption_events").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO consumption_events").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		for _, id := range []string{"ev-1", "ev-2"} {
			e := &model.Event{ID: id, UserID: "a", Timestamp: "2024-01-01T00:00:00Z", Item: "x", Amount: 1, Unit: model.UnitGram, Source: "manual"}
			if err := tx.UpsertEvent(context.Background(), e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRunInTransaction_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO consumption_events").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectRollback()

	invalid := errors.New("invalid second event")
	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		e := &model.Event{ID: "ev-1", UserID: "a", Timestamp: "2024-01-01T00:00:00Z", Item: "x", Amount: 1, Unit: model.UnitGram, Source: "manual"}
		if err := tx.UpsertEvent(context.Background(), e); err != nil {
			return err
		}
		return invalid
	})
	if !errors.Is(err, invalid) {
		t.Fatalf("expected %v, got %v", invalid, err)
	}
}

func TestRunInTransaction_RollbackOnWriteFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO consumption_events").WillReturnError(errors.New("check constraint violated"))
	mock.ExpectRollback()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.UpsertEvent(context.Background(), &model.Event{ID: "ev-1", Unit: "bogus"})
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRunInTransaction_BeginFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	called := false
	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		called = true
		return nil
	})
	if !errors.Is(err, sql.ErrConnDone) {
		t.Fatalf("expected wrapped sql.ErrConnDone, got %v", err)
	}
	if called {
		t.Error("fn should not run when begin fails")
	}
}

func TestRunInTransaction_CommitFailure(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(sql.ErrTxDone)

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error { return nil })
	if !errors.Is(err, sql.ErrTxDone) {
		t.Fatalf("expected wrapped sql.ErrTxDone, got %v", err)
	}
}

func TestTxStore_NestedReusesTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	s := &PostgresStore{db: db}

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM consumption_events").WillReturnRows(sqlmock.NewRows(eventRowColumns))
	mock.ExpectCommit()

	err := s.RunInTransaction(context.Background(), func(tx store.Store) error {
		return tx.RunInTransaction(context.Background(), func(inner store.Store) error {
			_, err := inner.ScanEvents(context.Background(), model.EventFilter{})
			return err
		})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
