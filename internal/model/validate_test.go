package model

import (
	"errors"
	"math"
	"strings"
	"testing"
)

// validRaw returns a RawEvent that passes every validation rule.
func validRaw() RawEvent {
	return RawEvent{
		ID:        "ev-1",
		UserID:    "alice",
		Timestamp: "2024-01-15T08:30:00Z",
		Item:      "oatmeal",
		Amount:    float(250),
		Unit:      "g",
		Source:    DefaultSource,
	}
}

// invalidField extracts the failing field from an *InvalidEventError or fails the test.
func invalidField(t *testing.T, err error) string {
	t.Helper()
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	var ie *InvalidEventError
	if !errors.As(err, &ie) {
		t.Fatalf("expected *InvalidEventError, got %T", err)
	}
	if !strings.HasPrefix(ie.Error(), "Invalid event") {
		t.Errorf("error message %q does not start with %q", ie.Error(), "Invalid event")
	}
	return ie.Field
}

func TestValidateEvent_Valid(t *testing.T) {
	raw := validRaw()
	notes := "plain"
	raw.Calories = float(320)
	raw.Notes = &notes

	e, err := ValidateEvent(&raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != "ev-1" || e.UserID != "alice" || e.Item != "oatmeal" || e.Amount != 250 || e.Unit != UnitGram {
		t.Errorf("unexpected event: %+v", e)
	}
	if e.Calories == nil || *e.Calories != 320 {
		t.Errorf("Calories = %v, want 320", e.Calories)
	}
	if e.Notes == nil || *e.Notes != "plain" {
		t.Errorf("Notes = %v, want %q", e.Notes, "plain")
	}

	// The validated event must not alias the raw input.
	*raw.Calories = 0
	if *e.Calories != 320 {
		t.Error("validated event shares calories pointer with raw input")
	}
}

func TestValidateEvent_ZeroAmountIsValid(t *testing.T) {
	raw := validRaw()
	raw.Amount = float(0)
	if _, err := ValidateEvent(&raw); err != nil {
		t.Fatalf("unexpected error for zero amount: %v", err)
	}
}

func TestValidateEvent_Failures(t *testing.T) {
	for _, tc := range []struct {
		name   string
		mutate func(*RawEvent)
		field  string
	}{
		{"MissingTimestamp", func(r *RawEvent) { r.Timestamp = "" }, "timestamp"},
		{"BlankTimestamp", func(r *RawEvent) { r.Timestamp = "   " }, "timestamp"},
		{"MissingItem", func(r *RawEvent) { r.Item = "" }, "item"},
		{"MissingAmount", func(r *RawEvent) { r.Amount = nil }, "amount"},
		{"NaNAmount", func(r *RawEvent) { r.Amount = float(math.NaN()) }, "amount"},
		{"InfAmount", func(r *RawEvent) { r.Amount = float(math.Inf(1)) }, "amount"},
		{"MissingUnit", func(r *RawEvent) { r.Unit = "" }, "unit"},
		{"UnknownUnit", func(r *RawEvent) { r.Unit = "cup" }, "unit"},
		{"InfCalories", func(r *RawEvent) { r.Calories = float(math.Inf(-1)) }, "calories"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			raw := validRaw()
			tc.mutate(&raw)
			_, err := ValidateEvent(&raw)
			if got := invalidField(t, err); got != tc.field {
				t.Errorf("failed field = %q, want %q", got, tc.field)
			}
		})
	}
}

func TestValidateEvent_ShortCircuitsInOrder(t *testing.T) {
	// Everything missing: timestamp is checked first.
	_, err := ValidateEvent(&RawEvent{})
	if got := invalidField(t, err); got != "timestamp" {
		t.Errorf("first failure = %q, want timestamp", got)
	}

	// Item and unit missing: item wins.
	_, err = ValidateEvent(&RawEvent{Timestamp: "2024-01-01T00:00:00Z", Amount: float(1)})
	if got := invalidField(t, err); got != "item" {
		t.Errorf("first failure = %q, want item", got)
	}
}

func TestValidateEvent_Nil(t *testing.T) {
	_, err := ValidateEvent(nil)
	if got := invalidField(t, err); got != "event" {
		t.Errorf("failed field = %q, want event", got)
	}
}
