package model

import (
	"fmt"
	"math"
	"strings"
)

// InvalidEventError reports the first field of a submitted event that failed
// validation. Index is the event's position in its batch, or -1 when the
// position is unknown.
type InvalidEventError struct {
	Index   int
	Field   string
	Message string
}

func (e *InvalidEventError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("Invalid event: %s %s", e.Field, e.Message)
	}
	return fmt.Sprintf("Invalid event at index %d: %s %s", e.Index, e.Field, e.Message)
}

// ValidateEvent checks a raw event and converts it into an Event. Checks run
// in order and stop at the first failure: timestamp, item, amount, unit, and
// calories when present.
// Defaults (id, user_id, source) must already be applied by the caller.
func ValidateEvent(raw *RawEvent) (*Event, error) {
	if raw == nil {
		return nil, &InvalidEventError{Field: "event", Message: "is required"}
	}
	if strings.TrimSpace(raw.Timestamp) == "" {
		return nil, &InvalidEventError{Field: "timestamp", Message: "is required"}
	}
	if strings.TrimSpace(raw.Item) == "" {
		return nil, &InvalidEventError{Field: "item", Message: "is required"}
	}
	if raw.Amount == nil {
		return nil, &InvalidEventError{Field: "amount", Message: "is required"}
	}
	if math.IsNaN(*raw.Amount) || math.IsInf(*raw.Amount, 0) {
		return nil, &InvalidEventError{Field: "amount", Message: "must be a finite number"}
	}
	if raw.Unit == "" {
		return nil, &InvalidEventError{Field: "unit", Message: "is required"}
	}
	unit := Unit(raw.Unit)
	if !unit.IsValid() {
		return nil, &InvalidEventError{
			Field:   "unit",
			Message: fmt.Sprintf("must be one of g, ml, piece, serving, got %q", raw.Unit),
		}
	}

	if raw.Calories != nil && (math.IsNaN(*raw.Calories) || math.IsInf(*raw.Calories, 0)) {
		return nil, &InvalidEventError{Field: "calories", Message: "must be a finite number"}
	}

	e := &Event{
		ID:        raw.ID,
		UserID:    raw.UserID,
		Timestamp: raw.Timestamp,
		Item:      raw.Item,
		Amount:    *raw.Amount,
		Unit:      unit,
		Source:    raw.Source,
	}
	if raw.Calories != nil {
		v := *raw.Calories
		e.Calories = &v
	}
	if raw.Notes != nil {
		v := *raw.Notes
		e.Notes = &v
	}
	return e, nil
}
