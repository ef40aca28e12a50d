package model

// Unit is the measurement unit attached to a consumption amount.
type Unit string

const (
	UnitGram    Unit = "g"
	UnitMl      Unit = "ml"
	UnitPiece   Unit = "piece"
	UnitServing Unit = "serving"
)

// Units lists every accepted unit in declaration order.
var Units = []Unit{UnitGram, UnitMl, UnitPiece, UnitServing}

// String returns the string representation of the unit.
func (u Unit) String() string {
	return string(u)
}

// IsValid checks whether the unit is one of the enumerated values.
func (u Unit) IsValid() bool {
	switch u {
	case UnitGram, UnitMl, UnitPiece, UnitServing:
		return true
	}
	return false
}

// DefaultSource is assigned to events submitted without a source.
const DefaultSource = "manual"

// Event is one stored consumption observation.
type Event struct {
	ID        string   `json:"id"`
	UserID    string   `json:"user_id"`
	Timestamp string   `json:"timestamp"`
	Item      string   `json:"item"`
	Amount    float64  `json:"amount"`
	Unit      Unit     `json:"unit"`
	Source    string   `json:"source"`
	Calories  *float64 `json:"calories,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

// CalendarDate returns the YYYY-MM-DD prefix of the timestamp, which is the
// key compared against date range bounds.
func (e *Event) CalendarDate() string {
	if len(e.Timestamp) < 10 {
		return e.Timestamp
	}
	return e.Timestamp[:10]
}

// Clone returns a deep copy of the event.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	c := *e
	if e.Calories != nil {
		v := *e.Calories
		c.Calories = &v
	}
	if e.Notes != nil {
		v := *e.Notes
		c.Notes = &v
	}
	return &c
}

// RawEvent is an event as submitted by a caller, before defaults are applied
// and validation runs. Pointer fields distinguish absent from zero.
type RawEvent struct {
	ID        string   `json:"id,omitempty"`
	UserID    string   `json:"user_id,omitempty"`
	Timestamp string   `json:"timestamp,omitempty"`
	Item      string   `json:"item,omitempty"`
	Amount    *float64 `json:"amount,omitempty"`
	Unit      string   `json:"unit,omitempty"`
	Source    string   `json:"source,omitempty"`
	Calories  *float64 `json:"calories,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

// Summary is the result of reducing a filtered set of events.
type Summary struct {
	TotalCalories float64 `json:"total_calories"`
	EventsCount   int     `json:"events_count"`
}

// Summarize sums calories (absent counts as zero) and counts every event.
func Summarize(events []*Event) Summary {
	var s Summary
	for _, e := range events {
		if e.Calories != nil {
			s.TotalCalories += *e.Calories
		}
		s.EventsCount++
	}
	return s
}
