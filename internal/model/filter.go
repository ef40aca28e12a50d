package model

// EventFilter holds criteria for scanning events. Empty fields do not filter.
// FromDate and ToDate are inclusive YYYY-MM-DD bounds on the calendar date of
// an event's timestamp.
type EventFilter struct {
	Owner    string `json:"user_id,omitempty"`
	FromDate string `json:"from,omitempty"`
	ToDate   string `json:"to,omitempty"`
}

// Matches reports whether e satisfies the filter.
func (f EventFilter) Matches(e *Event) bool {
	if f.Owner != "" && e.UserID != f.Owner {
		return false
	}
	date := e.CalendarDate()
	if f.FromDate != "" && date < f.FromDate {
		return false
	}
	if f.ToDate != "" && date > f.ToDate {
		return false
	}
	return true
}
