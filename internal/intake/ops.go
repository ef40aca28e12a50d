package intake

import "github.com/alfredjeanlab/intake/internal/model"

// Operation names exposed by every transport.
const (
	OpLogConsumption  = "log_consumption"
	OpListConsumption = "list_consumption"
	OpSummarizeIntake = "summarize_intake"
)

// LogConsumptionRequest is the input of log_consumption.
type LogConsumptionRequest struct {
	Events []*model.RawEvent `json:"events"`
}

// LogConsumptionResponse is the output of log_consumption.
type LogConsumptionResponse struct {
	SavedCount int `json:"saved_count"`
}

// QueryRequest is the input shared by list_consumption and summarize_intake.
// From and To are inclusive YYYY-MM-DD bounds.
type QueryRequest struct {
	UserID string `json:"user_id,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// Filter converts the request into a store filter.
func (r QueryRequest) Filter() model.EventFilter {
	return model.EventFilter{Owner: r.UserID, FromDate: r.From, ToDate: r.To}
}

// ListConsumptionResponse is the output of list_consumption. Events is never nil.
type ListConsumptionResponse struct {
	Events []*model.Event `json:"events"`
}

// SummarizeIntakeResponse is the output of summarize_intake.
type SummarizeIntakeResponse = model.Summary

// Tool describes one exposed operation.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Tools lists the operations in a stable order.
var Tools = []Tool{
	{Name: OpLogConsumption, Description: "Record one or more consumption events. Events with an existing id replace it."},
	{Name: OpListConsumption, Description: "List consumption events for an optional user and inclusive date range, oldest first."},
	{Name: OpSummarizeIntake, Description: "Total calories and number of events for an optional user and inclusive date range."},
}
