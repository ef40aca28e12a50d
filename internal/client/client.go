// Package client provides a transport-agnostic interface for the intake
// service with HTTP/JSON and gRPC implementations.
package client

import (
	"context"
	"encoding/json"

	"github.com/alfredjeanlab/intake/internal/intake"
	"github.com/alfredjeanlab/intake/internal/model"
)

// IntakeClient is the interface that all intake CLI commands use to
// communicate with the server. It is implemented by HTTPClient (default) and
// GRPCClient.
type IntakeClient interface {
	// Operations
	LogConsumption(ctx context.Context, events []*model.RawEvent) (*intake.LogConsumptionResponse, error)
	ListConsumption(ctx context.Context, req *intake.QueryRequest) (*intake.ListConsumptionResponse, error)
	SummarizeIntake(ctx context.Context, req *intake.QueryRequest) (*intake.SummarizeIntakeResponse, error)

	// Generic tool access
	ListTools(ctx context.Context) ([]intake.Tool, error)
	CallTool(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

var (
	_ IntakeClient = (*HTTPClient)(nil)
	_ IntakeClient = (*GRPCClient)(nil)
)
