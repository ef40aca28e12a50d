package client

import (
	"context"
	"encoding/json"
	"net"
	"testing"

	"github.com/alfredjeanlab/intake/internal/intake"
	"github.com/alfredjeanlab/intake/internal/model"
	"github.com/alfredjeanlab/intake/internal/server"
	"github.com/alfredjeanlab/intake/internal/store/memory"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

// newBufconnClient starts a real ToolService over an in-memory listener.
func newBufconnClient(t *testing.T) *GRPCClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := server.NewGRPCServer(server.NewIntakeServer(intake.NewService(memory.New(), nil)))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := NewGRPCClient("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return lis.DialContext(ctx)
	}))
	if err != nil {
		t.Fatalf("NewGRPCClient: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCClient_Operations(t *testing.T) {
	c := newBufconnClient(t)
	ctx := context.Background()
	notes := "post-run"

	resp, err := c.LogConsumption(ctx, []*model.RawEvent{
		{ID: "ev-1", UserID: "a", Timestamp: "2024-01-15T08:00:00Z", Item: "oats", Amount: float(60), Unit: "g", Calories: float(230)},
		{ID: "ev-2", UserID: "a", Timestamp: "2024-01-16T08:00:00Z", Item: "juice", Amount: float(250), Unit: "ml", Notes: &notes},
	})
	if err != nil {
		t.Fatalf("LogConsumption: %v", err)
	}
	if resp.SavedCount != 2 {
		t.Errorf("SavedCount = %d, want 2", resp.SavedCount)
	}

	list, err := c.ListConsumption(ctx, &intake.QueryRequest{UserID: "a", From: "2024-01-16"})
	if err != nil {
		t.Fatalf("ListConsumption: %v", err)
	}
	if len(list.Events) != 1 {
		t.Fatalf("listed %d events, want 1", len(list.Events))
	}
	got := list.Events[0]
	if got.ID != "ev-2" || got.Unit != model.UnitMl || got.Source != "manual" || got.Notes == nil || *got.Notes != "post-run" {
		t.Errorf("event = %+v", got)
	}
	if got.Calories != nil {
		t.Errorf("absent calories came back as %v", *got.Calories)
	}

	sum, err := c.SummarizeIntake(ctx, nil)
	if err != nil {
		t.Fatalf("SummarizeIntake: %v", err)
	}
	if sum.TotalCalories != 230 || sum.EventsCount != 2 {
		t.Errorf("summary = %+v, want {230 2}", sum)
	}
}

func TestGRPCClient_EmptyListIsNotNil(t *testing.T) {
	c := newBufconnClient(t)
	list, err := c.ListConsumption(context.Background(), &intake.QueryRequest{UserID: "nobody"})
	if err != nil {
		t.Fatalf("ListConsumption: %v", err)
	}
	if list.Events == nil {
		t.Error("Events is nil, want empty slice")
	}
}

func TestGRPCClient_ToolsAndHealth(t *testing.T) {
	c := newBufconnClient(t)
	ctx := context.Background()

	tools, err := c.ListTools(ctx)
	if err != nil {
		t.Fatalf("ListTools: %v", err)
	}
	if len(tools) != 3 {
		t.Errorf("got %d tools, want 3", len(tools))
	}

	out, err := c.CallTool(ctx, intake.OpSummarizeIntake, json.RawMessage(`{"user_id":"a"}`))
	if err != nil {
		t.Fatalf("CallTool: %v", err)
	}
	var sum intake.SummarizeIntakeResponse
	if err := json.Unmarshal(out, &sum); err != nil {
		t.Fatalf("decode CallTool result %s: %v", out, err)
	}
	if sum.EventsCount != 0 {
		t.Errorf("summary = %+v", sum)
	}

	st, err := c.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if st != "ok" {
		t.Errorf("status = %q", st)
	}
}

func TestGRPCClient_Errors(t *testing.T) {
	c := newBufconnClient(t)
	ctx := context.Background()

	_, err := c.LogConsumption(ctx, []*model.RawEvent{{Item: "x", Amount: float(1), Unit: "g"}})
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("invalid event: code = %v, want InvalidArgument (%v)", status.Code(err), err)
	}

	_, err = c.CallTool(ctx, "nope", nil)
	if status.Code(err) != codes.NotFound {
		t.Errorf("unknown tool: code = %v, want NotFound (%v)", status.Code(err), err)
	}
}
