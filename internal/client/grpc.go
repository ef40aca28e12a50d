package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alfredjeanlab/intake/internal/intake"
	"github.com/alfredjeanlab/intake/internal/model"
	"github.com/alfredjeanlab/intake/internal/toolrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
)

// GRPCClient implements IntakeClient using the gRPC ToolService.
type GRPCClient struct {
	conn   *grpc.ClientConn
	client toolrpc.ToolServiceClient
}

// NewGRPCClient connects to the given gRPC address and returns a client.
func NewGRPCClient(addr string, opts ...grpc.DialOption) (*GRPCClient, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("grpc dial: %w", err)
	}
	return &GRPCClient{
		conn:   conn,
		client: toolrpc.NewToolServiceClient(conn),
	}, nil
}

func (c *GRPCClient) Close() error {
	return c.conn.Close()
}

func (c *GRPCClient) LogConsumption(ctx context.Context, events []*model.RawEvent) (*intake.LogConsumptionResponse, error) {
	var resp intake.LogConsumptionResponse
	if err := c.call(ctx, intake.OpLogConsumption, intake.LogConsumptionRequest{Events: events}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) ListConsumption(ctx context.Context, req *intake.QueryRequest) (*intake.ListConsumptionResponse, error) {
	var resp intake.ListConsumptionResponse
	if err := c.call(ctx, intake.OpListConsumption, req, &resp); err != nil {
		return nil, err
	}
	if resp.Events == nil {
		resp.Events = []*model.Event{}
	}
	return &resp, nil
}

func (c *GRPCClient) SummarizeIntake(ctx context.Context, req *intake.QueryRequest) (*intake.SummarizeIntakeResponse, error) {
	var resp intake.SummarizeIntakeResponse
	if err := c.call(ctx, intake.OpSummarizeIntake, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *GRPCClient) ListTools(ctx context.Context) ([]intake.Tool, error) {
	out, err := c.client.ListTools(ctx, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Tools []intake.Tool `json:"tools"`
	}
	if err := toolrpc.DecodeStruct(out, &resp); err != nil {
		return nil, fmt.Errorf("decoding tools: %w", err)
	}
	return resp.Tools, nil
}

// CallTool invokes the named tool and returns its result re-encoded as JSON.
func (c *GRPCClient) CallTool(ctx context.Context, name string, args json.RawMessage) (json.RawMessage, error) {
	req, err := toolrpc.NewCallRequest(name, args)
	if err != nil {
		return nil, err
	}
	out, err := c.client.CallTool(ctx, req)
	if err != nil {
		return nil, err
	}
	data, err := protojson.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", name, err)
	}
	return data, nil
}

func (c *GRPCClient) Health(ctx context.Context) (string, error) {
	out, err := c.client.Health(ctx, nil)
	if err != nil {
		return "", err
	}
	return out.GetFields()["status"].GetStringValue(), nil
}

// call encodes args as JSON, invokes CallTool, and decodes the result into dst.
func (c *GRPCClient) call(ctx context.Context, name string, args, dst any) error {
	raw, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("encoding %s arguments: %w", name, err)
	}
	if string(raw) == "null" {
		raw = nil
	}
	req, err := toolrpc.NewCallRequest(name, raw)
	if err != nil {
		return err
	}
	out, err := c.client.CallTool(ctx, req)
	if err != nil {
		return err
	}
	if err := toolrpc.DecodeStruct(out, dst); err != nil {
		return fmt.Errorf("decoding %s result: %w", name, err)
	}
	return nil
}
