// Package server exposes intake.Service over HTTP/JSON and the gRPC
// ToolService.
package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/alfredjeanlab/intake/internal/intake"
	"github.com/alfredjeanlab/intake/internal/toolrpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// IntakeServer adapts an intake.Service to both transports.
type IntakeServer struct {
	svc *intake.Service
}

var _ toolrpc.ToolServiceServer = (*IntakeServer)(nil)

// NewIntakeServer returns a server that delegates every call to svc.
func NewIntakeServer(svc *intake.Service) *IntakeServer {
	return &IntakeServer{svc: svc}
}

// ListTools describes the operations CallTool accepts.
func (s *IntakeServer) ListTools(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	out, err := toolrpc.StructFromValue(map[string]any{"tools": intake.Tools})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode tools: %v", err)
	}
	return out, nil
}

// CallTool runs the named operation with the request's arguments.
func (s *IntakeServer) CallTool(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, args, err := toolrpc.ParseCallRequest(req)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if name == "" {
		return nil, status.Error(codes.InvalidArgument, "name is required")
	}

	result, err := s.svc.Dispatch(ctx, name, args)
	if err != nil {
		return nil, grpcError(err)
	}
	out, err := toolrpc.StructFromValue(result)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode %s result: %v", name, err)
	}
	return out, nil
}

// Health returns the service health status.
func (s *IntakeServer) Health(_ context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"status": structpb.NewStringValue("ok"),
	}}, nil
}

// grpcError maps a service error to a gRPC status.
func grpcError(err error) error {
	var ue *intake.UnknownOperationError
	switch {
	case intake.IsClientError(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.As(err, &ue):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// httpStatus maps a service error to an HTTP status code.
func httpStatus(err error) int {
	var ue *intake.UnknownOperationError
	switch {
	case intake.IsClientError(err):
		return http.StatusBadRequest
	case errors.As(err, &ue):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
