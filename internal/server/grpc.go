package server

import (
	"github.com/alfredjeanlab/intake/internal/toolrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"
)

// NewGRPCServer creates a gRPC server with standard interceptors,
// registers the ToolService, reflection, and returns the server ready to serve.
func NewGRPCServer(intakeServer *IntakeServer) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			RecoveryInterceptor,
			LoggingInterceptor,
		),
	)

	toolrpc.RegisterToolServiceServer(srv, intakeServer)
	reflection.Register(srv)

	return srv
}
