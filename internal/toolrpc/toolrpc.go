// Package toolrpc defines the intake.v1.ToolService gRPC contract. Every
// message is a google.protobuf.Struct, so the service is described by hand
// instead of by protoc output.
//
// CallTool takes {"name": <operation>, "arguments": {...}} and returns the
// operation's result object. ListTools returns {"tools": [{name, description}]}.
// Health returns {"status": "ok"}.
package toolrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const ServiceName = "intake.v1.ToolService"

const (
	ToolService_ListTools_FullMethodName = "/" + ServiceName + "/ListTools"
	ToolService_CallTool_FullMethodName  = "/" + ServiceName + "/CallTool"
	ToolService_Health_FullMethodName    = "/" + ServiceName + "/Health"
)

// ToolServiceServer is the server API for ToolService.
type ToolServiceServer interface {
	ListTools(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CallTool(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Health(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RegisterToolServiceServer registers srv on s.
func RegisterToolServiceServer(s grpc.ServiceRegistrar, srv ToolServiceServer) {
	s.RegisterService(&ToolService_ServiceDesc, srv)
}

// ToolService_ServiceDesc is the grpc.ServiceDesc for ToolService.
var ToolService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ToolServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListTools",
			Handler: unaryHandler(ToolService_ListTools_FullMethodName, func(s ToolServiceServer) unaryMethod {
				return s.ListTools
			}),
		},
		{
			MethodName: "CallTool",
			Handler: unaryHandler(ToolService_CallTool_FullMethodName, func(s ToolServiceServer) unaryMethod {
				return s.CallTool
			}),
		},
		{
			MethodName: "Health",
			Handler: unaryHandler(ToolService_Health_FullMethodName, func(s ToolServiceServer) unaryMethod {
				return s.Health
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "intake/v1/tools.proto",
}

type unaryMethod func(context.Context, *structpb.Struct) (*structpb.Struct, error)

// unaryHandler builds the method handler grpc calls for one Struct-in,
// Struct-out RPC, routing through the server's interceptor chain.
func unaryHandler(fullMethod string, pick func(ToolServiceServer) unaryMethod) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(structpb.Struct)
		if err := dec(in); err != nil {
			return nil, err
		}
		method := pick(srv.(ToolServiceServer))
		if interceptor == nil {
			return method(ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return method(ctx, req.(*structpb.Struct))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ToolServiceClient is the client API for ToolService.
type ToolServiceClient interface {
	ListTools(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	CallTool(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	Health(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type toolServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewToolServiceClient returns a client that invokes ToolService over cc.
func NewToolServiceClient(cc grpc.ClientConnInterface) ToolServiceClient {
	return &toolServiceClient{cc: cc}
}

func (c *toolServiceClient) ListTools(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ToolService_ListTools_FullMethodName, in, opts)
}

func (c *toolServiceClient) CallTool(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ToolService_CallTool_FullMethodName, in, opts)
}

func (c *toolServiceClient) Health(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, ToolService_Health_FullMethodName, in, opts)
}

func (c *toolServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts []grpc.CallOption) (*structpb.Struct, error) {
	if in == nil {
		in = &structpb.Struct{}
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
