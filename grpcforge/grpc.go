// Package grpcforge exposes the seal engine as a gRPC service.
package grpcforge

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ForgeServer is the server API for the Forge gRPC service.
//
// We intentionally use protobuf well-known types (Struct and wrappers)
// so this package does not require a protoc/codegen toolchain.
//
// Proto definition: forge.proto.
type ForgeServer interface {
	Mint(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	MintFromKey(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error)
	Verify(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// UnimplementedForgeServer can be embedded to have forward compatible implementations.
type UnimplementedForgeServer struct{}

func (UnimplementedForgeServer) Mint(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method Mint not implemented")
}
func (UnimplementedForgeServer) MintFromKey(context.Context, *structpb.Struct) (*wrapperspb.StringValue, error) {
	return nil, status.Error(codes.Unimplemented, "method MintFromKey not implemented")
}
func (UnimplementedForgeServer) Verify(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method Verify not implemented")
}

// RegisterForgeServer registers the Forge service on a gRPC server.
func RegisterForgeServer(s grpc.ServiceRegistrar, srv ForgeServer) {
	s.RegisterService(&Forge_ServiceDesc, srv)
}

// ForgeClient is the client API for the Forge gRPC service.
type ForgeClient interface {
	Mint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	MintFromKey(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error)
	Verify(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error)
}

type forgeClient struct{ cc grpc.ClientConnInterface }

func NewForgeClient(cc grpc.ClientConnInterface) ForgeClient { return &forgeClient{cc: cc} }

func (c *forgeClient) Mint(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/pantheon.glyphforge.v1.Forge/Mint", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *forgeClient) MintFromKey(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*wrapperspb.StringValue, error) {
	out := new(wrapperspb.StringValue)
	err := c.cc.Invoke(ctx, "/pantheon.glyphforge.v1.Forge/MintFromKey", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *forgeClient) Verify(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	err := c.cc.Invoke(ctx, "/pantheon.glyphforge.v1.Forge/Verify", in, out, opts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func _Forge_Mint_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForgeServer).Mint(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pantheon.glyphforge.v1.Forge/Mint"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForgeServer).Mint(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Forge_MintFromKey_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForgeServer).MintFromKey(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pantheon.glyphforge.v1.Forge/MintFromKey"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForgeServer).MintFromKey(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func _Forge_Verify_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ForgeServer).Verify(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/pantheon.glyphforge.v1.Forge/Verify"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(ForgeServer).Verify(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Forge_ServiceDesc is the grpc.ServiceDesc for the Forge service.
var Forge_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "pantheon.glyphforge.v1.Forge",
	HandlerType: (*ForgeServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Mint", Handler: _Forge_Mint_Handler},
		{MethodName: "MintFromKey", Handler: _Forge_MintFromKey_Handler},
		{MethodName: "Verify", Handler: _Forge_Verify_Handler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "forge.proto",
}
