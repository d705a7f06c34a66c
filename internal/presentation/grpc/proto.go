package grpc

// proto.go defines the gRPC server and client for finsentinel.v1.SentinelService.
// Messages travel with the JSON codec, so the types are plain structs.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "finsentinel.v1.SentinelService"

// SentinelServiceServer is the server API for SentinelService.
type SentinelServiceServer interface {
	RunOnboarding(context.Context, *RunOnboardingRequest) (*RunOnboardingResponse, error)
	MonitorTransaction(context.Context, *MonitorTransactionRequest) (*MonitorTransactionResponse, error)
	AssessSimSwap(context.Context, *AssessSimSwapRequest) (*AssessSimSwapResponse, error)
	GetDecision(context.Context, *GetDecisionRequest) (*GetDecisionResponse, error)
	ListDecisions(context.Context, *ListDecisionsRequest) (*ListDecisionsResponse, error)
	GetControlState(context.Context, *GetControlStateRequest) (*GetControlStateResponse, error)
	mustEmbedUnimplementedSentinelServiceServer()
}

// UnimplementedSentinelServiceServer provides forward-compatible default implementations.
type UnimplementedSentinelServiceServer struct{}

func (UnimplementedSentinelServiceServer) RunOnboarding(context.Context, *RunOnboardingRequest) (*RunOnboardingResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunOnboarding not implemented")
}
func (UnimplementedSentinelServiceServer) MonitorTransaction(context.Context, *MonitorTransactionRequest) (*MonitorTransactionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method MonitorTransaction not implemented")
}
func (UnimplementedSentinelServiceServer) AssessSimSwap(context.Context, *AssessSimSwapRequest) (*AssessSimSwapResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method AssessSimSwap not implemented")
}
func (UnimplementedSentinelServiceServer) GetDecision(context.Context, *GetDecisionRequest) (*GetDecisionResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetDecision not implemented")
}
func (UnimplementedSentinelServiceServer) ListDecisions(context.Context, *ListDecisionsRequest) (*ListDecisionsResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method ListDecisions not implemented")
}
func (UnimplementedSentinelServiceServer) GetControlState(context.Context, *GetControlStateRequest) (*GetControlStateResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetControlState not implemented")
}
func (UnimplementedSentinelServiceServer) mustEmbedUnimplementedSentinelServiceServer() {}

// RegisterSentinelServiceServer registers the SentinelServiceServer with the gRPC server.
func RegisterSentinelServiceServer(s grpclib.ServiceRegistrar, srv SentinelServiceServer) {
	s.RegisterService(&sentinelServiceDesc, srv)
}

var sentinelServiceDesc = grpclib.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*SentinelServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RunOnboarding", Handler: _SentinelService_RunOnboarding_Handler},
		{MethodName: "MonitorTransaction", Handler: _SentinelService_MonitorTransaction_Handler},
		{MethodName: "AssessSimSwap", Handler: _SentinelService_AssessSimSwap_Handler},
		{MethodName: "GetDecision", Handler: _SentinelService_GetDecision_Handler},
		{MethodName: "ListDecisions", Handler: _SentinelService_ListDecisions_Handler},
		{MethodName: "GetControlState", Handler: _SentinelService_GetControlState_Handler},
	},
	Streams:  []grpclib.StreamDesc{},
	Metadata: "finsentinel/v1/sentinel.proto",
}

//nolint:revive // gRPC handler registration
func _SentinelService_RunOnboarding_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(RunOnboardingRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SentinelServiceServer).RunOnboarding(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/RunOnboarding",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SentinelServiceServer).RunOnboarding(ctx, req.(*RunOnboardingRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive // gRPC handler registration
func _SentinelService_MonitorTransaction_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(MonitorTransactionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SentinelServiceServer).MonitorTransaction(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/MonitorTransaction",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SentinelServiceServer).MonitorTransaction(ctx, req.(*MonitorTransactionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive // gRPC handler registration
func _SentinelService_AssessSimSwap_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(AssessSimSwapRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SentinelServiceServer).AssessSimSwap(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/AssessSimSwap",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SentinelServiceServer).AssessSimSwap(ctx, req.(*AssessSimSwapRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive // gRPC handler registration
func _SentinelService_GetDecision_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(GetDecisionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SentinelServiceServer).GetDecision(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GetDecision",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SentinelServiceServer).GetDecision(ctx, req.(*GetDecisionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive // gRPC handler registration
func _SentinelService_ListDecisions_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(ListDecisionsRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SentinelServiceServer).ListDecisions(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/ListDecisions",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SentinelServiceServer).ListDecisions(ctx, req.(*ListDecisionsRequest))
	}
	return interceptor(ctx, in, info, handler)
}

//nolint:revive // gRPC handler registration
func _SentinelService_GetControlState_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpclib.UnaryServerInterceptor) (any, error) {
	in := new(GetControlStateRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SentinelServiceServer).GetControlState(ctx, in)
	}
	info := &grpclib.UnaryServerInfo{
		Server:     srv,
		FullMethod: "/" + ServiceName + "/GetControlState",
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(SentinelServiceServer).GetControlState(ctx, req.(*GetControlStateRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// SentinelServiceClient is the client API for SentinelService.
type SentinelServiceClient interface {
	RunOnboarding(ctx context.Context, in *RunOnboardingRequest, opts ...grpclib.CallOption) (*RunOnboardingResponse, error)
	MonitorTransaction(ctx context.Context, in *MonitorTransactionRequest, opts ...grpclib.CallOption) (*MonitorTransactionResponse, error)
	AssessSimSwap(ctx context.Context, in *AssessSimSwapRequest, opts ...grpclib.CallOption) (*AssessSimSwapResponse, error)
	GetDecision(ctx context.Context, in *GetDecisionRequest, opts ...grpclib.CallOption) (*GetDecisionResponse, error)
	ListDecisions(ctx context.Context, in *ListDecisionsRequest, opts ...grpclib.CallOption) (*ListDecisionsResponse, error)
	GetControlState(ctx context.Context, in *GetControlStateRequest, opts ...grpclib.CallOption) (*GetControlStateResponse, error)
}

type sentinelServiceClient struct {
	cc grpclib.ClientConnInterface
}

// NewSentinelServiceClient creates a client that encodes messages with the
// JSON codec.
func NewSentinelServiceClient(cc grpclib.ClientConnInterface) SentinelServiceClient {
	return &sentinelServiceClient{cc: cc}
}

func (c *sentinelServiceClient) RunOnboarding(ctx context.Context, in *RunOnboardingRequest, opts ...grpclib.CallOption) (*RunOnboardingResponse, error) {
	out := new(RunOnboardingResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/RunOnboarding", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sentinelServiceClient) MonitorTransaction(ctx context.Context, in *MonitorTransactionRequest, opts ...grpclib.CallOption) (*MonitorTransactionResponse, error) {
	out := new(MonitorTransactionResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/MonitorTransaction", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sentinelServiceClient) AssessSimSwap(ctx context.Context, in *AssessSimSwapRequest, opts ...grpclib.CallOption) (*AssessSimSwapResponse, error) {
	out := new(AssessSimSwapResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/AssessSimSwap", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sentinelServiceClient) GetDecision(ctx context.Context, in *GetDecisionRequest, opts ...grpclib.CallOption) (*GetDecisionResponse, error) {
	out := new(GetDecisionResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetDecision", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sentinelServiceClient) ListDecisions(ctx context.Context, in *ListDecisionsRequest, opts ...grpclib.CallOption) (*ListDecisionsResponse, error) {
	out := new(ListDecisionsResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/ListDecisions", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *sentinelServiceClient) GetControlState(ctx context.Context, in *GetControlStateRequest, opts ...grpclib.CallOption) (*GetControlStateResponse, error) {
	out := new(GetControlStateResponse)
	opts = append([]grpclib.CallOption{grpclib.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/GetControlState", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
