package codec

// #region imports
import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region server

// InsightServer is the server side of the inference service.
type InsightServer interface {
	Generate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// providerServer exposes an insight.Provider over gRPC.
type providerServer struct {
	p insight.Provider
}

// NewInsightServer serves p as an InsightServer.
func NewInsightServer(p insight.Provider) InsightServer {
	return &providerServer{p: p}
}

func (s *providerServer) Generate(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if s.p == nil {
		return nil, status.Error(codes.FailedPrecondition, insight.ErrNoProvider.Error())
	}
	prompt, opts := DecodeRequest(req)
	if prompt == "" {
		return nil, status.Error(codes.InvalidArgument, "prompt is required")
	}
	resp, err := s.p.Generate(ctx, prompt, opts)
	if err != nil {
		return nil, toStatus(err)
	}
	out, err := EncodeResponse(resp)
	if err != nil {
		return nil, toStatus(err)
	}
	return out, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, insight.ErrMalformed):
		return status.Error(codes.DataLoss, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Unavailable, err.Error())
	}
}

// #endregion

// #region service-desc

func generateHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(InsightServer).Generate(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GenerateMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(InsightServer).Generate(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// InsightServiceDesc describes the inference service for grpc.Server.
var InsightServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*InsightServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Generate", Handler: generateHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ada/insight.proto",
}

// RegisterInsightServer registers srv on s.
func RegisterInsightServer(s grpc.ServiceRegistrar, srv InsightServer) {
	s.RegisterService(&InsightServiceDesc, srv)
}

// #endregion
