package codec

// #region imports
import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region client-struct

// CodecClient is an insight.Provider backed by a remote inference service.
type CodecClient struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// Compile-time check that CodecClient implements insight.Provider.
var _ insight.Provider = (*CodecClient)(nil)

// #endregion client-struct

// #region constructor

// NewCodecClient connects to the inference gRPC server.
func NewCodecClient(addr string) (*CodecClient, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &CodecClient{conn: conn, cc: conn}, nil
}

// NewCodecClientWithConn creates a CodecClient over an existing connection.
// The caller keeps ownership of cc.
func NewCodecClientWithConn(cc grpc.ClientConnInterface) *CodecClient {
	return &CodecClient{cc: cc}
}

// #endregion constructor

// #region close

// Close shuts down the gRPC connection if the client owns one.
func (c *CodecClient) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// #endregion close

// #region generate

// Generate sends a prompt with its options to the inference service.
func (c *CodecClient) Generate(ctx context.Context, prompt string, opts insight.Options) (insight.Response, error) {
	req, err := EncodeRequest(prompt, opts)
	if err != nil {
		return insight.Response{}, err
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GenerateMethod, req, resp); err != nil {
		if status.Code(err) == codes.DataLoss {
			return insight.Response{}, fmt.Errorf("%w: %s", insight.ErrMalformed, status.Convert(err).Message())
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return insight.Response{}, fmt.Errorf("generate rpc: %w", ctxErr)
		}
		return insight.Response{}, fmt.Errorf("generate rpc: %w", err)
	}
	return DecodeResponse(resp)
}

// #endregion generate
