package codec

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"

	"github.com/adacomputing/ada-engine/internal/insight"
)

// #region harness
func startServer(t *testing.T, p insight.Provider) *CodecClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	RegisterInsightServer(srv, NewInsightServer(p))
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial bufnet: %v", err)
	}
	t.Cleanup(func() {
		conn.Close()
		srv.Stop()
	})
	return NewCodecClientWithConn(conn)
}

// #endregion harness

// #region constructor-tests
func TestNewCodecClientLazyDial(t *testing.T) {
	client, err := NewCodecClient("localhost:0")
	if err != nil {
		t.Fatalf("unexpected error creating client: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCloseWithoutOwnedConn(t *testing.T) {
	c := NewCodecClientWithConn(nil)
	if err := c.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

// #endregion constructor-tests

// #region generate-tests
func TestGenerate_RoundTrip(t *testing.T) {
	var gotPrompt string
	var gotOpts insight.Options
	p := insight.ProviderFunc(func(_ context.Context, prompt string, opts insight.Options) (insight.Response, error) {
		gotPrompt, gotOpts = prompt, opts
		return insight.Response{
			Text:       "resolved",
			Structured: []byte(`{"entity":"Paris","correctness":0.9}`),
			Sources:    []insight.Source{{URI: "https://example.org", Title: "Example"}},
		}, nil
	})
	client := startServer(t, p)

	opts := insight.Options{
		SystemInstruction: "sys",
		Grounding:         true,
		Schema: &insight.Schema{Fields: []insight.Field{
			{Name: "entity", Type: insight.FieldString, Description: "subject"},
			{Name: "correctness", Type: insight.FieldNumber},
		}},
		History: []insight.Message{{Role: insight.RoleUser, Text: "hi"}, {Role: insight.RoleModel, Text: "hello"}},
	}
	resp, err := client.Generate(context.Background(), "capital of France", opts)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if gotPrompt != "capital of France" {
		t.Errorf("prompt = %q", gotPrompt)
	}
	if diff := cmp.Diff(opts, gotOpts); diff != "" {
		t.Errorf("options mismatch (-sent +received):\n%s", diff)
	}
	if resp.Text != "resolved" {
		t.Errorf("text = %q", resp.Text)
	}
	var payload struct {
		Entity      string  `json:"entity"`
		Correctness float64 `json:"correctness"`
	}
	if err := resp.DecodeStructured(&payload); err != nil {
		t.Fatalf("decode structured: %v", err)
	}
	if payload.Entity != "Paris" || payload.Correctness != 0.9 {
		t.Errorf("payload = %+v", payload)
	}
	if diff := cmp.Diff([]insight.Source{{URI: "https://example.org", Title: "Example"}}, resp.Sources); diff != "" {
		t.Errorf("sources mismatch:\n%s", diff)
	}
}

func TestGenerate_ProviderError(t *testing.T) {
	client := startServer(t, insight.ProviderFunc(func(context.Context, string, insight.Options) (insight.Response, error) {
		return insight.Response{}, errors.New("backend down")
	}))
	_, err := client.Generate(context.Background(), "q", insight.Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, insight.ErrMalformed) {
		t.Errorf("transport failure should not be malformed: %v", err)
	}
}

func TestGenerate_MalformedMapsBack(t *testing.T) {
	client := startServer(t, insight.ProviderFunc(func(context.Context, string, insight.Options) (insight.Response, error) {
		return insight.Response{}, insight.ErrMalformed
	}))
	_, err := client.Generate(context.Background(), "q", insight.Options{})
	if !errors.Is(err, insight.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestGenerate_NilProvider(t *testing.T) {
	client := startServer(t, nil)
	if _, err := client.Generate(context.Background(), "q", insight.Options{}); err == nil {
		t.Fatal("expected error for server without provider")
	}
}

func TestGenerate_EmptyPromptRejected(t *testing.T) {
	client := startServer(t, insight.ProviderFunc(func(context.Context, string, insight.Options) (insight.Response, error) {
		return insight.Response{Text: "x"}, nil
	}))
	if _, err := client.Generate(context.Background(), "", insight.Options{}); err == nil {
		t.Fatal("expected error for empty prompt")
	}
}

func TestGenerate_Deadline(t *testing.T) {
	client := startServer(t, insight.ProviderFunc(func(ctx context.Context, _ string, _ insight.Options) (insight.Response, error) {
		<-ctx.Done()
		return insight.Response{}, ctx.Err()
	}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := client.Generate(ctx, "q", insight.Options{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

// #endregion generate-tests

// #region wire-tests
func TestDecodeRequestEmpty(t *testing.T) {
	prompt, opts := DecodeRequest(nil)
	if prompt != "" || opts.Schema != nil || opts.History != nil || opts.Grounding {
		t.Errorf("unexpected decode of nil struct: %q %+v", prompt, opts)
	}
}

func TestEncodeResponseRejectsNonObject(t *testing.T) {
	_, err := EncodeResponse(insight.Response{Structured: []byte(`[1,2,3]`)})
	if !errors.Is(err, insight.ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

// #endregion wire-tests
