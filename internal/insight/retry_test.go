package insight

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(n uint64) RetryConfig {
	return RetryConfig{MaxRetries: n, InitialInterval: time.Millisecond, MaxInterval: 2 * time.Millisecond}
}

func TestWithRetryRecovers(t *testing.T) {
	var calls int32
	p := ProviderFunc(func(context.Context, string, Options) (Response, error) {
		if atomic.AddInt32(&calls, 1) < 3 {
			return Response{}, errors.New("unavailable")
		}
		return Response{Text: "ok"}, nil
	})
	resp, err := WithRetry(p, fastRetry(2)).Generate(context.Background(), "q", Options{})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWithRetryGivesUp(t *testing.T) {
	var calls int32
	boom := errors.New("unavailable")
	p := ProviderFunc(func(context.Context, string, Options) (Response, error) {
		atomic.AddInt32(&calls, 1)
		return Response{}, boom
	})
	_, err := WithRetry(p, fastRetry(2)).Generate(context.Background(), "q", Options{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestWithRetrySkipsMalformed(t *testing.T) {
	var calls int32
	p := ProviderFunc(func(context.Context, string, Options) (Response, error) {
		atomic.AddInt32(&calls, 1)
		return Response{}, ErrMalformed
	})
	_, err := WithRetry(p, fastRetry(5)).Generate(context.Background(), "q", Options{})
	assert.ErrorIs(t, err, ErrMalformed)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestWithRetryZeroIsPassthrough(t *testing.T) {
	p := fixed(Response{Text: "x"}, nil)
	wrapped := WithRetry(p, RetryConfig{})
	resp, err := wrapped.Generate(context.Background(), "q", Options{})
	require.NoError(t, err)
	assert.Equal(t, "x", resp.Text)
}

func TestWithTimeout(t *testing.T) {
	p := ProviderFunc(func(ctx context.Context, _ string, _ Options) (Response, error) {
		select {
		case <-ctx.Done():
			return Response{}, ctx.Err()
		case <-time.After(time.Second):
			return Response{Text: "late"}, nil
		}
	})
	_, err := WithTimeout(p, 10*time.Millisecond).Generate(context.Background(), "q", Options{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestWithTimeoutNonPositive(t *testing.T) {
	p := fixed(Response{Text: "x"}, nil)
	resp, err := WithTimeout(p, 0).Generate(context.Background(), "q", Options{})
	require.NoError(t, err)
	assert.Equal(t, "x", resp.Text)
}
