// internal/middleware/middleware_test.go
package middleware

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func TestUnaryRequestIDInterceptor_GeneratesID(t *testing.T) {
	interceptor := UnaryRequestIDInterceptor()

	// Capture the context the handler sees
	var capturedCtx context.Context
	mockHandler := func(ctx context.Context, req interface{}) (interface{}, error) {
		capturedCtx = ctx
		return "response", nil
	}

	// No incoming metadata
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Method"}
	_, err := interceptor(context.Background(), nil, info, mockHandler)
	require.NoError(t, err)

	requestID := GetRequestID(capturedCtx)
	require.NotEmpty(t, requestID, "request ID should be generated")
	// UUID format: 36 chars with dashes
	assert.Len(t, requestID, 36)
}

func TestUnaryRequestIDInterceptor_PreservesExistingID(t *testing.T) {
	interceptor := UnaryRequestIDInterceptor()

	existingID := "test-request-id-12345"

	var capturedCtx context.Context
	mockHandler := func(ctx context.Context, req interface{}) (interface{}, error) {
		capturedCtx = ctx
		return "response", nil
	}

	md := metadata.Pairs(RequestIDHeader, existingID)
	ctx := metadata.NewIncomingContext(context.Background(), md)
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Method"}

	_, err := interceptor(ctx, nil, info, mockHandler)
	require.NoError(t, err)
	assert.Equal(t, existingID, GetRequestID(capturedCtx))
}

func TestGetRequestID_EmptyContext(t *testing.T) {
	assert.Empty(t, GetRequestID(context.Background()))
}

func TestHTTPRequestID_GeneratesAndEchoes(t *testing.T) {
	var seen string
	h := HTTPRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/predict", nil))

	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestHTTPRequestID_PreservesExistingID(t *testing.T) {
	var seen string
	h := HTTPRequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodPost, "/caption", nil)
	req.Header.Set(RequestIDHeader, "client-id-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "client-id-1", seen)
}

func TestHTTPMetrics_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	h := HTTPRequestID(HTTPMetrics(log, "/predict", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/predict", nil))

	out := buf.String()
	assert.Contains(t, out, `"status":400`)
	assert.Contains(t, out, `"path":"/predict"`)
	assert.Contains(t, out, `"request_id":"`)
}

func TestUnaryLoggingInterceptor_LogsCode(t *testing.T) {
	var buf bytes.Buffer
	interceptor := UnaryLoggingInterceptor(zerolog.New(&buf))

	info := &grpc.UnaryServerInfo{FullMethod: "/imageable.v1.Inference/Caption"}
	failing := func(ctx context.Context, req interface{}) (interface{}, error) {
		return nil, status.Error(codes.InvalidArgument, "empty image")
	}

	_, err := interceptor(WithRequestID(context.Background(), "req-1"), nil, info, failing)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, `"code":"InvalidArgument"`)
	assert.Contains(t, out, `"request_id":"req-1"`)
	assert.Contains(t, out, `"level":"warn"`)
}

func TestUnaryMetricsInterceptor_PassesThrough(t *testing.T) {
	interceptor := UnaryMetricsInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/imageable.v1.Inference/PredictAccess"}

	resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req interface{}) (interface{}, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}
