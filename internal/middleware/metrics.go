// internal/middleware/metrics.go
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/status"

	"github.com/SyedDaiam9101/imageable-service/internal/metrics"
)

// UnaryMetricsInterceptor records Prometheus histogram metrics for gRPC unary calls.
// It measures the duration of each call and records it with method and status code labels.
func UnaryMetricsInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		metrics.RecordGRPCLatency(info.FullMethod, statusCode(err), time.Since(start).Seconds())
		return resp, err
	}
}

// UnaryLoggingInterceptor logs one line per gRPC call with its request ID.
func UnaryLoggingInterceptor(log zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		ev := log.Info()
		if err != nil {
			ev = log.Warn().Err(err)
		}
		ev.Str("request_id", GetRequestID(ctx)).
			Str("method", info.FullMethod).
			Str("code", statusCode(err)).
			Dur("elapsed", time.Since(start)).
			Msg("grpc request")
		return resp, err
	}
}

func statusCode(err error) string {
	if err == nil {
		return "OK"
	}
	if st, ok := status.FromError(err); ok {
		return st.Code().String()
	}
	return "Unknown"
}

// statusRecorder captures the status code written by an HTTP handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// HTTPMetrics records latency for requests to path and logs them.
func HTTPMetrics(log zerolog.Logger, path string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		metrics.RecordHTTPLatency(path, rec.code, elapsed.Seconds())
		log.Info().
			Str("request_id", GetRequestID(r.Context())).
			Str("path", path).
			Int("status", rec.code).
			Dur("elapsed", elapsed).
			Msg("http request")
	})
}
