// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/SyedDaiam9101/imageable-service/internal/cache"
	"github.com/SyedDaiam9101/imageable-service/internal/config"
	"github.com/SyedDaiam9101/imageable-service/internal/handler"
	"github.com/SyedDaiam9101/imageable-service/internal/logging"
	"github.com/SyedDaiam9101/imageable-service/internal/metrics"
	"github.com/SyedDaiam9101/imageable-service/internal/middleware"
	pb "github.com/SyedDaiam9101/imageable-service/proto/inferencepb"
)

const serviceName = "imageable-service"

func main() {
	configFile := flag.String("config", "", "Path to config file (optional)")
	grpcPort := flag.Int("grpc-port", 0, "gRPC server port (default: 50051)")
	httpPort := flag.Int("http-port", 0, "HTTP server port for the JSON API, metrics and health (default: 5005)")
	useMock := flag.Bool("mock", false, "Use mock models (for testing)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *grpcPort > 0 {
		cfg.GRPCPort = *grpcPort
	}
	if *httpPort > 0 {
		cfg.HTTPPort = *httpPort
	}
	if *useMock {
		cfg.UseMock = true
	}

	log, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	log.Info().
		Int("grpc_port", cfg.GRPCPort).
		Int("http_port", cfg.HTTPPort).
		Int("ensemble_size", cfg.Ensemble.Size).
		Str("redis", cfg.Redis.Addr).
		Bool("otel", cfg.OTELEnabled).
		Bool("mock", cfg.UseMock).
		Msgf("starting %s", serviceName)

	// Initialize OpenTelemetry tracer
	var tracerShutdown func(context.Context) error
	if cfg.OTELEnabled {
		tracerShutdown, err = initTracer()
		if err != nil {
			log.Warn().Err(err).Msg("failed to initialize tracer")
		} else {
			log.Info().Str("endpoint", cfg.OTELEndpoint).Msg("OpenTelemetry tracing enabled")
		}
	}

	m, err := loadModels(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load models")
	}
	defer m.Close(log)

	// Initialize Redis cache (optional)
	var cacheClient *cache.Cache
	if cfg.Redis.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		cacheClient, err = cache.New(ctx, cfg.Redis.Addr, cfg.Redis.TTL)
		cancel()
		if err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("failed to connect to Redis, continuing without cache")
			cacheClient = nil
		} else {
			defer cacheClient.Close()
			log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis connected")
		}
	}

	h := handler.New(handler.Deps{
		Predictor: m.predictor,
		Decoder:   m.decoder,
		Extractor: m.extractor,
		Cache:     cacheClient,
		Logger:    log,
	})

	healthServer := health.NewServer()
	httpServer := startHTTPServer(cfg.HTTPPort, healthServer, h, log)

	interceptors := []grpc.UnaryServerInterceptor{
		middleware.UnaryRequestIDInterceptor(),
		middleware.UnaryMetricsInterceptor(),
		middleware.UnaryLoggingInterceptor(log),
	}

	serverOpts := []grpc.ServerOption{grpc.ChainUnaryInterceptor(interceptors...)}
	if cfg.OTELEnabled {
		serverOpts = append(serverOpts, grpc.StatsHandler(otelgrpc.NewServerHandler()))
	}
	grpcServer := grpc.NewServer(serverOpts...)

	pb.RegisterInferenceServer(grpcServer, h)
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	addr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal().Err(err).Str("addr", addr).Msg("failed to listen")
	}

	healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	metrics.SetHealthy()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("shutting down gracefully")

		healthServer.SetServingStatus(serviceName, healthpb.HealthCheckResponse_NOT_SERVING)
		healthServer.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		metrics.SetUnhealthy()

		// Give load balancers time to see the unhealthy status
		time.Sleep(5 * time.Second)

		grpcServer.GracefulStop()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("HTTP server shutdown")
		}
		if tracerShutdown != nil {
			if err := tracerShutdown(ctx); err != nil {
				log.Warn().Err(err).Msg("tracer shutdown")
			}
		}
	}()

	log.Info().Str("addr", addr).Msg("gRPC server listening")

	if err := grpcServer.Serve(lis); err != nil {
		log.Fatal().Err(err).Msg("failed to serve")
	}

	log.Info().Msg("server shutdown complete")
}

func startHTTPServer(port int, healthServer *health.Server, h *handler.Handler, log zerolog.Logger) *http.Server {
	mux := http.NewServeMux()

	mux.Handle("/metrics", promhttp.Handler())

	check := func(okBody, failBody string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			resp, err := healthServer.Check(r.Context(), &healthpb.HealthCheckRequest{})
			if err != nil || resp.Status != healthpb.HealthCheckResponse_SERVING {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(failBody))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(okBody))
		}
	}
	mux.HandleFunc("/healthz", check("OK", "Service Unavailable"))
	mux.HandleFunc("/readyz", check("Ready", "Not Ready"))

	h.Routes(mux, func(path string, next http.Handler) http.Handler {
		return middleware.HTTPRequestID(middleware.HTTPMetrics(log, path, next))
	})

	addr := fmt.Sprintf(":%d", port)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening (api, metrics, health)")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server error")
		}
	}()

	return server
}

func initTracer() (func(context.Context) error, error) {
	// OTLP export needs a collector client; spans go to stdout until one is wired.
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion("1.0.0"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
