// internal/handler/handler.go
package handler

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SyedDaiam9101/imageable-service/internal/cache"
	"github.com/SyedDaiam9101/imageable-service/internal/caption"
	"github.com/SyedDaiam9101/imageable-service/internal/ensemble"
	"github.com/SyedDaiam9101/imageable-service/internal/inference"
	"github.com/SyedDaiam9101/imageable-service/internal/metrics"
	"github.com/SyedDaiam9101/imageable-service/internal/middleware"
	pb "github.com/SyedDaiam9101/imageable-service/proto/inferencepb"
)

// FeatureExtractor turns encoded image bytes into a feature vector.
type FeatureExtractor interface {
	Extract(ctx context.Context, image []byte) ([]float32, error)
}

// Handler implements the InferenceServer interface and the HTTP API.
// Any of its collaborators may be nil; the matching operations then report
// FailedPrecondition.
type Handler struct {
	pb.UnimplementedInferenceServer
	predictor *ensemble.Predictor
	decoder   *caption.Decoder
	extractor FeatureExtractor
	cache     *cache.Cache
	log       zerolog.Logger
}

// Deps are the collaborators of a Handler.
type Deps struct {
	Predictor *ensemble.Predictor
	Decoder   *caption.Decoder
	Extractor FeatureExtractor
	Cache     *cache.Cache
	Logger    zerolog.Logger
}

// New creates a new Handler.
func New(d Deps) *Handler {
	return &Handler{
		predictor: d.Predictor,
		decoder:   d.Decoder,
		extractor: d.Extractor,
		cache:     d.Cache,
		log:       d.Logger,
	}
}

func (h *Handler) logger(ctx context.Context) zerolog.Logger {
	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = "unknown"
	}
	return h.log.With().Str("request_id", requestID).Logger()
}

// Predict runs the ensemble on descriptions, consulting the cache first.
func (h *Handler) Predict(ctx context.Context, descriptions []string) (ensemble.Result, error) {
	if len(descriptions) == 0 {
		return nil, fmt.Errorf("%w: no description provided", inference.ErrInvalidInput)
	}
	if h.predictor == nil {
		return nil, fmt.Errorf("%w: ensemble", inference.ErrNotLoaded)
	}

	log := h.logger(ctx)
	start := time.Now()
	metrics.RecordEnsembleBatch(len(descriptions))

	key := cache.PredictionKey(descriptions)
	if h.cache != nil {
		preds, ok, err := h.cache.GetPredictions(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("prediction cache lookup failed")
		} else {
			metrics.RecordCacheLookup("predict", ok)
			if ok {
				log.Debug().Int("batch_size", len(descriptions)).Msg("prediction cache hit")
				return preds, nil
			}
		}
	}

	result, err := h.predictor.Predict(ctx, descriptions)
	if err != nil {
		log.Error().Err(err).Int("batch_size", len(descriptions)).Msg("ensemble prediction failed")
		return nil, err
	}

	if h.cache != nil {
		if err := h.cache.SetPredictions(ctx, key, result); err != nil {
			log.Warn().Err(err).Msg("prediction cache store failed")
		}
	}

	log.Info().
		Int("batch_size", len(descriptions)).
		Int("members", len(result)).
		Dur("elapsed", time.Since(start)).
		Msg("ensemble prediction")
	return result, nil
}

// CaptionImage extracts features from an encoded image and decodes a caption.
func (h *Handler) CaptionImage(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", fmt.Errorf("%w: no image provided", inference.ErrInvalidInput)
	}
	if h.extractor == nil || h.decoder == nil {
		return "", fmt.Errorf("%w: captioning", inference.ErrNotLoaded)
	}

	log := h.logger(ctx)

	key := cache.CaptionKey(image)
	if h.cache != nil {
		c, ok, err := h.cache.GetCaption(ctx, key)
		if err != nil {
			log.Warn().Err(err).Msg("caption cache lookup failed")
		} else {
			metrics.RecordCacheLookup("caption", ok)
			if ok {
				return c, nil
			}
		}
	}

	start := time.Now()
	features, err := h.extractor.Extract(ctx, image)
	metrics.RecordModelInvocation("extractor", -1, time.Since(start).Seconds(), err)
	if err != nil {
		log.Error().Err(err).Int("image_bytes", len(image)).Msg("feature extraction failed")
		return "", err
	}

	c, err := h.caption(ctx, log, features)
	if err != nil {
		return "", err
	}

	if h.cache != nil {
		if err := h.cache.SetCaption(ctx, key, c); err != nil {
			log.Warn().Err(err).Msg("caption cache store failed")
		}
	}
	return c, nil
}

// CaptionFeaturesVector decodes a caption from an already extracted feature vector.
func (h *Handler) CaptionFeaturesVector(ctx context.Context, features []float32) (string, error) {
	if len(features) == 0 {
		return "", fmt.Errorf("%w: no features provided", inference.ErrInvalidInput)
	}
	if h.decoder == nil {
		return "", fmt.Errorf("%w: captioning", inference.ErrNotLoaded)
	}
	return h.caption(ctx, h.logger(ctx), features)
}

func (h *Handler) caption(ctx context.Context, log zerolog.Logger, features []float32) (string, error) {
	start := time.Now()
	res, err := h.decoder.Generate(ctx, features)
	if err != nil {
		log.Error().Err(err).Msg("caption decoding failed")
		return "", err
	}

	metrics.RecordCaption(res.Steps, res.Stop.String())
	log.Info().
		Int("steps", res.Steps).
		Str("stop", res.Stop.String()).
		Dur("elapsed", time.Since(start)).
		Str("caption", res.Caption).
		Msg("caption generated")
	return res.Caption, nil
}

// PredictAccess handles a gRPC ensemble request.
func (h *Handler) PredictAccess(ctx context.Context, req *pb.PredictRequest) (*pb.PredictResponse, error) {
	if req == nil {
		return nil, invalidArgumentError("request cannot be nil")
	}
	preds, err := h.Predict(ctx, req.GetDescriptions())
	if err != nil {
		return nil, grpcError(err)
	}
	return &pb.PredictResponse{Predictions: toScores(preds)}, nil
}

func toScores(r ensemble.Result) []*pb.Scores {
	out := make([]*pb.Scores, len(r))
	for g, values := range r {
		out[g] = &pb.Scores{Values: values}
	}
	return out
}

// Caption handles a gRPC caption request for an encoded image.
func (h *Handler) Caption(ctx context.Context, req *pb.CaptionRequest) (*pb.CaptionResponse, error) {
	if req == nil {
		return nil, invalidArgumentError("request cannot be nil")
	}
	c, err := h.CaptionImage(ctx, req.GetImage())
	if err != nil {
		return nil, grpcError(err)
	}
	return &pb.CaptionResponse{Caption: c}, nil
}

// CaptionFeatures handles a gRPC caption request for a feature vector.
func (h *Handler) CaptionFeatures(ctx context.Context, req *pb.CaptionFeaturesRequest) (*pb.CaptionResponse, error) {
	if req == nil {
		return nil, invalidArgumentError("request cannot be nil")
	}
	c, err := h.CaptionFeaturesVector(ctx, req.GetFeatures())
	if err != nil {
		return nil, grpcError(err)
	}
	return &pb.CaptionResponse{Caption: c}, nil
}
