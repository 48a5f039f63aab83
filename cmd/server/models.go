package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/SyedDaiam9101/imageable-service/internal/caption"
	"github.com/SyedDaiam9101/imageable-service/internal/config"
	"github.com/SyedDaiam9101/imageable-service/internal/ensemble"
	"github.com/SyedDaiam9101/imageable-service/internal/imaging"
	"github.com/SyedDaiam9101/imageable-service/internal/inference"
	"github.com/SyedDaiam9101/imageable-service/internal/metrics"
	"github.com/SyedDaiam9101/imageable-service/internal/vocab"
)

// mockMaxLen is used in mock mode when ensemble.max_len is unset.
const mockMaxLen = 35

// models owns everything loaded at startup.
type models struct {
	predictor *ensemble.Predictor
	decoder   *caption.Decoder
	extractor *imaging.Extractor
	runtime   bool
}

// Close releases the models and then the ONNX runtime.
func (m *models) Close(log zerolog.Logger) {
	var errs []error
	if m.predictor != nil {
		errs = append(errs, m.predictor.Close())
	}
	if m.decoder != nil {
		errs = append(errs, m.decoder.Close())
	}
	if m.extractor != nil {
		errs = append(errs, m.extractor.Close())
	}
	if m.runtime {
		errs = append(errs, inference.DestroyRuntime())
	}
	if err := errors.Join(errs...); err != nil {
		log.Warn().Err(err).Msg("failed to release models")
	}
}

func ensembleObserver(member int, elapsed time.Duration, err error) {
	metrics.RecordModelInvocation("ensemble", member, elapsed.Seconds(), err)
}

func captionObserver(_ int, elapsed time.Duration, err error) {
	metrics.RecordModelInvocation("caption", -1, elapsed.Seconds(), err)
}

func loadModels(cfg *config.Config, log zerolog.Logger) (*models, error) {
	ensPad, err := cfg.EnsemblePadding()
	if err != nil {
		return nil, err
	}
	capPad, err := cfg.CaptionPadding()
	if err != nil {
		return nil, err
	}

	if cfg.UseMock {
		log.Info().Msg("using mock models")
		return mockModels(cfg, ensPad, capPad)
	}

	m := &models{}
	ok := false
	defer func() {
		if !ok {
			m.Close(log)
		}
	}()

	if err := inference.InitializeRuntime(cfg.ONNXLibrary); err != nil {
		return nil, err
	}
	m.runtime = true

	tok, err := vocab.LoadFile(cfg.Ensemble.Vocabulary, cfg.Ensemble.MaxLen)
	if err != nil {
		return nil, err
	}
	members, err := inference.LoadEnsemble(cfg.Ensemble.ModelDir, cfg.Ensemble.ModelPattern, cfg.Ensemble.Size, cfg.Ensemble.OutputDim)
	if err != nil {
		return nil, err
	}
	m.predictor, err = ensemble.New(tok, members,
		ensemble.WithWorkers(cfg.Ensemble.Workers),
		ensemble.WithPadding(vocab.PadOptions{Padding: ensPad, Truncating: vocab.Pre}),
		ensemble.WithObserver(ensembleObserver),
	)
	if err != nil {
		return nil, err
	}
	log.Info().
		Int("members", m.predictor.Size()).
		Int("max_len", tok.MaxLen()).
		Int("vocabulary", tok.Vocabulary().Len()).
		Msg("ensemble loaded")

	ctok, err := vocab.LoadFile(cfg.Caption.Vocabulary, cfg.Caption.MaxLength)
	if err != nil {
		return nil, err
	}
	vocabSize := cfg.Caption.VocabSize
	if vocabSize <= 0 {
		vocabSize = ctok.Vocabulary().Len() + 1
	}
	cm, err := inference.NewCaptionModel(cfg.Caption.Model, vocabSize)
	if err != nil {
		return nil, err
	}
	m.decoder, err = caption.New(cm, ctok, captionOptions(cfg, capPad))
	if err != nil {
		cm.Close()
		return nil, err
	}

	fm, err := inference.NewFeatureModel(cfg.Caption.Extractor, cfg.Caption.FeatureDim)
	if err != nil {
		return nil, err
	}
	m.extractor, err = imaging.NewExtractor(fm, cfg.Caption.ImageSize)
	if err != nil {
		fm.Close()
		return nil, err
	}
	log.Info().
		Int("vocab_size", vocabSize).
		Int("feature_dim", cfg.Caption.FeatureDim).
		Int("image_size", cfg.Caption.ImageSize).
		Msg("captioning models loaded")

	ok = true
	return m, nil
}

func captionOptions(cfg *config.Config, side vocab.Side) caption.Options {
	return caption.Options{
		MaxLength:  cfg.Caption.MaxLength,
		StartToken: cfg.Caption.StartToken,
		EndToken:   cfg.Caption.EndToken,
		Padding:    vocab.PadOptions{Padding: side, Truncating: vocab.Pre},
		Observer:   captionObserver,
	}
}

// mockModels wires the mock implementations to a tiny built-in vocabulary so
// the service can run without any model files.
func mockModels(cfg *config.Config, ensPad, capPad vocab.Side) (*models, error) {
	words := []string{cfg.Caption.StartToken, cfg.Caption.EndToken, "a", "dog", "runs", "on", "the", "grass"}
	entries := make([]vocab.Entry, len(words))
	for i, w := range words {
		entries[i] = vocab.Entry{Word: w, ID: int64(i + 1)}
	}
	v, err := vocab.NewVocabulary(entries)
	if err != nil {
		return nil, fmt.Errorf("mock vocabulary: %w", err)
	}

	maxLen := cfg.Ensemble.MaxLen
	if maxLen <= 0 {
		maxLen = mockMaxLen
	}
	tok, err := vocab.NewTokenizer(v, vocab.DefaultOptions(maxLen))
	if err != nil {
		return nil, err
	}
	ctok, err := vocab.NewTokenizer(v, vocab.DefaultOptions(cfg.Caption.MaxLength))
	if err != nil {
		return nil, err
	}

	members := make([]inference.SequenceModel, cfg.Ensemble.Size)
	for g := range members {
		members[g] = inference.NewMockSequenceModel(float32(g+1) / float32(cfg.Ensemble.Size+1))
	}
	predictor, err := ensemble.New(tok, members,
		ensemble.WithWorkers(cfg.Ensemble.Workers),
		ensemble.WithPadding(vocab.PadOptions{Padding: ensPad, Truncating: vocab.Pre}),
		ensemble.WithObserver(ensembleObserver),
	)
	if err != nil {
		return nil, err
	}

	// "a dog runs on the grass" then the end token
	cm := inference.NewMockCaptionModel(len(words)+1, 3, 4, 5, 6, 7, 8, 2)
	decoder, err := caption.New(cm, ctok, captionOptions(cfg, capPad))
	if err != nil {
		return nil, err
	}

	extractor, err := imaging.NewExtractor(inference.NewMockFeatureModel(cfg.Caption.FeatureDim), cfg.Caption.ImageSize)
	if err != nil {
		return nil, err
	}

	return &models{predictor: predictor, decoder: decoder, extractor: extractor}, nil
}
