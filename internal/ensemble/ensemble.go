// Package ensemble dispatches one padded text batch to a fixed, ordered set of
// independently trained scoring models.
package ensemble

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/SyedDaiam9101/imageable-service/internal/inference"
	"github.com/SyedDaiam9101/imageable-service/internal/vocab"
)

var tracer = otel.Tracer("github.com/SyedDaiam9101/imageable-service/internal/ensemble")

// Encoder turns text into unpadded token ids and knows the fixed sequence length.
type Encoder interface {
	Encode(text string) []int64
	MaxLen() int
}

// Result holds one flattened output per ensemble member, in member order.
type Result [][]float32

// Observer is told about every member invocation.
type Observer func(member int, elapsed time.Duration, err error)

// Predictor owns the ensemble members for its lifetime.
type Predictor struct {
	enc      Encoder
	models   []inference.SequenceModel
	pad      vocab.PadOptions
	workers  int
	observer Observer
}

// Option configures a Predictor.
type Option func(*Predictor)

// WithWorkers runs up to n members concurrently. n <= 1 runs them in order on
// the calling goroutine.
func WithWorkers(n int) Option {
	return func(p *Predictor) { p.workers = n }
}

// WithPadding overrides the padding and truncation sides (default: post padding,
// pre truncation).
func WithPadding(opts vocab.PadOptions) Option {
	return func(p *Predictor) { p.pad = opts }
}

// WithObserver installs a callback run after each member invocation.
func WithObserver(o Observer) Option {
	return func(p *Predictor) { p.observer = o }
}

// New creates a Predictor over models in index order.
func New(enc Encoder, models []inference.SequenceModel, opts ...Option) (*Predictor, error) {
	if enc == nil {
		return nil, fmt.Errorf("encoder is nil")
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("ensemble has no members")
	}
	for g, m := range models {
		if m == nil {
			return nil, fmt.Errorf("ensemble member %d is nil", g)
		}
	}

	p := &Predictor{
		enc:     enc,
		models:  append([]inference.SequenceModel(nil), models...),
		pad:     vocab.PadOptions{Padding: vocab.Post, Truncating: vocab.Pre},
		workers: 1,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Size returns the number of ensemble members.
func (p *Predictor) Size() int { return len(p.models) }

// Batch encodes and pads texts to the encoder's fixed length.
func (p *Predictor) Batch(texts []string) ([][]int64, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: empty description batch", inference.ErrInvalidInput)
	}
	seqs := make([][]int64, len(texts))
	for i, text := range texts {
		if text == "" {
			return nil, fmt.Errorf("%w: description %d is empty", inference.ErrInvalidInput, i)
		}
		seqs[i] = p.enc.Encode(text)
	}
	return vocab.Pad(seqs, p.enc.MaxLen(), p.pad), nil
}

// Predict runs every member on the padded batch. Result[g] is member g's output;
// any member failure fails the whole call.
func (p *Predictor) Predict(ctx context.Context, texts []string) (Result, error) {
	ctx, span := tracer.Start(ctx, "ensemble.Predict")
	defer span.End()
	span.SetAttributes(
		attribute.Int("ensemble.size", len(p.models)),
		attribute.Int("ensemble.batch", len(texts)),
	)

	batch, err := p.Batch(texts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	result := make(Result, len(p.models))
	run := func(g int) error {
		out, err := p.invoke(ctx, g, batch)
		if err != nil {
			return err
		}
		result[g] = out
		return nil
	}

	if p.workers <= 1 {
		for g := range p.models {
			if err := run(g); err != nil {
				span.SetStatus(codes.Error, err.Error())
				return nil, err
			}
		}
		return result, nil
	}

	wp := pool.New().WithErrors().WithMaxGoroutines(p.workers)
	for g := range p.models {
		wp.Go(func() error { return run(g) })
	}
	if err := wp.Wait(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return result, nil
}

func (p *Predictor) invoke(ctx context.Context, g int, batch [][]int64) ([]float32, error) {
	_, span := tracer.Start(ctx, "ensemble.member")
	defer span.End()
	span.SetAttributes(attribute.Int("ensemble.member", g))

	start := time.Now()
	out, err := p.models[g].Score(batch)
	if p.observer != nil {
		p.observer(g, time.Since(start), err)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("%w: ensemble member %d: %w", inference.ErrModelInvocation, g, err)
	}
	return out, nil
}

// Close closes every member and returns the first error.
func (p *Predictor) Close() error {
	var first error
	for g, m := range p.models {
		if err := m.Close(); err != nil && first == nil {
			first = fmt.Errorf("failed to close ensemble member %d: %w", g, err)
		}
	}
	return first
}
