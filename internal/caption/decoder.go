// Package caption turns an image feature vector into a caption by greedy
// autoregressive decoding.
package caption

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/SyedDaiam9101/imageable-service/internal/inference"
	"github.com/SyedDaiam9101/imageable-service/internal/vocab"
)

var tracer = otel.Tracer("github.com/SyedDaiam9101/imageable-service/internal/caption")

const (
	DefaultStartToken = "startseq"
	DefaultEndToken   = "endseq"
	DefaultMaxLength  = 35
)

// Vocabulary is the part of the tokenizer the decoder needs.
type Vocabulary interface {
	Encode(text string) []int64
	WordFor(id int64) (string, bool)
}

// StopReason records why decoding ended.
type StopReason int

const (
	// StopMaxLength means the step limit was reached.
	StopMaxLength StopReason = iota
	// StopEndToken means the end token was generated.
	StopEndToken
	// StopUnknownID means the chosen id has no word.
	StopUnknownID
)

func (r StopReason) String() string {
	switch r {
	case StopEndToken:
		return "end_token"
	case StopUnknownID:
		return "unknown_id"
	default:
		return "max_length"
	}
}

// Observer is told about every model call; step counts from 1.
type Observer func(step int, elapsed time.Duration, err error)

// Options configure a Decoder.
type Options struct {
	// MaxLength bounds both the number of steps and the padded sequence length.
	MaxLength  int
	StartToken string
	EndToken   string
	// Padding must match the side the model was trained with.
	Padding vocab.PadOptions
	// Observer, when set, runs after each model call.
	Observer Observer
}

// DefaultOptions returns the settings the captioning model was trained with.
func DefaultOptions() Options {
	return Options{
		MaxLength:  DefaultMaxLength,
		StartToken: DefaultStartToken,
		EndToken:   DefaultEndToken,
		Padding:    vocab.PadOptions{Padding: vocab.Pre, Truncating: vocab.Pre},
	}
}

// Result is a finished decode.
type Result struct {
	Caption string
	// Words is the generated sequence including start and end tokens.
	Words []string
	Steps int
	Stop  StopReason
}

// Decoder is safe for concurrent use; each call owns its own state.
type Decoder struct {
	model inference.CaptionModel
	vocab Vocabulary
	opts  Options
}

// New creates a Decoder.
func New(model inference.CaptionModel, v Vocabulary, opts Options) (*Decoder, error) {
	if model == nil {
		return nil, fmt.Errorf("caption model is nil")
	}
	if v == nil {
		return nil, fmt.Errorf("vocabulary is nil")
	}
	if opts.MaxLength <= 0 {
		return nil, fmt.Errorf("invalid max length: %d", opts.MaxLength)
	}
	if opts.StartToken == "" || opts.EndToken == "" {
		return nil, fmt.Errorf("start and end tokens are required")
	}
	return &Decoder{model: model, vocab: v, opts: opts}, nil
}

// state is the working state of one decode call.
type state struct {
	words    []string
	step     int
	finished bool
	stop     StopReason
}

// Decode returns the caption for features.
func (d *Decoder) Decode(ctx context.Context, features []float32) (string, error) {
	res, err := d.Generate(ctx, features)
	if err != nil {
		return "", err
	}
	return res.Caption, nil
}

// Generate runs greedy decoding and reports how it ended. It performs at most
// MaxLength model calls.
func (d *Decoder) Generate(ctx context.Context, features []float32) (*Result, error) {
	_, span := tracer.Start(ctx, "caption.Generate")
	defer span.End()

	if len(features) == 0 {
		err := fmt.Errorf("%w: empty feature vector", inference.ErrInvalidInput)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	st := &state{words: []string{d.opts.StartToken}, stop: StopMaxLength}
	for st.step < d.opts.MaxLength && !st.finished {
		if err := d.advance(st, features); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	span.SetAttributes(
		attribute.Int("caption.steps", st.step),
		attribute.String("caption.stop", st.stop.String()),
	)
	return &Result{
		Caption: d.strip(st.words),
		Words:   st.words,
		Steps:   st.step,
		Stop:    st.stop,
	}, nil
}

// advance performs one decoding step.
func (d *Decoder) advance(st *state, features []float32) error {
	ids := d.vocab.Encode(strings.Join(st.words, " "))
	seq := vocab.PadSequence(ids, d.opts.MaxLength, d.opts.Padding)
	st.step++

	start := time.Now()
	dist, err := d.model.Predict(features, seq)
	if d.opts.Observer != nil {
		d.opts.Observer(st.step, time.Since(start), err)
	}
	if err != nil {
		return fmt.Errorf("%w: caption step %d: %w", inference.ErrModelInvocation, st.step, err)
	}
	id, ok := Argmax(dist)
	if !ok {
		return fmt.Errorf("%w: caption step %d: empty distribution", inference.ErrModelInvocation, st.step)
	}

	word, known := d.vocab.WordFor(int64(id))
	if !known {
		st.finished = true
		st.stop = StopUnknownID
		return nil
	}
	st.words = append(st.words, word)
	if word == d.opts.EndToken {
		st.finished = true
		st.stop = StopEndToken
	}
	return nil
}

// strip drops the start and end tokens and joins the remaining words.
func (d *Decoder) strip(words []string) string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if w == d.opts.StartToken || w == d.opts.EndToken {
			continue
		}
		kept = append(kept, w)
	}
	return strings.TrimSpace(strings.Join(kept, " "))
}

// Argmax returns the index of the greatest score; ties go to the lowest index
// and NaN never wins. It reports false for an empty or all-NaN distribution.
func Argmax(scores []float32) (int, bool) {
	best := -1
	var bestScore float32
	for i, s := range scores {
		if math.IsNaN(float64(s)) {
			continue
		}
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, best >= 0
}

// Close closes the underlying model.
func (d *Decoder) Close() error {
	return d.model.Close()
}
