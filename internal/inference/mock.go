// internal/inference/mock.go
package inference

import (
	"fmt"
	"sync"
)

// MockSequenceModel is a mock ensemble member for testing.
// It returns DefaultScores for every row without requiring the ONNX shared library.
type MockSequenceModel struct {
	mu sync.Mutex
	// DefaultScores are the values returned for each row of the batch
	DefaultScores []float32
	// ShouldError if true, Score will return an error
	ShouldError bool
	// ErrorMessage is the error message to return when ShouldError is true
	ErrorMessage string
	// callCount tracks the number of times Score was called
	callCount int
	lastBatch [][]int64
}

// NewMockSequenceModel creates a mock member returning scores for every row.
func NewMockSequenceModel(scores ...float32) *MockSequenceModel {
	if len(scores) == 0 {
		scores = []float32{0.5}
	}
	return &MockSequenceModel{DefaultScores: scores}
}

// Score returns DefaultScores repeated once per row.
func (m *MockSequenceModel) Score(batch [][]int64) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callCount++
	m.lastBatch = make([][]int64, len(batch))
	for i, row := range batch {
		m.lastBatch[i] = append([]int64(nil), row...)
	}

	if m.ShouldError {
		if m.ErrorMessage != "" {
			return nil, fmt.Errorf("%w: %s", ErrModelInvocation, m.ErrorMessage)
		}
		return nil, fmt.Errorf("%w: mock inference error", ErrModelInvocation)
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}

	result := make([]float32, 0, len(batch)*len(m.DefaultScores))
	for range batch {
		result = append(result, m.DefaultScores...)
	}
	return result, nil
}

// SetError configures the mock to return an error on subsequent calls
func (m *MockSequenceModel) SetError(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShouldError = true
	m.ErrorMessage = msg
}

// CallCount returns the number of Score calls.
func (m *MockSequenceModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// LastBatch returns a copy of the most recent batch.
func (m *MockSequenceModel) LastBatch() [][]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastBatch
}

// Close is a no-op for the mock implementation
func (m *MockSequenceModel) Close() error { return nil }

// MockCaptionModel predicts a scripted id at each step as a one-hot distribution.
type MockCaptionModel struct {
	mu sync.Mutex
	// VocabSize is the length of every returned distribution.
	VocabSize int
	// Script holds the id chosen at each call; the last id repeats once exhausted.
	Script []int64
	// ShouldError if true, Predict will return an error
	ShouldError bool
	callCount   int
	sequences   [][]int64
}

// NewMockCaptionModel creates a mock that emits script one id per step.
func NewMockCaptionModel(vocabSize int, script ...int64) *MockCaptionModel {
	return &MockCaptionModel{VocabSize: vocabSize, Script: script}
}

// Predict returns a distribution peaking at the next scripted id. Ids outside
// the distribution produce a uniform distribution, whose argmax is id 0.
func (m *MockCaptionModel) Predict(features []float32, seq []int64) ([]float32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	step := m.callCount
	m.callCount++
	m.sequences = append(m.sequences, append([]int64(nil), seq...))

	if m.ShouldError {
		return nil, fmt.Errorf("%w: mock caption error", ErrModelInvocation)
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: empty features", ErrInvalidInput)
	}

	dist := make([]float32, m.VocabSize)
	if len(m.Script) == 0 {
		return dist, nil
	}
	if step >= len(m.Script) {
		step = len(m.Script) - 1
	}
	if id := m.Script[step]; id >= 0 && id < int64(m.VocabSize) {
		dist[id] = 1
	}
	return dist, nil
}

// CallCount returns the number of Predict calls.
func (m *MockCaptionModel) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Sequences returns the padded sequences seen so far, one per call.
func (m *MockCaptionModel) Sequences() [][]int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sequences
}

// Close is a no-op for the mock implementation
func (m *MockCaptionModel) Close() error { return nil }

// MockFeatureModel returns a constant feature vector of length Dim.
type MockFeatureModel struct {
	Dim         int
	Value       float32
	ShouldError bool
}

// NewMockFeatureModel creates a mock extractor.
func NewMockFeatureModel(dim int) *MockFeatureModel {
	return &MockFeatureModel{Dim: dim, Value: 0.1}
}

// Extract validates the pixel buffer and returns a constant vector.
func (m *MockFeatureModel) Extract(pixels []float32, height, width, channels int64) ([]float32, error) {
	if m.ShouldError {
		return nil, fmt.Errorf("%w: mock extractor error", ErrModelInvocation)
	}
	if int64(len(pixels)) != height*width*channels || len(pixels) == 0 {
		return nil, fmt.Errorf("%w: pixel buffer has wrong size: got %d, expected %d",
			ErrInvalidInput, len(pixels), height*width*channels)
	}
	out := make([]float32, m.Dim)
	for i := range out {
		out[i] = m.Value
	}
	return out, nil
}

// Close is a no-op for the mock implementation
func (m *MockFeatureModel) Close() error { return nil }

// Ensure mocks implement the model interfaces at compile time
var (
	_ SequenceModel = (*MockSequenceModel)(nil)
	_ CaptionModel  = (*MockCaptionModel)(nil)
	_ FeatureModel  = (*MockFeatureModel)(nil)
)
