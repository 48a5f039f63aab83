// internal/inference/interface.go
package inference

// SequenceModel scores a batch of padded token sequences.
// This abstraction allows ensemble members to be mocked in tests and swapped between runtimes.
type SequenceModel interface {
	// Score runs the model on batch (each row already padded to the same length)
	// and returns the model output flattened in row-major order.
	Score(batch [][]int64) ([]float32, error)

	// Close releases any resources held by the model.
	Close() error
}

// CaptionModel predicts the next-word distribution for an image and a partial caption.
type CaptionModel interface {
	// Predict returns one score per vocabulary id for the word following seq.
	Predict(features []float32, seq []int64) ([]float32, error)

	// Close releases any resources held by the model.
	Close() error
}

// FeatureModel maps preprocessed image pixels to a fixed-length feature vector.
type FeatureModel interface {
	// Extract runs the model on pixels laid out as [height, width, channels].
	Extract(pixels []float32, height, width, channels int64) ([]float32, error)

	// Close releases any resources held by the model.
	Close() error
}
