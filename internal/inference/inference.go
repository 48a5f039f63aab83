// internal/inference/inference.go
package inference

import (
	"fmt"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	envMu   sync.Mutex
	envRefs int
)

// InitializeRuntime loads the ONNX runtime shared library. Every successful call
// must be paired with DestroyRuntime.
func InitializeRuntime(libraryPath string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs == 0 {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("failed to initialize ONNX environment: %w", err)
		}
	}
	envRefs++
	return nil
}

// DestroyRuntime releases the runtime once the last user is done with it.
func DestroyRuntime() error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs == 0 {
		return nil
	}
	envRefs--
	if envRefs > 0 {
		return nil
	}
	return ort.DestroyEnvironment()
}

// session wraps an ONNX runtime session. The runtime does not promise safe
// concurrent Run calls on one session, so each handle carries its own lock.
type session struct {
	mu      sync.Mutex
	path    string
	s       *ort.DynamicAdvancedSession
	inputs  []ort.InputOutputInfo
	output  ort.InputOutputInfo
	outSize int64
}

// openSession probes the model's inputs and first output and opens a dynamic
// session. outSize is the per-row output width used when the model leaves it dynamic.
func openSession(modelPath string, wantInputs int, outSize int64) (*session, error) {
	ins, outs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read model IO info %s: %w", modelPath, err)
	}
	if len(ins) < wantInputs {
		return nil, fmt.Errorf("model %s has %d inputs, want %d", modelPath, len(ins), wantInputs)
	}
	if len(outs) == 0 {
		return nil, fmt.Errorf("model %s has no outputs", modelPath)
	}
	ins = ins[:wantInputs]

	inputNames := make([]string, len(ins))
	for i, in := range ins {
		inputNames[i] = in.Name
	}
	out := outs[0]

	if dims := out.Dimensions; len(dims) >= 2 {
		width := int64(1)
		for _, d := range dims[1:] {
			if d <= 0 {
				width = -1
				break
			}
			width *= d
		}
		if width > 0 {
			outSize = width
		}
	}
	if outSize <= 0 {
		return nil, fmt.Errorf("model %s has a dynamic output width and none was configured", modelPath)
	}

	s, err := ort.NewDynamicAdvancedSession(modelPath, inputNames, []string{out.Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX session for %s: %w", modelPath, err)
	}

	return &session{
		path:    modelPath,
		s:       s,
		inputs:  ins,
		output:  out,
		outSize: outSize,
	}, nil
}

// run executes the session with inputs and returns a copy of the output for
// batch rows.
func (s *session) run(inputs []ort.Value, batch int64) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.s == nil {
		return nil, fmt.Errorf("%w: session for %s is closed", ErrNotLoaded, s.path)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](ort.NewShape(batch, s.outSize))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create output tensor: %w", ErrModelInvocation, err)
	}
	defer outputTensor.Destroy()

	if err := s.s.Run(inputs, []ort.Value{outputTensor}); err != nil {
		return nil, fmt.Errorf("%w: inference failed for %s: %w", ErrModelInvocation, filepath.Base(s.path), err)
	}

	data := outputTensor.GetData()
	result := make([]float32, len(data))
	copy(result, data)
	return result, nil
}

func (s *session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.s == nil {
		return nil
	}
	err := s.s.Destroy()
	s.s = nil
	if err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// newInputTensor builds a [rows, cols] tensor of the element type the model input
// declares. Keras exports usually take float32 even for token ids.
func newInputTensor(info ort.InputOutputInfo, rows, cols int64, ids []int64, floats []float32) (ort.Value, error) {
	shape := ort.NewShape(rows, cols)

	switch info.DataType {
	case ort.TensorElementDataTypeInt64:
		if ids == nil {
			ids = make([]int64, len(floats))
			for i, f := range floats {
				ids[i] = int64(f)
			}
		}
		return ort.NewTensor(shape, ids)
	case ort.TensorElementDataTypeInt32:
		data := make([]int32, 0, rows*cols)
		if ids != nil {
			for _, id := range ids {
				data = append(data, int32(id))
			}
		} else {
			for _, f := range floats {
				data = append(data, int32(f))
			}
		}
		return ort.NewTensor(shape, data)
	default:
		if floats == nil {
			floats = make([]float32, len(ids))
			for i, id := range ids {
				floats[i] = float32(id)
			}
		}
		return ort.NewTensor(shape, floats)
	}
}

// ONNXSequenceModel is one ensemble member backed by an ONNX session.
type ONNXSequenceModel struct {
	sess *session
}

// NewSequenceModel opens the model at modelPath. outputDim is only consulted when
// the model's output width is dynamic.
func NewSequenceModel(modelPath string, outputDim int) (*ONNXSequenceModel, error) {
	sess, err := openSession(modelPath, 1, int64(outputDim))
	if err != nil {
		return nil, err
	}
	return &ONNXSequenceModel{sess: sess}, nil
}

// Score runs the model on a padded batch and returns the flattened output.
func (m *ONNXSequenceModel) Score(batch [][]int64) ([]float32, error) {
	rows := int64(len(batch))
	if rows == 0 {
		return nil, fmt.Errorf("%w: empty batch", ErrInvalidInput)
	}
	cols := int64(len(batch[0]))

	flat := make([]int64, 0, rows*cols)
	for i, row := range batch {
		if int64(len(row)) != cols {
			return nil, fmt.Errorf("%w: row %d has length %d, expected %d", ErrInvalidInput, i, len(row), cols)
		}
		flat = append(flat, row...)
	}

	input, err := newInputTensor(m.sess.inputs[0], rows, cols, flat, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create input tensor: %w", ErrModelInvocation, err)
	}
	defer input.Destroy()

	return m.sess.run([]ort.Value{input}, rows)
}

// Close releases the ONNX session.
func (m *ONNXSequenceModel) Close() error {
	return m.sess.close()
}

// LoadEnsemble opens size models named by pattern (e.g. "model_%d.onnx") in dir,
// in index order. If any model fails to load, the ones already opened are closed.
func LoadEnsemble(dir, pattern string, size, outputDim int) ([]SequenceModel, error) {
	models := make([]SequenceModel, 0, size)
	for g := 0; g < size; g++ {
		path := filepath.Join(dir, fmt.Sprintf(pattern, g))
		m, err := NewSequenceModel(path, outputDim)
		if err != nil {
			for _, loaded := range models {
				loaded.Close()
			}
			return nil, fmt.Errorf("failed to load ensemble member %d: %w", g, err)
		}
		models = append(models, m)
	}
	return models, nil
}

// ONNXCaptionModel predicts next-word distributions with an ONNX session whose
// first input is the image feature vector and second input the padded sequence.
type ONNXCaptionModel struct {
	sess *session
}

// NewCaptionModel opens the caption model. vocabSize is only consulted when the
// model's output width is dynamic.
func NewCaptionModel(modelPath string, vocabSize int) (*ONNXCaptionModel, error) {
	sess, err := openSession(modelPath, 2, int64(vocabSize))
	if err != nil {
		return nil, err
	}
	return &ONNXCaptionModel{sess: sess}, nil
}

// Predict returns the next-word distribution for one image and one sequence.
func (m *ONNXCaptionModel) Predict(features []float32, seq []int64) ([]float32, error) {
	if len(features) == 0 || len(seq) == 0 {
		return nil, fmt.Errorf("%w: empty features or sequence", ErrInvalidInput)
	}

	featTensor, err := newInputTensor(m.sess.inputs[0], 1, int64(len(features)), nil, features)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create input tensor: %w", ErrModelInvocation, err)
	}
	defer featTensor.Destroy()

	seqTensor, err := newInputTensor(m.sess.inputs[1], 1, int64(len(seq)), seq, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create input tensor: %w", ErrModelInvocation, err)
	}
	defer seqTensor.Destroy()

	return m.sess.run([]ort.Value{featTensor, seqTensor}, 1)
}

// Close releases the ONNX session.
func (m *ONNXCaptionModel) Close() error {
	return m.sess.close()
}

// ONNXFeatureModel is an image backbone (VGG16 without its classifier) exported to ONNX.
type ONNXFeatureModel struct {
	sess *session
}

// NewFeatureModel opens the extractor. featureDim is only consulted when the
// model's output width is dynamic.
func NewFeatureModel(modelPath string, featureDim int) (*ONNXFeatureModel, error) {
	sess, err := openSession(modelPath, 1, int64(featureDim))
	if err != nil {
		return nil, err
	}
	return &ONNXFeatureModel{sess: sess}, nil
}

// Extract runs the backbone on one image laid out as [height, width, channels].
func (m *ONNXFeatureModel) Extract(pixels []float32, height, width, channels int64) ([]float32, error) {
	if int64(len(pixels)) != height*width*channels || len(pixels) == 0 {
		return nil, fmt.Errorf("%w: pixel buffer has wrong size: got %d, expected %d",
			ErrInvalidInput, len(pixels), height*width*channels)
	}

	input, err := ort.NewTensor(ort.NewShape(1, height, width, channels), pixels)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create input tensor: %w", ErrModelInvocation, err)
	}
	defer input.Destroy()

	return m.sess.run([]ort.Value{input}, 1)
}

// Close releases the ONNX session.
func (m *ONNXFeatureModel) Close() error {
	return m.sess.close()
}

// Ensure the ONNX models implement their interfaces at compile time
var (
	_ SequenceModel = (*ONNXSequenceModel)(nil)
	_ CaptionModel  = (*ONNXCaptionModel)(nil)
	_ FeatureModel  = (*ONNXFeatureModel)(nil)
)
