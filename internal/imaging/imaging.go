// Package imaging decodes uploaded images and turns them into feature vectors.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	"github.com/SyedDaiam9101/imageable-service/internal/inference"
)

var tracer = otel.Tracer("github.com/SyedDaiam9101/imageable-service/internal/imaging")

// DefaultSize is the square input size of the VGG16 backbone.
const DefaultSize = 224

// Channels is the number of colour channels fed to the backbone.
const Channels = 3

// ImageNet channel means in BGR order, subtracted by VGG16's "caffe" preprocessing.
var bgrMeans = [Channels]float32{103.939, 116.779, 123.68}

// Decode parses jpeg, png, gif or webp data.
func Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty image", inference.ErrInvalidInput)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable image: %w", inference.ErrInvalidInput, err)
	}
	return img, nil
}

// Preprocess resizes img to size x size with nearest-neighbour sampling and returns
// BGR mean-subtracted pixels laid out as [height, width, channels].
func Preprocess(img image.Image, size int) []float32 {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)

	pixels := make([]float32, 0, size*size*Channels)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			off := dst.PixOffset(x, y)
			r, g, b := dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2]
			pixels = append(pixels,
				float32(b)-bgrMeans[0],
				float32(g)-bgrMeans[1],
				float32(r)-bgrMeans[2],
			)
		}
	}
	return pixels
}

// Extractor turns encoded image bytes into a feature vector.
type Extractor struct {
	model inference.FeatureModel
	size  int
}

// NewExtractor creates an Extractor. size <= 0 selects DefaultSize.
func NewExtractor(model inference.FeatureModel, size int) (*Extractor, error) {
	if model == nil {
		return nil, fmt.Errorf("feature model is nil")
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &Extractor{model: model, size: size}, nil
}

// Extract decodes data and runs the backbone on it.
func (e *Extractor) Extract(ctx context.Context, data []byte) ([]float32, error) {
	_, span := tracer.Start(ctx, "imaging.Extract")
	defer span.End()

	img, err := Decode(data)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	s := int64(e.size)
	features, err := e.model.Extract(Preprocess(img, e.size), s, s, Channels)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("feature extraction failed: %w", err)
	}
	return features, nil
}

// Close closes the backbone.
func (e *Extractor) Close() error {
	return e.model.Close()
}
