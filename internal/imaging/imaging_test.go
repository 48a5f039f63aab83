package imaging

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyedDaiam9101/imageable-service/internal/inference"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode(nil)
	assert.ErrorIs(t, err, inference.ErrInvalidInput)

	_, err = Decode([]byte("definitely not an image"))
	assert.ErrorIs(t, err, inference.ErrInvalidInput)
}

func TestPreprocess_BGRMeanSubtracted(t *testing.T) {
	img, err := Decode(solidPNG(t, 10, 6, color.RGBA{R: 200, G: 100, B: 50, A: 255}))
	require.NoError(t, err)

	pixels := Preprocess(img, 4)
	require.Len(t, pixels, 4*4*Channels)

	assert.InDelta(t, 50-103.939, pixels[0], 1e-3)
	assert.InDelta(t, 100-116.779, pixels[1], 1e-3)
	assert.InDelta(t, 200-123.68, pixels[2], 1e-3)
	// every pixel of a solid image is identical
	assert.Equal(t, pixels[:3], pixels[len(pixels)-3:])
}

func TestExtractor_Extract(t *testing.T) {
	model := inference.NewMockFeatureModel(4096)
	e, err := NewExtractor(model, 0)
	require.NoError(t, err)

	features, err := e.Extract(context.Background(), solidPNG(t, 32, 32, color.RGBA{A: 255}))
	require.NoError(t, err)
	assert.Len(t, features, 4096)
}

func TestExtractor_Failures(t *testing.T) {
	_, err := NewExtractor(nil, 0)
	require.Error(t, err)

	model := inference.NewMockFeatureModel(8)
	e, err := NewExtractor(model, 8)
	require.NoError(t, err)

	_, err = e.Extract(context.Background(), []byte{0x01})
	assert.ErrorIs(t, err, inference.ErrInvalidInput)

	model.ShouldError = true
	_, err = e.Extract(context.Background(), solidPNG(t, 8, 8, color.RGBA{A: 255}))
	assert.ErrorIs(t, err, inference.ErrModelInvocation)
}
