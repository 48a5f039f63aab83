package cache

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredictionKey(t *testing.T) {
	a := PredictionKey([]string{"ab", "c"})
	b := PredictionKey([]string{"a", "bc"})
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, PredictionKey([]string{"ab", "c"}))
	assert.True(t, strings.HasPrefix(a, "imageable:predict:"))
}

func TestCaptionKey(t *testing.T) {
	k := CaptionKey([]byte{1, 2, 3})
	assert.True(t, strings.HasPrefix(k, "imageable:caption:"))
	assert.Len(t, strings.TrimPrefix(k, "imageable:caption:"), 64)
	assert.NotEqual(t, k, CaptionKey([]byte{1, 2, 4}))
}

func TestNilCache(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	_, _, err := c.GetCaption(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, c.SetCaption(ctx, "k", "v"))
	_, _, err = c.GetPredictions(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, c.SetPredictions(ctx, "k", nil))
	assert.NoError(t, c.Close())
}

func TestRedisRoundTrip(t *testing.T) {
	addr := os.Getenv("IMAGEABLE_TEST_REDIS")
	if addr == "" {
		t.Skip("Skipping Redis test: IMAGEABLE_TEST_REDIS not set")
	}

	ctx := context.Background()
	c, err := New(ctx, addr, time.Minute)
	require.NoError(t, err)
	defer c.Close()

	key := CaptionKey([]byte(t.Name()))
	_, ok, err := c.GetCaption(ctx, key+":missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.SetCaption(ctx, key, "a cat sits"))
	got, ok, err := c.GetCaption(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a cat sits", got)

	pkey := PredictionKey([]string{t.Name()})
	want := [][]float32{{0.25, 0.75}, {1}}
	require.NoError(t, c.SetPredictions(ctx, pkey, want))
	preds, ok, err := c.GetPredictions(ctx, pkey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want, preds)
}
