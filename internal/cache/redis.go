// Package cache provides a tiny Redis client wrapper for prediction and caption results
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "imageable"

// DefaultTTL is used when New is given a non-positive ttl.
const DefaultTTL = 24 * time.Hour

// Cache wraps a Redis client for model result storage
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new Cache instance connected to the specified Redis address
// If addr is empty, defaults to localhost:6379
func New(ctx context.Context, addr string, ttl time.Duration) (*Cache, error) {
	if addr == "" {
		addr = "localhost:6379"
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	return &Cache{client: client, ttl: ttl}, nil
}

// PredictionKey returns the cache key for a description batch.
func PredictionKey(descriptions []string) string {
	h := sha256.New()
	for _, d := range descriptions {
		// length-prefix so ["ab","c"] and ["a","bc"] differ
		fmt.Fprintf(h, "%d:%s;", len(d), d)
	}
	return fmt.Sprintf("%s:predict:%s", keyPrefix, hex.EncodeToString(h.Sum(nil)))
}

// CaptionKey returns the cache key for an encoded image.
func CaptionKey(image []byte) string {
	sum := sha256.Sum256(image)
	return fmt.Sprintf("%s:caption:%s", keyPrefix, hex.EncodeToString(sum[:]))
}

// SetPredictions stores an ensemble result
func (c *Cache) SetPredictions(ctx context.Context, key string, predictions [][]float32) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache client is nil")
	}

	data, err := json.Marshal(predictions)
	if err != nil {
		return fmt.Errorf("failed to encode predictions: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set predictions %s: %w", key, err)
	}
	return nil
}

// GetPredictions retrieves an ensemble result. A missing key returns ok == false.
func (c *Cache) GetPredictions(ctx context.Context, key string) ([][]float32, bool, error) {
	if c == nil || c.client == nil {
		return nil, false, fmt.Errorf("cache client is nil")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil // Key does not exist
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get predictions %s: %w", key, err)
	}

	var predictions [][]float32
	if err := json.Unmarshal(data, &predictions); err != nil {
		return nil, false, fmt.Errorf("failed to decode predictions %s: %w", key, err)
	}
	return predictions, true, nil
}

// SetCaption stores a caption
func (c *Cache) SetCaption(ctx context.Context, key, caption string) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("cache client is nil")
	}
	if err := c.client.Set(ctx, key, caption, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set caption %s: %w", key, err)
	}
	return nil
}

// GetCaption retrieves a caption. A missing key returns ok == false.
func (c *Cache) GetCaption(ctx context.Context, key string) (string, bool, error) {
	if c == nil || c.client == nil {
		return "", false, fmt.Errorf("cache client is nil")
	}

	caption, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get caption %s: %w", key, err)
	}
	return caption, true, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c != nil && c.client != nil {
		return c.client.Close()
	}
	return nil
}
