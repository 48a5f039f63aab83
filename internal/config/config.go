// internal/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/SyedDaiam9101/imageable-service/internal/vocab"
)

// EnsembleConfig describes the text classifier ensemble.
type EnsembleConfig struct {
	Vocabulary   string `mapstructure:"vocabulary"`
	ModelDir     string `mapstructure:"model_dir"`
	ModelPattern string `mapstructure:"model_pattern"`
	Size         int    `mapstructure:"size"`
	MaxLen       int    `mapstructure:"max_len"`
	OutputDim    int    `mapstructure:"output_dim"`
	Workers      int    `mapstructure:"workers"`
	Padding      string `mapstructure:"padding"`
}

// CaptionConfig describes the captioning model and its image backbone.
type CaptionConfig struct {
	Vocabulary string `mapstructure:"vocabulary"`
	Model      string `mapstructure:"model"`
	Extractor  string `mapstructure:"extractor"`
	MaxLength  int    `mapstructure:"max_length"`
	VocabSize  int    `mapstructure:"vocab_size"`
	FeatureDim int    `mapstructure:"feature_dim"`
	ImageSize  int    `mapstructure:"image_size"`
	StartToken string `mapstructure:"start_token"`
	EndToken   string `mapstructure:"end_token"`
	Padding    string `mapstructure:"padding"`
}

// RedisConfig describes the optional result cache.
type RedisConfig struct {
	Addr string        `mapstructure:"addr"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// Config holds all configuration for the service
type Config struct {
	// Server configuration
	GRPCPort int `mapstructure:"grpc_port"`
	HTTPPort int `mapstructure:"http_port"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// ONNX runtime shared library; empty uses the platform default
	ONNXLibrary string `mapstructure:"onnx_library"`

	Ensemble EnsembleConfig `mapstructure:"ensemble"`
	Caption  CaptionConfig  `mapstructure:"caption"`
	Redis    RedisConfig    `mapstructure:"redis"`

	// OpenTelemetry configuration
	OTELEnabled  bool   `mapstructure:"otel_enabled"`
	OTELEndpoint string `mapstructure:"otel_endpoint"`

	// Feature flags
	UseMock bool `mapstructure:"use_mock"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("grpc_port", 50051)
	v.SetDefault("http_port", 5005)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("onnx_library", "")

	v.SetDefault("ensemble.vocabulary", "tokenizer.json")
	v.SetDefault("ensemble.model_dir", "models")
	v.SetDefault("ensemble.model_pattern", "model_%d.onnx")
	v.SetDefault("ensemble.size", 10)
	v.SetDefault("ensemble.max_len", 0)
	v.SetDefault("ensemble.output_dim", 1)
	v.SetDefault("ensemble.workers", 4)
	v.SetDefault("ensemble.padding", "post")

	v.SetDefault("caption.vocabulary", "caption_tokenizer.json")
	v.SetDefault("caption.model", "caption_model.onnx")
	v.SetDefault("caption.extractor", "vgg16_fc2.onnx")
	v.SetDefault("caption.max_length", 35)
	v.SetDefault("caption.vocab_size", 0)
	v.SetDefault("caption.feature_dim", 4096)
	v.SetDefault("caption.image_size", 224)
	v.SetDefault("caption.start_token", "startseq")
	v.SetDefault("caption.end_token", "endseq")
	v.SetDefault("caption.padding", "pre")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("otel_enabled", false)
	v.SetDefault("otel_endpoint", "")
	v.SetDefault("use_mock", false)
}

// Load loads configuration from environment variables and a config file.
// configPath selects a specific file; when empty the usual locations are searched
// and a missing file is not an error.
// Priority (highest to lowest): env vars > config file > defaults. Flags are
// applied by the caller on the returned Config.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Environment variable configuration
	v.SetEnvPrefix("IMAGEABLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also read OTEL standard env vars
	v.BindEnv("otel_endpoint", "IMAGEABLE_OTEL_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/imageable-service/")
		v.AddConfigPath("$HOME/.imageable-service")

		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				// Config file was found but another error occurred
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.OTELEndpoint != "" {
		cfg.OTELEnabled = true
	}

	return &cfg, nil
}

// EnsemblePadding returns the parsed ensemble padding side.
func (c *Config) EnsemblePadding() (vocab.Side, error) {
	return vocab.ParseSide(c.Ensemble.Padding)
}

// CaptionPadding returns the parsed caption padding side.
func (c *Config) CaptionPadding() (vocab.Side, error) {
	return vocab.ParseSide(c.Caption.Padding)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GRPCPort <= 0 || c.GRPCPort > 65535 {
		return fmt.Errorf("invalid grpc port: %d", c.GRPCPort)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http port: %d", c.HTTPPort)
	}
	if c.GRPCPort == c.HTTPPort {
		return fmt.Errorf("grpc_port and http_port must be different")
	}
	if c.Ensemble.Size <= 0 {
		return fmt.Errorf("invalid ensemble size: %d", c.Ensemble.Size)
	}
	if c.Ensemble.MaxLen < 0 {
		return fmt.Errorf("invalid ensemble max_len: %d", c.Ensemble.MaxLen)
	}
	if c.Caption.MaxLength <= 0 {
		return fmt.Errorf("invalid caption max_length: %d", c.Caption.MaxLength)
	}
	if c.Caption.StartToken == "" || c.Caption.EndToken == "" {
		return fmt.Errorf("caption start_token and end_token are required")
	}
	if _, err := c.EnsemblePadding(); err != nil {
		return fmt.Errorf("ensemble: %w", err)
	}
	if _, err := c.CaptionPadding(); err != nil {
		return fmt.Errorf("caption: %w", err)
	}
	if c.UseMock {
		return nil
	}
	if c.Ensemble.Vocabulary == "" || c.Ensemble.ModelDir == "" || c.Ensemble.ModelPattern == "" {
		return fmt.Errorf("ensemble vocabulary, model_dir and model_pattern are required when not using mock inference")
	}
	if c.Caption.Vocabulary == "" || c.Caption.Model == "" || c.Caption.Extractor == "" {
		return fmt.Errorf("caption vocabulary, model and extractor are required when not using mock inference")
	}
	return nil
}
