package tts

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// Config is the resolved sayline configuration. It is loaded once before
// the core is constructed and immutable for the process lifetime.
//
// font_size, width, x and y are presentation hints consumed by the input
// surface; the remaining fields drive the synthesis pipeline.
type Config struct {
	FontSize float64 `mapstructure:"font_size" env:"SAYLINE_FONT_SIZE"`
	Width    float64 `mapstructure:"width" env:"SAYLINE_WIDTH"`
	X        float64 `mapstructure:"x" env:"SAYLINE_X"`
	Y        float64 `mapstructure:"y" env:"SAYLINE_Y"`

	GCloudToken    string `mapstructure:"gcloud_token" env:"SAYLINE_GCLOUD_TOKEN"`
	GCloudLanguage string `mapstructure:"gcloud_language" env:"SAYLINE_GCLOUD_LANGUAGE"`
	GCloudVoice    string `mapstructure:"gcloud_voice" env:"SAYLINE_GCLOUD_VOICE"`
	OutputDevice   string `mapstructure:"output_device" env:"SAYLINE_OUTPUT_DEVICE"`

	// RequestTimeout bounds the single synthesis round trip. Without it an
	// unresponsive endpoint would delay process exit indefinitely.
	RequestTimeout time.Duration `mapstructure:"request_timeout" env:"SAYLINE_REQUEST_TIMEOUT"`
	// MaxResponseMB caps how much of the provider response is read.
	MaxResponseMB int `mapstructure:"max_response_mb" env:"SAYLINE_MAX_RESPONSE_MB"`
}

// DefaultConfig returns a Config with defaults for the optional limits.
// The credential, voice and device fields have no defaults; they must come
// from the config file or environment.
func DefaultConfig() Config {
	return Config{
		FontSize:       24,
		Width:          600,
		RequestTimeout: 30 * time.Second,
		MaxResponseMB:  32,
	}
}

// ApplyEnv overlays SAYLINE_* environment variables onto the config.
// Environment values win over file values.
func (c *Config) ApplyEnv() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Validate checks structural presence of the required fields. Semantic
// correctness of the token and voice is left to the provider; a language
// code that does not parse as BCP-47 only logs a warning.
func (c *Config) Validate() error {
	missing := []string{}
	if strings.TrimSpace(c.GCloudToken) == "" {
		missing = append(missing, "gcloud_token")
	}
	if strings.TrimSpace(c.GCloudLanguage) == "" {
		missing = append(missing, "gcloud_language")
	}
	if strings.TrimSpace(c.GCloudVoice) == "" {
		missing = append(missing, "gcloud_voice")
	}
	if strings.TrimSpace(c.OutputDevice) == "" {
		missing = append(missing, "output_device")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingConfig, strings.Join(missing, ", "))
	}

	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive, got %v", c.FontSize)
	}
	if c.Width <= 0 {
		return fmt.Errorf("width must be positive, got %v", c.Width)
	}
	if c.RequestTimeout < time.Second {
		return fmt.Errorf("request_timeout must be at least 1s, got %v", c.RequestTimeout)
	}
	if c.MaxResponseMB < 1 {
		return fmt.Errorf("max_response_mb must be at least 1, got %d", c.MaxResponseMB)
	}

	if _, err := language.Parse(c.GCloudLanguage); err != nil {
		log.Warn("gcloud_language is not a recognizable BCP-47 tag",
			"language", c.GCloudLanguage, "err", err)
	}

	return nil
}
