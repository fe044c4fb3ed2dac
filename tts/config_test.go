package tts

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.GCloudToken = "test-token"
	cfg.GCloudLanguage = "en-US"
	cfg.GCloudVoice = "en-US-Standard-A"
	cfg.OutputDevice = "Speakers"
	return cfg
}

func TestDefaultConfigLimits(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected 30s request timeout, got %v", cfg.RequestTimeout)
	}
	if cfg.MaxResponseMB != 32 {
		t.Errorf("Expected 32 MB response cap, got %d", cfg.MaxResponseMB)
	}
	if cfg.FontSize <= 0 || cfg.Width <= 0 {
		t.Errorf("Expected positive geometry defaults, got font_size=%v width=%v", cfg.FontSize, cfg.Width)
	}
}

func TestValidateAcceptsCompleteConfig(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got error: %v", err)
	}
}

func TestValidateReportsAllMissingFields(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error for empty config")
	}
	if !errors.Is(err, ErrMissingConfig) {
		t.Errorf("Expected ErrMissingConfig, got %v", err)
	}
	for _, field := range []string{"gcloud_token", "gcloud_language", "gcloud_voice", "output_device"} {
		if !strings.Contains(err.Error(), field) {
			t.Errorf("Expected error to name %q, got %q", field, err.Error())
		}
	}
}

func TestValidateRejectsBadLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero font size", func(c *Config) { c.FontSize = 0 }},
		{"negative width", func(c *Config) { c.Width = -1 }},
		{"sub-second timeout", func(c *Config) { c.RequestTimeout = 100 * time.Millisecond }},
		{"zero response cap", func(c *Config) { c.MaxResponseMB = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestValidateToleratesOddLanguageTag(t *testing.T) {
	// An unparseable tag only warns; the provider is the authority.
	cfg := validConfig()
	cfg.GCloudLanguage = "not a tag!!"
	if err := cfg.Validate(); err != nil {
		t.Errorf("Odd language tag should not fail validation, got %v", err)
	}
}

func TestApplyEnvOverridesFileValues(t *testing.T) {
	t.Setenv("SAYLINE_GCLOUD_TOKEN", "env-token")
	t.Setenv("SAYLINE_OUTPUT_DEVICE", "Env Device")
	t.Setenv("SAYLINE_REQUEST_TIMEOUT", "5s")

	cfg := validConfig()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}
	if cfg.GCloudToken != "env-token" {
		t.Errorf("Expected env token to win, got %q", cfg.GCloudToken)
	}
	if cfg.OutputDevice != "Env Device" {
		t.Errorf("Expected env device to win, got %q", cfg.OutputDevice)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("Expected 5s timeout from env, got %v", cfg.RequestTimeout)
	}
	// Untouched fields keep their prior values.
	if cfg.GCloudVoice != "en-US-Standard-A" {
		t.Errorf("Expected voice to be untouched, got %q", cfg.GCloudVoice)
	}
}
