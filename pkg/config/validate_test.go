package config

import (
	"strings"
	"testing"

	"vanishing-hq/vanishing/pkg/retention"
)

func TestValidate_DefaultConfig(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Errorf("expected default config to pass validation, got error: %v", err)
	}
}

func TestValidate_Logging(t *testing.T) {
	tests := []struct {
		name       string
		logging    LoggingConfig
		wantError  bool
		errorField string
	}{
		{name: "valid", logging: LoggingConfig{Level: "info", Format: "text"}},
		{name: "uppercase accepted", logging: LoggingConfig{Level: "DEBUG", Format: "JSON"}},
		{name: "bad level", logging: LoggingConfig{Level: "verbose", Format: "text"}, wantError: true, errorField: "logging.level"},
		{name: "bad format", logging: LoggingConfig{Level: "info", Format: "xml"}, wantError: true, errorField: "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Policy: retention.Default(), Logging: tt.logging}
			err := Validate(cfg)
			if (err != nil) != tt.wantError {
				t.Fatalf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError && !strings.Contains(err.Error(), tt.errorField) {
				t.Errorf("expected error for field %q, got %v", tt.errorField, err)
			}
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	err := Validate(&Config{Logging: LoggingConfig{Level: "x", Format: "y"}})
	if err == nil {
		t.Fatal("expected validation to fail")
	}

	validationErr, ok := err.(ValidationError)
	if !ok {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if len(validationErr.Errors) != 3 {
		t.Errorf("expected 3 errors, got %d", len(validationErr.Errors))
	}
	if !strings.Contains(validationErr.Error(), "validation failed with") {
		t.Errorf("error message should mention multiple errors: %s", validationErr.Error())
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != DefaultLoggingLevel {
		t.Errorf("expected level %q, got %q", DefaultLoggingLevel, cfg.Logging.Level)
	}
	if cfg.Logging.Format != DefaultLoggingFormat {
		t.Errorf("expected format %q, got %q", DefaultLoggingFormat, cfg.Logging.Format)
	}
	if !cfg.Policy.Equal(retention.Default()) {
		t.Errorf("expected default policy, got %v", cfg.Policy)
	}

	custom := &Config{Logging: LoggingConfig{Level: "warn", Format: "json"}}
	ApplyDefaults(custom)
	if custom.Logging.Level != "warn" || custom.Logging.Format != "json" {
		t.Errorf("ApplyDefaults overwrote explicit values: %+v", custom.Logging)
	}
}
