package config

import (
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Defaults()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"single page budget", func(c *Config) { c.MaxPages = 1 }, false},
		{"zero pages", func(c *Config) { c.MaxPages = 0 }, true},
		{"negative pages", func(c *Config) { c.MaxPages = -3 }, true},
		{"backward direction", func(c *Config) { c.Direction = Backward }, false},
		{"unknown direction", func(c *Config) { c.Direction = "sideways" }, true},
		{"negative margin", func(c *Config) { c.Margins.Left = -1 }, true},
		{"threshold above one", func(c *Config) { c.SimilarityThreshold = 1.5 }, true},
		{"threshold zero", func(c *Config) { c.SimilarityThreshold = 0 }, true},
		{"run length zero", func(c *Config) { c.DuplicateRunLength = 0 }, true},
		{"concurrency zero", func(c *Config) { c.Concurrency = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultModel(t *testing.T) {
	tests := []struct {
		provider string
		empty    bool
	}{
		{"gemini", false},
		{"openai", false},
		{"ollama", false},
		{"unknown", true},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			model := DefaultModel(tt.provider)
			if (model == "") != tt.empty {
				t.Errorf("DefaultModel(%q) = %q", tt.provider, model)
			}
		})
	}
}

func TestDefaultsMatchReferenceBehavior(t *testing.T) {
	cfg := Defaults()
	if cfg.SimilarityThreshold != 0.95 {
		t.Errorf("Expected similarity threshold 0.95, got %g", cfg.SimilarityThreshold)
	}
	if cfg.DuplicateRunLength != 3 {
		t.Errorf("Expected duplicate run length 3, got %d", cfg.DuplicateRunLength)
	}
	if cfg.Direction != Forward {
		t.Errorf("Expected forward direction, got %q", cfg.Direction)
	}
}
