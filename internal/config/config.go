package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Direction is the page-turn direction for a capture run.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// Margins are non-negative pixel insets applied to the display bounds so the
// capture region covers only the reading area.
type Margins struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Config carries every tunable the pipeline reads. It is built once per
// invocation from environment and flags and never mutated afterwards.
type Config struct {
	// Capture
	Direction           Direction
	MaxPages            int
	Margins             Margins
	SettleDelay         time.Duration
	SimilarityThreshold float64
	DuplicateRunLength  int

	// OCR
	Provider    string
	Model       string
	Temperature float64
	Concurrency int

	// Output
	OutputRoot string
	SyncFolder string
	SkipPDF    bool
	SkipSync   bool
}

// Defaults returns a Config populated from the environment with the reference
// values filled in for anything unset.
func Defaults() Config {
	return Config{
		Direction:           Forward,
		MaxPages:            50,
		SettleDelay:         1500 * time.Millisecond,
		SimilarityThreshold: envFloat("SIMILARITY_THRESHOLD", 0.95),
		DuplicateRunLength:  envInt("DUPLICATE_RUN_LENGTH", 3),
		Provider:            envOr("OCR_PROVIDER", "gemini"),
		Temperature:         0.1,
		Concurrency:         1,
		OutputRoot:          envOr("CAPTURE_ROOT", "."),
		SyncFolder:          os.Getenv("DRIVE_SYNC_FOLDER"),
	}
}

// DefaultModel returns the model used when none is configured, per provider.
func DefaultModel(provider string) string {
	switch provider {
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-2.5-flash"
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	default:
		return ""
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.MaxPages < 1 {
		return fmt.Errorf("max pages must be at least 1, got %d", c.MaxPages)
	}
	if c.Direction != Forward && c.Direction != Backward {
		return fmt.Errorf("unknown page direction %q", c.Direction)
	}
	if c.Margins.Top < 0 || c.Margins.Bottom < 0 || c.Margins.Left < 0 || c.Margins.Right < 0 {
		return fmt.Errorf("margins must be non-negative")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("similarity threshold must be in (0,1], got %g", c.SimilarityThreshold)
	}
	if c.DuplicateRunLength < 1 {
		return fmt.Errorf("duplicate run length must be at least 1, got %d", c.DuplicateRunLength)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}
