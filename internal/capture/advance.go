package capture

import (
	"fmt"

	"github.com/go-vgo/robotgo"

	"github.com/souljazzfunk/ocr-kindle/internal/config"
)

// Advancer turns the page in whichever reader application has focus.
type Advancer interface {
	Advance() error
}

// KeyAdvancer sends an arrow-key tap to the focused application.
type KeyAdvancer struct {
	key string
}

// NewKeyAdvancer maps the page direction to the matching arrow key.
func NewKeyAdvancer(direction config.Direction) *KeyAdvancer {
	key := "right"
	if direction == config.Backward {
		key = "left"
	}
	return &KeyAdvancer{key: key}
}

// Advance taps the arrow key once.
func (a *KeyAdvancer) Advance() error {
	if err := robotgo.KeyTap(a.key); err != nil {
		return fmt.Errorf("send %s-arrow key: %w", a.key, err)
	}
	return nil
}
