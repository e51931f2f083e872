package config

import (
	"errors"
	"fmt"
)

// Validate checks a bench configuration for usable values.
func Validate(cfg *BenchConfig) error {
	if cfg == nil {
		return errors.New("config is nil")
	}
	if cfg.BufferSize <= 0 {
		return fmt.Errorf("bufferSize must be positive, got %d", cfg.BufferSize)
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d", cfg.Iterations)
	}
	return nil
}
