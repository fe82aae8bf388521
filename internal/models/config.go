package models

import (
	"errors"
	"fmt"
)

// DefaultMaxTime is the default per-colony build queue budget (2 days)
const DefaultMaxTime = 2 * 24 * 60 * 60

// RunConfig holds the options of one upgrade run
type RunConfig struct {
	// DryRun logs what would be upgraded without touching the build queue.
	// The queue budget is not enforced in dry-run.
	DryRun bool
	// Skip is the name of a colony to leave alone
	Skip string
	// MaxTime stops a colony once its queued work reaches this many seconds
	MaxTime int
}

// DefaultRunConfig returns a non-dry run with the default budget
func DefaultRunConfig() RunConfig {
	return RunConfig{MaxTime: DefaultMaxTime}
}

// Validate rejects malformed run options
func (c RunConfig) Validate() error {
	if c.MaxTime <= 0 {
		return &ConfigError{Field: "max-time", Reason: fmt.Sprintf("must be positive, got %d", c.MaxTime)}
	}
	return nil
}

// ConfigError reports a malformed option. It is always raised before any
// colony is processed.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ErrQueueFull is matched (via errors.Is) by remote errors saying a
// colony's build queue has no room left.
var ErrQueueFull = errors.New("no room left in the build queue")
