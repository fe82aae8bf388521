package scheduler

import (
	"fmt"

	"github.com/napolitain/lacuna-upgrader/internal/models"
)

// ErrQueueFull aborts the current colony when an upgrade error matches it
var ErrQueueFull = models.ErrQueueFull

// UnknownKindError is returned when no upgrade handler is registered for a
// building's kind.
type UnknownKindError struct {
	Kind models.Kind
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("no upgrade handler registered for kind %q", e.Kind)
}
