package walker

import (
	"errors"
	"fmt"
)

var (
	ErrInitializationFailed = errors.New("walker: initialization failed")
	ErrOccupied             = errors.New("walker: cell already occupied")
	ErrInvalidConfig        = errors.New("walker: invalid config")
	ErrNilSpawner           = errors.New("walker: spawner is nil")
)

// InitializationError reports that randomized placement found no free cell
// within the attempt budget.
type InitializationError struct {
	Attempts int
	Size     float64
}

func (e *InitializationError) Error() string {
	return fmt.Sprintf("walker: no free cell in a cube of size %g after %d attempts", e.Size, e.Attempts)
}

func (e *InitializationError) Is(target error) bool {
	return target == ErrInitializationFailed
}
