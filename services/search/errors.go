// File: services/search/errors.go
package search

import (
	"errors"
	"fmt"

	"farewise/models"
)

// ErrNoProvidersAvailable means every discovered provider failed or returned
// nothing usable. Callers translate it into a retryable user-facing message.
var ErrNoProvidersAvailable = errors.New("no providers returned results")

// PreconditionError is returned when a search is requested before the intent
// is complete.
type PreconditionError struct {
	Missing []models.Slot
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("intent incomplete, missing slots: %v", e.Missing)
}

func NewPreconditionError(missing []models.Slot) error {
	return &PreconditionError{Missing: missing}
}
