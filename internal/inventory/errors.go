package inventory

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidJSON    = errors.New("invalid JSON")
	ErrInvalidPayload = errors.New("invalid payload")
	ErrStorageRead    = errors.New("failed to read inventory")
	ErrStorageWrite   = errors.New("failed to write inventory")
)

// ValidationError rejects a whole batch. Details holds one message per
// broken rule, prefixed with the offending item's index.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Details, "; "))
}
