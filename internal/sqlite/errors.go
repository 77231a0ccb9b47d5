package sqlite

import (
	"fmt"
	"strings"

	"github.com/rpggio/ideabox/internal/repository"
)

func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

func isNotNullViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "NOT NULL constraint failed")
}

// writeError classifies a failed write. Schema constraint violations mean the
// caller handed over an invalid record; anything else is a storage failure.
func writeError(op string, err error) error {
	if isCheckViolation(err) || isNotNullViolation(err) {
		return fmt.Errorf("%w: %s: %v", repository.ErrValidation, op, err)
	}
	return repository.Storage(op, err)
}
