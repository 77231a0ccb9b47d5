package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/ideabox/internal/repository"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps store errors to stable MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, repository.ErrValidation):
		return &APIError{Code: "VALIDATION_ERROR", Message: err.Error(), RecoveryHint: "Fix the arguments and retry"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the id with list_projects or list_content"}
	case errors.Is(err, repository.ErrConsistency):
		return &APIError{Code: "CONSISTENCY_ERROR", Message: err.Error(), RecoveryHint: "Nothing was changed; retry the operation"}
	case errors.Is(err, repository.ErrStorage):
		return &APIError{Code: "STORAGE_ERROR", Message: err.Error(), RecoveryHint: "Check that the database file is readable and writable"}
	default:
		return &APIError{Code: "INTERNAL_ERROR", Message: err.Error()}
	}
}
