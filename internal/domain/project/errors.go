package project

import (
	"fmt"

	"github.com/rpggio/ideabox/internal/repository"
)

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = fmt.Errorf("project %w", repository.ErrNotFound)
	// ErrInvalidName indicates a blank project name.
	ErrInvalidName = fmt.Errorf("%w: project name is required", repository.ErrValidation)
)
