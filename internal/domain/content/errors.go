package content

import (
	"fmt"

	"github.com/rpggio/ideabox/internal/repository"
)

var (
	// ErrContentNotFound indicates the content item doesn't exist.
	ErrContentNotFound = fmt.Errorf("content %w", repository.ErrNotFound)
	// ErrEmptyContent indicates neither text nor a file was supplied.
	ErrEmptyContent = fmt.Errorf("%w: content needs text or a file", repository.ErrValidation)
	// ErrInvalidFile indicates a malformed or oversized attachment.
	ErrInvalidFile = fmt.Errorf("%w: invalid file attachment", repository.ErrValidation)
)
