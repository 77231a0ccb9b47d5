package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when caller input violates an invariant
	ErrValidation = errors.New("validation failed")

	// ErrStorage is returned when the storage engine fails
	ErrStorage = errors.New("storage failure")

	// ErrConsistency is returned when a multi-step write would leave mixed state
	ErrConsistency = errors.New("consistency violation")
)

// StorageError wraps a driver or transaction failure with the operation that hit it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Storage wraps err as a StorageError. A nil err stays nil.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// ConsistencyError reports a write that was rolled back because it would have
// broken a cross-entity invariant.
type ConsistencyError struct {
	Op     string
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency: %s: %s", e.Op, e.Detail)
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }
