package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by the service layer wraps one of these.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
	ErrConflict        = errors.New("conflict")
	ErrStorage         = errors.New("storage failure")
)

var (
	ErrTaskNotFound    = fmt.Errorf("task %w", ErrNotFound)
	ErrProjectNotFound = fmt.Errorf("project %w", ErrNotFound)
	ErrUserNotFound    = fmt.Errorf("user %w", ErrNotFound)
	ErrSubtaskNotFound = fmt.Errorf("subtask %w", ErrNotFound)
	ErrCommentNotFound = fmt.Errorf("comment %w", ErrNotFound)
	ErrFileNotFound    = fmt.Errorf("file %w", ErrNotFound)

	ErrTitleRequired      = fmt.Errorf("%w: title is required", ErrValidation)
	ErrNameRequired       = fmt.Errorf("%w: name is required", ErrValidation)
	ErrContentRequired    = fmt.Errorf("%w: content is required", ErrValidation)
	ErrUserFieldsRequired = fmt.Errorf("%w: name, username, email and password are required", ErrValidation)
	ErrInvalidStatus      = fmt.Errorf("%w: invalid status", ErrValidation)
	ErrInvalidPriority    = fmt.Errorf("%w: invalid priority", ErrValidation)
	ErrInvalidRole        = fmt.Errorf("%w: invalid role", ErrValidation)
	ErrInvalidMonth       = fmt.Errorf("%w: invalid month", ErrValidation)
	ErrSelfDeletion       = fmt.Errorf("%w: cannot delete own account", ErrValidation)
	ErrOwnRoleChange      = fmt.Errorf("%w: cannot change own role", ErrValidation)
	ErrSubtasksIncomplete = fmt.Errorf("%w: task has incomplete subtasks", ErrValidation)
	ErrFileRequired       = fmt.Errorf("%w: file is required", ErrValidation)
	ErrFileTooLarge       = fmt.Errorf("%w: file is too large", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthenticated)
	ErrDuplicateUser      = fmt.Errorf("%w: username or email already exists", ErrConflict)
	ErrBlobWriteFailed    = fmt.Errorf("%w: could not store file", ErrStorage)
	ErrFileMetadataFailed = fmt.Errorf("%w: could not save file info", ErrStorage)
)

// Kind returns the error kind err wraps, or nil when it wraps none.
func Kind(err error) error {
	for _, kind := range []error{
		ErrUnauthenticated,
		ErrUnauthorized,
		ErrNotFound,
		ErrValidation,
		ErrConflict,
		ErrStorage,
	} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// StorageError marks err as a storage failure unless it already carries a
// kind.
func StorageError(err error) error {
	if err == nil || Kind(err) != nil {
		return err
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
