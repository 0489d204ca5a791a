package builder

import (
	"errors"
	"fmt"
)

var (
	ErrConfigNameRequired = errors.New("builder: configuration name is required")
	ErrConfigIDRequired   = errors.New("builder: configuration id is required")
	ErrConfigExists       = errors.New("builder: configuration already exists")
	ErrSectionTypeInvalid = errors.New("builder: section type is not recognised")
	ErrItemTypeInvalid    = errors.New("builder: item type is not recognised")
	ErrDirectionInvalid   = errors.New("builder: move direction is not recognised")
	ErrDocumentInvalid    = errors.New("builder: configuration document failed schema validation")
	ErrNoActiveConfig     = errors.New("builder: no configuration is active")
)

// NotFoundError is returned when a persisted configuration cannot be located.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// DocumentValidationError surfaces schema validation failures with the
// offending locations attached.
type DocumentValidationError struct {
	Issues []string
	Cause  error
}

func (e *DocumentValidationError) Error() string {
	if len(e.Issues) == 0 {
		return ErrDocumentInvalid.Error()
	}
	return fmt.Sprintf("%s: %s", ErrDocumentInvalid.Error(), e.Issues[0])
}

func (e *DocumentValidationError) Unwrap() error {
	return ErrDocumentInvalid
}
