package errs

import (
	"errors"
	"fmt"
)

// ErrObjectNotUpdated signals a lost update: the object was loaded successfully
// but the follow-up write matched nothing.
var ErrObjectNotUpdated = errors.New("failed to update object")

type ObjectNotUpdatedError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotUpdatedError(paramName string, id any) *ObjectNotUpdatedError {
	return &ObjectNotUpdatedError{
		ParamName: paramName,
		ID:        id,
	}
}

func NewObjectNotUpdatedErrorWithCause(paramName string, id any, cause error) *ObjectNotUpdatedError {
	return &ObjectNotUpdatedError{
		ParamName: paramName,
		ID:        id,
		Cause:     cause,
	}
}

func (e *ObjectNotUpdatedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to update %s: %s (cause: %v)", e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("failed to update %s: %s", e.ParamName, e.ID)
}

func (e *ObjectNotUpdatedError) Unwrap() error {
	return ErrObjectNotUpdated
}
