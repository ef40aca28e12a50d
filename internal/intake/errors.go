package intake

import (
	"errors"
	"fmt"

	"github.com/alfredjeanlab/intake/internal/model"
)

// UnknownOperationError is returned by Dispatch for an operation name the
// service does not expose.
type UnknownOperationError struct {
	Name string
}

func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("unknown operation %q", e.Name)
}

// StorageError reports that the backing store could not complete a read or
// write. The underlying error is available through errors.Unwrap.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// RequestError reports arguments that could not be decoded.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("invalid %s request: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error { return e.Err }

// IsClientError reports whether err was caused by the caller's input
// (an invalid event or an undecodable request). Transport layers map these
// to 400 / InvalidArgument.
func IsClientError(err error) bool {
	var ie *model.InvalidEventError
	var re *RequestError
	return errors.As(err, &ie) || errors.As(err, &re)
}
