package errs

import "errors"

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrObjectNotFound = errors.New("object not found")

	// Requested key does not belong to the event's folder.
	ErrForbiddenKey = errors.New("key outside event folder")

	ErrNoFiles      = errors.New("no files specified")
	ErrNoValidFiles = errors.New("no valid files")
	ErrTooManyFiles = errors.New("too many files")
)
