package core

import "github.com/pkg/errors"

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// StoreWriteError is returned by DocumentStore implementations when a document could not be saved.
// Callers propagate it unchanged: retrying is the store's business.
type StoreWriteError struct {
	Key string
	Err error
}

func NewStoreWriteError(key string, err error) error {
	return &StoreWriteError{Key: key, Err: err}
}

func (err StoreWriteError) Error() string {
	return "saving document " + err.Key + ": " + err.Err.Error()
}

func IsStoreWrite(err error) bool {
	_, ok := errors.Cause(err).(*StoreWriteError)
	return ok
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
