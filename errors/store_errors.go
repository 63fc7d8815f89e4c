package errors

import (
	stderrors "errors"

	"github.com/mezonai/ledgerkv/jsonx"
)

// ErrorCode classifies failures surfaced by the store and import pass
type ErrorCode string

const (
	// The engine could not create or open the store at the resolved path. Non-fatal.
	ErrCodeStoreOpenFailure ErrorCode = "store_open_failure"

	// The ledger source failed mid-iteration. Fatal to the import pass.
	ErrCodeStreamFailure ErrorCode = "stream_failure"

	// Memory sampling was unavailable. Recovered locally by zero-filling.
	ErrCodeInstrumentationDegraded ErrorCode = "instrumentation_degraded"
)

const (
	ErrMsgStoreOpenFailure          = "cannot open database"
	ErrMsgStreamFailure             = "ledger stream failed during import"
	ErrMsgInstrumentationDegraded   = "memory sampling unavailable"
	ErrMsgStoreAlreadyOpenAttempted = "store open already attempted"
)

// StoreError is a coded error carrying the resolved path and the underlying reason
type StoreError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	cause   error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	out, _ := jsonx.Marshal(e)
	return string(out)
}

func (e *StoreError) Unwrap() error {
	return e.cause
}

func newError(code ErrorCode, message, path string, cause error) *StoreError {
	e := &StoreError{Code: code, Message: message, Path: path, cause: cause}
	if cause != nil {
		e.Reason = cause.Error()
	}
	return e
}

func NewStoreOpenFailure(path string, cause error) error {
	return newError(ErrCodeStoreOpenFailure, ErrMsgStoreOpenFailure, path, cause)
}

func NewStreamFailure(cause error) error {
	return newError(ErrCodeStreamFailure, ErrMsgStreamFailure, "", cause)
}

func NewInstrumentationDegraded(cause error) error {
	return newError(ErrCodeInstrumentationDegraded, ErrMsgInstrumentationDegraded, "", cause)
}

// CodeOf returns the code of the first StoreError in err's chain, or "" if none
func CodeOf(err error) ErrorCode {
	var se *StoreError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}

func IsStoreOpenFailure(err error) bool {
	return CodeOf(err) == ErrCodeStoreOpenFailure
}

func IsStreamFailure(err error) bool {
	return CodeOf(err) == ErrCodeStreamFailure
}

func IsInstrumentationDegraded(err error) bool {
	return CodeOf(err) == ErrCodeInstrumentationDegraded
}
