package vote

import (
	"errors"
	"fmt"
)

// InputError reports a contract violation on the input sequence.
//
// A nil sequence and an empty sequence are distinct conditions: "no data"
// versus "data with no elements". Both are rejected by the default API
// rather than silently mapped to an absent result.
type InputError struct {
	// Code identifies the violation category.
	Code InputErrorCode

	// Message is a human-readable description.
	Message string
}

// InputErrorCode categorizes input contract violations.
type InputErrorCode string

const (
	// ErrCodeNilInput indicates the sequence reference was absent.
	ErrCodeNilInput InputErrorCode = "NIL_INPUT"

	// ErrCodeEmptyInput indicates the sequence was present but had no elements.
	ErrCodeEmptyInput InputErrorCode = "EMPTY_INPUT"
)

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsInvalidInput returns true if the error is an input contract violation.
// Uses errors.As to handle wrapped errors.
func IsInvalidInput(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}

// IsNilInput returns true if the error reports an absent sequence.
func IsNilInput(err error) bool {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeNilInput
	}
	return false
}

// IsEmptyInput returns true if the error reports a zero-length sequence.
func IsEmptyInput(err error) bool {
	var ie *InputError
	if errors.As(err, &ie) {
		return ie.Code == ErrCodeEmptyInput
	}
	return false
}

func newNilInputError() *InputError {
	return &InputError{Code: ErrCodeNilInput, Message: "input sequence cannot be nil"}
}

func newEmptyInputError() *InputError {
	return &InputError{Code: ErrCodeEmptyInput, Message: "input sequence cannot be empty"}
}
