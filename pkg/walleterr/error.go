/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package walleterr

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Error is the error shape surfaced across the library boundary. It always carries a stable code and a
// human-readable message; causes are kept for logging and errors.Is/errors.As.
type Error struct {
	ErrorCode      Code
	Message        string
	ErrorComponent Component
	CorrelationID  string
	IncorrectValue string
	StatusCode     int
	Retryable      bool
	Err            error
	Errors         []error
}

// errorJSON is a helper struct for JSON encoding of Error.
type errorJSON struct {
	Code           Code      `json:"code"`
	Message        string    `json:"message"`
	Component      Component `json:"component,omitempty"`
	CorrelationID  string    `json:"correlation_id,omitempty"`
	IncorrectValue string    `json:"incorrect_value,omitempty"`
	StatusCode     int       `json:"status_code,omitempty"`
	Retryable      bool      `json:"retryable,omitempty"`
	Cause          string    `json:"error,omitempty"`
	Errors         []string  `json:"errors,omitempty"`
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{
		ErrorCode: code,
		Message:   message,
	}
}

// Newf creates an error with the given code and a formatted message.
func Newf(code Code, format string, args ...interface{}) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	var description []string

	if e.ErrorComponent != "" {
		description = append(description, fmt.Sprintf("component: %s", e.ErrorComponent))
	}

	if e.CorrelationID != "" {
		description = append(description, fmt.Sprintf("correlation id: %s", e.CorrelationID))
	}

	if e.IncorrectValue != "" {
		description = append(description, fmt.Sprintf("incorrect value: %s", e.IncorrectValue))
	}

	if e.StatusCode != 0 {
		description = append(description, fmt.Sprintf("status code: %d", e.StatusCode))
	}

	msg := fmt.Sprintf("%s[%s]: %s", e.ErrorCode, strings.Join(description, "; "), e.Message)

	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}

	for _, nested := range e.Errors {
		msg = fmt.Sprintf("%s; %v", msg, nested)
	}

	return msg
}

func (e *Error) MarshalJSON() ([]byte, error) {
	data := &errorJSON{
		Code:           e.ErrorCode,
		Message:        e.Message,
		Component:      e.ErrorComponent,
		CorrelationID:  e.CorrelationID,
		IncorrectValue: e.IncorrectValue,
		StatusCode:     e.StatusCode,
		Retryable:      e.Retryable,
	}

	if e.Err != nil {
		data.Cause = e.Err.Error()
	}

	for _, nested := range e.Errors {
		data.Errors = append(data.Errors, nested.Error())
	}

	return json.Marshal(data)
}

func (e *Error) WithComponent(component Component) *Error {
	e.ErrorComponent = component

	return e
}

func (e *Error) WithCorrelationID(correlationID string) *Error {
	e.CorrelationID = correlationID

	return e
}

func (e *Error) WithIncorrectValue(incorrectValue string) *Error {
	e.IncorrectValue = incorrectValue

	return e
}

func (e *Error) WithCause(err error) *Error {
	e.Err = err

	return e
}

func (e *Error) WithErrors(errs ...error) *Error {
	e.Errors = append(e.Errors, errs...)

	return e
}

func (e *Error) Code() string {
	return string(e.ErrorCode)
}

func (e *Error) Component() string {
	return string(e.ErrorComponent)
}

func (e *Error) Unwrap() []error {
	var errs []error

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return append(errs, e.Errors...)
}

// Is reports whether target is a wallet error with the same code. A target without a message matches any message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return t.ErrorCode == e.ErrorCode && (t.Message == "" || t.Message == e.Message)
}

// HasCode reports whether err (or any error it wraps) is a wallet error with the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	return e.ErrorCode == code
}

// Wrap returns err unchanged if it already is a wallet error, otherwise wraps it as an unspecified error.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var e *Error
	if errors.As(err, &e) {
		return err
	}

	return NewUnspecified(err)
}
