/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package faultx

import (
	"errors"
	"fmt"

	"dirpx.dev/faultx/apis"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// Error is the normalized fault produced by translation.
//
// All mutation helpers (WithX) return a shallow copy, so an Error can be
// shared between goroutines and refined in a functional style.
type Error struct {
	// Code is the normalized classification, one of the code package values.
	Code code.Code

	// Reason optionally names the backend and condition, e.g.
	// "storage.pg.unique_violation".
	Reason reason.Reason

	// Message is a human-readable description.
	Message string

	// Details is a shallow key/value payload for logs and API bodies.
	// Treated as immutable: WithDetail/WithDetails always copy it.
	Details map[string]any

	// Cause is the original fault. After translation through a Chain it is
	// exactly the error the work returned.
	Cause error
}

var (
	_ apis.CodedError    = (*Error)(nil)
	_ apis.ReasonedError = (*Error)(nil)
)

// E constructs a new Error and applies opts in order.
func E(c code.Code, msg string, opts ...Option) *Error {
	e := &Error{Code: c, Message: msg}
	for _, opt := range opts {
		e = opt(e)
	}
	return e
}

// Error implements error as "<code>: <message>" or, with a reason,
// "<code>:<reason>: <message>".
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Reason != reason.Empty {
		return fmt.Sprintf("%s:%s: %s", e.Code, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the original fault.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorCode implements apis.CodedError.
func (e *Error) ErrorCode() string { return string(e.Code) }

// ErrorReason implements apis.ReasonedError.
func (e *Error) ErrorReason() string { return string(e.Reason) }

// Transient reports whether retrying the failed operation unchanged may
// succeed.
func (e *Error) Transient() bool { return e.Code.IsTransient() }

// WithReason returns a copy of e with Reason set.
func (e *Error) WithReason(r reason.Reason) *Error {
	cp := *e
	cp.Reason = r
	return &cp
}

// WithMessage returns a copy of e with Message replaced.
func (e *Error) WithMessage(msg string) *Error {
	cp := *e
	cp.Message = msg
	return &cp
}

// WithDetail returns a copy of e with one extra entry in Details.
func (e *Error) WithDetail(k string, v any) *Error {
	return e.WithDetails(map[string]any{k: v})
}

// WithDetails returns a copy of e with kv merged into Details. kv wins on
// key conflicts.
func (e *Error) WithDetails(kv map[string]any) *Error {
	if len(kv) == 0 {
		return e
	}
	cp := *e
	m := make(map[string]any, len(e.Details)+len(kv))
	for k, v := range e.Details {
		m[k] = v
	}
	for k, v := range kv {
		m[k] = v
	}
	cp.Details = m
	return &cp
}

// WithCause returns a copy of e wrapping err. A nil err returns e unchanged.
func (e *Error) WithCause(err error) *Error {
	if err == nil {
		return e
	}
	cp := *e
	cp.Cause = err
	return &cp
}

// As returns the outermost *Error in err's chain.
func As(err error) (*Error, bool) {
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost *Error in err's chain, or
// code.Empty when there is none.
func CodeOf(err error) code.Code {
	if fe, ok := As(err); ok {
		return fe.Code
	}
	return code.Empty
}
