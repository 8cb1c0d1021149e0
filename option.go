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

import "dirpx.dev/faultx/reason"

// Option transforms an Error under construction. Used with E.
type Option func(*Error) *Error

// WithReasonOption sets Reason.
func WithReasonOption(r reason.Reason) Option {
	return func(e *Error) *Error { return e.WithReason(r) }
}

// WithDetailOption adds one detail entry.
func WithDetailOption(k string, v any) Option {
	return func(e *Error) *Error { return e.WithDetail(k, v) }
}

// WithDetailsOption merges detail entries.
func WithDetailsOption(kv map[string]any) Option {
	return func(e *Error) *Error { return e.WithDetails(kv) }
}

// WithCauseOption attaches a cause. A Chain replaces any cause set by a
// translator with the original fault.
func WithCauseOption(err error) Option {
	return func(e *Error) *Error { return e.WithCause(err) }
}
