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

package reason

import (
	"encoding"
	"errors"
	"strings"
)

// Reason is a canonical, dot-separated refinement of a fault code.
type Reason string

// Structural limits for a non-empty reason.
const (
	MinLength   = 3
	MaxLength   = 128
	MaxSegments = 4
)

// Wildcard matches exactly one segment in HasPrefix patterns.
const Wildcard = "*"

var (
	// ErrReasonInvalidFormat is returned when a segment is malformed or
	// there are too many segments.
	ErrReasonInvalidFormat = errors.New("faultx: invalid reason format")
	// ErrReasonInvalidLength is returned when a reason is too short or too long.
	ErrReasonInvalidLength = errors.New("faultx: invalid reason length")
)

var (
	_ encoding.TextMarshaler   = Reason("")
	_ encoding.TextUnmarshaler = (*Reason)(nil)
)

// Empty means "no reason provided".
const Empty Reason = ""

// Normalize trims, lowercases, turns '/' into '.' and '-' into '_'.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("/", ".", "-", "_").Replace(s)
}

// Parse normalizes and validates s. The empty string parses to Empty.
func Parse(s string) (Reason, error) {
	n := Normalize(s)
	if err := validate(n); err != nil {
		return Empty, err
	}
	return Reason(n), nil
}

// MustParse is like Parse but panics on invalid or empty input.
func MustParse(s string) Reason {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	if r == Empty {
		panic("faultx: empty reason in MustParse")
	}
	return r
}

// Join builds a reason from segments, e.g. Join("storage", "pg", "23505").
func Join(segments ...string) (Reason, error) {
	return Parse(strings.Join(segments, "."))
}

// Validate reports whether r is canonical. Empty is valid.
func Validate(r Reason) error {
	return validate(string(r))
}

// String returns the reason as a plain string.
func (r Reason) String() string { return string(r) }

// Segments splits r on '.'. Empty yields nil.
func (r Reason) Segments() []string {
	if r == Empty {
		return nil
	}
	return strings.Split(string(r), ".")
}

// HasPrefix reports whether pattern matches the leading segments of r.
// Matching is segment-aware ("auth.j" does not match "auth.jwt") and a "*"
// segment in pattern matches any single segment.
func (r Reason) HasPrefix(pattern string) bool {
	p := strings.Split(pattern, ".")
	s := r.Segments()
	if pattern == "" || len(p) > len(s) {
		return false
	}
	for i, seg := range p {
		if seg != Wildcard && seg != s[i] {
			return false
		}
	}
	return true
}

// MarshalText implements encoding.TextMarshaler.
func (r Reason) MarshalText() ([]byte, error) {
	if err := Validate(r); err != nil {
		return nil, err
	}
	return []byte(r), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Reason) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func validate(s string) error {
	if s == "" {
		return nil
	}
	if len(s) < MinLength || len(s) > MaxLength {
		return ErrReasonInvalidLength
	}
	segs := strings.Split(s, ".")
	if len(segs) > MaxSegments {
		return ErrReasonInvalidFormat
	}
	for _, seg := range segs {
		if !ValidSegment(seg) {
			return ErrReasonInvalidFormat
		}
	}
	return nil
}

// ValidSegment reports whether seg matches [a-z][a-z0-9_]*.
func ValidSegment(seg string) bool {
	if seg == "" || seg[0] < 'a' || seg[0] > 'z' {
		return false
	}
	for i := 1; i < len(seg); i++ {
		c := seg[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '_' {
			continue
		}
		return false
	}
	return true
}
