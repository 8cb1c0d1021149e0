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

package code

import (
	"encoding"
	"errors"
	"regexp"
	"strings"
)

// Code is the canonical, validated representation of a fault code.
type Code string

// MinLength and MaxLength bound the length of a canonical code.
const (
	MinLength = 3
	MaxLength = 64
)

// codeRe is kept in sync with MinLength / MaxLength: one leading letter plus
// 2..63 trailing characters.
var codeRe = regexp.MustCompile(`^[a-z][a-z0-9_]{2,63}$`)

// ErrCodeInvalid is returned when a value is not a canonical fault code.
var ErrCodeInvalid = errors.New("faultx: invalid code")

var (
	_ encoding.TextMarshaler   = Code("")
	_ encoding.TextUnmarshaler = (*Code)(nil)
)

// Empty means "no code". It is returned by lookups that found no normalized
// fault and by Parse on failure.
const Empty Code = ""

// Parse normalizes s and validates the result.
func Parse(s string) (Code, error) {
	n := Normalize(s)
	if !codeRe.MatchString(n) {
		return Empty, ErrCodeInvalid
	}
	return Code(n), nil
}

// MustParse is like Parse but panics on invalid input. Intended for
// package-level declarations.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Normalize trims spaces, lowercases and turns '-' and ' ' into '_'.
// The result is not guaranteed to be valid.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}

// Validate reports whether c is canonical. Empty is invalid.
func Validate(c Code) error {
	if !codeRe.MatchString(string(c)) {
		return ErrCodeInvalid
	}
	return nil
}

// String returns the code as a plain string.
func (c Code) String() string { return string(c) }

// IsTransient reports whether a fault of this code may succeed when the
// same operation is retried unchanged. Unknown codes are not transient.
func (c Code) IsTransient() bool {
	return transient[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Code) MarshalText() ([]byte, error) {
	if err := Validate(c); err != nil {
		return nil, err
	}
	return []byte(c), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Code) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
