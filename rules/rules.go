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

// Package rules builds a faultx.Translator from declarative rules matching
// on an error's text. It covers backends without a dedicated translator,
// typically drivers that only expose string errors.
//
// A rules file looks like:
//
//	rules:
//	  - name: orders-lock
//	    match: 'lock timeout on table "orders"'
//	    code: cannot_acquire_lock
//	    reason: rules.orders_lock
//	  - name: legacy-missing
//	    contains: "record not found"
//	    code: empty_result
//
// Rules are evaluated in file order and the first match wins.
package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// ErrNoMatcher is returned when a rule has neither match nor contains.
var ErrNoMatcher = errors.New("rules: rule needs match or contains")

// Rule maps errors whose text matches to a normalized fault.
type Rule struct {
	// Name identifies the rule in diagnostics and in the fault details.
	Name string `yaml:"name" mapstructure:"name"`

	// Match is a regular expression tested against err.Error().
	Match string `yaml:"match,omitempty" mapstructure:"match"`

	// Contains is a plain substring tested against err.Error(). When both
	// Match and Contains are set, both must hold.
	Contains string `yaml:"contains,omitempty" mapstructure:"contains"`

	// Code is the normalized code to produce. Required.
	Code string `yaml:"code" mapstructure:"code"`

	// Reason optionally refines Code.
	Reason string `yaml:"reason,omitempty" mapstructure:"reason"`

	// Message is the fault message; defaults to the code.
	Message string `yaml:"message,omitempty" mapstructure:"message"`
}

type file struct {
	Rules []Rule `yaml:"rules"`
}

// Parse decodes a YAML rules document. Unknown fields are rejected.
func Parse(data []byte) ([]Rule, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var f file
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("rules: decode: %w", err)
	}
	return f.Rules, nil
}

// Load reads and parses a rules file.
func Load(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}
	return Parse(data)
}

// Translator is a compiled, immutable rule set.
type Translator struct {
	rules []compiled
}

var _ faultx.Translator = (*Translator)(nil)

type compiled struct {
	name     string
	re       *regexp.Regexp
	contains string
	code     code.Code
	reason   reason.Reason
	message  string
}

// Compile validates rules and compiles their patterns.
func Compile(rules []Rule) (*Translator, error) {
	out := make([]compiled, 0, len(rules))
	for i, r := range rules {
		c, err := compile(r)
		if err != nil {
			return nil, fmt.Errorf("rules: rule %d (%q): %w", i, r.Name, err)
		}
		out = append(out, c)
	}
	return &Translator{rules: out}, nil
}

func compile(r Rule) (compiled, error) {
	if r.Match == "" && r.Contains == "" {
		return compiled{}, ErrNoMatcher
	}
	c, err := code.Parse(r.Code)
	if err != nil {
		return compiled{}, fmt.Errorf("code %q: %w", r.Code, err)
	}
	rs, err := reason.Parse(r.Reason)
	if err != nil {
		return compiled{}, fmt.Errorf("reason %q: %w", r.Reason, err)
	}
	out := compiled{
		name:     r.Name,
		contains: r.Contains,
		code:     c,
		reason:   rs,
		message:  r.Message,
	}
	if out.message == "" {
		out.message = string(c)
	}
	if r.Match != "" {
		if out.re, err = regexp.Compile(r.Match); err != nil {
			return compiled{}, fmt.Errorf("match: %w", err)
		}
	}
	return out, nil
}

// Len returns the number of rules.
func (t *Translator) Len() int { return len(t.rules) }

// Translate implements faultx.Translator.
func (t *Translator) Translate(err error) *faultx.Error {
	msg := err.Error()
	for _, r := range t.rules {
		if r.contains != "" && !strings.Contains(msg, r.contains) {
			continue
		}
		if r.re != nil && !r.re.MatchString(msg) {
			continue
		}
		fe := faultx.E(r.code, r.message, faultx.WithReasonOption(r.reason))
		if r.name != "" {
			fe = fe.WithDetail("rule", r.name)
		}
		return fe
	}
	return nil
}
