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
	"slices"
)

var (
	// ErrEmptyChain is returned when a Chain is built without translators.
	ErrEmptyChain = errors.New("faultx: translator chain is empty")

	// ErrNilTranslator is returned when a nil Translator is registered.
	ErrNilTranslator = errors.New("faultx: nil translator")
)

// Translator recognizes one category of underlying fault and remaps it.
//
// Translate returns nil to decline. Implementations must be safe for
// concurrent use and free of side effects; they normally leave Cause unset
// so the Chain can attach the original fault.
type Translator interface {
	Translate(err error) *Error
}

// TranslatorFunc adapts a plain function to Translator.
type TranslatorFunc func(err error) *Error

// Translate calls f(err).
func (f TranslatorFunc) Translate(err error) *Error { return f(err) }

// Chain is an immutable, ordered list of translators consulted with
// first-match-wins semantics. A Chain is itself a Translator.
type Chain struct {
	translators []Translator
}

// NewChain builds a Chain from ts in the given order.
func NewChain(ts ...Translator) (*Chain, error) {
	b := NewChainBuilder()
	for _, t := range ts {
		b.Add(t)
	}
	return b.Build()
}

// MustChain is like NewChain but panics on a configuration error.
func MustChain(ts ...Translator) *Chain {
	c, err := NewChain(ts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Translate consults translators in registration order and returns the first
// non-nil result with Cause set to err. Context a translator wants to keep
// beyond err belongs in Details. It returns nil when err is nil or no
// translator matched.
func (c *Chain) Translate(err error) *Error {
	if err == nil {
		return nil
	}
	for _, t := range c.translators {
		if fe := t.Translate(err); fe != nil {
			return fe.WithCause(err)
		}
	}
	return nil
}

// Len returns the number of registered translators.
func (c *Chain) Len() int { return len(c.translators) }

// Translators returns a copy of the registered translators in priority order.
func (c *Chain) Translators() []Translator { return slices.Clone(c.translators) }

// ChainBuilder collects translators for a Chain. It is not safe for
// concurrent use; build chains during startup.
type ChainBuilder struct {
	translators []Translator
	err         error
}

// NewChainBuilder returns an empty builder.
func NewChainBuilder() *ChainBuilder { return &ChainBuilder{} }

// Add appends t to the chain. Duplicates are kept; order is priority.
// A nil t is recorded as an error reported by Build.
func (b *ChainBuilder) Add(t Translator) *ChainBuilder {
	if t == nil {
		if b.err == nil {
			b.err = fmt.Errorf("%w at position %d", ErrNilTranslator, len(b.translators))
		}
		return b
	}
	b.translators = append(b.translators, t)
	return b
}

// AddFunc appends a function translator.
func (b *ChainBuilder) AddFunc(f func(err error) *Error) *ChainBuilder {
	if f == nil {
		return b.Add(nil)
	}
	return b.Add(TranslatorFunc(f))
}

// Build freezes the registered translators into a Chain. Later calls to Add
// do not affect chains already built.
func (b *ChainBuilder) Build() (*Chain, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.translators) == 0 {
		return nil, ErrEmptyChain
	}
	return &Chain{translators: slices.Clone(b.translators)}, nil
}

// TranslateIfNecessary returns t's translation of err with Cause set to err,
// or err itself when t declines. A nil err yields nil.
func TranslateIfNecessary(err error, t Translator) error {
	if err == nil {
		return nil
	}
	if fe := t.Translate(err); fe != nil {
		return fe.WithCause(err)
	}
	return err
}
