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
	"reflect"
)

// Kind is a category of fault a caller can declare as expected. Errors
// matching a declared Kind bypass translation.
type Kind interface {
	// Matches reports whether err, or any error in its chain, belongs to
	// the kind.
	Matches(err error) bool

	// String names the kind for logs.
	String() string
}

// KindOf returns the Kind of errors assignable to E, matched with errors.As.
// E may be a concrete error type (KindOf[*pq.Error]) or an interface
// (KindOf[net.Error]).
func KindOf[E error]() Kind { return typeKind[E]{} }

type typeKind[E error] struct{}

func (typeKind[E]) Matches(err error) bool {
	var target E
	return errors.As(err, &target)
}

func (typeKind[E]) String() string { return reflect.TypeFor[E]().String() }

// KindIs returns the Kind of errors that are target according to errors.Is.
func KindIs(target error) Kind { return sentinelKind{target} }

type sentinelKind struct{ target error }

func (k sentinelKind) Matches(err error) bool { return errors.Is(err, k.target) }

func (k sentinelKind) String() string { return "is(" + k.target.Error() + ")" }

// KindFunc returns a Kind backed by an arbitrary predicate.
func KindFunc(name string, match func(error) bool) Kind {
	return funcKind{name: name, match: match}
}

type funcKind struct {
	name  string
	match func(error) bool
}

func (k funcKind) Matches(err error) bool { return k.match(err) }

func (k funcKind) String() string { return k.name }

// declared returns the first kind in kinds matching err.
func declared(err error, kinds []Kind) (Kind, bool) {
	for _, k := range kinds {
		if k != nil && k.Matches(err) {
			return k, true
		}
	}
	return nil, false
}
