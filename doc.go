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

// Package faultx translates failures of a unit of work into a normalized
// fault taxonomy.
//
// # Model
//
// An Invocation wraps a piece of work together with the fault kinds its
// caller declared it is prepared to handle itself. An Interceptor runs the
// invocation and classifies a returned error into one of three outcomes:
//
//   - declared: the error matches a declared Kind and is returned unchanged;
//   - translated: a Translator in the Chain recognized the error and the
//     result is an *Error wrapping the original as its Cause;
//   - untranslated: no translator recognized the error and it is returned
//     unchanged.
//
// Translation is first-match: translators are consulted in registration
// order and the first non-nil result wins.
//
// # Building a chain
//
// Chains are built once and then shared:
//
//	b := faultx.NewChainBuilder()
//	b.Add(translators.Postgres())
//	b.Add(translators.SQL())
//	chain, err := b.Build() // ErrEmptyChain if nothing was added
//
//	ic, err := faultx.NewInterceptor(chain, faultx.WithLogger(logger))
//
//	user, err := faultx.Invoke(ctx, ic, faultx.Invocation[*User]{
//	    Name:     "users.get",
//	    Work:     func(ctx context.Context) (*User, error) { return repo.Get(ctx, id) },
//	    Declared: []faultx.Kind{faultx.KindIs(ErrUserDisabled)},
//	})
//
// A Chain and an Interceptor are immutable and safe for concurrent use.
// Translators are called concurrently and must be safe for that.
//
// Panics raised by translators are not recovered: a broken translator is a
// configuration bug and surfaces as such.
package faultx
