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

package translators

import (
	"errors"

	"github.com/sony/gobreaker"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// Breaker translates the rejections of a gobreaker circuit breaker guarding
// a backend.
func Breaker() faultx.Translator {
	return faultx.TranslatorFunc(translateBreaker)
}

func translateBreaker(err error) *faultx.Error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState):
		return faultx.E(code.TransientResource, "circuit breaker is open",
			faultx.WithReasonOption(reason.MustParse("breaker.open")))
	case errors.Is(err, gobreaker.ErrTooManyRequests):
		return faultx.E(code.TransientResource, "circuit breaker is half-open and saturated",
			faultx.WithReasonOption(reason.MustParse("breaker.half_open")))
	}
	return nil
}
