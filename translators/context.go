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
	"context"
	"errors"
	"net"
	"syscall"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// Context translates context expiry and low-level network failures.
// Register it after driver translators so their more specific
// classifications win.
func Context() faultx.Translator {
	return faultx.TranslatorFunc(translateContext)
}

func translateContext(err error) *faultx.Error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return faultx.E(code.QueryTimeout, "deadline exceeded",
			faultx.WithReasonOption(reason.MustParse("context.deadline")))
	case errors.Is(err, context.Canceled):
		return faultx.E(code.Canceled, "operation canceled",
			faultx.WithReasonOption(reason.MustParse("context.canceled")))
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET):
		return faultx.E(code.ResourceFailure, "connection refused or reset",
			faultx.WithReasonOption(reason.MustParse("net.conn")))
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return faultx.E(code.QueryTimeout, "network timeout",
			faultx.WithReasonOption(reason.MustParse("net.timeout")))
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return faultx.E(code.ResourceFailure, "network operation failed",
			faultx.WithReasonOption(reason.MustParse("net.op")),
			faultx.WithDetailOption("op", oe.Op))
	}
	return nil
}
