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

package mapper

import (
	"net/http"

	"dirpx.dev/faultx/code"
	"google.golang.org/grpc/codes"
)

// defaultHTTP maps every taxonomy code to an HTTP status.
var defaultHTTP = map[code.Code]int{
	// Program or backend bugs: do not leak details, report 500.
	code.Uncategorized:       http.StatusInternalServerError,
	code.InvalidUsage:        http.StatusInternalServerError,
	code.BadGrammar:          http.StatusInternalServerError,
	code.IncorrectResultSize: http.StatusInternalServerError,

	code.PermissionDenied: http.StatusForbidden,

	code.EmptyResult:   http.StatusNotFound,
	code.DuplicateKey:  http.StatusConflict,
	code.DataIntegrity: http.StatusConflict,

	// Contention: the client may retry.
	code.ConcurrencyFailure: http.StatusConflict,
	code.OptimisticLocking:  http.StatusConflict,
	code.DeadlockLoser:      http.StatusConflict,
	code.CannotAcquireLock:  http.StatusLocked,

	code.ResourceFailure:   http.StatusServiceUnavailable,
	code.TransientResource: http.StatusServiceUnavailable,
	code.QueryTimeout:      http.StatusGatewayTimeout,
	code.Canceled:          http.StatusRequestTimeout,
}

// defaultGRPC maps every taxonomy code to a gRPC code.
var defaultGRPC = map[code.Code]codes.Code{
	code.Uncategorized:       codes.Internal,
	code.InvalidUsage:        codes.Internal,
	code.BadGrammar:          codes.Internal,
	code.IncorrectResultSize: codes.Internal,

	code.PermissionDenied: codes.PermissionDenied,

	code.EmptyResult:   codes.NotFound,
	code.DuplicateKey:  codes.AlreadyExists,
	code.DataIntegrity: codes.FailedPrecondition,

	code.ConcurrencyFailure: codes.Aborted,
	code.OptimisticLocking:  codes.Aborted,
	code.DeadlockLoser:      codes.Aborted,
	code.CannotAcquireLock:  codes.Aborted,

	code.ResourceFailure:   codes.Unavailable,
	code.TransientResource: codes.Unavailable,
	code.QueryTimeout:      codes.DeadlineExceeded,
	code.Canceled:          codes.Canceled,
}
