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

package apis

import (
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
	"google.golang.org/grpc/codes"
)

// Mapper is an immutable, concurrency-safe resolver from a fault code (and
// optional reason) to transport statuses.
type Mapper interface {
	// HTTPStatus returns the HTTP status for c and r.
	HTTPStatus(c code.Code, r reason.Reason) int

	// GRPCStatus returns the gRPC status code for c and r.
	GRPCStatus(c code.Code, r reason.Reason) codes.Code

	// Status resolves both statuses with the same rules.
	Status(c code.Code, r reason.Reason) Status

	// Explain describes which rule produced the statuses.
	Explain(c code.Code, r reason.Reason) string
}

// Status is a resolved pair of transport statuses.
type Status struct {
	HTTP int        // net/http status code
	GRPC codes.Code // gRPC status code
}
