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

// CodedError is an error classified into a normalized fault code.
//
// ErrorCode returns a canonical code (see the code package). Adapters treat
// an empty or unknown code as an internal failure.
type CodedError interface {
	error
	ErrorCode() string
}

// ReasonedError is an error refined by a dot-separated reason. ErrorReason
// may return "" when no refinement exists.
type ReasonedError interface {
	error
	ErrorReason() string
}
