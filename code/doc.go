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

// Package code defines the normalized fault taxonomy used by faultx.
//
// A code is the top-level, machine-readable classification of a translated
// fault, such as "duplicate_key", "empty_result" or "query_timeout". Codes
// are lowercase, underscore-separated identifiers so they survive logs,
// JSON payloads and metric labels without escaping.
//
// Translators produce codes; transport adapters (HTTP, gRPC) and callers
// consume them. The empty code is reserved for "no normalized fault" and is
// never valid on a translated error.
package code
