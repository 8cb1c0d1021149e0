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

// Package mapper resolves normalized fault codes (and optional reasons) into
// HTTP and gRPC statuses.
//
// A mapper is built once from options and is immutable afterwards. For each
// transport it resolves in this order:
//
//  1. exact override for the code;
//  2. the most specific reason-prefix rule for the code;
//  3. the code's default (library or user-adjusted);
//  4. fallback (500 / codes.Internal).
//
// Prefix rules are segment-aware and "*" matches one segment. Among rules
// matching a reason the deepest one wins; at equal depth the one with fewer
// wildcards wins; remaining ties go to the rule registered first.
//
//	m, err := mapper.New(
//	    mapper.WithHTTPPrefix(code.DuplicateKey, "storage.mongo", http.StatusUnprocessableEntity),
//	    mapper.WithHTTPOverride(code.Canceled, 499),
//	)
//	st := m.Status(code.DuplicateKey, reason.MustParse("storage.mongo.e11000"))
package mapper
