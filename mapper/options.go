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
	"dirpx.dev/faultx/code"
)

// Option configures a mapper before it is frozen by New.
type Option func(*builder)

type prefixRule struct {
	prefix string
	val    int
}

type builder struct {
	httpDefaults map[code.Code]int
	grpcDefaults map[code.Code]int
	httpOverride map[code.Code]int
	grpcOverride map[code.Code]int
	httpPrefixes map[code.Code][]prefixRule
	grpcPrefixes map[code.Code][]prefixRule
}

func newBuilder() *builder {
	b := &builder{
		httpDefaults: make(map[code.Code]int, len(defaultHTTP)),
		grpcDefaults: make(map[code.Code]int, len(defaultGRPC)),
		httpOverride: make(map[code.Code]int),
		grpcOverride: make(map[code.Code]int),
		httpPrefixes: make(map[code.Code][]prefixRule),
		grpcPrefixes: make(map[code.Code][]prefixRule),
	}
	for c, v := range defaultHTTP {
		b.httpDefaults[c] = v
	}
	for c, v := range defaultGRPC {
		b.grpcDefaults[c] = int(v)
	}
	return b
}

// WithHTTPDefault replaces the default HTTP status for c.
func WithHTTPDefault(c code.Code, http int) Option {
	return func(b *builder) { b.httpDefaults[c] = http }
}

// WithGRPCDefault replaces the default gRPC code for c.
func WithGRPCDefault(c code.Code, grpc int) Option {
	return func(b *builder) { b.grpcDefaults[c] = grpc }
}

// WithHTTPOverride pins the HTTP status for c regardless of reason.
func WithHTTPOverride(c code.Code, http int) Option {
	return func(b *builder) { b.httpOverride[c] = http }
}

// WithGRPCOverride pins the gRPC code for c regardless of reason.
func WithGRPCOverride(c code.Code, grpc int) Option {
	return func(b *builder) { b.grpcOverride[c] = grpc }
}

// WithHTTPPrefix adds a reason-prefix rule for c. "*" matches one segment.
func WithHTTPPrefix(c code.Code, prefix string, http int) Option {
	return func(b *builder) { b.httpPrefixes[c] = append(b.httpPrefixes[c], prefixRule{prefix, http}) }
}

// WithGRPCPrefix adds a reason-prefix rule for c. "*" matches one segment.
func WithGRPCPrefix(c code.Code, prefix string, grpc int) Option {
	return func(b *builder) { b.grpcPrefixes[c] = append(b.grpcPrefixes[c], prefixRule{prefix, grpc}) }
}
