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
	"fmt"
	"net/http"
	"slices"
	"strings"

	"google.golang.org/grpc/codes"

	"dirpx.dev/faultx/apis"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/reason"
)

// New builds an immutable apis.Mapper from the library defaults and opts.
// It fails when a prefix rule is not a valid reason pattern.
func New(opts ...Option) (apis.Mapper, error) {
	b := newBuilder()
	for _, opt := range opts {
		opt(b)
	}

	httpRules, err := compileRules(b.httpPrefixes, func(v int) int { return v })
	if err != nil {
		return nil, fmt.Errorf("mapper: HTTP %w", err)
	}
	grpcRules, err := compileRules(b.grpcPrefixes, func(v int) codes.Code { return codes.Code(v) })
	if err != nil {
		return nil, fmt.Errorf("mapper: gRPC %w", err)
	}

	return &mapper{
		http: table[int]{
			defaults:  convert(b.httpDefaults, func(v int) int { return v }),
			overrides: convert(b.httpOverride, func(v int) int { return v }),
			rules:     httpRules,
			fallback:  http.StatusInternalServerError,
		},
		grpc: table[codes.Code]{
			defaults:  convert(b.grpcDefaults, func(v int) codes.Code { return codes.Code(v) }),
			overrides: convert(b.grpcOverride, func(v int) codes.Code { return codes.Code(v) }),
			rules:     grpcRules,
			fallback:  codes.Internal,
		},
	}, nil
}

// Must is like New but panics on an invalid rule.
func Must(opts ...Option) apis.Mapper {
	m, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return m
}

type mapper struct {
	http table[int]
	grpc table[codes.Code]
}

// table holds the frozen resolution data for one transport.
type table[V any] struct {
	defaults  map[code.Code]V
	overrides map[code.Code]V
	rules     map[code.Code][]rule[V] // most specific first
	fallback  V
}

type rule[V any] struct {
	pattern   string
	depth     int
	wildcards int
	val       V
}

func (t *table[V]) resolve(c code.Code, r reason.Reason) (v V, source, pattern string) {
	if v, ok := t.overrides[c]; ok {
		return v, "override", ""
	}
	for _, ru := range t.rules[c] {
		if r.HasPrefix(ru.pattern) {
			return ru.val, "prefix", ru.pattern
		}
	}
	if v, ok := t.defaults[c]; ok {
		return v, "default", ""
	}
	return t.fallback, "fallback", ""
}

// HTTPStatus implements apis.Mapper.
func (m *mapper) HTTPStatus(c code.Code, r reason.Reason) int {
	v, _, _ := m.http.resolve(c, r)
	return v
}

// GRPCStatus implements apis.Mapper.
func (m *mapper) GRPCStatus(c code.Code, r reason.Reason) codes.Code {
	v, _, _ := m.grpc.resolve(c, r)
	return v
}

// Status implements apis.Mapper.
func (m *mapper) Status(c code.Code, r reason.Reason) apis.Status {
	return apis.Status{HTTP: m.HTTPStatus(c, r), GRPC: m.GRPCStatus(c, r)}
}

// Explain renders which tier resolved each transport, e.g.
//
//	code="duplicate_key" reason="storage.pg.unique_violation"
//	http: source=prefix pattern="storage.pg" -> 409
//	grpc: source=default -> ALREADY_EXISTS(6)
func (m *mapper) Explain(c code.Code, r reason.Reason) string {
	var b strings.Builder
	fmt.Fprintf(&b, "code=%q reason=%q\n", c, r)

	hv, hsrc, hpat := m.http.resolve(c, r)
	fmt.Fprintf(&b, "http: source=%s%s -> %d\n", hsrc, patternSuffix(hpat), hv)

	gv, gsrc, gpat := m.grpc.resolve(c, r)
	fmt.Fprintf(&b, "grpc: source=%s%s -> %s(%d)", gsrc, patternSuffix(gpat), grpcName(gv), int(gv))
	return b.String()
}

func patternSuffix(p string) string {
	if p == "" {
		return ""
	}
	return fmt.Sprintf(" pattern=%q", p)
}

// grpcName renders a gRPC code the way it appears in the protocol,
// e.g. ALREADY_EXISTS.
func grpcName(c codes.Code) string {
	var b strings.Builder
	prevLower := false
	for _, r := range c.String() {
		upper := r >= 'A' && r <= 'Z'
		if upper && prevLower {
			b.WriteByte('_')
		}
		b.WriteRune(r)
		prevLower = !upper
	}
	return strings.ToUpper(b.String())
}

func convert[V any](src map[code.Code]int, f func(int) V) map[code.Code]V {
	dst := make(map[code.Code]V, len(src))
	for k, v := range src {
		dst[k] = f(v)
	}
	return dst
}

func compileRules[V any](src map[code.Code][]prefixRule, f func(int) V) (map[code.Code][]rule[V], error) {
	out := make(map[code.Code][]rule[V], len(src))
	for c, prs := range src {
		rules := make([]rule[V], 0, len(prs))
		for _, pr := range prs {
			p, err := normalizePrefix(pr.prefix)
			if err != nil {
				return nil, fmt.Errorf("reason-prefix %q for code %q: %w", pr.prefix, c, err)
			}
			segs := strings.Split(p, ".")
			rules = append(rules, rule[V]{
				pattern:   p,
				depth:     len(segs),
				wildcards: strings.Count(p, reason.Wildcard),
				val:       f(pr.val),
			})
		}
		slices.SortStableFunc(rules, func(a, b rule[V]) int {
			if a.depth != b.depth {
				return b.depth - a.depth
			}
			return a.wildcards - b.wildcards
		})
		out[c] = rules
	}
	return out, nil
}

// normalizePrefix canonicalizes a rule prefix; each segment is a reason
// segment or "*", and at least one segment is literal.
func normalizePrefix(raw string) (string, error) {
	p := reason.Normalize(raw)
	if p == "" {
		return "", fmt.Errorf("empty prefix")
	}
	literal := false
	for _, seg := range strings.Split(p, ".") {
		if seg == reason.Wildcard {
			continue
		}
		if !reason.ValidSegment(seg) {
			return "", fmt.Errorf("invalid segment %q", seg)
		}
		literal = true
	}
	if !literal {
		return "", fmt.Errorf("prefix cannot consist of '*' only")
	}
	return p, nil
}
