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

package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/grpc/codes"

	"dirpx.dev/faultx"
	"dirpx.dev/faultx/apis"
	"dirpx.dev/faultx/code"
	"dirpx.dev/faultx/grpcx"
	"dirpx.dev/faultx/mapper"
	"dirpx.dev/faultx/rules"
	"dirpx.dev/faultx/translators"
)

// ErrUnknownGRPCCode is returned for a gRPC code name that does not exist.
var ErrUnknownGRPCCode = errors.New("config: unknown grpc code")

// BuildChain assembles the translator chain described by c: rules from
// rules_file, then inline rules, then the built-in translators in the
// configured order. A configuration selecting nothing fails with
// faultx.ErrEmptyChain.
func BuildChain(c Config) (*faultx.Chain, error) {
	var rs []rules.Rule
	if c.RulesFile != "" {
		fromFile, err := rules.Load(c.RulesFile)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		rs = append(rs, fromFile...)
	}
	rs = append(rs, c.Rules...)

	b := faultx.NewChainBuilder()
	if len(rs) > 0 {
		t, err := rules.Compile(rs)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		b.Add(t)
	}

	builtins, err := Builtins(c.Translators.Builtin...)
	if err != nil {
		return nil, err
	}
	for _, t := range builtins {
		b.Add(t)
	}
	return b.Build()
}

// Builtins resolves translator names: NameGRPC and every name known to
// translators.ByName.
func Builtins(names ...string) ([]faultx.Translator, error) {
	out := make([]faultx.Translator, 0, len(names))
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == NameGRPC {
			out = append(out, grpcx.StatusTranslator())
			continue
		}
		ts, err := translators.ByName(n)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		out = append(out, ts...)
	}
	return out, nil
}

// BuildMapper builds a mapper with the overrides in c applied on top of
// the defaults.
func BuildMapper(c MapperConfig) (apis.Mapper, error) {
	var opts []mapper.Option
	for _, o := range c.HTTPOverrides {
		cd, err := code.Parse(o.Code)
		if err != nil {
			return nil, fmt.Errorf("config: http override: %w", err)
		}
		if o.Prefix != "" {
			opts = append(opts, mapper.WithHTTPPrefix(cd, o.Prefix, o.Status))
		} else {
			opts = append(opts, mapper.WithHTTPOverride(cd, o.Status))
		}
	}
	for _, o := range c.GRPCOverrides {
		cd, err := code.Parse(o.Code)
		if err != nil {
			return nil, fmt.Errorf("config: grpc override: %w", err)
		}
		gc, err := ParseGRPCCode(o.Status)
		if err != nil {
			return nil, err
		}
		if o.Prefix != "" {
			opts = append(opts, mapper.WithGRPCPrefix(cd, o.Prefix, int(gc)))
		} else {
			opts = append(opts, mapper.WithGRPCOverride(cd, int(gc)))
		}
	}
	m, err := mapper.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return m, nil
}

// ParseGRPCCode accepts NOT_FOUND, NotFound or not_found.
func ParseGRPCCode(name string) (codes.Code, error) {
	want := foldCodeName(name)
	for c := codes.OK; c <= codes.Unauthenticated; c++ {
		if foldCodeName(c.String()) == want {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownGRPCCode, name)
}

func foldCodeName(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
}

// NewLogger builds a JSON production logger at level.
func NewLogger(level string) (*zap.Logger, error) {
	var lvl zapcore.Level
	if err := lvl.Set(level); err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrUnknownLevel, level, err)
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	zc.DisableStacktrace = true
	zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	return zc.Build()
}

// NewInterceptor builds the chain from c and wraps it in an interceptor
// logging to logger. Metrics are attached when metrics is non-nil.
func NewInterceptor(c Config, logger *zap.Logger, metrics *faultx.Metrics) (*faultx.Interceptor, error) {
	chain, err := BuildChain(c)
	if err != nil {
		return nil, err
	}
	opts := []faultx.InterceptorOption{faultx.WithLogger(logger)}
	if metrics != nil {
		opts = append(opts, faultx.WithMetrics(metrics))
	}
	return faultx.NewInterceptor(chain, opts...)
}

// Validate reports every problem in c at once.
func Validate(c Config) error {
	var errs []error
	if _, err := NewLogger(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if _, err := BuildChain(c); err != nil {
		errs = append(errs, err)
	}
	if _, err := BuildMapper(c.Mapper); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
