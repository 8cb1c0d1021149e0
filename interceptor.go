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

package faultx

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ErrNoChain is returned by NewInterceptor when no chain is supplied.
var ErrNoChain = errors.New("faultx: interceptor requires a translator chain")

// Outcome labels how an invocation finished.
type Outcome string

const (
	OutcomeOK           Outcome = "ok"
	OutcomeDeclared     Outcome = "declared"
	OutcomeTranslated   Outcome = "translated"
	OutcomeUntranslated Outcome = "untranslated"
)

// Invocation is a deferred unit of work plus the fault kinds its caller
// declared as expected.
type Invocation[T any] struct {
	// Name identifies the invocation in logs, metrics and trace events.
	// Optional.
	Name string

	// Work is the unit of work. Required.
	Work func(ctx context.Context) (T, error)

	// Declared lists the kinds returned to the caller untranslated.
	Declared []Kind
}

// Interceptor runs invocations and translates their unexpected faults
// through a Chain. It is immutable and safe for concurrent use.
type Interceptor struct {
	chain   *Chain
	logger  *zap.Logger
	metrics *Metrics
	clock   func() time.Time
}

// InterceptorOption configures an Interceptor at construction time.
type InterceptorOption func(*Interceptor)

// WithLogger sets the logger used for translation diagnostics.
func WithLogger(l *zap.Logger) InterceptorOption {
	return func(ic *Interceptor) {
		if l != nil {
			ic.logger = l
		}
	}
}

// WithMetrics records invocation outcomes and durations into m.
func WithMetrics(m *Metrics) InterceptorOption {
	return func(ic *Interceptor) { ic.metrics = m }
}

// NewInterceptor returns an Interceptor translating through chain.
// A nil chain fails with ErrNoChain and a chain without translators, such
// as the zero Chain, with ErrEmptyChain.
func NewInterceptor(chain *Chain, opts ...InterceptorOption) (*Interceptor, error) {
	if chain == nil {
		return nil, ErrNoChain
	}
	if chain.Len() == 0 {
		return nil, ErrEmptyChain
	}
	ic := &Interceptor{
		chain:  chain,
		logger: zap.NewNop(),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(ic)
	}
	return ic, nil
}

// Chain returns the interceptor's translator chain.
func (ic *Interceptor) Chain() *Chain { return ic.chain }

// Invoke runs inv.Work and classifies its error:
//
//   - nil: the result is returned unchanged and no translator is consulted;
//   - matches a declared kind: the error is returned unchanged;
//   - recognized by the chain: an *Error wrapping the original is returned;
//   - otherwise: the error is returned unchanged.
//
// The work's result is always returned as produced.
func Invoke[T any](ctx context.Context, ic *Interceptor, inv Invocation[T]) (T, error) {
	start := ic.clock()
	res, err := inv.Work(ctx)
	return res, ic.classify(ctx, inv.Name, err, inv.Declared, start)
}

// Do is Invoke for work without a result.
func (ic *Interceptor) Do(ctx context.Context, name string, work func(ctx context.Context) error, declared ...Kind) error {
	start := ic.clock()
	err := work(ctx)
	return ic.classify(ctx, name, err, declared, start)
}

// Wrap returns work with translation applied on every call.
func (ic *Interceptor) Wrap(name string, work func(ctx context.Context) error, declared ...Kind) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return ic.Do(ctx, name, work, declared...)
	}
}

func (ic *Interceptor) classify(ctx context.Context, name string, err error, kinds []Kind, start time.Time) error {
	if err == nil {
		ic.observe(name, OutcomeOK, start)
		return nil
	}

	if k, ok := declared(err, kinds); ok {
		ic.observe(name, OutcomeDeclared, start)
		ic.logger.Debug("declared fault passed through",
			zap.String("invocation", name),
			zap.Stringer("kind", k),
			zap.Error(err),
		)
		addEvent(ctx, "fault.declared", attribute.String("fault.kind", k.String()))
		return err
	}

	fe := ic.chain.Translate(err)
	if fe == nil {
		ic.observe(name, OutcomeUntranslated, start)
		ic.logger.Debug("fault not translated",
			zap.String("invocation", name),
			zap.Error(err),
		)
		addEvent(ctx, "fault.untranslated")
		return err
	}

	ic.observe(name, OutcomeTranslated, start)
	ic.logger.Debug("fault translated",
		zap.String("invocation", name),
		zap.String("code", string(fe.Code)),
		zap.String("reason", string(fe.Reason)),
		zap.Error(err),
	)
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.RecordError(err)
		span.AddEvent("fault.translated", trace.WithAttributes(
			attribute.String("fault.code", string(fe.Code)),
			attribute.String("fault.reason", string(fe.Reason)),
			attribute.Bool("fault.transient", fe.Transient()),
		))
	}
	return fe
}

func (ic *Interceptor) observe(name string, o Outcome, start time.Time) {
	if ic.metrics == nil {
		return
	}
	ic.metrics.observe(name, o, ic.clock().Sub(start))
}

func addEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(name, trace.WithAttributes(attrs...))
	}
}
