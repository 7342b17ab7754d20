// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"rivaas.dev/apiversion/deprecation"
	"rivaas.dev/apiversion/problem"
	"rivaas.dev/apiversion/resolver"
	"rivaas.dev/apiversion/telemetry/semconv"
	"rivaas.dev/apiversion/version"
)

const tracerName = "rivaas.dev/apiversion/dispatch"

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Dispatcher enforces a resolver.Config on HTTP requests.
// It is immutable after [New] and safe for concurrent use.
type Dispatcher struct {
	cfg            *resolver.Config
	logger         *slog.Logger
	formatter      problem.Formatter
	observers      []Observer
	policy         *deprecation.Policy
	responseHeader string
	tracer         trace.Tracer
}

// New creates a Dispatcher for cfg.
func New(cfg *resolver.Config, opts ...Option) (*Dispatcher, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	d := &Dispatcher{
		cfg:       cfg,
		logger:    noopLogger,
		formatter: problem.NewRFC9457(""),
		tracer:    noop.NewTracerProvider().Tracer(tracerName),
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return d, nil
}

// MustNew is like [New] but panics on error.
func MustNew(cfg *resolver.Config, opts ...Option) *Dispatcher {
	d, err := New(cfg, opts...)
	if err != nil {
		panic(err)
	}

	return d
}

// Config returns the global configuration.
func (d *Dispatcher) Config() *resolver.Config {
	return d.cfg
}

// Middleware enforces the global configuration.
func (d *Dispatcher) Middleware() func(http.Handler) http.Handler {
	return d.wrap(d.cfg)
}

// Route enforces the global configuration with supported replaced by a
// route-level constraint. A nil constraint keeps the global one.
//
// Example:
//
//	r.With(d.Route(version.AtLeast(version.MustParse("2.0")))).Get("/reports", reports)
func (d *Dispatcher) Route(supported version.Constraint) func(http.Handler) http.Handler {
	return d.wrap(d.cfg.ForRoute(supported))
}

func (d *Dispatcher) wrap(cfg *resolver.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, ok := d.Check(w, r, cfg)
			if !ok {
				return
			}
			next.ServeHTTP(w, req)
		})
	}
}

// Check resolves the version of r against cfg. When the request may
// proceed it returns r with the resolution in its context and true.
// Otherwise the rejection has been written to w and it returns nil, false.
// A nil cfg uses the dispatcher's global configuration.
func (d *Dispatcher) Check(w http.ResponseWriter, r *http.Request, cfg *resolver.Config) (*http.Request, bool) {
	if cfg == nil {
		cfg = d.cfg
	}

	ctx, span := d.tracer.Start(r.Context(), "apiversion.resolve", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	res := resolver.Resolve(resolver.FromHTTP(r), cfg)
	ev := Event{
		Result:     res,
		Method:     r.Method,
		Path:       r.URL.Path,
		Enumerated: res.OK() && (res.Raw == "" || version.Enumerates(cfg.Supported(), res.Version)),
	}
	span.SetAttributes(
		attribute.String(semconv.HTTPMethod, r.Method),
		attribute.String(semconv.APIVersionOutcome, res.Outcome.String()),
		attribute.String(semconv.APIVersionSource, res.Source),
		attribute.String(semconv.APIVersionRaw, res.Raw),
		attribute.String(semconv.APIVersion, res.Version.String()),
	)

	if !res.OK() {
		err := res.Err()
		span.SetStatus(codes.Error, err.Error())
		d.logger.DebugContext(ctx, "api version rejected", append(requestAttrs(ctx, r),
			slog.String(semconv.APIVersionOutcome, res.Outcome.String()),
			slog.String(semconv.APIVersionRaw, res.Raw),
			slog.String(semconv.APIVersionSource, res.Source),
			slog.Any("error", err),
		)...)
		d.notify(ctx, ev)
		d.reject(w, r, err)

		return nil, false
	}

	if _, ok := d.policy.Lookup(res.Version); ok {
		ev.Deprecated = true
		span.SetAttributes(attribute.Bool(semconv.APIVersionDeprecated, true))
	}

	if d.policy.Apply(w, res.Version) {
		ev.Gone = true
		err := &GoneError{Version: res.Version}
		span.SetAttributes(attribute.Bool(semconv.APIVersionGone, true))
		span.SetStatus(codes.Error, err.Error())
		d.logger.WarnContext(ctx, "sunset api version requested", append(requestAttrs(ctx, r),
			slog.String(semconv.APIVersion, res.Version.String()),
		)...)
		d.notify(ctx, ev)
		d.reject(w, r, err)

		return nil, false
	}

	if d.responseHeader != "" && !res.Version.IsZero() {
		w.Header().Set(d.responseHeader, res.Version.String())
	}

	d.notify(ctx, ev)

	return r.WithContext(withResult(ctx, res)), true
}

// requestAttrs returns the request and trace correlation fields shared by
// rejection logs.
func requestAttrs(ctx context.Context, r *http.Request) []any {
	attrs := []any{
		slog.String(semconv.HTTPMethod, r.Method),
		slog.String(semconv.HTTPTarget, r.URL.Path),
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		attrs = append(attrs,
			slog.String(semconv.TraceID, sc.TraceID().String()),
			slog.String(semconv.SpanID, sc.SpanID().String()),
		)
	}

	return attrs
}

func (d *Dispatcher) notify(ctx context.Context, ev Event) {
	for _, o := range d.observers {
		o.Observe(ctx, ev)
	}
}

func (d *Dispatcher) reject(w http.ResponseWriter, r *http.Request, err error) {
	if werr := problem.Write(w, d.formatter.Format(r, err)); werr != nil {
		d.logger.ErrorContext(r.Context(), "failed to write rejection", "error", werr)
	}
}
