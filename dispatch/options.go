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
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/apiversion/deprecation"
	"rivaas.dev/apiversion/problem"
)

// Option configures a [Dispatcher].
type Option func(*Dispatcher) error

// WithLogger sets the logger. Rejections log at Debug, sunset rejections at Warn.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) error {
		if logger == nil {
			return ErrNilLogger
		}
		d.logger = logger

		return nil
	}
}

// WithFormatter sets the formatter for rejection bodies.
// The default is an RFC 9457 formatter without a type base URL.
//
// Example:
//
//	dispatch.WithFormatter(problem.NewRFC9457("https://api.example.com/problems"))
func WithFormatter(f problem.Formatter) Option {
	return func(d *Dispatcher) error {
		if f == nil {
			return ErrNilFormatter
		}
		d.formatter = f

		return nil
	}
}

// WithObserver adds an observer. Observers run in registration order.
func WithObserver(o Observer) Option {
	return func(d *Dispatcher) error {
		if o == nil {
			return ErrNilObserver
		}
		d.observers = append(d.observers, o)

		return nil
	}
}

// WithDeprecations sets the lifecycle policy applied to resolved versions.
func WithDeprecations(p *deprecation.Policy) Option {
	return func(d *Dispatcher) error {
		if p == nil {
			return ErrNilPolicy
		}
		d.policy = p

		return nil
	}
}

// WithResponseHeader echoes the resolved version in the named response header.
//
// Example:
//
//	dispatch.WithResponseHeader("X-API-Version")
func WithResponseHeader(name string) Option {
	return func(d *Dispatcher) error {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyHeaderName
		}
		d.responseHeader = name

		return nil
	}
}

// WithTracerProvider records a span per resolution. The default is a no-op
// provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(d *Dispatcher) error {
		if tp == nil {
			return ErrNilTracerProvider
		}
		d.tracer = tp.Tracer(tracerName)

		return nil
	}
}
