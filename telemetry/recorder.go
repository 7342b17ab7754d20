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

package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/apiversion/dispatch"
	"rivaas.dev/apiversion/telemetry/semconv"
)

// Provider names a built-in metrics backend.
type Provider string

const (
	PrometheusProvider Provider = "prometheus"
	OTLPProvider       Provider = "otlp"
	StdoutProvider     Provider = "stdout"
)

const (
	meterName = "rivaas.dev/apiversion"

	// Instrument names. The Prometheus exporter appends _total to counters.
	metricResolutions = "api_version_resolutions"
	metricDeprecated  = "api_version_deprecated_requests"
)

var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Recorder counts version resolutions. It implements dispatch.Observer and
// is safe for concurrent use.
type Recorder struct {
	provider            Provider
	providerSetCount    int
	customMeterProvider bool
	registerGlobal      bool

	serviceName    string
	serviceVersion string
	otlpEndpoint   string
	stdoutWriter   io.Writer
	exportInterval time.Duration
	logger         *slog.Logger

	meterProvider      metric.MeterProvider
	prometheusRegistry *promclient.Registry
	prometheusHandler  http.Handler

	resolutions metric.Int64Counter
	deprecated  metric.Int64Counter

	isShutdown atomic.Bool
}

// New creates a Recorder. The Prometheus provider is used unless another
// provider option is given.
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		provider:       PrometheusProvider,
		serviceName:    "apiversion",
		serviceVersion: "dev",
		exportInterval: 30 * time.Second,
		logger:         noopLogger,
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := r.initializeProvider(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	if err := r.initializeInstruments(); err != nil {
		return nil, fmt.Errorf("failed to create instruments: %w", err)
	}

	return r, nil
}

// MustNew is like [New] but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(err)
	}

	return r
}

func (r *Recorder) validate() error {
	var errs []error
	if r.providerSetCount > 1 {
		errs = append(errs, ErrMultipleProviders)
	}
	if r.customMeterProvider && r.meterProvider == nil {
		errs = append(errs, ErrNilMeterProvider)
	}
	if r.serviceName == "" {
		errs = append(errs, ErrEmptyServiceName)
	}
	if r.exportInterval <= 0 {
		errs = append(errs, ErrInvalidInterval)
	}

	return errors.Join(errs...)
}

func (r *Recorder) initializeInstruments() error {
	meter := r.meterProvider.Meter(meterName)

	var err error
	r.resolutions, err = meter.Int64Counter(metricResolutions,
		metric.WithDescription("API version resolutions by outcome, source and version"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return err
	}

	r.deprecated, err = meter.Int64Counter(metricDeprecated,
		metric.WithDescription("Requests for versions with a deprecation lifecycle"),
		metric.WithUnit("{request}"),
	)

	return err
}

// Observe records one resolution.
func (r *Recorder) Observe(ctx context.Context, ev dispatch.Event) {
	if r.isShutdown.Load() {
		return
	}

	res := ev.Result

	// Client-chosen versions would grow the series without limit.
	v := ""
	if ev.Enumerated {
		v = res.Version.String()
	}

	attrs := metric.WithAttributes(
		attribute.String(semconv.APIVersionOutcome, res.Outcome.String()),
		attribute.String(semconv.APIVersionSource, res.Source),
		attribute.String(semconv.APIVersion, v),
		attribute.Bool(semconv.APIVersionGone, ev.Gone),
	)
	r.resolutions.Add(ctx, 1, attrs)

	if ev.Deprecated {
		r.deprecated.Add(ctx, 1, metric.WithAttributes(
			attribute.String(semconv.APIVersion, res.Version.String()),
			attribute.Bool(semconv.APIVersionGone, ev.Gone),
		))
	}
}

// Handler returns the Prometheus scrape handler.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.prometheusHandler == nil {
		return nil, ErrNoPrometheus
	}

	return r.prometheusHandler, nil
}

// Provider returns the active provider, or "" for a caller-managed one.
func (r *Recorder) Provider() Provider {
	if r.customMeterProvider {
		return ""
	}

	return r.provider
}

// ForceFlush exports pending metrics for push providers.
func (r *Recorder) ForceFlush(ctx context.Context) error {
	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok || r.customMeterProvider {
		return nil
	}

	return mp.ForceFlush(ctx)
}

// Shutdown flushes and stops the built-in meter provider. It is idempotent.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.isShutdown.CompareAndSwap(false, true) {
		return nil
	}
	if r.customMeterProvider {
		r.logger.Debug("skipping shutdown of caller-managed meter provider")
		return nil
	}

	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}

	if err := mp.ForceFlush(ctx); err != nil {
		r.logger.Warn("metrics flush failed", "error", err)
	}
	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}
	r.logger.Debug("meter provider shut down", "provider", string(r.provider))

	return nil
}
