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
	"fmt"
	"strings"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	otelsemconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

func (r *Recorder) initializeProvider() error {
	if r.customMeterProvider {
		r.logger.Debug("using caller-managed meter provider")
		return nil
	}

	var reader sdkmetric.Reader
	switch r.provider {
	case PrometheusProvider:
		// A private registry keeps the exporter off the global default registry
		r.prometheusRegistry = promclient.NewRegistry()
		exporter, err := prometheus.New(prometheus.WithRegisterer(r.prometheusRegistry))
		if err != nil {
			return fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		r.prometheusHandler = promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{})
		reader = exporter

	case OTLPProvider:
		exporter, err := otlpmetrichttp.New(context.Background(), otlpOptions(r.otlpEndpoint)...)
		if err != nil {
			return fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval))

	case StdoutProvider:
		var opts []stdoutmetric.Option
		if r.stdoutWriter != nil {
			opts = append(opts, stdoutmetric.WithWriter(r.stdoutWriter))
		}
		exporter, err := stdoutmetric.New(opts...)
		if err != nil {
			return fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		reader = sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(r.exportInterval))

	default:
		return fmt.Errorf("unsupported metrics provider: %s", r.provider)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(reader),
		sdkmetric.WithResource(newResource(r.serviceName, r.serviceVersion)),
	)
	r.meterProvider = mp

	if r.registerGlobal {
		otel.SetMeterProvider(mp)
	}
	r.logger.Info("metrics initialized", "provider", string(r.provider), "service", r.serviceName)

	return nil
}

// otlpOptions turns "http://host:port/path" into exporter options.
func otlpOptions(endpoint string) []otlpmetrichttp.Option {
	host, insecure := splitEndpoint(endpoint)
	if host == "" {
		return nil
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	return opts
}

// splitEndpoint strips the scheme and path from endpoint and reports whether
// the scheme was plain http.
func splitEndpoint(endpoint string) (host string, insecure bool) {
	host = endpoint
	if trimmed, ok := strings.CutPrefix(host, "http://"); ok {
		host, insecure = trimmed, true
	} else {
		host = strings.TrimPrefix(host, "https://")
	}
	if i := strings.IndexByte(host, '/'); i != -1 {
		host = host[:i]
	}

	return host, insecure
}

func newResource(serviceName, serviceVersion string) *resource.Resource {
	return resource.NewWithAttributes(
		otelsemconv.SchemaURL,
		otelsemconv.ServiceName(serviceName),
		otelsemconv.ServiceVersion(serviceVersion),
	)
}
