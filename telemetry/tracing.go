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
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TraceOption configures [NewTracerProvider].
type TraceOption func(*traceConfig)

type traceConfig struct {
	serviceName    string
	serviceVersion string
	otlpEndpoint   string
	otlpGRPC       bool
	stdout         io.Writer
	exporterCount  int
	sampleRatio    float64
	registerGlobal bool
}

// WithOTLPTracing exports spans to an OTLP/HTTP collector.
func WithOTLPTracing(endpoint string) TraceOption {
	return func(c *traceConfig) {
		c.otlpEndpoint = endpoint
		c.exporterCount++
	}
}

// WithOTLPGRPCTracing exports spans to an OTLP/gRPC collector. The endpoint
// is host:port, optionally prefixed with http:// for a plaintext connection.
func WithOTLPGRPCTracing(endpoint string) TraceOption {
	return func(c *traceConfig) {
		c.otlpEndpoint = endpoint
		c.otlpGRPC = true
		c.exporterCount++
	}
}

// WithStdoutTracing pretty-prints spans to w.
func WithStdoutTracing(w io.Writer) TraceOption {
	return func(c *traceConfig) {
		c.stdout = w
		c.exporterCount++
	}
}

// WithTraceService sets the service.name and service.version resource attributes.
func WithTraceService(name, version string) TraceOption {
	return func(c *traceConfig) {
		c.serviceName = name
		c.serviceVersion = version
	}
}

// WithSampleRatio samples the given fraction of root spans. The default is 1.
func WithSampleRatio(ratio float64) TraceOption {
	return func(c *traceConfig) {
		c.sampleRatio = ratio
	}
}

// WithGlobalTracerProvider registers the provider with otel.SetTracerProvider.
func WithGlobalTracerProvider() TraceOption {
	return func(c *traceConfig) {
		c.registerGlobal = true
	}
}

// NewTracerProvider builds a tracer provider for dispatch.WithTracerProvider.
// Without an exporter option spans are sampled but not exported.
// The caller owns the provider and must call Shutdown.
func NewTracerProvider(ctx context.Context, opts ...TraceOption) (*sdktrace.TracerProvider, error) {
	c := &traceConfig{
		serviceName:    "apiversion",
		serviceVersion: "dev",
		sampleRatio:    1,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.exporterCount > 1 {
		return nil, ErrMultipleExporters
	}
	if c.sampleRatio < 0 || c.sampleRatio > 1 {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidSampleRatio, c.sampleRatio)
	}
	if c.serviceName == "" {
		return nil, ErrEmptyServiceName
	}

	tpOpts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(newResource(c.serviceName, c.serviceVersion)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(c.sampleRatio))),
	}

	switch {
	case c.otlpEndpoint != "" && c.otlpGRPC:
		var grpcOpts []otlptracegrpc.Option
		if host, insecure := splitEndpoint(c.otlpEndpoint); host != "" {
			grpcOpts = append(grpcOpts, otlptracegrpc.WithEndpoint(host))
			if insecure {
				grpcOpts = append(grpcOpts, otlptracegrpc.WithInsecure())
			}
		}
		exporter, err := otlptracegrpc.New(ctx, grpcOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP gRPC exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))

	case c.otlpEndpoint != "":
		var httpOpts []otlptracehttp.Option
		if host, insecure := splitEndpoint(c.otlpEndpoint); host != "" {
			httpOpts = append(httpOpts, otlptracehttp.WithEndpoint(host))
			if insecure {
				httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
			}
		}
		exporter, err := otlptracehttp.New(ctx, httpOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP HTTP exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exporter))

	case c.stdout != nil:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(c.stdout), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		tpOpts = append(tpOpts, sdktrace.WithSyncer(exporter))
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)
	if c.registerGlobal {
		otel.SetTracerProvider(tp)
	}

	return tp, nil
}
