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

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"rivaas.dev/apiversion/deprecation"
	"rivaas.dev/apiversion/dispatch"
	"rivaas.dev/apiversion/problem"
	"rivaas.dev/apiversion/resolver"
	"rivaas.dev/apiversion/telemetry"
	"rivaas.dev/apiversion/version"
)

// server wires the versioning components behind a chi router.
type server struct {
	handler    http.Handler
	dispatcher *dispatch.Dispatcher
	recorder   *telemetry.Recorder
	tracer     *sdktrace.TracerProvider
}

func newServer(ctx context.Context, cfg *Config, logger *slog.Logger) (*server, error) {
	s := &server{}

	resolverCfg, err := resolver.NewConfig(resolverOptions(cfg.Versioning)...)
	if err != nil {
		return nil, err
	}

	opts := []dispatch.Option{
		dispatch.WithLogger(logger),
		dispatch.WithFormatter(formatter(cfg.Versioning)),
	}
	if cfg.Versioning.ResponseHeader != "" {
		opts = append(opts, dispatch.WithResponseHeader(cfg.Versioning.ResponseHeader))
	}

	if len(cfg.Deprecations) > 0 {
		policy, err := newPolicy(cfg.Versioning, cfg.Deprecations)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dispatch.WithDeprecations(policy))
	}

	if s.recorder, err = newRecorder(cfg, logger); err != nil {
		return nil, err
	}
	if s.recorder != nil {
		opts = append(opts, dispatch.WithObserver(s.recorder))
	}

	if s.tracer, err = newTracerProvider(ctx, cfg); err != nil {
		s.close(ctx, logger)
		return nil, err
	}
	if s.tracer != nil {
		opts = append(opts, dispatch.WithTracerProvider(s.tracer))
	}

	if s.dispatcher, err = dispatch.New(resolverCfg, opts...); err != nil {
		s.close(ctx, logger)
		return nil, err
	}

	if s.handler, err = s.routes(cfg); err != nil {
		s.close(ctx, logger)
		return nil, err
	}

	return s, nil
}

func (s *server) routes(cfg *Config) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(requestID(cfg.RequestID), middleware.RealIP, middleware.Recoverer)
	if cfg.CompressLevel > 0 {
		r.Use(compressor(cfg.CompressLevel).Handler)
	}

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok")) //nolint:errcheck // Health probe
	})

	if s.recorder != nil && s.recorder.Provider() == telemetry.PrometheusProvider {
		h, err := s.recorder.Handler()
		if err != nil {
			return nil, err
		}
		r.Method(http.MethodGet, cfg.Metrics.Path, h)
	}

	// Configured routes carry their own constraint and skip the catch-all.
	for _, rt := range cfg.Routes {
		c, err := version.ParseConstraint(rt.Supported)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", rt.Path, err)
		}
		r.With(s.dispatcher.Route(c)).Handle(rt.Path, http.HandlerFunc(echoVersion))
	}

	r.Group(func(r chi.Router) {
		r.Use(s.dispatcher.Middleware())
		r.Handle("/*", http.HandlerFunc(echoVersion))
	})

	return r, nil
}

// compressor negotiates brotli ahead of chi's gzip and deflate encoders.
func compressor(level int) *middleware.Compressor {
	c := middleware.NewCompressor(level, "application/json", "application/problem+json", "text/plain")
	c.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})

	return c
}

// echoVersion reports the version the request was dispatched with.
func echoVersion(w http.ResponseWriter, r *http.Request) {
	res, _ := dispatch.ResultFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck // Client went away
		"version":    res.Version.String(),
		"source":     res.Source,
		"outcome":    res.Outcome.String(),
		"path":       r.URL.Path,
		"request_id": requestIDFrom(r.Context()),
	})
}

// close flushes and stops telemetry. Errors are logged.
func (s *server) close(ctx context.Context, logger *slog.Logger) {
	if s.recorder != nil {
		if err := s.recorder.Shutdown(ctx); err != nil {
			logger.Error("metrics shutdown failed", "error", err)
		}
	}
	if s.tracer != nil {
		if err := s.tracer.Shutdown(ctx); err != nil {
			logger.Error("tracer shutdown failed", "error", err)
		}
	}
}

func resolverOptions(v VersioningConfig) []resolver.Option {
	var opts []resolver.Option
	if v.Header != "" {
		opts = append(opts, resolver.WithHeader(v.Header))
	}
	if v.Query != "" {
		opts = append(opts, resolver.WithQueryParam(v.Query))
	}
	if v.PathSegment != nil {
		opts = append(opts, resolver.WithPathSegment(*v.PathSegment))
	}
	if v.AcceptPattern != "" {
		opts = append(opts, resolver.WithAcceptPattern(v.AcceptPattern))
	}
	if v.MediaTypeParam != "" {
		opts = append(opts, resolver.WithMediaTypeParam(v.MediaType, v.MediaTypeParam))
	}
	if v.Required != nil {
		opts = append(opts, resolver.WithRequired(*v.Required))
	}
	if v.Default != "" {
		opts = append(opts, resolver.WithDefault(v.Default))
	}
	if v.Supported != "" {
		// Already checked by the version_constraint validation.
		c, err := version.ParseConstraint(v.Supported)
		if err == nil {
			opts = append(opts, resolver.WithSupported(c))
		}
	}

	return opts
}

func formatter(v VersioningConfig) problem.Formatter {
	if v.ProblemFormat == "simple" {
		return problem.NewSimple()
	}

	return problem.NewRFC9457(v.ProblemBaseURL)
}

func newPolicy(v VersioningConfig, deps []DeprecationConfig) (*deprecation.Policy, error) {
	var opts []deprecation.Option
	if v.EnforceSunset {
		opts = append(opts, deprecation.WithSunsetEnforcement())
	}
	if v.Warning299 {
		opts = append(opts, deprecation.WithWarning299())
	}

	for _, dep := range deps {
		spec, err := version.Parse(dep.Version)
		if err != nil {
			return nil, err
		}

		lifecycle := []deprecation.LifecycleOption{deprecation.Deprecated()}
		if dep.Since != "" {
			since, err := parseDate(dep.Since)
			if err != nil {
				return nil, fmt.Errorf("deprecation %s: since: %w", dep.Version, err)
			}
			lifecycle = append(lifecycle, deprecation.DeprecatedSince(since))
		}
		if dep.Sunset != "" {
			sunset, err := parseDate(dep.Sunset)
			if err != nil {
				return nil, fmt.Errorf("deprecation %s: sunset: %w", dep.Version, err)
			}
			lifecycle = append(lifecycle, deprecation.Sunset(sunset))
		}
		if dep.Docs != "" {
			lifecycle = append(lifecycle, deprecation.MigrationDocs(dep.Docs))
		}
		if dep.Successor != "" {
			next, err := version.Parse(dep.Successor)
			if err != nil {
				return nil, err
			}
			lifecycle = append(lifecycle, deprecation.Successor(next, dep.SuccessorURL))
		}

		opts = append(opts, deprecation.WithVersion(spec, lifecycle...))
	}

	return deprecation.New(opts...)
}

func newRecorder(cfg *Config, logger *slog.Logger) (*telemetry.Recorder, error) {
	opts := []telemetry.Option{
		telemetry.WithServiceName(cfg.ServiceName),
		telemetry.WithServiceVersion(cfg.ServiceVersion),
		telemetry.WithLogger(logger),
	}

	switch cfg.Metrics.Exporter {
	case "none":
		return nil, nil //nolint:nilnil // Metrics disabled
	case "otlp":
		opts = append(opts, telemetry.WithOTLP(cfg.Metrics.Endpoint))
	case "stdout":
		opts = append(opts, telemetry.WithStdout())
	default:
		opts = append(opts, telemetry.WithPrometheus())
	}

	return telemetry.New(opts...)
}

func newTracerProvider(ctx context.Context, cfg *Config) (*sdktrace.TracerProvider, error) {
	opts := []telemetry.TraceOption{
		telemetry.WithTraceService(cfg.ServiceName, cfg.ServiceVersion),
		telemetry.WithSampleRatio(cfg.Tracing.SampleRatio),
	}

	switch cfg.Tracing.Exporter {
	case "otlp":
		opts = append(opts, telemetry.WithOTLPTracing(cfg.Tracing.Endpoint))
	case "otlp-grpc":
		opts = append(opts, telemetry.WithOTLPGRPCTracing(cfg.Tracing.Endpoint))
	case "stdout":
		opts = append(opts, telemetry.WithStdoutTracing(os.Stderr))
	default:
		return nil, nil //nolint:nilnil // Tracing disabled
	}

	tp, err := telemetry.NewTracerProvider(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	return tp, nil
}
