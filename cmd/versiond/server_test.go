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

//go:build !integration

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversion/telemetry/semconv"
)

func newTestServer(t *testing.T, args ...string) *server {
	t.Helper()

	cfg, err := loadConfig(context.Background(), args, nil)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s, err := newServer(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { s.close(context.Background(), logger) })

	return s
}

func serve(s *server, method, target string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	return rec
}

func versionHeader(v string) http.Header {
	return http.Header{"X-Api-Version": []string{v}}
}

func TestServerRequiresVersion(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "--version-supported", "1.0, 2.0")

	rec := serve(s, http.MethodGet, "/orders", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "missing_api_version", body["code"])
	assert.Equal(t, "/orders", body["instance"])
}

func TestServerResolvesVersion(t *testing.T) {
	t.Parallel()

	s := newTestServer(t,
		"--version-supported", "1.0, 2.0",
		"--version-response-header", "X-API-Version-Served",
	)

	rec := serve(s, http.MethodPost, "/orders/42", versionHeader("2.0"))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "2.0.0", rec.Header().Get("X-API-Version-Served"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "2.0.0", body["version"])
	assert.Equal(t, "header", body["source"])
	assert.Equal(t, "resolved", body["outcome"])
	assert.Equal(t, "/orders/42", body["path"])
	assert.NotEmpty(t, body["request_id"])
}

func TestServerDefaultVersion(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "--version-default", "1.1")

	rec := serve(s, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1.1.0", body["version"])
	assert.Equal(t, "resolved", body["outcome"])
	assert.Empty(t, body["source"])
}

func TestServerHealthzSkipsVersioning(t *testing.T) {
	t.Parallel()

	s := newTestServer(t)

	rec := serve(s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServerRouteConstraint(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "versiond.yaml", `
versioning:
  supported: "1.0, 2.0"
routes:
  - path: /legacy
    supported: "1.0"
`)
	s := newTestServer(t, "--config", path)

	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/legacy", versionHeader("1.0")).Code)
	assert.Equal(t, http.StatusBadRequest, serve(s, http.MethodGet, "/legacy", versionHeader("2.0")).Code)
	assert.Equal(t, http.StatusOK, serve(s, http.MethodGet, "/other", versionHeader("2.0")).Code)
}

func TestServerDeprecations(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "versiond.yaml", `
versioning:
  supported: "1.0, 2.0, 3.0"
  enforce_sunset: true
deprecations:
  - version: "1.0"
    sunset: "2020-01-01"
  - version: "2.0"
    since: "2025-01-01"
    successor: "3.0"
    successor_url: https://example.com/v3
`)
	s := newTestServer(t, "--config", path)

	gone := serve(s, http.MethodGet, "/orders", versionHeader("1.0"))
	assert.Equal(t, http.StatusGone, gone.Code)
	assert.Equal(t, "Wed, 01 Jan 2020 00:00:00 GMT", gone.Header().Get("Sunset"))

	deprecated := serve(s, http.MethodGet, "/orders", versionHeader("2.0"))
	assert.Equal(t, http.StatusOK, deprecated.Code)
	assert.Equal(t, "@1735689600", deprecated.Header().Get("Deprecation"))
	assert.Contains(t, deprecated.Header().Get("Link"), `<https://example.com/v3>; rel="successor-version"`)

	current := serve(s, http.MethodGet, "/orders", versionHeader("3.0"))
	assert.Equal(t, http.StatusOK, current.Code)
	assert.Empty(t, current.Header().Get("Deprecation"))
}

func TestServerSimpleProblemFormat(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "--version-supported", "1.0", "--problem-format", "simple")

	rec := serve(s, http.MethodGet, "/", versionHeader("9.0"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unsupported_api_version", body["code"])
	assert.Contains(t, body, "error")
}

func TestServerMetrics(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "--version-supported", "1.0")
	require.NotNil(t, s.recorder)

	serve(s, http.MethodGet, "/", versionHeader("1.0"))

	rec := serve(s, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "api_version_resolutions_total{")
	assert.Contains(t, rec.Body.String(), `api_version="1.0.0"`)
}

func TestServerMetricsDisabled(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "--metrics-exporter", "none", "--version-default", "1.0")
	assert.Nil(t, s.recorder)

	// Without a metrics route the catch-all answers.
	rec := serve(s, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"version":"1.0.0"`)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(context.Background(), []string{"--log-level", "warn", "--log-format", "json"}, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := newLogger(cfg, &buf)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelWarn))

	logger.Warn("hello")
	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, "versiond", line[semconv.ServiceName])
	assert.Equal(t, "dev", line[semconv.ServiceVersion])
}

func TestNewLoggerText(t *testing.T) {
	t.Parallel()

	cfg, err := loadConfig(context.Background(), []string{"--log-level", "debug", "--service-name", "orders"}, nil)
	require.NoError(t, err)
	require.Equal(t, "text", cfg.LogFormat)

	var buf bytes.Buffer
	logger := newLogger(cfg, &buf)
	_, ok := logger.Handler().(*log.Logger)
	assert.True(t, ok, "text format uses the console logger, got %T", logger.Handler())
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))

	logger.Info("api version rejected", "outcome", "missing")
	out := buf.String()
	assert.Contains(t, out, "api version rejected")
	assert.Contains(t, out, semconv.ServiceName+"=orders")
	assert.Contains(t, out, "outcome=missing")
}

func TestRunHelp(t *testing.T) {
	t.Parallel()

	require.NoError(t, run(context.Background(), []string{"--help"}, nil, io.Discard, io.Discard))
}

func TestRunInvalidConfig(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), []string{"--log-level", "loud"}, nil, io.Discard, io.Discard)
	require.Error(t, err)
}

func TestRunShutsDownOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, []string{"--addr", "127.0.0.1:0", "--no-banner"}, nil, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestServerCompression(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, "--compress-level", "5", "--version-default", "1.0")

	rec := serve(s, http.MethodGet, "/", http.Header{"Accept-Encoding": []string{"gzip, br"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "br", rec.Header().Get("Content-Encoding"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(brotli.NewReader(rec.Body)).Decode(&body))
	assert.Equal(t, "1.0.0", body["version"])
}
