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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"

	"rivaas.dev/apiversion/version"
)

// envPrefix is prepended to every environment variable name.
const envPrefix = "VERSIOND_"

var errHelp = errors.New("help requested")

// Config is the demo server configuration.
type Config struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	ServiceName     string        `mapstructure:"service_name" validate:"required"`
	ServiceVersion  string        `mapstructure:"service_version"`
	LogLevel        string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	NoBanner        bool          `mapstructure:"no_banner"`
	RequestID       string        `mapstructure:"request_id" validate:"oneof=uuid ulid"`
	CompressLevel   int           `mapstructure:"compress_level" validate:"gte=0,lte=9"`

	Versioning   VersioningConfig    `mapstructure:"versioning"`
	Routes       []RouteConfig       `mapstructure:"routes" validate:"dive"`
	Deprecations []DeprecationConfig `mapstructure:"deprecations" validate:"dive"`
	Metrics      MetricsConfig       `mapstructure:"metrics"`
	Tracing      TracingConfig       `mapstructure:"tracing"`
}

// VersioningConfig selects the version sources and policy.
type VersioningConfig struct {
	Header         string `mapstructure:"header"`
	Query          string `mapstructure:"query"`
	PathSegment    *int   `mapstructure:"path_segment" validate:"omitempty,gte=0"`
	AcceptPattern  string `mapstructure:"accept_pattern" validate:"omitempty,contains={version}"`
	MediaType      string `mapstructure:"media_type"`
	MediaTypeParam string `mapstructure:"media_type_param"`
	Required       *bool  `mapstructure:"required"`
	Default        string `mapstructure:"default" validate:"omitempty,api_version"`
	Supported      string `mapstructure:"supported" validate:"omitempty,version_constraint"`
	ResponseHeader string `mapstructure:"response_header"`
	ProblemFormat  string `mapstructure:"problem_format" validate:"oneof=rfc9457 simple"`
	ProblemBaseURL string `mapstructure:"problem_base_url" validate:"omitempty,url"`
	EnforceSunset  bool   `mapstructure:"enforce_sunset"`
	Warning299     bool   `mapstructure:"warning_299"`
}

// RouteConfig narrows the supported versions of one demo route.
type RouteConfig struct {
	Path      string `mapstructure:"path" validate:"required,startswith=/"`
	Supported string `mapstructure:"supported" validate:"required,version_constraint"`
}

// DeprecationConfig announces the lifecycle of one version.
type DeprecationConfig struct {
	Version      string `mapstructure:"version" validate:"required,api_version"`
	Since        string `mapstructure:"since" validate:"omitempty,date"`
	Sunset       string `mapstructure:"sunset" validate:"omitempty,date"`
	Docs         string `mapstructure:"docs" validate:"omitempty,url"`
	Successor    string `mapstructure:"successor" validate:"omitempty,api_version"`
	SuccessorURL string `mapstructure:"successor_url" validate:"omitempty,url"`
}

// MetricsConfig selects the metrics exporter.
type MetricsConfig struct {
	Exporter string `mapstructure:"exporter" validate:"oneof=prometheus otlp stdout none"`
	Endpoint string `mapstructure:"endpoint" validate:"required_if=Exporter otlp"`
	Path     string `mapstructure:"path" validate:"startswith=/"`
}

// TracingConfig selects the trace exporter.
type TracingConfig struct {
	Exporter    string  `mapstructure:"exporter" validate:"oneof=otlp otlp-grpc stdout none"`
	Endpoint    string  `mapstructure:"endpoint" validate:"required_if=Exporter otlp,required_if=Exporter otlp-grpc"`
	SampleRatio float64 `mapstructure:"sample_ratio" validate:"gte=0,lte=1"`
}

type kind int

const (
	kindString kind = iota
	kindBool
	kindInt
	kindFloat
	kindDuration
)

// setting maps one configuration key to its flag and environment variable.
type setting struct {
	key   string // dotted path into the config map
	flag  string
	env   string // without envPrefix
	kind  kind
	usage string
}

var settings = []setting{
	{key: "addr", flag: "addr", env: "ADDR", usage: "listen address"},
	{key: "service_name", flag: "service-name", env: "SERVICE_NAME", usage: "service name for banner and telemetry"},
	{key: "service_version", flag: "service-version", env: "SERVICE_VERSION", usage: "service version for telemetry"},
	{key: "log_level", flag: "log-level", env: "LOG_LEVEL", usage: "log level: debug, info, warn, error"},
	{key: "log_format", flag: "log-format", env: "LOG_FORMAT", usage: "log format: json or text"},
	{key: "shutdown_timeout", flag: "shutdown-timeout", env: "SHUTDOWN_TIMEOUT", kind: kindDuration, usage: "graceful shutdown timeout"},
	{key: "request_id", flag: "request-id", env: "REQUEST_ID", usage: "request ID format: uuid or ulid"},
	{key: "compress_level", flag: "compress-level", env: "COMPRESS_LEVEL", kind: kindInt, usage: "response compression level, 0 disables"},
	{key: "no_banner", flag: "no-banner", env: "NO_BANNER", kind: kindBool, usage: "do not print the startup banner"},

	{key: "versioning.header", flag: "version-header", env: "VERSION_HEADER", usage: "request header carrying the version"},
	{key: "versioning.query", flag: "version-query", env: "VERSION_QUERY", usage: "query parameter carrying the version"},
	{key: "versioning.path_segment", flag: "version-path-segment", env: "VERSION_PATH_SEGMENT", kind: kindInt, usage: "path segment index carrying the version"},
	{key: "versioning.accept_pattern", flag: "version-accept", env: "VERSION_ACCEPT", usage: "vendor media type pattern with {version}"},
	{key: "versioning.media_type", flag: "version-media-type", env: "VERSION_MEDIA_TYPE", usage: "media type whose parameter carries the version"},
	{key: "versioning.media_type_param", flag: "version-media-type-param", env: "VERSION_MEDIA_TYPE_PARAM", usage: "media type parameter carrying the version"},
	{key: "versioning.required", flag: "version-required", env: "VERSION_REQUIRED", kind: kindBool, usage: "reject requests without a version"},
	{key: "versioning.default", flag: "version-default", env: "VERSION_DEFAULT", usage: "version used when none is sent"},
	{key: "versioning.supported", flag: "version-supported", env: "VERSION_SUPPORTED", usage: `supported versions, e.g. "1.0, 1.1, 2.0+"`},
	{key: "versioning.response_header", flag: "version-response-header", env: "VERSION_RESPONSE_HEADER", usage: "response header echoing the resolved version"},
	{key: "versioning.enforce_sunset", flag: "enforce-sunset", env: "ENFORCE_SUNSET", kind: kindBool, usage: "answer 410 Gone for versions past their sunset date"},
	{key: "versioning.warning_299", flag: "warning-299", env: "WARNING_299", kind: kindBool, usage: "add a Warning: 299 header for deprecated versions"},
	{key: "versioning.problem_format", flag: "problem-format", env: "PROBLEM_FORMAT", usage: "error body format: rfc9457 or simple"},
	{key: "versioning.problem_base_url", flag: "problem-base-url", env: "PROBLEM_BASE_URL", usage: "base URL for problem type URIs"},

	{key: "metrics.exporter", flag: "metrics-exporter", env: "METRICS_EXPORTER", usage: "metrics exporter: prometheus, otlp, stdout, none"},
	{key: "metrics.endpoint", flag: "metrics-endpoint", env: "METRICS_ENDPOINT", usage: "OTLP metrics endpoint"},
	{key: "metrics.path", flag: "metrics-path", env: "METRICS_PATH", usage: "Prometheus scrape path"},
	{key: "tracing.exporter", flag: "tracing-exporter", env: "TRACING_EXPORTER", usage: "trace exporter: otlp, otlp-grpc, stdout, none"},
	{key: "tracing.endpoint", flag: "tracing-endpoint", env: "TRACING_ENDPOINT", usage: "OTLP trace endpoint"},
	{key: "tracing.sample_ratio", flag: "tracing-sample-ratio", env: "TRACING_SAMPLE_RATIO", kind: kindFloat, usage: "fraction of requests traced"},
}

func defaults() map[string]any {
	return map[string]any{
		"addr":             ":8080",
		"service_name":     "versiond",
		"service_version":  "dev",
		"log_level":        "info",
		"log_format":       "text",
		"shutdown_timeout": 10 * time.Second,
		"request_id":       "uuid",
		"versioning": map[string]any{
			"header":         "X-API-Version",
			"problem_format": "rfc9457",
		},
		"metrics": map[string]any{
			"exporter": "prometheus",
			"path":     "/metrics",
		},
		"tracing": map[string]any{
			"exporter":     "none",
			"sample_ratio": 1.0,
		},
	}
}

// loadConfig builds the configuration from defaults, an optional file, an
// optional Consul key, VERSIOND_* variables in environ and args, in
// increasing precedence.
func loadConfig(ctx context.Context, args, environ []string) (*Config, error) {
	return configLoader{newKV: newConsulKV}.load(ctx, args, environ)
}

type configLoader struct {
	newKV func(environ []string) (consulKV, error)
}

func (l configLoader) load(ctx context.Context, args, environ []string) (*Config, error) {
	fs := pflag.NewFlagSet("versiond", pflag.ContinueOnError)
	configPath := fs.StringP("config", "c", "", "YAML or TOML configuration file")
	consulKey := fs.String("consul-key", "", "Consul KV key holding a YAML or TOML document")
	for _, s := range settings {
		switch s.kind {
		case kindBool:
			fs.Bool(s.flag, false, s.usage)
		case kindInt:
			fs.Int(s.flag, 0, s.usage)
		case kindFloat:
			fs.Float64(s.flag, 0, s.usage)
		case kindDuration:
			fs.Duration(s.flag, 0, s.usage)
		default:
			fs.String(s.flag, "", s.usage)
		}
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, errHelp
		}

		return nil, err
	}

	values := defaults()

	if *configPath != "" {
		fromFile, err := readFile(*configPath)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(&values, fromFile, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge %s: %w", *configPath, err)
		}
	}

	if *consulKey == "" {
		*consulKey = lookupEnv(environ, envPrefix+"CONSUL_KEY")
	}
	if *consulKey != "" {
		kv, err := l.newKV(environ)
		if err != nil {
			return nil, err
		}
		fromConsul, err := loadConsul(ctx, kv, *consulKey)
		if err != nil {
			return nil, err
		}
		if err := mergo.Merge(&values, fromConsul, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merge consul %s: %w", *consulKey, err)
		}
	}

	fromEnv, err := envValues(environ)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(&values, fromEnv, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge environment: %w", err)
	}

	fromFlags, err := flagValues(fs)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(&values, fromFlags, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("merge flags: %w", err)
	}

	cfg := &Config{}
	if err := decode(values, cfg); err != nil {
		return nil, err
	}
	if err := newValidator().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// readFile decodes a YAML or TOML file into a map, by extension.
func readFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	out := map[string]any{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &out)
	case ".toml":
		err = toml.Unmarshal(data, &out)
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	return out, nil
}

func lookupEnv(environ []string, key string) string {
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}

	return ""
}

func envValues(environ []string) (map[string]any, error) {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, envPrefix) {
			env[strings.TrimPrefix(k, envPrefix)] = v
		}
	}

	out := map[string]any{}
	var errs []error
	for _, s := range settings {
		raw, ok := env[s.env]
		if !ok || raw == "" {
			continue
		}
		v, err := s.kind.convert(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid environment variable %s%s: %w", envPrefix, s.env, err))
			continue
		}
		setPath(out, s.key, v)
	}

	return out, errors.Join(errs...)
}

func flagValues(fs *pflag.FlagSet) (map[string]any, error) {
	byFlag := make(map[string]setting, len(settings))
	for _, s := range settings {
		byFlag[s.flag] = s
	}

	out := map[string]any{}
	var errs []error
	fs.Visit(func(f *pflag.Flag) {
		s, ok := byFlag[f.Name]
		if !ok {
			return
		}
		v, err := s.kind.convert(f.Value.String())
		if err != nil {
			errs = append(errs, fmt.Errorf("invalid flag --%s: %w", f.Name, err))
			return
		}
		setPath(out, s.key, v)
	})

	return out, errors.Join(errs...)
}

func (k kind) convert(raw string) (any, error) {
	switch k {
	case kindBool:
		return cast.ToBoolE(raw)
	case kindInt:
		return cast.ToIntE(raw)
	case kindFloat:
		return cast.ToFloat64E(raw)
	case kindDuration:
		return cast.ToDurationE(raw)
	default:
		return raw, nil
	}
}

// setPath stores v under a dotted key, creating nested maps.
func setPath(m map[string]any, key string, v any) {
	parts := strings.Split(key, ".")
	for _, p := range parts[:len(parts)-1] {
		next, ok := m[p].(map[string]any)
		if !ok {
			next = map[string]any{}
			m[p] = next
		}
		m = next
	}
	m[parts[len(parts)-1]] = v
}

func decode(values map[string]any, cfg *Config) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			timeToStringHook,
			mapstructure.StringToTimeDurationHookFunc(),
		),
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(values); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	return nil
}

// timeToStringHook keeps TOML dates usable in string fields.
func timeToStringHook(from, to reflect.Type, data any) (any, error) {
	if t, ok := data.(time.Time); ok && to.Kind() == reflect.String {
		return t.Format(time.RFC3339), nil
	}

	return data, nil
}

// parseDate accepts an RFC 3339 timestamp or a plain date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	return time.Parse(time.DateOnly, s)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("api_version", func(fl validator.FieldLevel) bool {
		_, err := version.Parse(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("version_constraint", func(fl validator.FieldLevel) bool {
		_, err := version.ParseConstraint(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := parseDate(fl.Field().String())
		return err == nil
	})

	return v
}
