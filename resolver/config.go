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

package resolver

import (
	"fmt"
	"slices"

	"rivaas.dev/apiversion/version"
)

// Config holds the versioning configuration for a route table.
// It is built once with [NewConfig] or [Builder] and is read-only afterwards.
type Config struct {
	// Extraction sources, consulted in order
	sources []Source

	// Required-version policy
	required    bool
	requiredSet bool // true when WithRequired was applied

	// Default version, parsed during validation
	defaultRaw     string
	defaultVersion version.Spec
	hasDefault     bool

	// Supported versions; nil allows every well-formed version
	supported version.Constraint

	parser version.Parser
}

// Option is a functional option for configuring version resolution.
type Option func(*Config) error

// NewConfig creates a validated Config.
//
// Example:
//
//	cfg, err := resolver.NewConfig(
//	    resolver.WithHeader("X-API-Version"),
//	    resolver.WithRequired(true),
//	)
func NewConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		parser: version.Parse,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustNewConfig is like [NewConfig] but panics on error.
func MustNewConfig(opts ...Option) *Config {
	cfg, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}

	return cfg
}

// validate checks the configuration and finalizes derived fields.
//
// Validations performed:
//   - at least one source is configured
//   - the default version parses and satisfies the supported constraint
//   - required=true is not combined with a default version
func (c *Config) validate() error {
	if len(c.sources) == 0 {
		return fmt.Errorf("%w: use resolver.WithHeader(\"X-API-Version\") or another source option", ErrNoSources)
	}

	if c.defaultRaw != "" {
		v, err := c.parse(c.defaultRaw)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidDefault, err)
		}
		if c.supported != nil && !c.supported.Allows(v) {
			return fmt.Errorf("%w: %s is outside %q", ErrDefaultUnsupported, v, c.supported.String())
		}
		c.defaultVersion = v
		c.hasDefault = true
	}

	if c.requiredSet && c.required && c.hasDefault {
		return fmt.Errorf("%w: remove WithDefault(%q) or set WithRequired(false)", ErrRequiredWithDefault, c.defaultRaw)
	}

	if !c.requiredSet {
		c.required = !c.hasDefault
	}

	return nil
}

// ForRoute returns a copy of c that checks supported instead of the global
// constraint. A nil constraint returns c unchanged.
func (c *Config) ForRoute(supported version.Constraint) *Config {
	if c == nil || supported == nil {
		return c
	}

	route := *c
	route.supported = supported

	return &route
}

// Required reports whether requests without a version are rejected.
func (c *Config) Required() bool {
	return c.required
}

// DefaultVersion returns the default version and whether one is configured.
func (c *Config) DefaultVersion() (version.Spec, bool) {
	return c.defaultVersion, c.hasDefault
}

// Supported returns the supported-version constraint, or nil when every
// well-formed version is accepted.
func (c *Config) Supported() version.Constraint {
	return c.supported
}

// Sources returns the extraction sources in priority order.
func (c *Config) Sources() []Source {
	return slices.Clone(c.sources)
}
