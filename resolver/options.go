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
	"strings"

	"rivaas.dev/apiversion/version"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Source Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithHeader reads the version from a request header.
//
// Example:
//
//	resolver.WithHeader("X-API-Version")
//	// Client sends: X-API-Version: 1.1
func WithHeader(name string) Option {
	return func(cfg *Config) error {
		if strings.TrimSpace(name) == "" {
			return ErrEmptyHeaderName
		}
		cfg.sources = append(cfg.sources, &headerSource{name: name})

		return nil
	}
}

// WithQueryParam reads the version from a query parameter.
//
// Example:
//
//	resolver.WithQueryParam("version")
//	// Client sends: GET /users?version=1.1
func WithQueryParam(name string) Option {
	return func(cfg *Config) error {
		if name == "" {
			return ErrEmptyQueryParam
		}
		cfg.sources = append(cfg.sources, &querySource{param: name})

		return nil
	}
}

// WithPathSegment reads the version from the path segment at index (0-based).
//
// Example:
//
//	resolver.WithPathSegment(0)
//	// Client sends: GET /v2/users
func WithPathSegment(index int) Option {
	return func(cfg *Config) error {
		if index < 0 {
			return fmt.Errorf("%w: got %d", ErrNegativePathSegment, index)
		}
		cfg.sources = append(cfg.sources, &pathSource{index: index})

		return nil
	}
}

// WithAcceptPattern reads the version from a vendor media type in Accept.
// The pattern must contain a {version} placeholder.
//
// Example:
//
//	resolver.WithAcceptPattern("application/vnd.myapi.v{version}+json")
//	// Client sends: Accept: application/vnd.myapi.v2+json
func WithAcceptPattern(pattern string) Option {
	return func(cfg *Config) error {
		if pattern == "" {
			return ErrEmptyAcceptPattern
		}
		if !strings.Contains(pattern, "{version}") {
			return fmt.Errorf("%w: accept pattern %q", ErrMissingVersionPlaceholder, pattern)
		}
		cfg.sources = append(cfg.sources, newAcceptSource(pattern))

		return nil
	}
}

// WithMediaTypeParam reads the version from a media type parameter in the
// Accept header, then Content-Type. An empty mediaType matches any type.
//
// Example:
//
//	resolver.WithMediaTypeParam("application/json", "version")
//	// Client sends: Accept: application/json;version=1.1
func WithMediaTypeParam(mediaType, param string) Option {
	return func(cfg *Config) error {
		if param == "" {
			return ErrEmptyMediaTypeParam
		}
		cfg.sources = append(cfg.sources, &mediaTypeSource{
			mediaType: strings.ToLower(mediaType),
			param:     strings.ToLower(param),
		})

		return nil
	}
}

// WithCustom reads the version with fn. It is consulted before every other
// source. Returning "" means no version was found.
//
// Example:
//
//	resolver.WithCustom(func(req resolver.Request) string {
//	    v, _ := req.Header("X-Client-Build")
//	    return buildToVersion(v)
//	})
func WithCustom(fn func(Request) string) Option {
	return func(cfg *Config) error {
		if fn == nil {
			return ErrNilCustomSource
		}
		// Insert at the beginning for highest priority
		cfg.sources = append([]Source{&customSource{fn: fn}}, cfg.sources...)

		return nil
	}
}

// WithSource adds a caller-provided [Source] at the end of the priority list.
func WithSource(src Source) Option {
	return func(cfg *Config) error {
		if src == nil {
			return ErrNilCustomSource
		}
		cfg.sources = append(cfg.sources, src)

		return nil
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Version Policy Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithRequired sets whether a request without a version is rejected.
func WithRequired(required bool) Option {
	return func(cfg *Config) error {
		cfg.required = required
		cfg.requiredSet = true

		return nil
	}
}

// WithDefault sets the version used when a request carries none.
// The token is parsed with the configured parser during validation.
//
// Example:
//
//	resolver.WithDefault("1.0")
func WithDefault(raw string) Option {
	return func(cfg *Config) error {
		if strings.TrimSpace(raw) == "" {
			return fmt.Errorf("%w: %w", ErrInvalidDefault, version.ErrEmptyVersion)
		}
		cfg.defaultRaw = raw

		return nil
	}
}

// WithSupported sets the constraint supported versions must satisfy.
//
// Example:
//
//	resolver.WithSupported(version.AtLeast(version.MustParse("1.2")))
func WithSupported(c version.Constraint) Option {
	return func(cfg *Config) error {
		if c == nil {
			return ErrNilConstraint
		}
		cfg.supported = c

		return nil
	}
}

// WithSupportedVersions restricts supported versions to an exact set.
//
// Example:
//
//	resolver.WithSupportedVersions("1.0", "1.1", "2.0")
func WithSupportedVersions(raw ...string) Option {
	return func(cfg *Config) error {
		if len(raw) == 0 {
			return ErrNoSupportedVersions
		}
		c, err := version.OneOf(raw...)
		if err != nil {
			return err
		}
		cfg.supported = c

		return nil
	}
}

// WithParser replaces [version.Parse] for request tokens and the default.
func WithParser(p version.Parser) Option {
	return func(cfg *Config) error {
		if p == nil {
			return ErrNilParser
		}
		cfg.parser = p

		return nil
	}
}
