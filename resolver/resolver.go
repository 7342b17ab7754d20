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

// Resolve applies cfg to req.
//
// Resolution order:
//  1. Extract a token from the first source that yields a non-empty value.
//  2. No token: Missing when required, otherwise Resolved with the default
//     version (or NoVersion).
//  3. Token that fails to parse: Unsupported, with Cause set.
//  4. Parsed version outside the supported constraint: Unsupported.
//  5. Otherwise: Resolved.
//
// Resolve is pure: the same request and config always yield the same Result.
// A nil cfg resolves to NoVersion.
func Resolve(req Request, cfg *Config) Result {
	if cfg == nil {
		return Result{Outcome: Resolved}
	}

	raw, method := cfg.extract(req)
	if raw == "" {
		if cfg.required {
			return Result{Outcome: Missing, supported: cfg.supported}
		}

		return Result{Outcome: Resolved, Version: cfg.defaultVersion}
	}

	v, err := cfg.parse(raw)
	if err != nil {
		return Result{
			Outcome:   Unsupported,
			Raw:       raw,
			Source:    method,
			Cause:     err,
			supported: cfg.supported,
		}
	}

	if cfg.supported != nil && !cfg.supported.Allows(v) {
		return Result{
			Outcome:   Unsupported,
			Version:   v,
			Raw:       raw,
			Source:    method,
			supported: cfg.supported,
		}
	}

	return Result{Outcome: Resolved, Version: v, Raw: raw, Source: method}
}

// extract returns the first non-empty token and the method that found it.
func (c *Config) extract(req Request) (raw, method string) {
	if req == nil {
		return "", ""
	}

	for _, src := range c.sources {
		if v, ok := src.Extract(req); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v, src.Method()
			}
		}
	}

	return "", ""
}

// parse runs the configured parser; a panicking custom parser is reported as
// a parse error.
func (c *Config) parse(raw string) (v version.Spec, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = version.NoVersion, fmt.Errorf("%w: parser panic: %v", version.ErrMalformedVersion, r)
		}
	}()

	v, err = c.parser(raw)
	if err == nil && v.IsZero() {
		err = &version.ParseError{Raw: raw, Err: version.ErrMalformedVersion}
	}

	return v, err
}
