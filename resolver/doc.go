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

// Package resolver extracts the API version a client asked for and decides
// whether a request may proceed.
//
// # Overview
//
// A [Config] lists where to look for the version token (header, query
// parameter, path segment, Accept media type, or a custom function), whether
// a version is required, the default version, and the supported versions.
// [Resolve] applies a Config to a [Request] and returns a [Result]:
//
//   - Resolved: the request carries a supported version, or no version was
//     sent and none is required (the default, or NoVersion, is used).
//   - Missing: no version was sent and one is required.
//   - Unsupported: a version was sent but is malformed or not supported.
//
// Resolution has no side effects and the Config is immutable, so both are
// safe for concurrent use without locking.
//
// # Configuration
//
// With functional options:
//
//	cfg, err := resolver.NewConfig(
//	    resolver.WithHeader("X-API-Version"),
//	    resolver.WithRequired(true),
//	    resolver.WithSupportedVersions("1.0", "1.1", "2.0"),
//	)
//
// Or with the chained builder:
//
//	cfg, err := resolver.NewBuilder().
//	    UseHeader("X-API-Version").
//	    SetVersionRequired(true).
//	    Build()
//
// Sources are consulted in the order they were declared and the first
// non-empty token wins. A custom source is always consulted first.
//
// When required is not set explicitly it defaults to true unless a default
// version is configured. Declaring both a default and required=true is a
// configuration error.
//
// # Per-route constraints
//
// [Config.ForRoute] returns a copy of the Config that checks a route-specific
// constraint instead of the global one:
//
//	v2Only := cfg.ForRoute(version.AtLeast(version.MustParse("2.0")))
//	res := resolver.Resolve(resolver.FromHTTP(req), v2Only)
package resolver
