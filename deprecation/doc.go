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

// Package deprecation announces the lifecycle of API versions to clients.
//
// A [Policy] maps versions to a [Lifecycle]. For a deprecated version,
// [Policy.Apply] sets the standard headers:
//
//	Deprecation: @1735689600                                  (RFC 9745)
//	Sunset: Wed, 31 Dec 2025 00:00:00 GMT                     (RFC 8594)
//	Link: <https://docs.example.com/v2>; rel="deprecation"
//	Warning: 299 - "API version 1.0.0 is deprecated ..."      (opt-in)
//
// With sunset enforcement enabled, Apply reports versions past their sunset
// date as gone so the caller can answer 410 Gone.
//
//	policy, err := deprecation.New(
//	    deprecation.WithVersion(version.MustParse("1.0"),
//	        deprecation.DeprecatedSince(jan1),
//	        deprecation.Sunset(dec31),
//	        deprecation.MigrationDocs("https://docs.example.com/v2"),
//	    ),
//	    deprecation.WithSunsetEnforcement(),
//	)
package deprecation
