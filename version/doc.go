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

// Package version provides a parsed, comparable representation of API
// version tokens and the constraints used to decide which versions a route
// supports.
//
// # Parsing
//
// Tokens follow Semantic Versioning with relaxed forms. A leading "v" or "V"
// is optional and minor/patch components default to zero:
//
//	v, err := version.Parse("v1.2")   // 1.2.0
//	v, err := version.Parse("2")      // 2.0.0
//	v, err := version.Parse("1.0.0-rc.1")
//
// Two specs are equal when their components are equal, regardless of how the
// raw token was spelled ("1.2" equals "v1.2.0").
//
// # Constraints
//
// A [Constraint] reports whether a version is allowed:
//
//	version.Exact(version.MustParse("1.0"), version.MustParse("1.1"))
//	version.AtLeast(version.MustParse("1.2"))             // 1.2+
//	version.Between(version.MustParse("1.0"), version.MustParse("2.0"))
//	version.ParseConstraint("1.0, 1.1, 2.0+")
//
// All values in this package are immutable and safe for concurrent use.
package version
