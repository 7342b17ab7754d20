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

package semconv

// Service metadata, set once on the root logger.
const (
	ServiceName    = "service.name"
	ServiceVersion = "service.version"
)

// HTTP request attributes.
const (
	HTTPMethod = "http.method"
	HTTPTarget = "http.target"
)

// API version resolution attributes.
const (
	// APIVersion is the resolved version in canonical "major.minor.patch" form.
	// It is empty when the request resolved to no version.
	APIVersion = "api.version"

	// APIVersionRaw is the token extracted from the request, before parsing.
	APIVersionRaw = "api.version.raw"

	// APIVersionOutcome is one of "resolved", "missing" or "unsupported".
	APIVersionOutcome = "api.version.outcome"

	// APIVersionSource is the extraction method ("header", "query", "path",
	// "accept", "media_type", "custom"), empty when nothing was extracted.
	APIVersionSource = "api.version.source"

	// APIVersionDeprecated marks versions with a lifecycle entry.
	APIVersionDeprecated = "api.version.deprecated"

	// APIVersionGone marks requests rejected after the sunset date.
	APIVersionGone = "api.version.gone"
)

// Trace correlation keys for log records.
const (
	TraceID = "trace_id"
	SpanID  = "span_id"
)
