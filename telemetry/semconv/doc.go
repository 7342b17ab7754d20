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

// Package semconv defines the attribute keys shared by logs, spans and
// metrics that describe API version resolution.
//
// Keys follow OpenTelemetry naming where a convention exists (service.*,
// http.*) and use the api.version namespace otherwise:
//
//	logger.Debug("api version rejected",
//	    semconv.HTTPMethod, r.Method,
//	    semconv.APIVersionOutcome, "missing",
//	)
//
//	span.SetAttributes(attribute.String(semconv.APIVersion, "1.2.0"))
package semconv
