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

// Package problem writes machine-readable error bodies for rejected requests.
//
// Two formats are provided:
//   - RFC9457: RFC 9457 Problem Details (application/problem+json)
//   - Simple: a flat JSON object (application/json)
//
// Errors steer the output through optional interfaces. [ErrorType] sets the
// status code, [ErrorCode] a machine-readable code and [ErrorDetails]
// structured details. resolver.Error implements all three, so a rejected
// version renders as:
//
//	HTTP/1.1 400 Bad Request
//	Content-Type: application/problem+json; charset=utf-8
//
//	{
//	  "type": "https://example.com/problems/unsupported_api_version",
//	  "title": "Bad Request",
//	  "status": 400,
//	  "detail": "API version \"3.0\" is not supported, supported versions: 1.0, 1.1",
//	  "instance": "/users",
//	  "code": "unsupported_api_version",
//	  "version": "3.0",
//	  "supported": "1.0, 1.1",
//	  "error_id": "err-..."
//	}
//
// Use [Write] to send a [Response] on an http.ResponseWriter.
package problem
