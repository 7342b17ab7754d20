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

package problem_test

import (
	"fmt"
	"net/http/httptest"

	"rivaas.dev/apiversion/problem"
	"rivaas.dev/apiversion/resolver"
)

func ExampleRFC9457() {
	cfg := resolver.MustNewConfig(
		resolver.WithHeader("X-API-Version"),
		resolver.WithSupportedVersions("1.0", "1.1"),
	)
	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("X-API-Version", "3.0")

	res := resolver.Resolve(resolver.FromHTTP(req), cfg)

	f := &problem.RFC9457{BaseURL: "https://example.com/problems", DisableErrorID: true}
	rec := httptest.NewRecorder()
	_ = problem.Write(rec, f.Format(req, res.Err()))

	fmt.Println(rec.Code)
	fmt.Print(rec.Body.String())

	// Output:
	// 400
	// {"code":"unsupported_api_version","detail":"API version \"3.0\" is not supported, supported versions: 1.0.0, 1.1.0","instance":"/users","status":400,"supported":"1.0.0, 1.1.0","title":"Bad Request","type":"https://example.com/problems/unsupported_api_version","version":"3.0"}
}
