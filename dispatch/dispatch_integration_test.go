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

//go:build integration

package dispatch_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/apiversion/deprecation"
	"rivaas.dev/apiversion/dispatch"
	"rivaas.dev/apiversion/resolver"
	"rivaas.dev/apiversion/version"
)

var _ = Describe("Dispatch Integration", func() {
	var (
		server *httptest.Server
		hits   int
	)

	get := func(path string, headers map[string]string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, server.URL+path, nil)
		Expect(err).NotTo(HaveOccurred())
		for k, v := range headers {
			req.Header.Set(k, v)
		}
		resp, err := server.Client().Do(req)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(resp.Body.Close)

		return resp
	}

	problemBody := func(resp *http.Response) map[string]any {
		var body map[string]any
		Expect(json.NewDecoder(resp.Body).Decode(&body)).To(Succeed())
		return body
	}

	AfterEach(func() {
		if server != nil {
			server.Close()
		}
	})

	Describe("Required header version", func() {
		BeforeEach(func() {
			hits = 0
			cfg := resolver.MustNewConfig(
				resolver.WithHeader("X-API-Version"),
				resolver.WithRequired(true),
			)
			d := dispatch.MustNew(cfg)

			mux := http.NewServeMux()
			mux.Handle("GET /", d.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits++
				_, _ = io.WriteString(w, "ok "+dispatch.Version(r).String())
			})))
			server = httptest.NewServer(mux)
		})

		It("rejects a request without the header with 400", func() {
			resp := get("/", nil)

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(resp.Header.Get("Content-Type")).To(HavePrefix("application/problem+json"))
			Expect(problemBody(resp)).To(HaveKeyWithValue("code", "missing_api_version"))
			Expect(hits).To(BeZero())
		})

		It("rejects a blank header value with 400", func() {
			resp := get("/", map[string]string{"X-API-Version": "   "})

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(hits).To(BeZero())
		})

		It("dispatches when the header is present", func() {
			resp := get("/", map[string]string{"X-API-Version": "1.2"})

			Expect(resp.StatusCode).To(Equal(http.StatusOK))
			body, err := io.ReadAll(resp.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(body)).To(Equal("ok 1.2.0"))
			Expect(hits).To(Equal(1))
		})

		It("rejects a malformed version with 400", func() {
			resp := get("/", map[string]string{"X-API-Version": "one"})

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(problemBody(resp)).To(HaveKeyWithValue("code", "unsupported_api_version"))
			Expect(hits).To(BeZero())
		})
	})

	Describe("Multiple sources with a lifecycle policy", func() {
		BeforeEach(func() {
			hits = 0
			now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
			policy, err := deprecation.New(
				deprecation.WithVersion(version.MustParse("1.0"),
					deprecation.Sunset(now.Add(-24*time.Hour)),
				),
				deprecation.WithVersion(version.MustParse("1.1"),
					deprecation.DeprecatedSince(now.Add(-30*24*time.Hour)),
					deprecation.MigrationDocs("https://docs.example.com/v2"),
				),
				deprecation.WithSunsetEnforcement(),
				deprecation.WithClock(func() time.Time { return now }),
			)
			Expect(err).NotTo(HaveOccurred())

			cfg := resolver.MustNewConfig(
				resolver.WithHeader("X-API-Version"),
				resolver.WithQueryParam("version"),
				resolver.WithDefault("2.0"),
				resolver.WithSupportedVersions("1.0", "1.1", "2.0"),
			)
			d := dispatch.MustNew(cfg,
				dispatch.WithDeprecations(policy),
				dispatch.WithResponseHeader("API-Version"),
			)

			mux := http.NewServeMux()
			mux.Handle("GET /items", d.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits++
				w.WriteHeader(http.StatusNoContent)
			})))
			server = httptest.NewServer(mux)
		})

		It("falls back to the default version", func() {
			resp := get("/items", nil)

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(resp.Header.Get("API-Version")).To(Equal("2.0.0"))
		})

		It("prefers the header over the query parameter", func() {
			resp := get("/items?version=1.0", map[string]string{"X-API-Version": "2.0"})

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(resp.Header.Get("API-Version")).To(Equal("2.0.0"))
		})

		It("announces deprecation", func() {
			resp := get("/items?version=1.1", nil)

			Expect(resp.StatusCode).To(Equal(http.StatusNoContent))
			Expect(resp.Header.Get("Deprecation")).To(HavePrefix("@"))
			Expect(resp.Header.Get("Link")).To(ContainSubstring(`rel="deprecation"`))
		})

		It("answers 410 for a sunset version", func() {
			resp := get("/items?version=1.0", nil)

			Expect(resp.StatusCode).To(Equal(http.StatusGone))
			Expect(resp.Header.Get("Sunset")).NotTo(BeEmpty())
			Expect(problemBody(resp)).To(HaveKeyWithValue("code", dispatch.CodeSunset))
			Expect(hits).To(BeZero())
		})

		It("rejects unsupported versions", func() {
			resp := get("/items", map[string]string{"X-API-Version": "3.0"})

			Expect(resp.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(problemBody(resp)).To(HaveKeyWithValue("supported", "1.0.0, 1.1.0, 2.0.0"))
		})
	})
})

//nolint:paralleltest // Integration test suite
func TestDispatchIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispatch Integration Suite")
}
