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
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
)

// Request is the view of an incoming request the resolver needs.
// Each lookup reports whether the value is present.
type Request interface {
	// Header returns the first value of the named header.
	Header(name string) (string, bool)

	// QueryParam returns the first value of the named query parameter, unescaped.
	QueryParam(name string) (string, bool)

	// PathSegment returns the non-empty path segment at index (0-based).
	// For "/v1/users", index 0 is "v1" and index 1 is "users".
	PathSegment(index int) (string, bool)
}

// FromHTTP adapts a *http.Request to [Request].
func FromHTTP(req *http.Request) Request {
	return httpRequest{req: req}
}

type httpRequest struct {
	req *http.Request
}

func (r httpRequest) Header(name string) (string, bool) {
	if r.req == nil {
		return "", false
	}
	vals := r.req.Header.Values(name)
	if len(vals) == 0 {
		return "", false
	}

	return vals[0], true
}

func (r httpRequest) QueryParam(name string) (string, bool) {
	if r.req == nil || r.req.URL == nil {
		return "", false
	}
	raw, ok := extractQueryParam(r.req.URL.RawQuery, name)
	if !ok {
		return "", false
	}
	if v, err := url.QueryUnescape(raw); err == nil {
		return v, true
	}

	return raw, true
}

func (r httpRequest) PathSegment(index int) (string, bool) {
	if r.req == nil || r.req.URL == nil {
		return "", false
	}

	return pathSegment(r.req.URL.Path, index)
}

// StaticRequest is a [Request] backed by plain values.
// It is useful for non-HTTP callers and tests.
type StaticRequest struct {
	Headers map[string]string
	Query   map[string]string
	Path    string
}

// Header looks up name case-insensitively. The exact key wins, then the
// canonical MIME form; among other spellings the lexically smallest key wins.
func (r StaticRequest) Header(name string) (string, bool) {
	if v, ok := r.Headers[name]; ok {
		return v, true
	}
	if v, ok := r.Headers[textproto.CanonicalMIMEHeaderKey(name)]; ok {
		return v, true
	}

	var (
		match string
		found bool
	)
	for k := range r.Headers {
		if strings.EqualFold(k, name) && (!found || k < match) {
			match, found = k, true
		}
	}
	if !found {
		return "", false
	}

	return r.Headers[match], true
}

func (r StaticRequest) QueryParam(name string) (string, bool) {
	v, ok := r.Query[name]
	return v, ok
}

func (r StaticRequest) PathSegment(index int) (string, bool) {
	return pathSegment(r.Path, index)
}

// extractQueryParam scans RawQuery for param without building url.Values.
//
// Examples:
//   - "v=1" → "1", true
//   - "foo=bar&v=2&baz=qux" → "2", true
//   - "api_v=1" → "", false (for param "v")
//   - "v=" → "", true
func extractQueryParam(rawQuery, param string) (string, bool) {
	if rawQuery == "" || param == "" {
		return "", false
	}

	for pair := range strings.SplitSeq(rawQuery, "&") {
		key, value, _ := strings.Cut(pair, "=")
		if key == param {
			return value, true
		}
	}

	return "", false
}

// pathSegment returns the index-th non-empty segment of path.
func pathSegment(path string, index int) (string, bool) {
	if index < 0 {
		return "", false
	}

	i := 0
	for seg := range strings.SplitSeq(path, "/") {
		if seg == "" {
			continue
		}
		if i == index {
			return seg, true
		}
		i++
	}

	return "", false
}
