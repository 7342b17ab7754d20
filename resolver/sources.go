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
	"mime"
	"strconv"
	"strings"
)

// Source extracts a raw version token from a request.
type Source interface {
	// Extract returns the token and whether the source found one.
	Extract(req Request) (string, bool)

	// Method returns the source name used in results and telemetry.
	Method() string
}

// Source method names.
const (
	MethodHeader    = "header"
	MethodQuery     = "query"
	MethodPath      = "path"
	MethodAccept    = "accept"
	MethodMediaType = "media_type"
	MethodCustom    = "custom"
)

// ═══════════════════════════════════════════════════════════════════════════════
// Header Source
// ═══════════════════════════════════════════════════════════════════════════════

type headerSource struct {
	name string
}

func (s *headerSource) Extract(req Request) (string, bool) {
	return req.Header(s.name)
}

func (s *headerSource) Method() string { return MethodHeader }

func (s *headerSource) String() string { return "header " + s.name }

// ═══════════════════════════════════════════════════════════════════════════════
// Query Source
// ═══════════════════════════════════════════════════════════════════════════════

type querySource struct {
	param string
}

func (s *querySource) Extract(req Request) (string, bool) {
	return req.QueryParam(s.param)
}

func (s *querySource) Method() string { return MethodQuery }

func (s *querySource) String() string { return "query " + s.param }

// ═══════════════════════════════════════════════════════════════════════════════
// Path Segment Source
// ═══════════════════════════════════════════════════════════════════════════════

type pathSource struct {
	index int
}

func (s *pathSource) Extract(req Request) (string, bool) {
	return req.PathSegment(s.index)
}

func (s *pathSource) Method() string { return MethodPath }

func (s *pathSource) String() string { return "path segment " + strconv.Itoa(s.index) }

// ═══════════════════════════════════════════════════════════════════════════════
// Accept Pattern Source
// ═══════════════════════════════════════════════════════════════════════════════

// acceptSource matches vendor media types such as
// "application/vnd.myapi.v{version}+json" in the Accept header.
type acceptSource struct {
	pattern string
	prefix  string // part before {version}
	suffix  string // part after {version}
}

func newAcceptSource(pattern string) *acceptSource {
	prefix, suffix, _ := strings.Cut(pattern, "{version}")

	return &acceptSource{pattern: pattern, prefix: prefix, suffix: suffix}
}

func (s *acceptSource) Extract(req Request) (string, bool) {
	accept, ok := req.Header("Accept")
	if !ok || accept == "" {
		return "", false
	}

	for mediaType := range strings.SplitSeq(accept, ",") {
		mediaType = strings.TrimSpace(mediaType)

		// Drop parameters such as q=0.9
		if semi := strings.IndexByte(mediaType, ';'); semi >= 0 {
			mediaType = strings.TrimSpace(mediaType[:semi])
		}

		if len(mediaType) <= len(s.prefix)+len(s.suffix) {
			continue
		}
		if !strings.HasPrefix(mediaType, s.prefix) || !strings.HasSuffix(mediaType, s.suffix) {
			continue
		}

		return mediaType[len(s.prefix) : len(mediaType)-len(s.suffix)], true
	}

	return "", false
}

func (s *acceptSource) Method() string { return MethodAccept }

func (s *acceptSource) String() string { return "accept " + s.pattern }

// ═══════════════════════════════════════════════════════════════════════════════
// Media Type Parameter Source
// ═══════════════════════════════════════════════════════════════════════════════

// mediaTypeSource reads a media type parameter, e.g. "application/json;version=1.1",
// from the Accept header first and then Content-Type.
type mediaTypeSource struct {
	mediaType string // empty matches any media type
	param     string
}

func (s *mediaTypeSource) Extract(req Request) (string, bool) {
	if accept, ok := req.Header("Accept"); ok {
		for entry := range strings.SplitSeq(accept, ",") {
			if v, ok := s.fromMediaType(entry); ok {
				return v, true
			}
		}
	}

	if contentType, ok := req.Header("Content-Type"); ok {
		return s.fromMediaType(contentType)
	}

	return "", false
}

func (s *mediaTypeSource) fromMediaType(value string) (string, bool) {
	mt, params, err := mime.ParseMediaType(strings.TrimSpace(value))
	if err != nil {
		return "", false
	}
	if s.mediaType != "" && !mediaTypesCompatible(mt, s.mediaType) {
		return "", false
	}
	v, ok := params[s.param]
	if !ok || v == "" {
		return "", false
	}

	return v, true
}

func (s *mediaTypeSource) Method() string { return MethodMediaType }

func (s *mediaTypeSource) String() string {
	if s.mediaType == "" {
		return "media type parameter " + s.param
	}

	return "media type " + s.mediaType + " parameter " + s.param
}

// mediaTypesCompatible reports whether a and b match, honoring "*" wildcards
// in either type or subtype.
func mediaTypesCompatible(a, b string) bool {
	aType, aSub, _ := strings.Cut(a, "/")
	bType, bSub, _ := strings.Cut(b, "/")

	typeOK := aType == "*" || bType == "*" || aType == bType
	subOK := aSub == "*" || bSub == "*" || aSub == bSub

	return typeOK && subOK
}

// ═══════════════════════════════════════════════════════════════════════════════
// Custom Source
// ═══════════════════════════════════════════════════════════════════════════════

type customSource struct {
	fn func(Request) string
}

// Extract treats a panicking extractor as supplying no token.
func (s *customSource) Extract(req Request) (v string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			v, ok = "", false
		}
	}()
	v = s.fn(req)

	return v, v != ""
}

func (s *customSource) Method() string { return MethodCustom }

func (s *customSource) String() string { return "custom" }
