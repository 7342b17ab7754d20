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

//go:build !integration

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAcceptSource(t *testing.T) {
	t.Parallel()

	src := newAcceptSource("application/vnd.myapi.v{version}+json")

	tests := []struct {
		name      string
		accept    string
		wantValue string
		wantFound bool
	}{
		{name: "single", accept: "application/vnd.myapi.v2+json", wantValue: "2", wantFound: true},
		{name: "dotted", accept: "application/vnd.myapi.v1.1+json", wantValue: "1.1", wantFound: true},
		{name: "with quality", accept: "application/vnd.myapi.v3+json;q=0.9", wantValue: "3", wantFound: true},
		{name: "second entry", accept: "text/html, application/vnd.myapi.v4+json", wantValue: "4", wantFound: true},
		{name: "plain json", accept: "application/json", wantFound: false},
		{name: "empty version", accept: "application/vnd.myapi.v+json", wantFound: false},
		{name: "no header", accept: "", wantFound: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := StaticRequest{}
			if tt.accept != "" {
				req.Headers = map[string]string{"Accept": tt.accept}
			}
			got, found := src.Extract(req)
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, got)
		})
	}

	assert.Equal(t, MethodAccept, src.Method())
}

func TestMediaTypeSource(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       *mediaTypeSource
		headers   map[string]string
		wantValue string
		wantFound bool
	}{
		{
			name:      "accept parameter",
			src:       &mediaTypeSource{mediaType: "application/json", param: "version"},
			headers:   map[string]string{"Accept": "application/json;version=1.1"},
			wantValue: "1.1",
			wantFound: true,
		},
		{
			name:      "incompatible media type",
			src:       &mediaTypeSource{mediaType: "application/json", param: "version"},
			headers:   map[string]string{"Accept": "application/xml;version=1.1"},
			wantFound: false,
		},
		{
			name:      "wildcard accept",
			src:       &mediaTypeSource{mediaType: "application/json", param: "version"},
			headers:   map[string]string{"Accept": "application/*;version=2"},
			wantValue: "2",
			wantFound: true,
		},
		{
			name:      "any media type",
			src:       &mediaTypeSource{param: "v"},
			headers:   map[string]string{"Accept": "text/plain, application/hal+json; v=3"},
			wantValue: "3",
			wantFound: true,
		},
		{
			name:      "content type fallback",
			src:       &mediaTypeSource{mediaType: "application/json", param: "version"},
			headers:   map[string]string{"Accept": "text/html", "Content-Type": "application/json; version=1.0"},
			wantValue: "1.0",
			wantFound: true,
		},
		{
			name:      "parameter absent",
			src:       &mediaTypeSource{mediaType: "application/json", param: "version"},
			headers:   map[string]string{"Accept": "application/json"},
			wantFound: false,
		},
		{
			name:      "unparseable",
			src:       &mediaTypeSource{param: "version"},
			headers:   map[string]string{"Accept": ";;;"},
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, found := tt.src.Extract(StaticRequest{Headers: tt.headers})
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantValue, got)
		})
	}
}

func TestMediaTypesCompatible(t *testing.T) {
	t.Parallel()

	assert.True(t, mediaTypesCompatible("application/json", "application/json"))
	assert.True(t, mediaTypesCompatible("*/*", "application/json"))
	assert.True(t, mediaTypesCompatible("application/json", "application/*"))
	assert.False(t, mediaTypesCompatible("text/json", "application/json"))
	assert.False(t, mediaTypesCompatible("application/xml", "application/json"))
}

func TestSourceMethods(t *testing.T) {
	t.Parallel()

	assert.Equal(t, MethodHeader, (&headerSource{name: "X"}).Method())
	assert.Equal(t, MethodQuery, (&querySource{param: "v"}).Method())
	assert.Equal(t, MethodPath, (&pathSource{index: 0}).Method())
	assert.Equal(t, MethodMediaType, (&mediaTypeSource{param: "v"}).Method())
	assert.Equal(t, MethodCustom, (&customSource{fn: func(Request) string { return "" }}).Method())
}
