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

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		raw        string
		major      uint64
		minor      uint64
		patch      uint64
		prerelease string
		str        string
	}{
		{name: "major only", raw: "1", major: 1, str: "1.0.0"},
		{name: "major minor", raw: "1.2", major: 1, minor: 2, str: "1.2.0"},
		{name: "full", raw: "1.2.3", major: 1, minor: 2, patch: 3, str: "1.2.3"},
		{name: "v prefix", raw: "v2", major: 2, str: "2.0.0"},
		{name: "upper V prefix", raw: "V3.1", major: 3, minor: 1, str: "3.1.0"},
		{name: "surrounding spaces", raw: "  1.1 ", major: 1, minor: 1, str: "1.1.0"},
		{name: "prerelease", raw: "2.0.0-rc.1", major: 2, prerelease: "rc.1", str: "2.0.0-rc.1"},
		{name: "build metadata dropped", raw: "1.0.0+abc", major: 1, str: "1.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.major, v.Major())
			assert.Equal(t, tt.minor, v.Minor())
			assert.Equal(t, tt.patch, v.Patch())
			assert.Equal(t, tt.prerelease, v.Prerelease())
			assert.Equal(t, tt.str, v.String())
			assert.False(t, v.IsZero())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "empty", raw: "", wantErr: ErrEmptyVersion},
		{name: "blank", raw: "   ", wantErr: ErrEmptyVersion},
		{name: "prefix only", raw: "v", wantErr: ErrMalformedVersion},
		{name: "letters", raw: "abc", wantErr: ErrMalformedVersion},
		{name: "leading zero", raw: "01", wantErr: ErrMalformedVersion},
		{name: "too many components", raw: "1.2.3.4", wantErr: ErrMalformedVersion},
		{name: "short with prerelease", raw: "1-beta", wantErr: ErrMalformedVersion},
		{name: "trailing dot", raw: "1.", wantErr: ErrMalformedVersion},
		{name: "overflow", raw: "99999999999999999999999", wantErr: ErrMalformedVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v, err := Parse(tt.raw)
			require.Error(t, err)
			require.ErrorIs(t, err, tt.wantErr)
			assert.True(t, v.IsZero())

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.raw, perr.Raw)
		})
	}
}

func TestSpecCompare(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, MustParse("1.2").Compare(MustParse("v1.2.0")))
	assert.Equal(t, -1, MustParse("1.2").Compare(MustParse("1.10")))
	assert.Equal(t, 1, MustParse("2").Compare(MustParse("1.99.99")))
	assert.Equal(t, -1, MustParse("2.0.0-rc.1").Compare(MustParse("2.0.0")))
	assert.Equal(t, -1, NoVersion.Compare(MustParse("0.0.1")))

	assert.True(t, MustParse("1.2").Equal(MustParse("v1.2.0")))
	assert.False(t, MustParse("1.2").Equal(MustParse("1.2.1")))
	assert.True(t, NoVersion.Equal(Spec{}))
	assert.False(t, NoVersion.Equal(MustParse("0")))
}

func TestSpecRoundTrip(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"1", "1.2", "v1.2.3", "0.9.0-alpha"} {
		first := MustParse(raw)
		second, err := Parse(first.String())
		require.NoError(t, err)
		assert.True(t, first.Equal(second), "round trip of %q", raw)
		assert.Equal(t, raw, first.Raw())
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	v := New(3, 1, 4)
	assert.Equal(t, "3.1.4", v.String())
	assert.Equal(t, "v3.1.4", v.Canonical())
	assert.True(t, v.Equal(MustParse("3.1.4")))

	text, err := v.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "3.1.4", string(text))
}

func TestNoVersion(t *testing.T) {
	t.Parallel()

	assert.True(t, NoVersion.IsZero())
	assert.Empty(t, NoVersion.String())
	assert.Empty(t, NoVersion.Canonical())
}

func TestMustParsePanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustParse("not-a-version") })
}
