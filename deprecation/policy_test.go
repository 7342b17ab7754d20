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

package deprecation

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversion/version"
)

var (
	since  = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sunset = time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	v1     = version.MustParse("1.0")
	v2     = version.MustParse("2.0")
)

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func TestNewErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{name: "zero version", opts: []Option{WithVersion(version.NoVersion, Deprecated())}, wantErr: ErrZeroVersion},
		{name: "duplicate", opts: []Option{WithVersion(v1, Deprecated()), WithVersion(version.MustParse("1.0.0"), Deprecated())}, wantErr: ErrDuplicateVersion},
		{name: "nil clock", opts: []Option{WithClock(nil)}, wantErr: ErrNilClock},
		{name: "empty lifecycle", opts: []Option{WithVersion(v1, MigrationDocs("https://docs.example.com"))}, wantErr: ErrEmptyLifecycle},
		{name: "sunset before since", opts: []Option{WithVersion(v1, DeprecatedSince(sunset), Sunset(since))}, wantErr: ErrSunsetBeforeSince},
		{name: "relative docs url", opts: []Option{WithVersion(v1, Deprecated(), MigrationDocs("/docs"))}, wantErr: ErrInvalidMigrationURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, err := New(tt.opts...)
			require.Error(t, err)
			assert.Nil(t, p)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestApplyDeprecated(t *testing.T) {
	t.Parallel()

	p, err := New(
		WithVersion(v1,
			DeprecatedSince(since),
			Sunset(sunset),
			MigrationDocs("https://docs.example.com/migrate"),
			Successor(v2, "https://api.example.com/v2"),
		),
		WithWarning299(),
		WithSunsetEnforcement(),
		fixedClock(since.Add(24*time.Hour)),
	)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	gone := p.Apply(rec, version.MustParse("v1"))

	assert.False(t, gone)
	assert.Equal(t, "@1735689600", rec.Header().Get("Deprecation"))
	assert.Equal(t, "Wed, 31 Dec 2025 00:00:00 GMT", rec.Header().Get("Sunset"))
	assert.Equal(t,
		`<https://docs.example.com/migrate>; rel="deprecation", <https://docs.example.com/migrate>; rel="sunset", <https://api.example.com/v2>; rel="successor-version"`,
		rec.Header().Get("Link"))
	assert.Equal(t,
		`299 - "API version 1.0.0 is deprecated and will be removed on 2025-12-31T00:00:00Z; use 2.0.0"`,
		rec.Header().Get("Warning"))
}

func TestApplyDeprecatedWithoutDate(t *testing.T) {
	t.Parallel()

	p, err := New(WithVersion(v1, Deprecated()))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.False(t, p.Apply(rec, v1))
	assert.Equal(t, "true", rec.Header().Get("Deprecation"))
	assert.Empty(t, rec.Header().Get("Sunset"))
	assert.Empty(t, rec.Header().Get("Link"))
	assert.Empty(t, rec.Header().Get("Warning"))
}

func TestApplySunset(t *testing.T) {
	t.Parallel()

	after := fixedClock(sunset.Add(time.Hour))
	lifecycle := WithVersion(v1, Sunset(sunset), MigrationDocs("https://docs.example.com/migrate"))

	enforced, err := New(lifecycle, WithSunsetEnforcement(), after)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.True(t, enforced.Apply(rec, v1))
	assert.True(t, enforced.Gone(v1))
	assert.Equal(t, "Wed, 31 Dec 2025 00:00:00 GMT", rec.Header().Get("Sunset"))
	assert.Equal(t, `<https://docs.example.com/migrate>; rel="sunset"`, rec.Header().Get("Link"))
	assert.Empty(t, rec.Header().Get("Deprecation"))

	lenient, err := New(lifecycle, after)
	require.NoError(t, err)

	rec = httptest.NewRecorder()
	assert.False(t, lenient.Apply(rec, v1))
	assert.False(t, lenient.Gone(v1))
	assert.Equal(t, "true", rec.Header().Get("Deprecation"))
}

func TestApplyUnannounced(t *testing.T) {
	t.Parallel()

	p, err := New(WithVersion(v1, Deprecated()))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	assert.False(t, p.Apply(rec, v2))
	assert.False(t, p.Apply(rec, version.NoVersion))
	assert.Empty(t, rec.Header())

	var nilPolicy *Policy
	assert.False(t, nilPolicy.Apply(rec, v1))
	assert.False(t, nilPolicy.Gone(v1))
	assert.False(t, p.Apply(nil, v1))
}

func TestLookup(t *testing.T) {
	t.Parallel()

	p, err := New(WithVersion(v1, DeprecatedSince(since)))
	require.NoError(t, err)

	lc, ok := p.Lookup(version.MustParse("1.0.0"))
	require.True(t, ok)
	assert.True(t, lc.Deprecated)
	assert.Equal(t, since, lc.DeprecatedSince)
	assert.False(t, lc.SunsetAt(time.Now()))

	_, ok = p.Lookup(v2)
	assert.False(t, ok)
}
