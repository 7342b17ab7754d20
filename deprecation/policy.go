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

package deprecation

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"rivaas.dev/apiversion/version"
)

// Policy holds the lifecycle of every announced version. It is immutable
// after [New] and safe for concurrent use.
type Policy struct {
	entries       []entry
	warning299    bool
	enforceSunset bool
	now           func() time.Time
}

type entry struct {
	version   version.Spec
	lifecycle Lifecycle
}

// Option configures a [Policy].
type Option func(*Policy) error

// New builds a Policy.
func New(opts ...Option) (*Policy, error) {
	p := &Policy{now: time.Now}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	return p, nil
}

// WithVersion registers the lifecycle of v.
func WithVersion(v version.Spec, opts ...LifecycleOption) Option {
	return func(p *Policy) error {
		if v.IsZero() {
			return ErrZeroVersion
		}
		for _, e := range p.entries {
			if e.version.Equal(v) {
				return fmt.Errorf("%w %s", ErrDuplicateVersion, v)
			}
		}

		var lc Lifecycle
		for _, opt := range opts {
			opt(&lc)
		}
		if err := lc.validate(); err != nil {
			return fmt.Errorf("version %s: %w", v, err)
		}

		p.entries = append(p.entries, entry{version: v, lifecycle: lc})

		return nil
	}
}

// WithWarning299 adds a "Warning: 299" header to deprecated responses.
func WithWarning299() Option {
	return func(p *Policy) error {
		p.warning299 = true
		return nil
	}
}

// WithSunsetEnforcement makes [Policy.Apply] report versions past their
// sunset date as gone.
func WithSunsetEnforcement() Option {
	return func(p *Policy) error {
		p.enforceSunset = true
		return nil
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) error {
		if now == nil {
			return ErrNilClock
		}
		p.now = now

		return nil
	}
}

// Lookup returns the lifecycle registered for v.
func (p *Policy) Lookup(v version.Spec) (Lifecycle, bool) {
	if p == nil || v.IsZero() {
		return Lifecycle{}, false
	}
	for _, e := range p.entries {
		if e.version.Equal(v) {
			return e.lifecycle, true
		}
	}

	return Lifecycle{}, false
}

// Gone reports whether v is past its sunset date and enforcement is on.
func (p *Policy) Gone(v version.Spec) bool {
	if p == nil || !p.enforceSunset {
		return false
	}
	lc, ok := p.Lookup(v)

	return ok && lc.SunsetAt(p.now())
}

// Apply sets lifecycle headers for v on w and reports whether the version is
// gone. Unannounced versions get no headers.
func (p *Policy) Apply(w http.ResponseWriter, v version.Spec) (gone bool) {
	if w == nil {
		return false
	}
	lc, ok := p.Lookup(v)
	if !ok {
		return false
	}

	h := w.Header()
	if !lc.SunsetDate.IsZero() {
		h.Set("Sunset", lc.SunsetDate.UTC().Format(http.TimeFormat))
	}

	if p.enforceSunset && lc.SunsetAt(p.now()) {
		if lc.MigrationURL != "" {
			h.Set("Link", link(lc.MigrationURL, "sunset"))
		}

		return true
	}

	if lc.DeprecatedSince.IsZero() {
		h.Set("Deprecation", "true")
	} else {
		h.Set("Deprecation", "@"+strconv.FormatInt(lc.DeprecatedSince.Unix(), 10))
	}

	var links []string
	if lc.MigrationURL != "" {
		links = append(links, link(lc.MigrationURL, "deprecation"))
		if !lc.SunsetDate.IsZero() {
			links = append(links, link(lc.MigrationURL, "sunset"))
		}
	}
	if lc.SuccessorURL != "" {
		links = append(links, link(lc.SuccessorURL, "successor-version"))
	}
	if len(links) > 0 {
		h.Set("Link", strings.Join(links, ", "))
	}

	if p.warning299 {
		h.Set("Warning", warning(v, lc))
	}

	return false
}

func link(u, rel string) string {
	return fmt.Sprintf("<%s>; rel=%q", u, rel)
}

func warning(v version.Spec, lc Lifecycle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "API version %s is deprecated", v)
	if !lc.SunsetDate.IsZero() {
		b.WriteString(" and will be removed on ")
		b.WriteString(lc.SunsetDate.UTC().Format(time.RFC3339))
	}
	if !lc.Successor.IsZero() {
		fmt.Fprintf(&b, "; use %s", lc.Successor)
	}

	return "299 - " + strconv.Quote(b.String())
}
