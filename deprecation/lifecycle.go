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
	"net/url"
	"time"

	"rivaas.dev/apiversion/version"
)

// Lifecycle describes the deprecation state of one version.
type Lifecycle struct {
	Deprecated      bool
	DeprecatedSince time.Time // zero when the date is unknown
	SunsetDate      time.Time
	MigrationURL    string
	Successor       version.Spec
	SuccessorURL    string
}

// LifecycleOption configures a [Lifecycle].
type LifecycleOption func(*Lifecycle)

// Deprecated marks the version as deprecated without a date. Clients see
// "Deprecation: true".
func Deprecated() LifecycleOption {
	return func(lc *Lifecycle) {
		lc.Deprecated = true
	}
}

// DeprecatedSince marks the version as deprecated since date.
//
// Example:
//
//	deprecation.DeprecatedSince(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
func DeprecatedSince(date time.Time) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.Deprecated = true
		lc.DeprecatedSince = date
	}
}

// Sunset sets the date after which the version is removed. A sunset date
// implies deprecation.
func Sunset(date time.Time) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.Deprecated = true
		lc.SunsetDate = date
	}
}

// MigrationDocs sets the documentation URL sent in Link headers with
// rel="deprecation" and rel="sunset".
func MigrationDocs(u string) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.MigrationURL = u
	}
}

// Successor names the version clients should move to. It appears in the
// Warning text and, when link is non-empty, as a rel="successor-version" Link.
//
// Example:
//
//	deprecation.Successor(version.MustParse("2.0"), "https://api.example.com/v2")
func Successor(v version.Spec, link string) LifecycleOption {
	return func(lc *Lifecycle) {
		lc.Successor = v
		lc.SuccessorURL = link
	}
}

// validate checks a lifecycle built from options.
func (lc *Lifecycle) validate() error {
	if !lc.Deprecated {
		return ErrEmptyLifecycle
	}
	if !lc.SunsetDate.IsZero() && !lc.DeprecatedSince.IsZero() && lc.SunsetDate.Before(lc.DeprecatedSince) {
		return ErrSunsetBeforeSince
	}
	for _, raw := range []string{lc.MigrationURL, lc.SuccessorURL} {
		if raw == "" {
			continue
		}
		if u, err := url.Parse(raw); err != nil || !u.IsAbs() {
			return ErrInvalidMigrationURL
		}
	}

	return nil
}

// SunsetAt reports whether the version is past its sunset date at now.
func (lc Lifecycle) SunsetAt(now time.Time) bool {
	return !lc.SunsetDate.IsZero() && now.After(lc.SunsetDate)
}
