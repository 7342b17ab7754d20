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

package version

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
)

// NoVersion is the zero Spec. It is what a request resolves to when no
// version is required, none was sent and no default is configured.
var NoVersion = Spec{}

// Spec is a parsed API version.
// It is immutable; use [Parse] or [New] to create one.
type Spec struct {
	major uint64
	minor uint64
	patch uint64
	pre   string // prerelease without the leading "-"
	raw   string // token as received, trimmed
	valid bool
}

// Parser turns a raw token into a Spec.
// [Parse] is the default parser.
type Parser func(raw string) (Spec, error)

// Parse parses a version token.
//
// Accepted forms: "1", "1.2", "1.2.3", with an optional "v"/"V" prefix and an
// optional "-prerelease" suffix on the full three-component form. Build
// metadata ("+build") is accepted and dropped.
//
// Example:
//
//	v, err := version.Parse("v2.1")
//	// v.Major() == 2, v.Minor() == 1, v.Patch() == 0
func Parse(raw string) (Spec, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return Spec{}, &ParseError{Raw: raw, Err: ErrEmptyVersion}
	}

	body := token
	if body[0] == 'v' || body[0] == 'V' {
		body = body[1:]
	}

	candidate := "v" + body
	if !semver.IsValid(candidate) {
		return Spec{}, &ParseError{Raw: raw, Err: ErrMalformedVersion}
	}

	// Canonical always yields "vMAJOR.MINOR.PATCH[-pre]"
	canonical := semver.Canonical(candidate)
	pre := semver.Prerelease(canonical)
	core := strings.TrimSuffix(canonical[1:], pre)

	var nums [3]uint64
	for i, part := range strings.SplitN(core, ".", 3) {
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return Spec{}, &ParseError{
				Raw: raw,
				Err: fmt.Errorf("%w: component %q out of range", ErrMalformedVersion, part),
			}
		}
		nums[i] = n
	}

	return Spec{
		major: nums[0],
		minor: nums[1],
		patch: nums[2],
		pre:   strings.TrimPrefix(pre, "-"),
		raw:   token,
		valid: true,
	}, nil
}

// MustParse is like [Parse] but panics on error.
// Intended for tests and package-level declarations.
func MustParse(raw string) Spec {
	v, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return v
}

// New builds a release Spec from numeric components.
func New(major, minor, patch uint64) Spec {
	return Spec{
		major: major,
		minor: minor,
		patch: patch,
		raw:   fmt.Sprintf("%d.%d.%d", major, minor, patch),
		valid: true,
	}
}

// Major returns the major component.
func (s Spec) Major() uint64 { return s.major }

// Minor returns the minor component.
func (s Spec) Minor() uint64 { return s.minor }

// Patch returns the patch component.
func (s Spec) Patch() uint64 { return s.patch }

// Prerelease returns the prerelease identifier without the leading "-".
func (s Spec) Prerelease() string { return s.pre }

// Raw returns the token the Spec was parsed from.
func (s Spec) Raw() string { return s.raw }

// IsZero reports whether s is [NoVersion].
func (s Spec) IsZero() bool { return !s.valid }

// String returns the normalized form, e.g. "1.2.0" or "2.0.0-rc.1".
// NoVersion renders as the empty string.
func (s Spec) String() string {
	if !s.valid {
		return ""
	}

	str := strconv.FormatUint(s.major, 10) + "." +
		strconv.FormatUint(s.minor, 10) + "." +
		strconv.FormatUint(s.patch, 10)
	if s.pre != "" {
		str += "-" + s.pre
	}

	return str
}

// Canonical returns the semver canonical form with a "v" prefix.
func (s Spec) Canonical() string {
	if !s.valid {
		return ""
	}

	return "v" + s.String()
}

// Compare returns -1, 0 or +1 depending on whether s sorts before, equal to,
// or after o. NoVersion sorts before every parsed version.
func (s Spec) Compare(o Spec) int {
	return semver.Compare(s.Canonical(), o.Canonical())
}

// Equal reports whether s and o have identical components.
func (s Spec) Equal(o Spec) bool {
	return s.valid == o.valid && s.Compare(o) == 0
}

// MarshalText implements encoding.TextMarshaler.
func (s Spec) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
