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
	"slices"
	"strings"
)

// Constraint decides whether a version is supported.
type Constraint interface {
	// Allows reports whether v satisfies the constraint.
	Allows(v Spec) bool

	// String returns the constraint in expression form (see [ParseConstraint]).
	String() string
}

type exactSet struct {
	versions []Spec
}

// Exact returns a constraint that allows exactly the given versions.
// Membership compares components, so "1.2" and "1.2.0" are the same entry.
func Exact(versions ...Spec) Constraint {
	set := make([]Spec, 0, len(versions))
	for _, v := range versions {
		if v.IsZero() {
			continue
		}
		if !slices.ContainsFunc(set, v.Equal) {
			set = append(set, v)
		}
	}
	slices.SortFunc(set, Spec.Compare)

	return exactSet{versions: set}
}

// OneOf parses each token and returns an [Exact] constraint.
func OneOf(raw ...string) (Constraint, error) {
	versions := make([]Spec, 0, len(raw))
	for i, r := range raw {
		v, err := Parse(r)
		if err != nil {
			return nil, fmt.Errorf("version at index %d: %w", i, err)
		}
		versions = append(versions, v)
	}

	return Exact(versions...), nil
}

func (c exactSet) Allows(v Spec) bool {
	if v.IsZero() {
		return false
	}

	return slices.ContainsFunc(c.versions, v.Equal)
}

func (c exactSet) String() string {
	parts := make([]string, len(c.versions))
	for i, v := range c.versions {
		parts[i] = v.String()
	}

	return strings.Join(parts, ", ")
}

type baseline struct {
	min Spec
}

// AtLeast returns a constraint allowing min and every later version.
// Its expression form is "1.2.0+".
func AtLeast(minVersion Spec) Constraint {
	return baseline{min: minVersion}
}

func (c baseline) Allows(v Spec) bool {
	return !v.IsZero() && v.Compare(c.min) >= 0
}

func (c baseline) String() string {
	return c.min.String() + "+"
}

type between struct {
	lo, hi Spec
}

// Between returns a constraint allowing versions in [lo, hi], inclusive.
func Between(lo, hi Spec) (Constraint, error) {
	if lo.Compare(hi) > 0 {
		return nil, fmt.Errorf("%w: %s > %s", ErrInvalidRange, lo, hi)
	}

	return between{lo: lo, hi: hi}, nil
}

func (c between) Allows(v Spec) bool {
	return !v.IsZero() && v.Compare(c.lo) >= 0 && v.Compare(c.hi) <= 0
}

func (c between) String() string {
	return c.lo.String() + " - " + c.hi.String()
}

type union struct {
	terms []Constraint
}

// AnyOf returns a constraint satisfied when any of cs is satisfied.
// Nil entries are skipped.
func AnyOf(cs ...Constraint) Constraint {
	terms := make([]Constraint, 0, len(cs))
	for _, c := range cs {
		if c != nil {
			terms = append(terms, c)
		}
	}
	if len(terms) == 1 {
		return terms[0]
	}

	return union{terms: terms}
}

func (c union) Allows(v Spec) bool {
	for _, t := range c.terms {
		if t.Allows(v) {
			return true
		}
	}

	return false
}

func (c union) String() string {
	parts := make([]string, len(c.terms))
	for i, t := range c.terms {
		parts[i] = t.String()
	}

	return strings.Join(parts, ", ")
}

type anyVersion struct{}

// Any returns a constraint that allows every parsed version.
func Any() Constraint {
	return anyVersion{}
}

func (anyVersion) Allows(v Spec) bool { return !v.IsZero() }

func (anyVersion) String() string { return "*" }

// ParseConstraint parses a comma-separated union of terms:
//
//	"1.2"          exact version
//	"1.2+"         baseline, 1.2 and later
//	"1.0 - 2.0"    inclusive range
//	"*"            any version
//
// Example:
//
//	c, err := version.ParseConstraint("1.0, 1.1, 2.0+")
func ParseConstraint(expr string) (Constraint, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, ErrEmptyConstraint
	}

	var (
		exact []Spec
		terms []Constraint
	)
	for term := range strings.SplitSeq(expr, ",") {
		term = strings.TrimSpace(term)
		switch {
		case term == "":
			return nil, fmt.Errorf("%w: empty term in %q", ErrEmptyConstraint, expr)
		case term == "*":
			terms = append(terms, Any())
		case strings.HasSuffix(term, "+"):
			v, err := Parse(strings.TrimSuffix(term, "+"))
			if err != nil {
				return nil, fmt.Errorf("baseline %q: %w", term, err)
			}
			terms = append(terms, AtLeast(v))
		case strings.Contains(term, " - "):
			loRaw, hiRaw, _ := strings.Cut(term, " - ")
			lo, err := Parse(loRaw)
			if err != nil {
				return nil, fmt.Errorf("range %q: %w", term, err)
			}
			hi, err := Parse(hiRaw)
			if err != nil {
				return nil, fmt.Errorf("range %q: %w", term, err)
			}
			r, err := Between(lo, hi)
			if err != nil {
				return nil, err
			}
			terms = append(terms, r)
		default:
			v, err := Parse(term)
			if err != nil {
				return nil, err
			}
			exact = append(exact, v)
		}
	}

	if len(exact) > 0 {
		terms = append([]Constraint{Exact(exact...)}, terms...)
	}

	return AnyOf(terms...), nil
}

// Enumerates reports whether c names v explicitly, as a member of an
// [Exact] set on its own or inside an [AnyOf] union. Baselines, ranges and
// [Any] never enumerate. The result is false for a nil c.
func Enumerates(c Constraint, v Spec) bool {
	switch c := c.(type) {
	case exactSet:
		return c.Allows(v)
	case union:
		for _, t := range c.terms {
			if Enumerates(t, v) {
				return true
			}
		}
	}

	return false
}
