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

import "rivaas.dev/apiversion/version"

// Builder assembles a [Config] with chained setters.
// Each setter records an [Option]; Build applies them in order and validates.
//
// Example:
//
//	cfg, err := resolver.NewBuilder().
//	    UseHeader("X-API-Version").
//	    SetVersionRequired(true).
//	    SupportedVersions("1.0", "1.1").
//	    Build()
type Builder struct {
	opts []Option
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) add(opt Option) *Builder {
	b.opts = append(b.opts, opt)
	return b
}

// UseHeader adds a header source.
func (b *Builder) UseHeader(name string) *Builder {
	return b.add(WithHeader(name))
}

// UseQueryParam adds a query parameter source.
func (b *Builder) UseQueryParam(name string) *Builder {
	return b.add(WithQueryParam(name))
}

// UsePathSegment adds a path segment source.
func (b *Builder) UsePathSegment(index int) *Builder {
	return b.add(WithPathSegment(index))
}

// UseAcceptPattern adds a vendor media type source.
func (b *Builder) UseAcceptPattern(pattern string) *Builder {
	return b.add(WithAcceptPattern(pattern))
}

// UseMediaTypeParam adds a media type parameter source.
func (b *Builder) UseMediaTypeParam(mediaType, param string) *Builder {
	return b.add(WithMediaTypeParam(mediaType, param))
}

// UseCustom adds a custom source with the highest priority.
func (b *Builder) UseCustom(fn func(Request) string) *Builder {
	return b.add(WithCustom(fn))
}

// SetVersionRequired sets whether a version must be present.
func (b *Builder) SetVersionRequired(required bool) *Builder {
	return b.add(WithRequired(required))
}

// SetDefaultVersion sets the version used when none is sent.
func (b *Builder) SetDefaultVersion(raw string) *Builder {
	return b.add(WithDefault(raw))
}

// SupportedVersions restricts supported versions to an exact set.
func (b *Builder) SupportedVersions(raw ...string) *Builder {
	return b.add(WithSupportedVersions(raw...))
}

// SupportedRange sets an arbitrary supported-version constraint.
func (b *Builder) SupportedRange(c version.Constraint) *Builder {
	return b.add(WithSupported(c))
}

// Parser replaces the version parser.
func (b *Builder) Parser(p version.Parser) *Builder {
	return b.add(WithParser(p))
}

// Build validates the accumulated options and returns an immutable Config.
func (b *Builder) Build() (*Config, error) {
	return NewConfig(b.opts...)
}
