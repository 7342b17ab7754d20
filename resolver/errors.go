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

import "errors"

var (
	// Source configuration errors
	ErrEmptyHeaderName           = errors.New("header name cannot be empty")
	ErrEmptyQueryParam           = errors.New("query parameter name cannot be empty")
	ErrNegativePathSegment       = errors.New("path segment index cannot be negative")
	ErrEmptyAcceptPattern        = errors.New("accept pattern cannot be empty")
	ErrMissingVersionPlaceholder = errors.New("pattern must contain {version} placeholder")
	ErrEmptyMediaTypeParam       = errors.New("media type parameter name cannot be empty")
	ErrNilCustomSource           = errors.New("custom source function cannot be nil")
	ErrNoSources                 = errors.New("at least one version source is required")

	// Version policy errors
	ErrNilParser           = errors.New("parser cannot be nil")
	ErrNilConstraint       = errors.New("supported constraint cannot be nil")
	ErrNoSupportedVersions = errors.New("at least one supported version is required")
	ErrInvalidDefault      = errors.New("invalid default version")
	ErrDefaultUnsupported  = errors.New("default version is not supported")
	ErrRequiredWithDefault = errors.New("a required version cannot have a default version")

	// Resolution errors, matched by errors.Is against *Error
	ErrMissingVersion     = errors.New("missing API version")
	ErrUnsupportedVersion = errors.New("unsupported API version")
)
