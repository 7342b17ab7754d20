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
	"errors"
	"fmt"
)

var (
	// ErrEmptyVersion is returned when the token is empty after trimming.
	ErrEmptyVersion = errors.New("version cannot be empty")

	// ErrMalformedVersion is returned when the token is not a valid version.
	ErrMalformedVersion = errors.New("malformed version")

	// ErrEmptyConstraint is returned when a constraint expression has no terms.
	ErrEmptyConstraint = errors.New("constraint cannot be empty")

	// ErrInvalidRange is returned when a range lower bound exceeds its upper bound.
	ErrInvalidRange = errors.New("range lower bound exceeds upper bound")
)

// ParseError records a token that could not be parsed.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse version %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
