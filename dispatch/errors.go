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

package dispatch

import (
	"errors"
	"fmt"
	"net/http"

	"rivaas.dev/apiversion/version"
)

var (
	ErrNilConfig         = errors.New("resolver config cannot be nil")
	ErrNilLogger         = errors.New("logger cannot be nil")
	ErrNilFormatter      = errors.New("formatter cannot be nil")
	ErrNilObserver       = errors.New("observer cannot be nil")
	ErrNilPolicy         = errors.New("deprecation policy cannot be nil")
	ErrNilTracerProvider = errors.New("tracer provider cannot be nil")
	ErrEmptyHeaderName   = errors.New("response header name cannot be empty")
)

// CodeSunset is the problem code for versions past their sunset date.
const CodeSunset = "api_version_sunset"

// GoneError rejects a version past its sunset date.
type GoneError struct {
	Version version.Spec
}

func (e *GoneError) Error() string {
	return fmt.Sprintf("API version %s has been sunset", e.Version)
}

// HTTPStatus returns 410 Gone.
func (e *GoneError) HTTPStatus() int {
	return http.StatusGone
}

// Code returns [CodeSunset].
func (e *GoneError) Code() string {
	return CodeSunset
}

// Details returns the sunset version.
func (e *GoneError) Details() any {
	return map[string]string{"version": e.Version.String()}
}
