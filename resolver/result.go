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

import (
	"fmt"
	"net/http"

	"rivaas.dev/apiversion/version"
)

// Outcome classifies a resolution.
type Outcome uint8

const (
	// Resolved means the request may proceed with Result.Version.
	Resolved Outcome = iota + 1
	// Missing means a required version was not supplied.
	Missing
	// Unsupported means the supplied version is malformed or not supported.
	Unsupported
)

func (o Outcome) String() string {
	switch o {
	case Resolved:
		return "resolved"
	case Missing:
		return "missing"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Result is the outcome of resolving one request.
type Result struct {
	Outcome Outcome

	// Version is the resolved or rejected version. It is NoVersion when the
	// outcome is Missing, when the token was malformed, or when no version was
	// sent and no default exists.
	Version version.Spec

	// Raw is the extracted token, empty when none was found.
	Raw string

	// Source is the method of the source that produced Raw.
	Source string

	// Cause is the parse error for malformed tokens.
	Cause error

	supported version.Constraint
}

// OK reports whether dispatch may proceed.
func (r Result) OK() bool {
	return r.Outcome == Resolved
}

// Malformed reports whether the token could not be parsed.
func (r Result) Malformed() bool {
	return r.Outcome == Unsupported && r.Cause != nil
}

// Err returns nil for Resolved results and an *Error otherwise.
func (r Result) Err() error {
	switch r.Outcome {
	case Missing:
		return &Error{Reason: ReasonMissing}
	case Unsupported:
		e := &Error{Reason: ReasonUnsupported, Raw: r.Raw, Cause: r.Cause}
		if r.supported != nil {
			e.Supported = r.supported.String()
		}

		return e
	default:
		return nil
	}
}

// Reason is a machine-readable rejection code.
type Reason string

const (
	ReasonMissing     Reason = "missing_api_version"
	ReasonUnsupported Reason = "unsupported_api_version"
)

// Error describes a rejected request. It implements the status, code and
// details interfaces understood by the problem package.
type Error struct {
	Reason    Reason
	Raw       string // offending token, empty for ReasonMissing
	Supported string // supported constraint in expression form, if any
	Cause     error  // parse error for malformed tokens
}

func (e *Error) Error() string {
	switch {
	case e.Reason == ReasonMissing:
		return "API version is required"
	case e.Cause != nil:
		return fmt.Sprintf("invalid API version %q", e.Raw)
	case e.Supported != "":
		return fmt.Sprintf("API version %q is not supported, supported versions: %s", e.Raw, e.Supported)
	default:
		return fmt.Sprintf("API version %q is not supported", e.Raw)
	}
}

// Is matches ErrMissingVersion or ErrUnsupportedVersion.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrMissingVersion:
		return e.Reason == ReasonMissing
	case ErrUnsupportedVersion:
		return e.Reason == ReasonUnsupported
	}

	return false
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// HTTPStatus returns 400 Bad Request.
func (e *Error) HTTPStatus() int {
	return http.StatusBadRequest
}

// Code returns the reason code.
func (e *Error) Code() string {
	return string(e.Reason)
}

// Details returns the offending token and the supported versions, if known.
func (e *Error) Details() any {
	d := make(map[string]string, 2)
	if e.Raw != "" {
		d["version"] = e.Raw
	}
	if e.Supported != "" {
		d["supported"] = e.Supported
	}

	return d
}
