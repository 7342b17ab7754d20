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

package problem

import (
	"encoding/json"
	"net/http"
)

// Formatter turns an error into the parts of an HTTP response.
type Formatter interface {
	// Format converts err into a Response. req supplies the instance URI and
	// may be nil.
	Format(req *http.Request, err error) Response
}

// Response is a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is marshaled as JSON.
	Body any

	// Headers are added to the response before the status is written.
	Headers http.Header
}

// ErrorType lets an error declare its HTTP status code.
type ErrorType interface {
	error
	HTTPStatus() int
}

// ErrorDetails lets an error expose structured details.
//
// A map[string]string or map[string]any is merged into the RFC 9457 body as
// top-level extension members; anything else is nested under "errors".
type ErrorDetails interface {
	error
	Details() any
}

// ErrorCode lets an error expose a machine-readable code.
type ErrorCode interface {
	error
	Code() string
}

// WithStatus wraps err with an explicit status code. A nil err renders as
// the status text.
//
// Example:
//
//	problem.WithStatus(err, http.StatusGone)
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}

	return e.err.Error()
}

func (e *statusError) Unwrap() error {
	return e.err
}

func (e *statusError) HTTPStatus() int {
	return e.status
}

// Write sends resp on w. Headers from resp are added first, then the content
// type and status, then the JSON body. The encoding error, if any, is
// returned; the status line has already been sent at that point.
func Write(w http.ResponseWriter, resp Response) error {
	h := w.Header()
	for k, vals := range resp.Headers {
		for _, v := range vals {
			h.Add(k, v)
		}
	}
	if resp.ContentType != "" {
		h.Set("Content-Type", resp.ContentType)
	}
	h.Set("X-Content-Type-Options", "nosniff")

	w.WriteHeader(resp.Status)
	if resp.Body == nil || resp.Status == http.StatusNoContent {
		return nil
	}

	return json.NewEncoder(w).Encode(resp.Body)
}
