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
	"context"
	"net/http"

	"rivaas.dev/apiversion/resolver"
	"rivaas.dev/apiversion/version"
)

type contextKey struct{}

// withResult stores res in ctx.
func withResult(ctx context.Context, res resolver.Result) context.Context {
	return context.WithValue(ctx, contextKey{}, res)
}

// ResultFromContext returns the resolution stored by the dispatcher.
func ResultFromContext(ctx context.Context) (resolver.Result, bool) {
	res, ok := ctx.Value(contextKey{}).(resolver.Result)
	return res, ok
}

// FromContext returns the resolved version. The bool is false when the
// request did not pass through a dispatcher or resolved to no version.
func FromContext(ctx context.Context) (version.Spec, bool) {
	res, ok := ResultFromContext(ctx)
	if !ok || res.Version.IsZero() {
		return version.NoVersion, false
	}

	return res.Version, true
}

// Version returns the resolved version of r, or version.NoVersion.
func Version(r *http.Request) version.Spec {
	if r == nil {
		return version.NoVersion
	}
	v, _ := FromContext(r.Context())

	return v
}
