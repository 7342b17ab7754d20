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

	"rivaas.dev/apiversion/resolver"
)

// Event describes one resolution seen by the dispatcher.
type Event struct {
	Result resolver.Result

	// Method and Path identify the request.
	Method string
	Path   string

	// Deprecated is true when the resolved version has a lifecycle entry.
	Deprecated bool

	// Gone is true when the request was rejected with 410.
	Gone bool

	// Enumerated is true when Result.Version is fixed by configuration: the
	// default version, or a member of an exact set in the supported
	// constraint. Other versions come from the client and are unbounded.
	Enumerated bool
}

// Observer receives resolution events. Implementations must be safe for
// concurrent use and must not block.
type Observer interface {
	Observe(ctx context.Context, ev Event)
}

// ObserverFunc adapts a function to [Observer].
type ObserverFunc func(ctx context.Context, ev Event)

// Observe calls f.
func (f ObserverFunc) Observe(ctx context.Context, ev Event) {
	f(ctx, ev)
}
