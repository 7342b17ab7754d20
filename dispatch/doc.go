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

// Package dispatch enforces API version resolution in front of net/http
// handlers.
//
// A [Dispatcher] resolves the version of every request with a
// resolver.Config. Requests with a missing required version, or with a
// malformed or unsupported one, are answered with 400 Bad Request and a
// problem body; the wrapped handler never runs. Resolved requests carry the
// version in their context:
//
//	cfg := resolver.MustNewConfig(
//	    resolver.WithHeader("X-API-Version"),
//	    resolver.WithRequired(true),
//	)
//	d, err := dispatch.New(cfg, dispatch.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//
//	mux.Handle("/", d.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	    v := dispatch.Version(r)
//	    fmt.Fprintf(w, "hello from %s", v)
//	})))
//
// Routes that accept a narrower set of versions use [Dispatcher.Route].
// Framework adapters call [Dispatcher.Check] directly.
package dispatch
