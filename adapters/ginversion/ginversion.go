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

// Package ginversion enforces API version resolution in gin engines.
//
//	d := dispatch.MustNew(cfg)
//	r := gin.New()
//	r.Use(ginversion.Middleware(d))
//	r.GET("/users", func(c *gin.Context) {
//	    c.String(http.StatusOK, ginversion.Version(c).String())
//	})
//
// Rejections are written by the dispatcher and abort the handler chain.
//
// Route runs its own check after any global Middleware, so under a global
// Middleware a route constraint can only narrow the accepted versions. To
// widen one, register the route outside the globally checked group:
//
//	api := r.Group("/", ginversion.Middleware(d))
//	api.GET("/users", listUsers)
//	r.GET("/reports", ginversion.Route(d, version.AtLeast(v2)), listReports)
package ginversion

import (
	"github.com/gin-gonic/gin"

	"rivaas.dev/apiversion/dispatch"
	"rivaas.dev/apiversion/version"
)

// ContextKey is the gin context key holding the resolved version.Spec.
const ContextKey = "apiversion.version"

// Middleware enforces the dispatcher's global configuration.
func Middleware(d *dispatch.Dispatcher) gin.HandlerFunc {
	return Route(d, nil)
}

// Route enforces the dispatcher's configuration with a route-level
// supported constraint. A nil constraint keeps the global one.
func Route(d *dispatch.Dispatcher, supported version.Constraint) gin.HandlerFunc {
	cfg := d.Config().ForRoute(supported)

	return func(c *gin.Context) {
		req, ok := d.Check(c.Writer, c.Request, cfg)
		if !ok {
			c.Abort()
			return
		}

		c.Request = req
		if v, found := dispatch.FromContext(req.Context()); found {
			c.Set(ContextKey, v)
		}
		c.Next()
	}
}

// Version returns the resolved version, or version.NoVersion.
func Version(c *gin.Context) version.Spec {
	if v, ok := c.Get(ContextKey); ok {
		if spec, ok := v.(version.Spec); ok {
			return spec
		}
	}

	return dispatch.Version(c.Request)
}
