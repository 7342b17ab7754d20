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

// Package echoversion enforces API version resolution in echo servers.
//
//	d := dispatch.MustNew(cfg)
//	e := echo.New()
//	e.Use(echoversion.Middleware(d))
//	e.GET("/users", func(c echo.Context) error {
//	    return c.String(http.StatusOK, echoversion.Version(c).String())
//	})
//
// Rejections are written by the dispatcher; the handler is not called.
//
// Route runs its own check after any global Middleware, so under a global
// Middleware a route constraint can only narrow the accepted versions. To
// widen one, register the route outside the globally checked group:
//
//	api := e.Group("", echoversion.Middleware(d))
//	api.GET("/users", listUsers)
//	e.GET("/reports", listReports, echoversion.Route(d, version.AtLeast(v2)))
package echoversion

import (
	"github.com/labstack/echo/v4"

	"rivaas.dev/apiversion/dispatch"
	"rivaas.dev/apiversion/version"
)

// Middleware enforces the dispatcher's global configuration.
func Middleware(d *dispatch.Dispatcher) echo.MiddlewareFunc {
	return Route(d, nil)
}

// Route enforces the dispatcher's configuration with a route-level
// supported constraint. A nil constraint keeps the global one.
func Route(d *dispatch.Dispatcher, supported version.Constraint) echo.MiddlewareFunc {
	cfg := d.Config().ForRoute(supported)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req, ok := d.Check(c.Response(), c.Request(), cfg)
			if !ok {
				return nil
			}
			c.SetRequest(req)

			return next(c)
		}
	}
}

// Version returns the resolved version, or version.NoVersion.
func Version(c echo.Context) version.Spec {
	return dispatch.Version(c.Request())
}
