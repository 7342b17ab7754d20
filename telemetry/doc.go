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

// Package telemetry exports API version resolution metrics and traces with
// OpenTelemetry.
//
// A [Recorder] implements dispatch.Observer. Register it on a dispatcher and
// every resolution increments a counter labelled with its outcome, source and
// version:
//
//	rec, err := telemetry.New(
//	    telemetry.WithServiceName("orders-api"),
//	    telemetry.WithPrometheus(),
//	)
//	if err != nil {
//	    return err
//	}
//	defer rec.Shutdown(context.Background())
//
//	d, err := dispatch.New(cfg, dispatch.WithObserver(rec))
//
//	handler, _ := rec.Handler() // serves /metrics
//
// Three built-in providers exist: Prometheus (pull), OTLP over HTTP and
// stdout (push). [WithMeterProvider] plugs in a provider managed elsewhere.
//
// [NewTracerProvider] builds a trace provider for dispatch.WithTracerProvider
// with an OTLP or stdout exporter.
package telemetry
