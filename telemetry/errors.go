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

package telemetry

import "errors"

var (
	ErrMultipleProviders  = errors.New("only one metrics provider may be configured")
	ErrNilMeterProvider   = errors.New("meter provider cannot be nil")
	ErrEmptyServiceName   = errors.New("service name cannot be empty")
	ErrInvalidInterval    = errors.New("export interval must be positive")
	ErrNoPrometheus       = errors.New("metrics handler requires the Prometheus provider")
	ErrMultipleExporters  = errors.New("only one trace exporter may be configured")
	ErrInvalidSampleRatio = errors.New("sample ratio must be between 0 and 1")
)
