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

package deprecation

import "errors"

var (
	ErrZeroVersion         = errors.New("lifecycle version must not be empty")
	ErrDuplicateVersion    = errors.New("lifecycle already configured for version")
	ErrNilClock            = errors.New("clock function cannot be nil")
	ErrSunsetBeforeSince   = errors.New("sunset date is before deprecation date")
	ErrEmptyLifecycle      = errors.New("lifecycle must deprecate or sunset the version")
	ErrInvalidMigrationURL = errors.New("migration URL must be absolute")
)
