// Copyright 2025 Google LLC
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

package env

import "errors"

var (
	// ErrNoGoals is returned when the server is constructed with an
	// empty goal set.
	ErrNoGoals = errors.New("env: no goals")
	// ErrSessionNotFound is returned when a session id is unknown.
	ErrSessionNotFound = errors.New("env: session not found")
)
