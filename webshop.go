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

// Package webshop provides a self-contained, in-memory simulated e-commerce
// site for driving and scoring text-based shopping agents.
//
// The simulation is stateful: an agent interacts with it through a small
// action grammar (`search[...]`, `click[...]`) and receives a plain-text
// observation of the current page after every action. Each session is bound
// to a shopping goal sampled at reset time, and a terminal `click[Buy Now]`
// action scores the purchased product against that goal.
//
// The packages under this module split along the lifecycle of the
// simulation:
//
//   - catalog loads and normalizes the product data set.
//   - search indexes the catalog for ranked keyword lookup.
//   - goal derives the set of achievable shopping goals from the catalog.
//   - reward scores a purchase against a goal.
//   - env ties the above together into sessions with a Gym-style step loop.
package webshop

// Environment is the Gym-style surface of the simulation. Observations are
// plain text; Step returns the classic four-tuple. Implementations are safe
// for one logical caller per session.
type Environment interface {
	// Reset starts (or restarts) the session and returns the first
	// observation, a search page carrying the goal instruction.
	Reset() (observation string, info map[string]any)

	// Step applies one action from the action grammar. Unrecognized or
	// malformed actions are no-ops that return the current observation.
	// A non-nil error means the search backend failed; an empty result
	// set is not an error.
	Step(action string) (observation string, reward float64, done bool, info map[string]any, err error)

	// Observation returns the current page text without applying an action.
	Observation() string
}
