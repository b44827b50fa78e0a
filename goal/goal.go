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

// Package goal builds the set of achievable shopping goals for an
// environment, either from curated human instructions or synthesized
// from catalog attribute and option combinations.
package goal

// NoPriceCap is the price ceiling sentinel for goals without a price
// constraint.
const NoPriceCap = 1_000_000

// DefaultShuffleSeed seeds the deterministic goal shuffle. Two runs over
// the same catalog with the same seed produce identical orderings.
const DefaultShuffleSeed = 233

// Goal is one sampled shopping target. A goal references exactly one
// product by ASIN and is immutable after generation.
type Goal struct {
	ASIN            string
	Category        string
	ProductCategory string
	Query           string
	Name            string

	// Instruction is the reward-bearing target description shown to the
	// agent, including any appended option and price constraints.
	Instruction string

	Attributes []string

	// PriceUpper is the price ceiling; NoPriceCap when unconstrained.
	PriceUpper float64

	// Options maps option name to the single desired value.
	Options map[string]string

	// Weight drives weighted goal sampling: 1 for human goals, inverse
	// attribute rarity for synthetic goals.
	Weight float64
}
