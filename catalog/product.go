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

package catalog

import (
	"fmt"
	"slices"
)

// DummyAttribute marks products that have no entry in the attribute file.
const DummyAttribute = "DUMMY_ATTR"

// Product is one normalized catalog entry. Products are immutable after
// load; goals and sessions reference them by ASIN and never copy them.
type Product struct {
	ASIN        string
	Title       string
	Description string

	// BulletPoints are the short feature lines shown on the item page.
	BulletPoints []string

	// Category is the flat category label; ProductCategory is the full
	// "›"-separated category path used for category matching.
	Category        string
	ProductCategory string

	// Query is the search string this product originated from.
	Query string

	// PriceRange holds one or two parsed dollar amounts. PriceTag is the
	// display form ("$12.50" or "$10.00 to $20.00").
	PriceRange []float64
	PriceTag   string

	Attributes []string

	// Options maps a lower-cased option name to its normalized values.
	Options       map[string][]string
	OptionToImage map[string]string
	MainImage     string

	// Instruction and InstructionAttributes come from the attribute file
	// and seed synthetic goal generation. HumanInstructions come from the
	// curated instruction file.
	Instruction           string
	InstructionAttributes []string
	HumanInstructions     []HumanInstruction
}

// HumanInstruction is one curated shopping instruction attached to a
// product.
type HumanInstruction struct {
	Instruction string            `json:"instruction"`
	Attributes  []string          `json:"instruction_attributes"`
	Options     map[string]string `json:"instruction_options"`
}

// OptionNames returns the product's option names in sorted order.
// Option enumeration must not depend on map iteration order.
func (p *Product) OptionNames() []string {
	names := make([]string, 0, len(p.Options))
	for name := range p.Options {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// OptionNameFor returns the name of the first option (in sorted name
// order) that lists value among its values.
func (p *Product) OptionNameFor(value string) (string, bool) {
	for _, name := range p.OptionNames() {
		if slices.Contains(p.Options[name], value) {
			return name, true
		}
	}
	return "", false
}

// ContentsString flattens the searchable text of the product: title,
// description, first bullet point and the option name/value pairs. It is
// the unit of full-text indexing.
func (p *Product) ContentsString() string {
	parts := []string{p.Title, p.Description}
	if len(p.BulletPoints) > 0 {
		parts = append(parts, p.BulletPoints[0])
	}
	var opts []string
	for _, name := range p.OptionNames() {
		for _, v := range p.Options[name] {
			opts = append(opts, fmt.Sprintf("%s: %s", name, v))
		}
	}
	if len(opts) > 0 {
		parts = append(parts, joinAnd(opts))
	}
	return join(parts)
}

func join(parts []string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += " "
		}
		out += p
	}
	return out
}

func joinAnd(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", and "
		}
		out += p
	}
	return out
}
