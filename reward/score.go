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

// Package reward computes the weighted match score between a purchased
// product and a session's goal across type, attribute, option and price
// dimensions.
package reward

import (
	"errors"
	"fmt"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/webshop-bench/webshop/catalog"
	"github.com/webshop-bench/webshop/goal"
	"github.com/webshop-bench/webshop/internal/textutil"
)

// ErrReference is returned when the purchased product or the goal is
// missing. This indicates a session/goal wiring bug and is never scored
// as zero.
var ErrReference = errors.New("reward: missing product or goal reference")

// fuzzyThreshold is the token-set similarity (out of 100) above which
// two attribute or option strings count as matching.
const fuzzyThreshold = 85

// Breakdown records the per-dimension scores behind a total reward.
type Breakdown struct {
	// RType gates the whole score: 1.0 for the right kind of product,
	// 0.5, 0.1 or 0.0 as the title overlap degrades.
	RType         float64
	QueryMatch    bool
	CategoryMatch bool
	TitleScore    float64

	RAttribute       float64
	AttributeMatches int

	ROption       float64
	OptionMatches int

	RPrice bool

	Total float64
}

// Score computes the total reward for purchasing product at the observed
// price with the selected options, against the goal. The total is in
// [0, 1]: attribute, option and price matches averaged together, gated
// multiplicatively by the type reward.
func Score(purchased *catalog.Product, g *goal.Goal, price float64, selected map[string]string) (float64, *Breakdown, error) {
	if purchased == nil || g == nil {
		return 0, nil, ErrReference
	}

	b := &Breakdown{}
	if err := typeReward(purchased, g, b); err != nil {
		return 0, nil, fmt.Errorf("scoring title overlap: %w", err)
	}
	attributeReward(purchased, g, b)
	optionReward(g, selected, b)
	b.RPrice = price <= g.PriceUpper

	denominator := len(g.Attributes) + len(g.Options) + 1
	if denominator == 0 {
		b.Total = 0
		return 0, b, nil
	}
	matches := float64(b.AttributeMatches + b.OptionMatches)
	if b.RPrice {
		matches++
	}
	b.Total = matches / float64(denominator) * b.RType
	return b.Total, b, nil
}

// typeReward fills QueryMatch, CategoryMatch, TitleScore and RType. The
// thresholds are exact cutoffs: a title noun overlap of exactly 0.2
// does not count as a match, below 0.1 caps the reward at 0.1, and zero
// overlap zeroes the type reward outright.
func typeReward(purchased *catalog.Product, g *goal.Goal, b *Breakdown) error {
	b.QueryMatch = purchased.Query == g.Query
	b.CategoryMatch = categoryOverlap(purchased.ProductCategory, g.ProductCategory) >= 2

	purchasedNouns, err := nounTokens(purchased.Title)
	if err != nil {
		return err
	}
	goalNouns, err := nounTokens(g.Name)
	if err != nil {
		return err
	}
	if len(goalNouns) == 0 {
		b.TitleScore = 0.2
	} else {
		shared := 0
		for noun := range goalNouns {
			if _, ok := purchasedNouns[noun]; ok {
				shared++
			}
		}
		b.TitleScore = float64(shared) / float64(len(goalNouns))
	}

	b.RType = 1.0
	if !b.QueryMatch && !b.CategoryMatch && b.TitleScore <= 0.2 {
		b.RType = 0.5
	}
	if b.TitleScore < 0.1 {
		b.RType = 0.1
	}
	if b.TitleScore == 0 {
		b.RType = 0
	}
	return nil
}

// categoryOverlap counts the shared segments of two "›"-separated
// category paths.
func categoryOverlap(a, b string) int {
	segments := func(path string) map[string]struct{} {
		set := make(map[string]struct{})
		for _, seg := range strings.Split(path, "›") {
			if seg = strings.TrimSpace(seg); seg != "" {
				set[seg] = struct{}{}
			}
		}
		return set
	}
	setA, setB := segments(a), segments(b)
	shared := 0
	for seg := range setA {
		if _, ok := setB[seg]; ok {
			shared++
		}
	}
	return shared
}

// attributeReward counts goal attributes matched by the purchased
// product, by fuzzy match against its attributes or by substring
// presence in its title, bullet points or description.
func attributeReward(purchased *catalog.Product, g *goal.Goal, b *Breakdown) {
	if len(g.Attributes) == 0 {
		b.RAttribute = 0
		return
	}
	title := textutil.Normalize(purchased.Title)
	bullets := textutil.Normalize(strings.Join(purchased.BulletPoints, " "))
	description := textutil.Normalize(purchased.Description)

	for _, goalAttr := range g.Attributes {
		matched := false
		for _, productAttr := range purchased.Attributes {
			if fuzzy.TokenSetRatio(productAttr, goalAttr) >= fuzzyThreshold {
				matched = true
				break
			}
		}
		if !matched {
			lower := textutil.Normalize(goalAttr)
			matched = strings.Contains(title, lower) ||
				strings.Contains(bullets, lower) ||
				strings.Contains(description, lower)
		}
		if matched {
			b.AttributeMatches++
		}
	}
	b.RAttribute = float64(b.AttributeMatches) / float64(len(g.Attributes))
}

// optionReward counts goal option values matched by the selected option
// values, with color names normalized on both sides first.
func optionReward(g *goal.Goal, selected map[string]string, b *Breakdown) {
	if len(g.Options) == 0 {
		b.ROption = 0
		return
	}
	var selectedValues []string
	for _, value := range selected {
		selectedValues = append(selectedValues, normalizeColor(value))
	}
	for _, goalValue := range g.Options {
		normalized := normalizeColor(goalValue)
		for _, selectedValue := range selectedValues {
			if fuzzy.TokenSetRatio(selectedValue, normalized) >= fuzzyThreshold {
				b.OptionMatches++
				break
			}
		}
	}
	b.ROption = float64(b.OptionMatches) / float64(len(g.Options))
}
