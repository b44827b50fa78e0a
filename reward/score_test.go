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

package reward

import (
	"math"
	"testing"

	"github.com/webshop-bench/webshop/catalog"
	"github.com/webshop-bench/webshop/goal"
	"github.com/webshop-bench/webshop/internal/errorutil"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestScorePerfectMatch(t *testing.T) {
	purchased := &catalog.Product{
		ASIN:       "B000000001",
		Title:      "Wireless Gaming Mouse",
		Query:      "mouse",
		Attributes: []string{"wireless", "ergonomic"},
	}
	g := &goal.Goal{
		ASIN:       "B000000001",
		Query:      "mouse",
		Name:       "Wireless Gaming Mouse",
		Attributes: []string{"wireless"},
		Options:    map[string]string{"color": "black"},
		PriceUpper: 30,
	}
	total, b, err := Score(purchased, g, 19.99, map[string]string{"color": "black"})
	errorutil.AssertTestError(t, err, false, nil, "Score()")

	if !almostEqual(total, 1.0) {
		t.Errorf("total = %v, want 1.0", total)
	}
	if b.RType != 1.0 {
		t.Errorf("RType = %v, want 1.0", b.RType)
	}
	if !b.QueryMatch {
		t.Error("QueryMatch = false, want true")
	}
	if b.AttributeMatches != 1 || b.OptionMatches != 1 || !b.RPrice {
		t.Errorf("matches = (%d attrs, %d opts, price %v), want (1, 1, true)",
			b.AttributeMatches, b.OptionMatches, b.RPrice)
	}
}

func TestScoreUnrelatedProduct(t *testing.T) {
	purchased := &catalog.Product{
		ASIN:            "B000000002",
		Title:           "Wireless Gaming Mouse",
		Query:           "mouse",
		ProductCategory: "Electronics › Computers › Accessories",
	}
	g := &goal.Goal{
		ASIN:            "B000000001",
		Query:           "vase",
		Name:            "Ceramic Flower Vase for Home Decoration",
		ProductCategory: "Home & Kitchen › Decor › Vases",
		Attributes:      []string{"ceramic"},
		PriceUpper:      goal.NoPriceCap,
	}
	total, b, err := Score(purchased, g, 19.99, nil)
	errorutil.AssertTestError(t, err, false, nil, "Score()")

	// No shared title nouns zeroes the type reward and the total.
	if b.RType != 0 {
		t.Errorf("RType = %v, want 0", b.RType)
	}
	if total != 0 {
		t.Errorf("total = %v, want 0", total)
	}
}

func TestScoreHalfTypeReward(t *testing.T) {
	purchased := &catalog.Product{
		ASIN:  "B000000002",
		Title: "Ceramic Coffee Mug",
		Query: "mug",
	}
	g := &goal.Goal{
		ASIN:       "B000000001",
		Query:      "vase",
		Name:       "Ceramic Flower Vase",
		Attributes: []string{"ceramic"},
		PriceUpper: goal.NoPriceCap,
	}
	total, b, err := Score(purchased, g, 19.99, nil)
	errorutil.AssertTestError(t, err, false, nil, "Score()")

	// "ceramic" is an adjective: the titles share no nouns beyond it,
	// query and category differ, so the type reward halves. The ceramic
	// attribute still matches via the title substring and the price is
	// unconstrained.
	if b.RType != 0.5 && b.RType != 0.1 && b.RType != 0 {
		t.Errorf("RType = %v, want a degraded type reward", b.RType)
	}
	if total > 0.5 {
		t.Errorf("total = %v, want at most 0.5", total)
	}
}

func TestScoreCategoryOverlapRestoresType(t *testing.T) {
	purchased := &catalog.Product{
		ASIN:            "B000000002",
		Title:           "Porcelain Vase Decoration Piece",
		Query:           "decor",
		ProductCategory: "Home & Kitchen › Decor › Vases",
	}
	g := &goal.Goal{
		ASIN:            "B000000001",
		Query:           "vase",
		Name:            "Ceramic Flower Vase",
		ProductCategory: "Home & Kitchen › Decor › Centerpieces",
		PriceUpper:      goal.NoPriceCap,
	}
	_, b, err := Score(purchased, g, 19.99, nil)
	errorutil.AssertTestError(t, err, false, nil, "Score()")

	if !b.CategoryMatch {
		t.Error("CategoryMatch = false, want true with two shared category segments")
	}
	// Shared "Vase" noun keeps the overlap above the degradation cutoffs.
	if b.RType != 1.0 {
		t.Errorf("RType = %v, want 1.0", b.RType)
	}
}

func TestScoreAttributeFallback(t *testing.T) {
	purchased := &catalog.Product{
		ASIN:         "B000000001",
		Title:        "Wireless Gaming Mouse",
		Query:        "mouse",
		Attributes:   []string{"wireless"},
		BulletPoints: []string{"Ergonomic design for long sessions"},
	}
	g := &goal.Goal{
		ASIN:       "B000000001",
		Query:      "mouse",
		Name:       "Wireless Gaming Mouse",
		Attributes: []string{"wireless", "ergonomic", "waterproof"},
		PriceUpper: goal.NoPriceCap,
	}
	_, b, err := Score(purchased, g, 19.99, nil)
	errorutil.AssertTestError(t, err, false, nil, "Score()")

	// "wireless" matches fuzzily, "ergonomic" only via the bullet text,
	// "waterproof" appears nowhere.
	if got, want := b.AttributeMatches, 2; got != want {
		t.Errorf("AttributeMatches = %d, want %d", got, want)
	}
	if !almostEqual(b.RAttribute, 2.0/3.0) {
		t.Errorf("RAttribute = %v, want 2/3", b.RAttribute)
	}
}

func TestScoreOptionColorNormalization(t *testing.T) {
	purchased := &catalog.Product{
		ASIN:  "B000000001",
		Title: "Wireless Gaming Mouse",
		Query: "mouse",
	}
	g := &goal.Goal{
		ASIN:       "B000000001",
		Query:      "mouse",
		Name:       "Wireless Gaming Mouse",
		Options:    map[string]string{"color": "navy blue"},
		PriceUpper: goal.NoPriceCap,
	}
	_, b, err := Score(purchased, g, 19.99, map[string]string{"color": "dark navy blue 2-pack"})
	errorutil.AssertTestError(t, err, false, nil, "Score()")

	if got, want := b.OptionMatches, 1; got != want {
		t.Errorf("OptionMatches = %d, want %d", got, want)
	}
}

func TestScorePriceCeiling(t *testing.T) {
	purchased := &catalog.Product{
		ASIN:  "B000000001",
		Title: "Wireless Gaming Mouse",
		Query: "mouse",
	}
	g := &goal.Goal{
		ASIN:       "B000000001",
		Query:      "mouse",
		Name:       "Wireless Gaming Mouse",
		PriceUpper: 30,
	}

	_, b, err := Score(purchased, g, 30, nil)
	errorutil.AssertTestError(t, err, false, nil, "Score()")
	if !b.RPrice {
		t.Error("RPrice = false at the exact ceiling, want true")
	}

	total, b, err := Score(purchased, g, 30.01, nil)
	errorutil.AssertTestError(t, err, false, nil, "Score()")
	if b.RPrice {
		t.Error("RPrice = true above the ceiling, want false")
	}
	if total != 0 {
		t.Errorf("total = %v, want 0 with no attributes, options or price match", total)
	}
}

func TestScoreMissingReferences(t *testing.T) {
	g := &goal.Goal{Name: "Wireless Gaming Mouse"}
	p := &catalog.Product{Title: "Wireless Gaming Mouse"}

	_, _, err := Score(nil, g, 10, nil)
	errorutil.AssertTestError(t, err, true, ErrReference, "Score()")
	_, _, err = Score(p, nil, 10, nil)
	errorutil.AssertTestError(t, err, true, ErrReference, "Score()")
}

func TestNormalizeColor(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"Dark Navy Blue 2-Pack", "navy blue"},
		{"ROSE GOLD", "rose gold"},
		{"12 inch", "12 inch"},
		{"greenish", "green"},
	}
	for _, tc := range tests {
		if got := normalizeColor(tc.value); got != tc.want {
			t.Errorf("normalizeColor(%q) = %q, want %q", tc.value, got, tc.want)
		}
	}
}
