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

package search

import (
	"context"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/webshop-bench/webshop/catalog"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	records := []map[string]any{
		{
			"asin":              "B000000001",
			"name":              "Wireless Gaming Mouse",
			"full_description":  "A quiet wireless mouse for gaming.",
			"category":          "electronics",
			"query":             "mouse",
			"small_description": []any{"ergonomic design"},
		},
		{
			"asin":             "B000000002",
			"name":             "Mouse Pad",
			"full_description": "A large cloth mouse pad.",
			"category":         "electronics",
			"query":            "mouse pad",
		},
		{
			"asin":             "B000000003",
			"name":             "Ceramic Flower Vase",
			"full_description": "A decorative ceramic vase.",
			"category":         "home",
			"query":            "vase",
		},
	}
	attrs := map[string]catalog.AttributeEntry{
		"B000000001": {Attributes: []string{"wireless", "ergonomic"}},
		"B000000003": {Attributes: []string{"ceramic"}},
	}
	c, err := catalog.Build(records, attrs, nil, catalog.WithPriceRand(rand.New(rand.NewSource(7))))
	if err != nil {
		t.Fatalf("Build() unexpected error: %v", err)
	}
	ix, err := New(c, WithRand(rand.New(rand.NewSource(9))))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	t.Cleanup(func() { ix.Close() })
	return ix
}

func asins(products []*catalog.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ASIN
	}
	return out
}

func TestSearchFullText(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	results, err := ix.Search(ctx, []string{"wireless", "mouse"}, 10)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Search() returned no results")
	}
	// The product matching both terms ranks first; the vase matches
	// neither and is absent.
	if got, want := results[0].ASIN, "B000000001"; got != want {
		t.Errorf("top result = %s, want %s", got, want)
	}
	for _, p := range results {
		if p.ASIN == "B000000003" {
			t.Errorf("result set includes unrelated product %s", p.ASIN)
		}
	}

	// The same query served again (now from cache) ranks identically.
	again, err := ix.Search(ctx, []string{"wireless", "mouse"}, 10)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if diff := cmp.Diff(asins(results), asins(again)); diff != "" {
		t.Errorf("cached result mismatch (-first +again):\n%s", diff)
	}
}

func TestSearchTopN(t *testing.T) {
	ix := testIndex(t)
	results, err := ix.Search(context.Background(), []string{"mouse"}, 1)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if got, want := len(results), 1; got != want {
		t.Errorf("len(results) = %d, want %d", got, want)
	}
}

func TestSearchEmpty(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	results, err := ix.Search(ctx, nil, 10)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search(nil) = %d results, want 0", len(results))
	}

	// No product mentions these terms: an empty result, not an error.
	results, err = ix.Search(ctx, []string{"zzzzzz"}, 10)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Search(zzzzzz) = %d results, want 0", len(results))
	}
}

func TestSearchSelectors(t *testing.T) {
	ix := testIndex(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		keywords []string
		want     []string
	}{
		{
			name:     "attribute",
			keywords: []string{SelectorAttribute, "ceramic"},
			want:     []string{"B000000003"},
		},
		{
			name:     "category",
			keywords: []string{SelectorCategory, "electronics"},
			want:     []string{"B000000001", "B000000002"},
		},
		{
			name:     "query",
			keywords: []string{SelectorQuery, "mouse", "pad"},
			want:     []string{"B000000002"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			results, err := ix.Search(ctx, tc.keywords, 10)
			if err != nil {
				t.Fatalf("Search() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, asins(results)); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSearchRandomSelector(t *testing.T) {
	ix := testIndex(t)
	results, err := ix.Search(context.Background(), []string{SelectorRandom}, 2)
	if err != nil {
		t.Fatalf("Search() unexpected error: %v", err)
	}
	if got, want := len(results), 2; got != want {
		t.Fatalf("len(results) = %d, want %d", got, want)
	}
	if results[0].ASIN == results[1].ASIN {
		t.Error("random sample repeated a product")
	}
}
