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

// Package catalog loads raw product records into a normalized, immutable
// in-memory catalog and resolves one purchase price per product.
package catalog

import (
	"fmt"
	"iter"

	"rsc.io/omap"
)

// Catalog is the read-only product store shared by every session.
type Catalog struct {
	products []*Product
	byASIN   map[string]*Product
	prices   map[string]float64

	// attribute -> ASINs carrying it, ordered by attribute for
	// deterministic iteration.
	attrIndex omap.Map[string, []string]
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int { return len(c.products) }

// Products returns the catalog entries in load order. The returned slice
// must not be mutated.
func (c *Catalog) Products() []*Product { return c.products }

// Get returns the product with the given ASIN, or ErrNotFound.
func (c *Catalog) Get(asin string) (*Product, error) {
	p, ok := c.byASIN[asin]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, asin)
	}
	return p, nil
}

// Has reports whether the ASIN is in the catalog.
func (c *Catalog) Has(asin string) bool {
	_, ok := c.byASIN[asin]
	return ok
}

// Price returns the resolved purchase price for the ASIN. Prices with a
// two-value range are resolved once at load time, not per session.
func (c *Catalog) Price(asin string) (float64, error) {
	price, ok := c.prices[asin]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, asin)
	}
	return price, nil
}

// ASINsWithAttribute returns the ASINs of every product carrying the
// attribute, in load order.
func (c *Catalog) ASINsWithAttribute(attribute string) []string {
	asins, _ := c.attrIndex.Get(attribute)
	return asins
}

// Attributes iterates over all attributes and their ASIN lists in sorted
// attribute order.
func (c *Catalog) Attributes() iter.Seq2[string, []string] {
	return c.attrIndex.All()
}
