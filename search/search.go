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

// Package search ranks catalog products against keyword queries.
//
// Interactive queries go through a full-text index over each product's
// contents string. Selector prefixes bypass full-text ranking and filter
// the catalog directly; goal generation needs exact attribute, category
// and query lookups that a ranked text search cannot guarantee:
//
//	<r>             top-n random products
//	<a> attribute   products carrying the attribute
//	<c> category    products with the exact category
//	<q> query       products with the exact originating query
package search

import (
	"context"
	"fmt"
	"math/rand"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/webshop-bench/webshop/catalog"
)

// Selector prefixes recognized as the first keyword.
const (
	SelectorRandom    = "<r>"
	SelectorAttribute = "<a>"
	SelectorCategory  = "<c>"
	SelectorQuery     = "<q>"
)

const defaultCacheSize = 128

type config struct {
	rand      *rand.Rand
	cacheSize int
}

// Option configures the index.
type Option func(*config)

// WithRand sets the random source used by the <r> selector.
func WithRand(r *rand.Rand) Option {
	return func(cfg *config) { cfg.rand = r }
}

// WithCacheSize sets the size of the query-result cache.
func WithCacheSize(n int) Option {
	return func(cfg *config) { cfg.cacheSize = n }
}

// Index is a full-text index over a catalog. It is safe for concurrent
// readers after New returns.
type Index struct {
	catalog *catalog.Catalog
	idx     bleve.Index
	cache   *lru.Cache[string, []string]

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New builds an in-memory index over every product's contents string.
func New(c *catalog.Catalog, opts ...Option) (*Index, error) {
	cfg := &config{cacheSize: defaultCacheSize}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rand == nil {
		cfg.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("%w: creating index: %v", ErrBackend, err)
	}

	// Contents strings are cheap individually but the catalog can be
	// large; flatten them in parallel, then index in one batch.
	products := c.Products()
	contents := make([]string, len(products))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range products {
		g.Go(func() error {
			contents[i] = p.ContentsString()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := idx.NewBatch()
	for i, p := range products {
		if err := batch.Index(p.ASIN, map[string]any{"contents": contents[i]}); err != nil {
			return nil, fmt.Errorf("%w: indexing %s: %v", ErrBackend, p.ASIN, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("%w: committing batch: %v", ErrBackend, err)
	}

	cache, err := lru.New[string, []string](cfg.cacheSize)
	if err != nil {
		return nil, err
	}
	return &Index{catalog: c, idx: idx, cache: cache, rng: cfg.rand}, nil
}

// Search maps keywords to a ranked list of products, at most topN long.
// An empty result is legitimate; a non-nil error always means the
// backend failed.
func (ix *Index) Search(ctx context.Context, keywords []string, topN int) ([]*catalog.Product, error) {
	if len(keywords) == 0 || topN <= 0 {
		return nil, nil
	}
	switch keywords[0] {
	case SelectorRandom:
		return ix.randomSample(topN), nil
	case SelectorAttribute:
		attribute := strings.TrimSpace(strings.Join(keywords[1:], " "))
		return ix.byASIN(ix.catalog.ASINsWithAttribute(attribute)), nil
	case SelectorCategory:
		category := ""
		if len(keywords) > 1 {
			category = strings.TrimSpace(keywords[1])
		}
		return ix.filter(func(p *catalog.Product) bool { return p.Category == category }), nil
	case SelectorQuery:
		query := strings.TrimSpace(strings.Join(keywords[1:], " "))
		return ix.filter(func(p *catalog.Product) bool { return p.Query == query }), nil
	}
	return ix.fullText(ctx, keywords, topN)
}

// Close releases the underlying index.
func (ix *Index) Close() error { return ix.idx.Close() }

func (ix *Index) fullText(ctx context.Context, keywords []string, topN int) ([]*catalog.Product, error) {
	cacheKey := fmt.Sprintf("%d\x00%s", topN, strings.Join(keywords, "\x00"))
	if asins, ok := ix.cache.Get(cacheKey); ok {
		return ix.byASIN(asins), nil
	}

	query := bleve.NewMatchQuery(strings.Join(keywords, " "))
	query.SetField("contents")
	req := bleve.NewSearchRequestOptions(query, topN, 0, false)
	res, err := ix.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackend, err)
	}

	asins := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		asins = append(asins, hit.ID)
	}
	ix.cache.Add(cacheKey, asins)
	return ix.byASIN(asins), nil
}

func (ix *Index) byASIN(asins []string) []*catalog.Product {
	products := make([]*catalog.Product, 0, len(asins))
	for _, asin := range asins {
		if p, err := ix.catalog.Get(asin); err == nil {
			products = append(products, p)
		}
	}
	return products
}

func (ix *Index) filter(keep func(*catalog.Product) bool) []*catalog.Product {
	var products []*catalog.Product
	for _, p := range ix.catalog.Products() {
		if keep(p) {
			products = append(products, p)
		}
	}
	return products
}

func (ix *Index) randomSample(topN int) []*catalog.Product {
	all := ix.catalog.Products()
	if topN >= len(all) {
		return append([]*catalog.Product(nil), all...)
	}
	ix.mu.Lock()
	perm := ix.rng.Perm(len(all))
	ix.mu.Unlock()
	products := make([]*catalog.Product, 0, topN)
	for _, i := range perm[:topN] {
		products = append(products, all[i])
	}
	return products
}
