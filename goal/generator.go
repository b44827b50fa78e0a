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

package goal

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/log"

	"github.com/webshop-bench/webshop/catalog"
	"github.com/webshop-bench/webshop/internal/otellog"
)

// Mode selects how goals are derived from the catalog.
type Mode string

const (
	// ModeHuman emits one goal per curated human instruction.
	ModeHuman Mode = "human"
	// ModeSynthetic enumerates goals from attribute and option
	// combinations.
	ModeSynthetic Mode = "synthetic"
)

type config struct {
	mode        Mode
	shuffleSeed int64
	priceRand   *rand.Rand
	filter      func(int, *Goal) bool
	limit       int
	limitRand   *rand.Rand
}

// Option configures goal generation.
type Option func(*config)

// WithMode selects the generation mode. Default is ModeHuman.
func WithMode(mode Mode) Option {
	return func(cfg *config) { cfg.mode = mode }
}

// WithShuffleSeed overrides the deterministic shuffle seed.
func WithShuffleSeed(seed int64) Option {
	return func(cfg *config) { cfg.shuffleSeed = seed }
}

// WithPriceRand sets the random source for price-constraint sampling.
func WithPriceRand(r *rand.Rand) Option {
	return func(cfg *config) { cfg.priceRand = r }
}

// WithFilter keeps only goals for which keep(index, goal) is true. The
// index is the goal's position after shuffling.
func WithFilter(keep func(int, *Goal) bool) Option {
	return func(cfg *config) { cfg.filter = keep }
}

// WithLimit subsamples at most n distinct goals, weighted by goal
// weight, using r (a time-seeded source when nil).
func WithLimit(n int, r *rand.Rand) Option {
	return func(cfg *config) {
		cfg.limit = n
		cfg.limitRand = r
	}
}

// Generate builds the goal set for a catalog: generate, shuffle
// deterministically, filter, then subsample.
func Generate(c *catalog.Catalog, opts ...Option) ([]*Goal, error) {
	cfg := &config{mode: ModeHuman, shuffleSeed: DefaultShuffleSeed}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.priceRand == nil {
		cfg.priceRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	var goals []*Goal
	var err error
	switch cfg.mode {
	case ModeHuman:
		goals = humanGoals(c, cfg.priceRand)
	case ModeSynthetic:
		goals = syntheticGoals(c, cfg.priceRand)
	default:
		err = fmt.Errorf("unknown goal mode %q", cfg.mode)
	}
	if err != nil {
		return nil, err
	}

	shuffleRand := rand.New(rand.NewSource(cfg.shuffleSeed))
	shuffleRand.Shuffle(len(goals), func(i, j int) {
		goals[i], goals[j] = goals[j], goals[i]
	})

	if cfg.filter != nil {
		kept := goals[:0]
		for i, g := range goals {
			if cfg.filter(i, g) {
				kept = append(kept, g)
			}
		}
		goals = kept
	}

	if cfg.limit > 0 && cfg.limit < len(goals) {
		limitRand := cfg.limitRand
		if limitRand == nil {
			limitRand = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		goals = subsample(goals, cfg.limit, limitRand)
	}

	otellog.Event(context.Background(), "goals.generated",
		log.String("mode", string(cfg.mode)),
		log.Int("count", len(goals)),
	)
	return goals, nil
}

func humanGoals(c *catalog.Catalog, priceRand *rand.Rand) []*Goal {
	var goals []*Goal
	var skipped int
	for _, p := range c.Products() {
		for _, ins := range p.HumanInstructions {
			if len(ins.Attributes) == 0 {
				skipped++
				continue
			}
			price, _ := c.Price(p.ASIN)
			upper, priceText := priceConstraint(price, priceRand)
			options := make(map[string]string, len(ins.Options))
			for name, value := range ins.Options {
				options[name] = value
			}
			goals = append(goals, &Goal{
				ASIN:            p.ASIN,
				Category:        p.Category,
				ProductCategory: p.ProductCategory,
				Query:           p.Query,
				Name:            p.Title,
				Instruction:     strings.ToLower(ins.Instruction) + priceText,
				Attributes:      ins.Attributes,
				PriceUpper:      upper,
				Options:         options,
				Weight:          1,
			})
		}
	}
	if skipped > 0 {
		otellog.Warn(context.Background(), "goals.skipped_empty_attributes",
			log.Int("count", skipped))
	}
	return goals
}

func syntheticGoals(c *catalog.Catalog, priceRand *rand.Rand) []*Goal {
	var goals []*Goal
	for _, p := range c.Products() {
		if p.Instruction == "" || len(p.InstructionAttributes) == 0 {
			continue
		}

		names := p.OptionNames()
		skip := false
		for _, name := range names {
			if len(p.Options[name]) == 0 {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		price, _ := c.Price(p.ASIN)
		upper, priceText := priceConstraint(price, priceRand)

		for _, combination := range enumerate(p, names) {
			var optionText string
			if len(names) > 0 {
				pairs := make([]string, 0, len(names))
				for _, name := range names {
					pairs = append(pairs, fmt.Sprintf("%s: %s", name, combination[name]))
				}
				optionText = " with " + strings.Join(pairs, ", and ")
			}
			goals = append(goals, &Goal{
				ASIN:            p.ASIN,
				Category:        p.Category,
				ProductCategory: p.ProductCategory,
				Query:           p.Query,
				Name:            p.Title,
				Instruction:     p.Instruction + optionText + priceText,
				Attributes:      p.InstructionAttributes,
				PriceUpper:      upper,
				Options:         combination,
			})
		}
	}

	// Attribute rarity is measured over the goal set itself: a product
	// with many option combinations contributes its attributes once per
	// combination.
	freq := make(map[string]int)
	for _, g := range goals {
		for _, a := range g.Attributes {
			freq[a]++
		}
	}
	for _, g := range goals {
		g.Weight = rarityWeight(freq, g.Attributes)
	}
	return goals
}

// enumerate yields the Cartesian product of the product's option values,
// one map per combination, in sorted option-name order. A product with
// no options yields a single empty combination.
func enumerate(p *catalog.Product, names []string) []map[string]string {
	combinations := []map[string]string{{}}
	for _, name := range names {
		var next []map[string]string
		for _, base := range combinations {
			for _, value := range p.Options[name] {
				combo := make(map[string]string, len(base)+1)
				for k, v := range base {
					combo[k] = v
				}
				combo[name] = value
				next = append(next, combo)
			}
		}
		combinations = next
	}
	return combinations
}

// rarityWeight is the mean of the inverse frequency of the goal's
// attributes, with frequency counted over the generated goal set. Every
// attribute of a goal occurs at least once there, so synthetic weights
// are always positive.
func rarityWeight(freq map[string]int, attributes []string) float64 {
	if len(attributes) == 0 {
		return 0
	}
	var sum float64
	for _, a := range attributes {
		if n := freq[a]; n > 0 {
			sum += 1 / float64(n)
		}
	}
	return sum / float64(len(attributes))
}

// priceLadder holds the candidate price ceilings: every multiple of 10
// up to 990.
var priceLadder = func() []float64 {
	ladder := make([]float64, 0, 99)
	for i := 1; i < 100; i++ {
		ladder = append(ladder, 10*float64(i))
	}
	return ladder
}()

// priceConstraint samples a price ceiling strictly above price. Up to
// four ladder steps above the price are candidates and the larger of two
// random picks wins, biasing the constraint loose but discriminating.
// Fewer than two candidates leaves the goal unconstrained.
func priceConstraint(price float64, r *rand.Rand) (upper float64, text string) {
	var candidates []float64
	for _, step := range priceLadder {
		if step > price {
			candidates = append(candidates, step)
			if len(candidates) == 4 {
				break
			}
		}
	}
	if len(candidates) < 2 {
		return NoPriceCap, ""
	}
	perm := r.Perm(len(candidates))
	upper = max(candidates[perm[0]], candidates[perm[1]])
	return upper, fmt.Sprintf(", and price lower than %.2f dollars", upper)
}

// CumulativeWeights returns the cumulative goal weights with a leading
// zero, for use with Sample.
func CumulativeWeights(goals []*Goal) []float64 {
	cum := make([]float64, len(goals)+1)
	for i, g := range goals {
		cum[i+1] = cum[i] + g.Weight
	}
	return cum
}

// Sample draws one goal index by weighted sampling: a uniform position
// in the total weight resolved to an index by binary search.
func Sample(cum []float64, r *rand.Rand) int {
	if len(cum) < 2 {
		return 0
	}
	pos := r.Float64() * cum[len(cum)-1]
	idx := sort.SearchFloat64s(cum, pos)
	if idx > 0 {
		idx--
	}
	return min(idx, len(cum)-2)
}

// subsample picks limit distinct goals without replacement, weighted by
// goal weight. The survivors keep their relative order.
func subsample(goals []*Goal, limit int, r *rand.Rand) []*Goal {
	cum := CumulativeWeights(goals)
	positive := 0
	for _, g := range goals {
		if g.Weight > 0 {
			positive++
		}
	}
	if positive < limit {
		// Fewer sampleable goals than requested: weighted draws can
		// only ever land on positive weights, so return exactly those.
		out := make([]*Goal, 0, positive)
		for _, g := range goals {
			if g.Weight > 0 {
				out = append(out, g)
			}
		}
		return out
	}
	chosen := make(map[int]bool, limit)
	for len(chosen) < limit {
		chosen[Sample(cum, r)] = true
	}
	out := make([]*Goal, 0, limit)
	for i, g := range goals {
		if chosen[i] {
			out = append(out, g)
		}
	}
	return out
}
