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

import (
	"fmt"
	"math/rand"

	"github.com/webshop-bench/webshop/catalog"
	"github.com/webshop-bench/webshop/config"
	"github.com/webshop-bench/webshop/goal"
	"github.com/webshop-bench/webshop/search"
)

// BuildServer assembles catalog, search index and goal set into a
// Server, per the config. This is the one-call construction path the
// CLI and test harnesses use.
func BuildServer(cfg *config.Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	loadOpts := []catalog.LoadOption{}
	if cfg.Data.Limit > 0 {
		loadOpts = append(loadOpts, catalog.WithLimit(cfg.Data.Limit))
	}
	if cfg.Data.HumanInstructions != "" {
		loadOpts = append(loadOpts, catalog.WithHumanInstructions(cfg.Data.HumanInstructions))
	}
	if cfg.Seeds.Price != 0 {
		loadOpts = append(loadOpts, catalog.WithPriceRand(rand.New(rand.NewSource(cfg.Seeds.Price))))
	}
	c, err := catalog.Load(cfg.Data.Products, cfg.Data.Attributes, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	ix, err := search.New(c, search.WithCacheSize(cfg.Search.CacheSize))
	if err != nil {
		return nil, fmt.Errorf("building search index: %w", err)
	}

	goalOpts := []goal.Option{
		goal.WithMode(goal.Mode(cfg.Goals.Mode)),
		goal.WithShuffleSeed(cfg.Goals.ShuffleSeed),
	}
	if cfg.Goals.Limit > 0 {
		goalOpts = append(goalOpts, goal.WithLimit(cfg.Goals.Limit, nil))
	}
	goals, err := goal.Generate(c, goalOpts...)
	if err != nil {
		return nil, fmt.Errorf("generating goals: %w", err)
	}

	serverOpts := []ServerOption{
		WithSearchReturnN(cfg.Search.ReturnN),
		WithProductWindow(cfg.Search.ProductWindow),
	}
	if cfg.Seeds.Session != 0 {
		serverOpts = append(serverOpts, WithRand(rand.New(rand.NewSource(cfg.Seeds.Session))))
	}
	return NewServer(c, ix, goals, serverOpts...)
}
