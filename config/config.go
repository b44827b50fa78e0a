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

// Package config declares the YAML configuration for constructing a
// simulation environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one environment build.
type Config struct {
	Data struct {
		// Products is the path to the JSON array of raw product
		// records; Attributes the asin-keyed attribute file.
		Products   string `yaml:"products"`
		Attributes string `yaml:"attributes"`
		// HumanInstructions is optional; required for goal mode human.
		HumanInstructions string `yaml:"human_instructions"`
		// Limit caps how many raw records load; zero loads all.
		Limit int `yaml:"limit"`
	} `yaml:"data"`

	Goals struct {
		// Mode is "human" or "synthetic".
		Mode string `yaml:"mode"`
		// ShuffleSeed seeds the deterministic goal shuffle.
		ShuffleSeed int64 `yaml:"shuffle_seed"`
		// Limit subsamples the goal set by weight; zero keeps all.
		Limit int `yaml:"limit"`
	} `yaml:"goals"`

	Seeds struct {
		// Price seeds price-range resolution. Zero leaves it
		// time-seeded: resolved prices then differ between processes,
		// matching the original behavior.
		Price int64 `yaml:"price"`
		// Session seeds goal sampling on reset. Zero means time-seeded.
		Session int64 `yaml:"session"`
	} `yaml:"seeds"`

	Search struct {
		ReturnN       int `yaml:"return_n"`
		ProductWindow int `yaml:"product_window"`
		CacheSize     int `yaml:"cache_size"`
	} `yaml:"search"`
}

// Default returns a config with the standard page sizes and seeds.
func Default() *Config {
	cfg := &Config{}
	cfg.Goals.Mode = "human"
	cfg.Goals.ShuffleSeed = 233
	cfg.Search.ReturnN = 50
	cfg.Search.ProductWindow = 10
	cfg.Search.CacheSize = 128
	return cfg
}

// Load reads and validates a YAML config file. Omitted fields keep
// their defaults.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decoding config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field consistency.
func (c *Config) Validate() error {
	if c.Data.Products == "" {
		return fmt.Errorf("data.products is required")
	}
	if c.Data.Attributes == "" {
		return fmt.Errorf("data.attributes is required")
	}
	switch c.Goals.Mode {
	case "human":
		if c.Data.HumanInstructions == "" {
			return fmt.Errorf("goal mode %q needs data.human_instructions", c.Goals.Mode)
		}
	case "synthetic":
	default:
		return fmt.Errorf("unknown goal mode %q", c.Goals.Mode)
	}
	if c.Search.ReturnN <= 0 {
		return fmt.Errorf("search.return_n must be positive, got %d", c.Search.ReturnN)
	}
	if c.Search.ProductWindow <= 0 {
		return fmt.Errorf("search.product_window must be positive, got %d", c.Search.ProductWindow)
	}
	return nil
}
