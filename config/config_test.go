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

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
data:
  products: items.json
  attributes: attrs.json
goals:
  mode: synthetic
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if cfg.Goals.Mode != "synthetic" {
		t.Errorf("Goals.Mode = %q, want synthetic", cfg.Goals.Mode)
	}
	// Omitted fields keep their defaults.
	if cfg.Goals.ShuffleSeed != 233 {
		t.Errorf("Goals.ShuffleSeed = %d, want 233", cfg.Goals.ShuffleSeed)
	}
	if cfg.Search.ReturnN != 50 || cfg.Search.ProductWindow != 10 {
		t.Errorf("search defaults = (%d, %d), want (50, 10)",
			cfg.Search.ReturnN, cfg.Search.ProductWindow)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("Load(absent) did not fail")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Data.Products = "items.json"
		cfg.Data.Attributes = "attrs.json"
		cfg.Data.HumanInstructions = "human.json"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"missing products", func(c *Config) { c.Data.Products = "" }, true},
		{"missing attributes", func(c *Config) { c.Data.Attributes = "" }, true},
		{"human mode needs instructions", func(c *Config) { c.Data.HumanInstructions = "" }, true},
		{"synthetic mode without instructions", func(c *Config) {
			c.Goals.Mode = "synthetic"
			c.Data.HumanInstructions = ""
		}, false},
		{"unknown mode", func(c *Config) { c.Goals.Mode = "typo" }, true},
		{"zero return_n", func(c *Config) { c.Search.ReturnN = 0 }, true},
		{"zero product_window", func(c *Config) { c.Search.ProductWindow = 0 }, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
