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
	"os"
	"path/filepath"
	"testing"

	"github.com/webshop-bench/webshop/config"
)

func TestBuildServer(t *testing.T) {
	dir := t.TempDir()
	products := filepath.Join(dir, "items.json")
	attrs := filepath.Join(dir, "attrs.json")
	if err := os.WriteFile(products, []byte(`[
		{"asin": "B000000001", "name": "Steel Pan", "pricing": "$55.00", "query": "pan"},
		{"asin": "B000000002", "name": "Copper Pan", "pricing": "$30.00", "query": "pan"}
	]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(attrs, []byte(`{
		"B000000001": {
			"attributes": ["stainless steel"],
			"instruction": "i need a durable pan",
			"instruction_attributes": ["stainless steel"]
		},
		"B000000002": {
			"attributes": ["copper"],
			"instruction": "i need a copper pan",
			"instruction_attributes": ["copper"]
		}
	}`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Data.Products = products
	cfg.Data.Attributes = attrs
	cfg.Goals.Mode = "synthetic"
	cfg.Seeds.Price = 7
	cfg.Seeds.Session = 11

	sv, err := BuildServer(cfg)
	if err != nil {
		t.Fatalf("BuildServer() unexpected error: %v", err)
	}
	if got, want := sv.Catalog().Len(), 2; got != want {
		t.Errorf("catalog len = %d, want %d", got, want)
	}
	if got, want := len(sv.Goals()), 2; got != want {
		t.Errorf("goal count = %d, want %d", got, want)
	}

	e := NewTextEnv(sv, "0")
	obs, _ := e.Reset()
	if obs == "" {
		t.Fatal("empty initial observation")
	}
}

func TestBuildServerInvalidConfig(t *testing.T) {
	cfg := config.Default()
	// No data files configured.
	if _, err := BuildServer(cfg); err == nil {
		t.Fatal("BuildServer(invalid config) did not fail")
	}
}
