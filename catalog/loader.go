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

package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.opentelemetry.io/otel/log"

	"github.com/webshop-bench/webshop/internal/otellog"
)

// AttributeEntry is one record of the attribute file, keyed by ASIN.
// Instruction and InstructionAttributes seed synthetic goal generation.
type AttributeEntry struct {
	Attributes            []string `json:"attributes"`
	Instruction           string   `json:"instruction"`
	InstructionAttributes []string `json:"instruction_attributes"`
}

type loadConfig struct {
	limit     int
	priceRand *rand.Rand
	humanPath string
}

// LoadOption configures catalog loading.
type LoadOption func(*loadConfig)

// WithLimit keeps only the first n raw records.
func WithLimit(n int) LoadOption {
	return func(cfg *loadConfig) { cfg.limit = n }
}

// WithPriceRand sets the random source used to resolve two-value price
// ranges to a single price. Price resolution happens once per load; pass
// a seeded source when reproducible prices are required, otherwise a
// time-seeded source is used.
func WithPriceRand(r *rand.Rand) LoadOption {
	return func(cfg *loadConfig) { cfg.priceRand = r }
}

// WithHumanInstructions attaches the curated human-instruction file.
func WithHumanInstructions(path string) LoadOption {
	return func(cfg *loadConfig) { cfg.humanPath = path }
}

// Load reads the product file and the attribute file and builds the
// catalog. It fails with ErrDataFormat when the product file is absent or
// is not a JSON array, and with ErrMissingIndex when the attribute file
// is absent.
func Load(productsPath, attributesPath string, opts ...LoadOption) (*Catalog, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	raw, err := os.ReadFile(productsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrDataFormat, productsPath, err)
	}
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: %s is not a JSON array of products: %v", ErrDataFormat, productsPath, err)
	}

	attrRaw, err := os.ReadFile(attributesPath)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrMissingIndex, attributesPath, err)
	}
	var attrs map[string]AttributeEntry
	if err := json.Unmarshal(attrRaw, &attrs); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrMissingIndex, attributesPath, err)
	}

	var human map[string][]HumanInstruction
	if cfg.humanPath != "" {
		humanRaw, err := os.ReadFile(cfg.humanPath)
		if err != nil {
			return nil, fmt.Errorf("reading human instructions %s: %w", cfg.humanPath, err)
		}
		if err := json.Unmarshal(humanRaw, &human); err != nil {
			return nil, fmt.Errorf("decoding human instructions %s: %w", cfg.humanPath, err)
		}
	}

	return build(records, attrs, human, cfg)
}

// Build constructs a catalog from already-decoded records. It applies the
// same normalization as Load and exists mainly for tests and embedded
// data sets.
func Build(records []map[string]any, attrs map[string]AttributeEntry, human map[string][]HumanInstruction, opts ...LoadOption) (*Catalog, error) {
	cfg := &loadConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	return build(records, attrs, human, cfg)
}

// rawRecord is the subset of a raw product record the loader consumes.
// Raw records have an arbitrary JSON-like shape; mapstructure tolerates
// missing and extra fields.
type rawRecord struct {
	ASIN                 string         `json:"asin"`
	Name                 string         `json:"name"`
	FullDescription      string         `json:"full_description"`
	SmallDescription     any            `json:"small_description"`
	Pricing              any            `json:"pricing"`
	Category             string         `json:"category"`
	Query                string         `json:"query"`
	ProductCategory      string         `json:"product_category"`
	CustomizationOptions map[string]any `json:"customization_options"`
	Images               []string       `json:"images"`
}

func build(records []map[string]any, attrs map[string]AttributeEntry, human map[string][]HumanInstruction, cfg *loadConfig) (*Catalog, error) {
	if records == nil {
		return nil, fmt.Errorf("%w: no product records", ErrDataFormat)
	}
	if attrs == nil {
		return nil, fmt.Errorf("%w: no attribute entries", ErrMissingIndex)
	}
	if cfg.limit > 0 && cfg.limit < len(records) {
		records = records[:cfg.limit]
	}
	priceRand := cfg.priceRand
	if priceRand == nil {
		priceRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	c := &Catalog{
		byASIN: make(map[string]*Product),
		prices: make(map[string]float64),
	}

	var skipped, dupes int
	for _, record := range records {
		var rec rawRecord
		if err := decodeRecord(record, &rec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataFormat, err)
		}
		// First occurrence wins: de-duplication must be stable.
		if rec.ASIN == "" || rec.ASIN == "nan" || len(rec.ASIN) > 10 {
			skipped++
			continue
		}
		if _, seen := c.byASIN[rec.ASIN]; seen {
			dupes++
			continue
		}

		p := normalize(&rec)
		if entry, ok := attrs[rec.ASIN]; ok {
			// An entry with an empty attribute list stays empty; only
			// products absent from the file get the dummy marker.
			p.Instruction = entry.Instruction
			p.InstructionAttributes = entry.InstructionAttributes
			p.Attributes = entry.Attributes
		} else {
			p.Attributes = []string{DummyAttribute}
		}
		if ins, ok := human[rec.ASIN]; ok {
			p.HumanInstructions = ins
		}

		c.products = append(c.products, p)
		c.byASIN[p.ASIN] = p
		c.prices[p.ASIN] = resolvePrice(p.PriceRange, priceRand)
	}

	for _, p := range c.products {
		seen := make(map[string]bool, len(p.Attributes))
		for _, a := range p.Attributes {
			// A product listing an attribute twice still counts once.
			if seen[a] {
				continue
			}
			seen[a] = true
			asins, _ := c.attrIndex.Get(a)
			c.attrIndex.Set(a, append(asins, p.ASIN))
		}
	}

	otellog.Event(context.Background(), "catalog.loaded",
		log.Int("products", len(c.products)),
		log.Int("skipped", skipped),
		log.Int("duplicates", dupes),
	)
	return c, nil
}

func decodeRecord(record map[string]any, rec *rawRecord) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           rec,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(record)
}

func normalize(rec *rawRecord) *Product {
	p := &Product{
		ASIN:            rec.ASIN,
		Title:           rec.Name,
		Description:     rec.FullDescription,
		Category:        rec.Category,
		ProductCategory: rec.ProductCategory,
		Query:           strings.TrimSpace(strings.ToLower(rec.Query)),
		BulletPoints:    bulletPoints(rec.SmallDescription),
		Options:         make(map[string][]string),
		OptionToImage:   make(map[string]string),
	}
	p.PriceRange, p.PriceTag = parsePricing(rec.Pricing)
	if len(rec.Images) > 0 {
		p.MainImage = rec.Images[0]
	}

	for name, contents := range rec.CustomizationOptions {
		if contents == nil {
			continue
		}
		name = strings.ToLower(name)
		values := []string{}
		list, ok := contents.([]any)
		if !ok {
			continue
		}
		for _, item := range list {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			value, _ := entry["value"].(string)
			value = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(value), "/", " | "))
			if value == "" {
				continue
			}
			values = append(values, value)
			if image, ok := entry["image"].(string); ok {
				p.OptionToImage[value] = image
			}
		}
		p.Options[name] = values
	}
	return p
}

func bulletPoints(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return []string{val}
	case []any:
		var out []string
		for _, item := range val {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return val
	default:
		return []string{fmt.Sprintf("%v", val)}
	}
}

var nonPrice = regexp.MustCompile(`[^\d.]`)

// parsePricing extracts one or two dollar amounts from a free-text
// pricing field. Unparseable or missing pricing defaults to 100.0.
func parsePricing(raw any) ([]float64, string) {
	if raw == nil {
		return []float64{100.0}, "$100.00"
	}
	text := fmt.Sprintf("%v", raw)
	var values []float64
	for _, chunk := range strings.Split(text, "$") {
		cleaned := nonPrice.ReplaceAllString(chunk, "")
		if cleaned == "" {
			continue
		}
		v, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	switch {
	case len(values) == 0:
		return []float64{100.0}, "$100.00"
	case len(values) == 1:
		return values, fmt.Sprintf("$%.2f", values[0])
	default:
		values = values[:2]
		return values, fmt.Sprintf("$%.2f to $%.2f", values[0], values[1])
	}
}

// resolvePrice picks the single purchase price for a product. Two-value
// ranges resolve by uniform sampling within the range, once per load.
func resolvePrice(priceRange []float64, r *rand.Rand) float64 {
	switch len(priceRange) {
	case 0:
		return 100.0
	case 1:
		return priceRange[0]
	default:
		lo, hi := priceRange[0], priceRange[1]
		return lo + r.Float64()*(hi-lo)
	}
}
