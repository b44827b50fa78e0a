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
	"sort"
	"strings"

	"github.com/webshop-bench/webshop/catalog"
)

// Button labels advertised by the pages. Clickable matching is
// case-insensitive.
const (
	ButtonBuyNow       = "Buy Now"
	ButtonBackToSearch = "Back to Search"
	ButtonNextPage     = "Next >"
	ButtonPrevPage     = "< Prev"
	ButtonSearch       = "Search"
)

// Item sub-page names, clickable from the item page.
const (
	SubPageDescription = "Description"
	SubPageFeatures    = "Features"
	SubPageAttributes  = "Attributes"
)

// Kind identifies which page a session is looking at.
type Kind int

const (
	// KindSearch is the landing page with the search bar.
	KindSearch Kind = iota
	// KindResults is a paginated product listing.
	KindResults
	// KindItem is the detail view of one product.
	KindItem
	// KindSubPage is a Description/Features/Attributes view of the
	// current product.
	KindSubPage
	// KindDone is the purchase confirmation page.
	KindDone
)

// Page is the structured model of the current page: the page kind plus
// the fields a renderer needs. The plain-text rendering below is one
// such renderer; richer front ends can consume the model directly.
type Page struct {
	Kind        Kind
	Instruction string

	// Results page fields.
	Keywords     []string
	PageNumber   int
	TotalPages   int
	TotalResults int
	Results      []*catalog.Product

	// Item page fields.
	Product         *catalog.Product
	SubPage         string
	SelectedOptions map[string]string

	// Done page fields.
	Reward         float64
	CompletionCode string
}

// HasSearchBar reports whether the page accepts search actions.
func (p *Page) HasSearchBar() bool { return p.Kind == KindSearch }

// Clickables returns the page's advertised clickable set: button labels,
// product ids and option values, in display order.
func (p *Page) Clickables() []string {
	var clickables []string
	switch p.Kind {
	case KindSearch:
		clickables = append(clickables, ButtonSearch)
	case KindResults:
		clickables = append(clickables, ButtonBackToSearch)
		if p.PageNumber > 1 {
			clickables = append(clickables, ButtonPrevPage)
		}
		if p.PageNumber < p.TotalPages {
			clickables = append(clickables, ButtonNextPage)
		}
		for _, product := range p.Results {
			clickables = append(clickables, product.ASIN)
		}
	case KindItem:
		clickables = append(clickables, ButtonBackToSearch, ButtonPrevPage)
		for _, name := range p.Product.OptionNames() {
			clickables = append(clickables, p.Product.Options[name]...)
		}
		clickables = append(clickables,
			SubPageDescription, SubPageFeatures, SubPageAttributes, ButtonBuyNow)
	case KindSubPage:
		clickables = append(clickables, ButtonBackToSearch, ButtonPrevPage)
	case KindDone:
		// Terminal page, nothing clickable.
	}
	return clickables
}

// Render flattens the page into the text observation shown to the
// agent. Segments are joined with " [SEP] " markers.
func (p *Page) Render() string {
	var segments []string
	if p.Kind != KindDone {
		segments = append(segments, "Instruction:", p.Instruction)
	}

	switch p.Kind {
	case KindSearch:
		segments = append(segments, ButtonSearch)

	case KindResults:
		segments = append(segments, ButtonBackToSearch,
			fmt.Sprintf("Page %d (Total results: %d)", p.PageNumber, p.TotalResults))
		if p.PageNumber > 1 {
			segments = append(segments, ButtonPrevPage)
		}
		if p.PageNumber < p.TotalPages {
			segments = append(segments, ButtonNextPage)
		}
		for _, product := range p.Results {
			segments = append(segments, product.ASIN, product.Title, product.PriceTag)
		}

	case KindItem:
		segments = append(segments, ButtonBackToSearch, ButtonPrevPage)
		for _, name := range p.Product.OptionNames() {
			segments = append(segments, name)
			segments = append(segments, p.Product.Options[name]...)
		}
		segments = append(segments,
			p.Product.Title,
			"Price: "+p.Product.PriceTag)
		if len(p.SelectedOptions) > 0 {
			segments = append(segments, "Selected: "+selectedOptionsText(p.SelectedOptions))
		}
		segments = append(segments,
			SubPageDescription, SubPageFeatures, SubPageAttributes,
			ButtonBuyNow)

	case KindSubPage:
		segments = append(segments, ButtonBackToSearch, ButtonPrevPage)
		segments = append(segments, p.subPageBody()...)

	case KindDone:
		segments = append(segments,
			"Thank you for shopping with us!",
			"Your code:", p.CompletionCode,
			"(Paste it in your MTurk interface.)",
			"Purchased", p.Product.ASIN)
		if len(p.SelectedOptions) > 0 {
			segments = append(segments, "Options: "+selectedOptionsText(p.SelectedOptions))
		}
		segments = append(segments,
			"Reward", "Your score (min 0.0, max 1.0)",
			fmt.Sprintf("%g", p.Reward))
	}
	return strings.Join(segments, " [SEP] ")
}

func (p *Page) subPageBody() []string {
	switch p.SubPage {
	case SubPageDescription:
		return []string{p.Product.Description}
	case SubPageFeatures:
		return append([]string(nil), p.Product.BulletPoints...)
	case SubPageAttributes:
		return append([]string(nil), p.Product.Attributes...)
	}
	return nil
}

// selectedOptionsText renders the selected options in sorted name order.
func selectedOptionsText(selected map[string]string) string {
	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, fmt.Sprintf("%s: %s", name, selected[name]))
	}
	return strings.Join(pairs, ", ")
}
