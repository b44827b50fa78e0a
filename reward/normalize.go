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

package reward

import "strings"

// canonicalColors is checked in order; option values containing a
// canonical color collapse to it before fuzzy matching, so that
// "ocean blue 12oz" and "navy blue" both resolve through "blue".
// Compound names come before their components.
var canonicalColors = []string{
	"anthracite", "aquamarine", "army green", "forest green", "olive green",
	"mint green", "sage green", "lime green", "hunter green", "navy blue",
	"royal blue", "sky blue", "baby blue", "light blue", "dark blue",
	"hot pink", "light pink", "rose gold", "dark grey", "dark gray",
	"light grey", "light gray", "off white", "burgundy", "champagne",
	"charcoal", "chocolate", "turquoise", "lavender", "magenta", "mustard",
	"rainbow", "apricot", "crimson", "fuchsia", "natural", "leopard",
	"camouflage", "camo", "multicolor", "multicolour", "multi",
	"stainless steel", "bronze", "copper", "coral", "storm", "berry",
	"black", "brown", "beige", "blush", "blue", "cream", "clear", "green",
	"grey", "gray", "gold", "ivory", "khaki", "lilac", "maroon", "mint",
	"navy", "nude", "olive", "orange", "peach", "pink", "purple", "red",
	"rose", "sage", "silver", "slate", "tan", "teal", "violet", "white",
	"yellow",
}

// normalizeColor maps an option value to its canonical color name when
// one occurs in the value, and returns the value unchanged otherwise.
func normalizeColor(value string) string {
	value = strings.ToLower(value)
	for _, color := range canonicalColors {
		if strings.Contains(value, color) {
			return color
		}
	}
	return value
}
