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

import (
	"strings"

	prose "github.com/jdkato/prose/v2"
)

// nounTokens extracts the lower-cased noun and proper-noun tokens of
// text (Penn Treebank NN* tags).
func nounTokens(text string) (map[string]struct{}, error) {
	nouns := make(map[string]struct{})
	if strings.TrimSpace(text) == "" {
		return nouns, nil
	}
	doc, err := prose.NewDocument(text,
		prose.WithExtraction(false),
		prose.WithSegmentation(false),
	)
	if err != nil {
		return nil, err
	}
	for _, tok := range doc.Tokens() {
		if strings.HasPrefix(tok.Tag, "NN") {
			nouns[strings.ToLower(tok.Text)] = struct{}{}
		}
	}
	return nouns, nil
}
