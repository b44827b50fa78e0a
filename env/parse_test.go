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

import "testing"

func TestParseAction(t *testing.T) {
	tests := []struct {
		action   string
		wantName string
		wantArg  string
	}{
		{"search[wireless mouse]", "search", "wireless mouse"},
		{"click[Buy Now]", "click", "Buy Now"},
		{"click[b07x2jkgqs]", "click", "b07x2jkgqs"},
		{"  click[black]  ", "click", "black"},
		{"search[]", "search[]", ""},
		{"wiggle", "wiggle", ""},
		{"", "", ""},
	}
	for _, tc := range tests {
		name, arg := ParseAction(tc.action)
		if name != tc.wantName || arg != tc.wantArg {
			t.Errorf("ParseAction(%q) = (%q, %q), want (%q, %q)",
				tc.action, name, arg, tc.wantName, tc.wantArg)
		}
	}
}

func TestCompletionCode(t *testing.T) {
	code := completionCode("session-1")
	if len(code) != 10 {
		t.Fatalf("len(code) = %d, want 10", len(code))
	}
	if code != completionCode("session-1") {
		t.Error("completion code not deterministic")
	}
	if code == completionCode("session-2") {
		t.Error("completion codes collide across sessions")
	}
}
