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
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
)

var actionPattern = regexp.MustCompile(`^(.+)\[(.+)\]$`)

// ParseAction splits an action string of the form `name[arg]` into its
// name and argument. A string without brackets parses as a bare name
// with an empty argument; the caller treats unknown shapes as no-ops.
func ParseAction(action string) (name, arg string) {
	m := actionPattern.FindStringSubmatch(strings.TrimSpace(action))
	if m == nil {
		return strings.TrimSpace(action), ""
	}
	return m[1], m[2]
}

// completionCode derives the deterministic confirmation code shown on
// the purchase page from the session id.
func completionCode(sessionID string) string {
	sum := sha1.Sum([]byte(sessionID))
	return strings.ToUpper(hex.EncodeToString(sum[:])[:10])
}
