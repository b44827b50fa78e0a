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
	"strings"
	"testing"
)

func TestTextEnvReset(t *testing.T) {
	sv := testServer(t)
	e := NewTextEnv(sv, "0")

	obs, info := e.Reset()
	if !strings.Contains(obs, "Instruction:") || !strings.Contains(obs, ButtonSearch) {
		t.Fatalf("initial observation wrong: %q", obs)
	}
	if info["session_id"] != "0" {
		t.Errorf("session_id = %v, want 0", info["session_id"])
	}
	if info["instruction"] != e.Session().Goal().Instruction {
		t.Error("info instruction does not match the session goal")
	}
}

func TestTextEnvFreshSessionIDs(t *testing.T) {
	sv := testServer(t)
	e := NewTextEnv(sv, "")

	_, first := e.Reset()
	_, second := e.Reset()
	if first["session_id"] == second["session_id"] {
		t.Error("empty-id environment reused a session id across resets")
	}
}

func TestTextEnvStepAutoResets(t *testing.T) {
	sv := testServer(t)
	e := NewTextEnv(sv, "0")

	// Stepping without an explicit reset starts a session first.
	obs, rew, done, info, err := e.Step("search[<q> pan]")
	if err != nil {
		t.Fatalf("Step() unexpected error: %v", err)
	}
	if rew != 0 || done {
		t.Errorf("rew=%v done=%v, want 0 false", rew, done)
	}
	if !strings.Contains(obs, "Total results:") {
		t.Errorf("observation is not a results page: %q", obs)
	}
	if info["valid_action"] != true {
		t.Error("search not counted as valid")
	}
	if e.Observation() != obs {
		t.Error("Observation() does not match the last step")
	}
}
