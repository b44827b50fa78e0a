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
	"context"

	"github.com/google/uuid"

	"github.com/webshop-bench/webshop"
)

// TextEnv binds a server to one session at a time and exposes the
// Gym-style Environment surface. Reset replaces the session; the
// previous one is abandoned.
type TextEnv struct {
	server    *Server
	sessionID string
	session   *Session
}

var _ webshop.Environment = (*TextEnv)(nil)

// NewTextEnv creates a text environment over the server. A non-empty
// sessionID pins the session id (and, when numeric, the goal index);
// an empty one draws a fresh id on every reset.
func NewTextEnv(server *Server, sessionID string) *TextEnv {
	return &TextEnv{server: server, sessionID: sessionID}
}

// Reset starts a fresh session and returns the initial observation.
func (e *TextEnv) Reset() (string, map[string]any) {
	id := e.sessionID
	if id == "" {
		id = uuid.NewString()
	}
	e.session = e.server.Reset(id)
	info := map[string]any{
		"session_id":        id,
		"instruction":       e.session.Goal().Instruction,
		"available_actions": e.session.AvailableActions(),
	}
	return e.session.Observation(), info
}

// Step applies one action to the current session, resetting first if
// the caller never did.
func (e *TextEnv) Step(action string) (string, float64, bool, map[string]any, error) {
	if e.session == nil {
		e.Reset()
	}
	return e.session.Step(context.Background(), action)
}

// Observation returns the current page text.
func (e *TextEnv) Observation() string {
	if e.session == nil {
		e.Reset()
	}
	return e.session.Observation()
}

// Session returns the live session, nil before the first reset.
func (e *TextEnv) Session() *Session { return e.session }
