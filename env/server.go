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

// Package env drives goal-bound shopping sessions against an in-memory
// simulated site. The Server owns the shared read-only resources
// (catalog, search index, goal set); each Session owns its own mutable
// state and is safe under one-writer-per-session access.
package env

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/webshop-bench/webshop/catalog"
	"github.com/webshop-bench/webshop/goal"
	"github.com/webshop-bench/webshop/search"
)

// Defaults for result ranking and pagination.
const (
	DefaultSearchReturnN = 50
	DefaultProductWindow = 10
)

type serverConfig struct {
	searchReturnN int
	productWindow int
	rand          *rand.Rand
}

// ServerOption configures a Server.
type ServerOption func(*serverConfig)

// WithSearchReturnN sets how many results a search retrieves.
func WithSearchReturnN(n int) ServerOption {
	return func(cfg *serverConfig) { cfg.searchReturnN = n }
}

// WithProductWindow sets the results-page size.
func WithProductWindow(n int) ServerOption {
	return func(cfg *serverConfig) { cfg.productWindow = n }
}

// WithRand sets the random source for goal sampling on reset.
func WithRand(r *rand.Rand) ServerOption {
	return func(cfg *serverConfig) { cfg.rand = r }
}

// Server is the synthetic shopping site. It replaces a real HTTP round
// trip: sessions talk to it directly. All shared resources are read-only
// after construction.
type Server struct {
	catalog *catalog.Catalog
	index   *search.Index
	goals   []*goal.Goal
	cum     []float64

	searchReturnN int
	productWindow int

	mu       sync.Mutex // guards rng and sessions
	rng      *rand.Rand
	sessions map[string]*Session
}

// NewServer wires the catalog, search index and goal set into a server.
func NewServer(c *catalog.Catalog, ix *search.Index, goals []*goal.Goal, opts ...ServerOption) (*Server, error) {
	if len(goals) == 0 {
		return nil, ErrNoGoals
	}
	cfg := &serverConfig{
		searchReturnN: DefaultSearchReturnN,
		productWindow: DefaultProductWindow,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.rand == nil {
		cfg.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Server{
		catalog:       c,
		index:         ix,
		goals:         goals,
		cum:           goal.CumulativeWeights(goals),
		searchReturnN: cfg.searchReturnN,
		productWindow: cfg.productWindow,
		rng:           cfg.rand,
		sessions:      make(map[string]*Session),
	}, nil
}

// Goals returns the server's goal set.
func (sv *Server) Goals() []*goal.Goal { return sv.goals }

// Search queries the shared index directly, outside any session.
func (sv *Server) Search(ctx context.Context, keywords []string, topN int) ([]*catalog.Product, error) {
	return sv.index.Search(ctx, keywords, topN)
}

// Catalog returns the shared catalog.
func (sv *Server) Catalog() *catalog.Catalog { return sv.catalog }

// Reset creates a fresh session under the id, replacing any previous
// session with the same id. A numeric id pins the goal at that index
// (mod the goal count); any other id samples a goal by weight.
func (sv *Server) Reset(sessionID string) *Session {
	g := sv.assignGoal(sessionID)
	s := &Session{
		id:           sessionID,
		server:       sv,
		goal:         g,
		selected:     make(map[string]string),
		actionCounts: make(map[string]int),
		page:         &Page{Kind: KindSearch, Instruction: g.Instruction},
	}
	sv.mu.Lock()
	sv.sessions[sessionID] = s
	sv.mu.Unlock()
	return s
}

// Session returns the live session with the id, or ErrSessionNotFound.
func (sv *Server) Session(sessionID string) (*Session, error) {
	sv.mu.Lock()
	defer sv.mu.Unlock()
	s, ok := sv.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSessionNotFound, sessionID)
	}
	return s, nil
}

func (sv *Server) assignGoal(sessionID string) *goal.Goal {
	if idx, err := strconv.Atoi(sessionID); err == nil && idx >= 0 {
		return sv.goals[idx%len(sv.goals)]
	}
	sv.mu.Lock()
	defer sv.mu.Unlock()
	return sv.goals[goal.Sample(sv.cum, sv.rng)]
}
