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
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"

	"github.com/webshop-bench/webshop/catalog"
	"github.com/webshop-bench/webshop/goal"
	"github.com/webshop-bench/webshop/internal/otellog"
	"github.com/webshop-bench/webshop/reward"
	"github.com/webshop-bench/webshop/telemetry"
)

// Session is one goal-bound shopping episode. Its mutable state is
// owned by a single logical caller; the server never mutates it.
type Session struct {
	id     string
	server *Server
	goal   *goal.Goal

	done        bool
	keywords    []string
	pageNum     int
	currentASIN string
	subPage     string
	selected    map[string]string

	actionCounts map[string]int

	reward    float64
	breakdown *reward.Breakdown

	page *Page
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Goal returns the goal this session is scored against.
func (s *Session) Goal() *goal.Goal { return s.goal }

// Done reports whether the session reached the terminal purchase.
func (s *Session) Done() bool { return s.done }

// Reward returns the total reward of the terminal purchase, zero before.
func (s *Session) Reward() float64 { return s.reward }

// Breakdown returns the reward breakdown of the terminal purchase, nil
// before.
func (s *Session) Breakdown() *reward.Breakdown { return s.breakdown }

// CurrentASIN returns the ASIN of the product in view, empty if none.
func (s *Session) CurrentASIN() string { return s.currentASIN }

// SelectedOptions returns a copy of the selected option values.
func (s *Session) SelectedOptions() map[string]string {
	out := make(map[string]string, len(s.selected))
	for k, v := range s.selected {
		out[k] = v
	}
	return out
}

// ActionCounts returns a copy of the per-action-name step counters.
func (s *Session) ActionCounts() map[string]int {
	out := make(map[string]int, len(s.actionCounts))
	for k, v := range s.actionCounts {
		out[k] = v
	}
	return out
}

// Page returns the current page model.
func (s *Session) Page() *Page { return s.page }

// Observation returns the text rendering of the current page.
func (s *Session) Observation() string { return s.page.Render() }

// AvailableActions describes what the current page accepts, for the
// step info map.
func (s *Session) AvailableActions() map[string]any {
	return map[string]any{
		"has_search_bar": s.page.HasSearchBar(),
		"clickables":     s.page.Clickables(),
	}
}

// Step applies one action and returns the Gym-style four-tuple. Reward
// is zero on every transition except the terminal purchase. Malformed
// and unrecognized actions are logged no-ops, never errors; a non-nil
// error always means the search backend failed.
func (s *Session) Step(ctx context.Context, action string) (observation string, rew float64, done bool, info map[string]any, err error) {
	ctx, span := telemetry.Tracer().Start(ctx, "webshop.step",
		trace.WithAttributes(
			attribute.String("webshop.session_id", s.id),
			attribute.String("webshop.action", action),
		))
	defer span.End()

	name, arg := ParseAction(action)
	s.actionCounts[name]++

	wasDone := s.done
	valid := false
	switch {
	case s.done:
		// Terminal sessions accept no further mutations.
		s.logInvalid(ctx, action, "session done")
	case name == "search" && arg != "":
		err = s.doSearch(ctx, arg)
		valid = err == nil
	case name == "click" && arg != "":
		valid, err = s.doClick(ctx, action, strings.ToLower(strings.TrimSpace(arg)))
	default:
		s.logInvalid(ctx, action, "unparseable")
	}
	if err != nil {
		return s.page.Render(), 0, s.done, nil, err
	}

	info = map[string]any{
		"valid_action":      valid,
		"available_actions": s.AvailableActions(),
	}
	if s.done {
		info["reward_breakdown"] = s.breakdown
	}
	// Reward is paid out exactly once, on the transition that completed
	// the purchase.
	rew = 0
	if s.done && !wasDone {
		rew = s.reward
	}
	return s.page.Render(), rew, s.done, info, nil
}

// doSearch clears the item context and selected options, stores the
// keywords and shows page one of the ranked results. Keyword case is
// preserved: the exact-match selectors compare against raw catalog
// values, and full-text analysis folds case on its own.
func (s *Session) doSearch(ctx context.Context, arg string) error {
	s.keywords = strings.Fields(arg)
	s.pageNum = 1
	s.currentASIN = ""
	s.subPage = ""
	s.selected = make(map[string]string)
	return s.showResults(ctx)
}

func (s *Session) doClick(ctx context.Context, action, arg string) (bool, error) {
	if !s.clickable(arg) {
		s.logInvalid(ctx, action, "not clickable on current page")
		return false, nil
	}

	switch arg {
	case strings.ToLower(ButtonBuyNow):
		return s.buyNow(ctx, action)

	case strings.ToLower(ButtonBackToSearch):
		s.keywords = nil
		s.pageNum = 1
		s.currentASIN = ""
		s.subPage = ""
		s.page = &Page{Kind: KindSearch, Instruction: s.goal.Instruction}
		return true, nil

	case strings.ToLower(ButtonNextPage):
		s.pageNum++
		return true, s.showResults(ctx)

	case strings.ToLower(ButtonPrevPage):
		return true, s.prevPage(ctx)
	}

	// Page context resolves the remaining clickables: product ids live
	// on results pages, sub-page names and option values on item pages.
	switch s.page.Kind {
	case KindResults:
		for _, p := range s.page.Results {
			if strings.EqualFold(p.ASIN, arg) {
				s.currentASIN = p.ASIN
				s.subPage = ""
				s.showItem(p)
				return true, nil
			}
		}
	case KindItem:
		switch arg {
		case strings.ToLower(SubPageDescription), strings.ToLower(SubPageFeatures), strings.ToLower(SubPageAttributes):
			s.subPage = canonicalSubPage(arg)
			s.page = &Page{
				Kind:        KindSubPage,
				Instruction: s.goal.Instruction,
				Product:     s.page.Product,
				SubPage:     s.subPage,
			}
			return true, nil
		}
		if name, ok := s.page.Product.OptionNameFor(arg); ok {
			s.selected[name] = arg
			s.showItem(s.page.Product)
			return true, nil
		}
	}

	s.logInvalid(ctx, action, "unrecognized clickable")
	return false, nil
}

// buyNow scores the purchase and moves the session to the terminal
// page. Buying with no product in view is a validation no-op.
func (s *Session) buyNow(ctx context.Context, action string) (bool, error) {
	if s.currentASIN == "" {
		s.logInvalid(ctx, action, "no product selected")
		return false, nil
	}
	product, err := s.server.catalog.Get(s.currentASIN)
	if err != nil {
		return false, err
	}
	price, err := s.server.catalog.Price(s.currentASIN)
	if err != nil {
		return false, err
	}
	total, breakdown, err := reward.Score(product, s.goal, price, s.selected)
	if err != nil {
		// A missing goal or product reference is a wiring bug, never a
		// zero score.
		return false, err
	}
	s.reward = total
	s.breakdown = breakdown
	s.done = true
	s.page = &Page{
		Kind:            KindDone,
		Product:         product,
		SelectedOptions: s.SelectedOptions(),
		Reward:          total,
		CompletionCode:  completionCode(s.id),
	}
	return true, nil
}

func (s *Session) prevPage(ctx context.Context) error {
	switch s.page.Kind {
	case KindResults:
		s.pageNum--
		return s.showResults(ctx)
	case KindItem:
		s.currentASIN = ""
		s.subPage = ""
		return s.showResults(ctx)
	case KindSubPage:
		s.subPage = ""
		s.showItem(s.page.Product)
	}
	return nil
}

// showResults queries the index for the session's keywords and renders
// the current page window.
func (s *Session) showResults(ctx context.Context) error {
	results, err := s.server.index.Search(ctx, s.keywords, s.server.searchReturnN)
	if err != nil {
		return err
	}
	window := s.server.productWindow
	totalPages := (len(results) + window - 1) / window
	if totalPages < 1 {
		totalPages = 1
	}
	if s.pageNum < 1 {
		s.pageNum = 1
	}
	if s.pageNum > totalPages {
		s.pageNum = totalPages
	}
	lo := (s.pageNum - 1) * window
	hi := min(lo+window, len(results))
	s.page = &Page{
		Kind:         KindResults,
		Instruction:  s.goal.Instruction,
		Keywords:     s.keywords,
		PageNumber:   s.pageNum,
		TotalPages:   totalPages,
		TotalResults: len(results),
		Results:      results[lo:hi],
	}
	return nil
}

func (s *Session) showItem(p *catalog.Product) {
	s.page = &Page{
		Kind:            KindItem,
		Instruction:     s.goal.Instruction,
		Product:         p,
		SelectedOptions: s.SelectedOptions(),
	}
}

func (s *Session) clickable(arg string) bool {
	for _, c := range s.page.Clickables() {
		if strings.EqualFold(c, arg) {
			return true
		}
	}
	return false
}

func canonicalSubPage(arg string) string {
	switch arg {
	case strings.ToLower(SubPageDescription):
		return SubPageDescription
	case strings.ToLower(SubPageFeatures):
		return SubPageFeatures
	default:
		return SubPageAttributes
	}
}

func (s *Session) logInvalid(ctx context.Context, action, why string) {
	otellog.Warn(ctx, "env.invalid_action",
		log.String("session_id", s.id),
		log.String("action", action),
		log.String("reason", why),
	)
}
