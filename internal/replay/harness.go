// Package replay re-runs recorded queries through the classifier and reports
// drift against their expected outcome.
package replay

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/adacomputing/ada-engine/internal/classifier"
)

// #region types

// Resolver is the part of the classifier the harness drives.
type Resolver interface {
	Process(ctx context.Context, query string) classifier.SearchResult
}

// CaseResult captures the outcome of replaying one case.
type CaseResult struct {
	ID         string                  `json:"id"`
	Query      string                  `json:"query"`
	Result     classifier.SearchResult `json:"result"`
	Passed     bool                    `json:"passed"`
	Mismatches []string                `json:"mismatches,omitempty"`
}

// Summary provides aggregate stats from a replay run.
type Summary struct {
	Total    int         `json:"total"`
	Passed   int         `json:"passed"`
	Failed   int         `json:"failed"`
	Degraded int         `json:"degraded"`
	ByTier   map[int]int `json:"byTier"`
}

// #endregion types

// #region replay

// Replay resolves every case with at most workers concurrent calls and
// returns results in case order. workers <= 0 means one at a time. Cases not
// started before ctx is done are omitted.
func Replay(ctx context.Context, r Resolver, cases []FixtureCase, workers int) []CaseResult {
	if workers <= 0 {
		workers = 1
	}
	results := make([]CaseResult, len(cases))
	done := make([]bool, len(cases))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range cases {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			c := cases[i]
			got := r.Process(gctx, c.Query)
			mismatches := Check(c.Expected, got)
			results[i] = CaseResult{
				ID:         c.ID,
				Query:      c.Query,
				Result:     got,
				Passed:     len(mismatches) == 0,
				Mismatches: mismatches,
			}
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	out := results[:0]
	for i := range results {
		if done[i] {
			out = append(out, results[i])
		}
	}
	return out
}

// Check lists how got differs from exp. An empty list means a match.
func Check(exp Expectation, got classifier.SearchResult) []string {
	var out []string
	if got.Tier != exp.Tier {
		out = append(out, fmt.Sprintf("tier: want %d, got %d", exp.Tier, got.Tier))
	}
	if got.Degraded() != exp.Degraded {
		out = append(out, fmt.Sprintf("degraded: want %v, got %v", exp.Degraded, got.Degraded()))
	}
	if exp.Shape != "" && got.Shape != exp.Shape {
		out = append(out, fmt.Sprintf("shape: want %q, got %q", exp.Shape, got.Shape))
	}
	if exp.Entity != "" && got.Entity != exp.Entity {
		out = append(out, fmt.Sprintf("entity: want %q, got %q", exp.Entity, got.Entity))
	}
	if exp.Method != "" && got.Method != exp.Method {
		out = append(out, fmt.Sprintf("method: want %q, got %q", exp.Method, got.Method))
	}
	return out
}

// Summarize computes aggregate stats from replay results.
func Summarize(results []CaseResult) Summary {
	s := Summary{Total: len(results), ByTier: make(map[int]int)}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		if r.Result.Degraded() {
			s.Degraded++
		}
		s.ByTier[r.Result.Tier]++
	}
	return s
}

// #endregion replay
