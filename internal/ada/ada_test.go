package ada

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/governance"
	"github.com/adacomputing/ada-engine/internal/insight"
)

// #region fake-provider
type call struct {
	prompt string
	opts   insight.Options
}

// scripted answers the research call (Grounding=true) and the evaluation
// call separately.
type scripted struct {
	mu          sync.Mutex
	calls       []call
	research    insight.Response
	researchErr error
	eval        string
	evalErr     error
}

func (s *scripted) Generate(_ context.Context, prompt string, opts insight.Options) (insight.Response, error) {
	s.mu.Lock()
	s.calls = append(s.calls, call{prompt, opts})
	s.mu.Unlock()
	if opts.Grounding {
		return s.research, s.researchErr
	}
	if s.evalErr != nil {
		return insight.Response{}, s.evalErr
	}
	return insight.Response{Text: s.eval, Structured: []byte(s.eval)}, nil
}

func newEngine(p insight.Provider) *Engine {
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	return New(p,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithClock(func() time.Time { return fixed }),
	)
}

const parisEval = `{
	"correctness": 0.9, "misconception": 0.05,
	"entity": "Paris", "equation": "capital(France) = Paris",
	"definition": "The seat of French government.",
	"response": "Paris is the capital of France.",
	"synonyms": ["metropolis"], "antonyms": [],
	"action": "respond"
}`

// #endregion fake-provider

// #region process-tests
func TestProcessSuccess(t *testing.T) {
	src := insight.Source{URI: "https://example.org/paris", Title: "Paris"}
	p := &scripted{
		research: insight.Response{Text: "Paris remains the capital.", Sources: []insight.Source{src}},
		eval:     parisEval,
	}
	history := []insight.Message{{Role: insight.RoleUser, Text: "hi"}, {Role: insight.RoleModel, Text: "hello"}}

	got := newEngine(p).Process(context.Background(), "capital of France?", history, ComplexityTechnical)

	if got.Tier != 3 || got.Method != Method {
		t.Fatalf("tier %d method %q", got.Tier, got.Method)
	}
	if got.Shape != classifier.QueryShape("capital(France) = Paris") || got.Entity != "Paris" {
		t.Errorf("shape %q entity %q", got.Shape, got.Entity)
	}
	if got.Confidence != 0.9 {
		t.Errorf("confidence = %v", got.Confidence)
	}
	if got.Details != "Epistemic Resolution: CORRECT. Complexity: TECHNICAL." {
		t.Errorf("details = %q", got.Details)
	}
	if got.Action != governance.ActionRespond {
		t.Errorf("action = %q", got.Action)
	}
	wantLex := &classifier.LexicalInfo{
		Synonyms:   []string{"metropolis"},
		Antonyms:   []string{},
		Equation:   "capital(France) = Paris",
		Definition: "The seat of French government.",
	}
	if diff := cmp.Diff(wantLex, got.LexicalInfo); diff != "" {
		t.Errorf("lexical mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]insight.Source{src}, got.GroundingSources); diff != "" {
		t.Errorf("sources mismatch:\n%s", diff)
	}
	if len(got.TrajectoryPoints) != 21 || !got.IsClosed {
		t.Errorf("trajectory len %d closed %v", len(got.TrajectoryPoints), got.IsClosed)
	}

	if len(p.calls) != 2 {
		t.Fatalf("expected 2 provider calls, got %d", len(p.calls))
	}
	research, eval := p.calls[0], p.calls[1]
	if !research.opts.Grounding || research.opts.Schema != nil {
		t.Errorf("research call options = %+v", research.opts)
	}
	if eval.opts.Schema == nil || eval.opts.Grounding {
		t.Errorf("evaluation call options = %+v", eval.opts)
	}
	if diff := cmp.Diff(history, eval.opts.History); diff != "" {
		t.Errorf("history not forwarded:\n%s", diff)
	}
	if !strings.Contains(eval.prompt, "Paris remains the capital.") || !strings.Contains(eval.prompt, "COMPLEXITY LEVEL: TECHNICAL") ||
		!strings.Contains(eval.prompt, "Source: https://example.org/paris") {
		t.Errorf("evaluation prompt missing research or level:\n%s", eval.prompt)
	}
}

func TestProcessResearchFailureTolerated(t *testing.T) {
	p := &scripted{researchErr: errors.New("search offline"), eval: parisEval}
	got := newEngine(p).Process(context.Background(), "capital of France?", nil, ComplexityStandard)

	if got.Method != Method {
		t.Fatalf("expected a resolved result, got %+v", got)
	}
	if got.GroundingSources != nil {
		t.Errorf("sources should be absent: %+v", got.GroundingSources)
	}
	if !strings.Contains(p.calls[1].prompt, fallbackResearch) {
		t.Errorf("fallback research summary not used")
	}
}

func TestProcessEvaluationFailureDegrades(t *testing.T) {
	tests := []struct {
		name string
		p    insight.Provider
	}{
		{"transport", &scripted{research: insight.Response{Text: "r"}, evalErr: errors.New("503")}},
		{"missing fields", &scripted{research: insight.Response{Text: "r"}, eval: `{"correctness":0.5}`}},
		{"wrong types", &scripted{research: insight.Response{Text: "r"}, eval: strings.Replace(parisEval, `"correctness": 0.9`, `"correctness": "high"`, 1)}},
		{"nil provider", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := newEngine(tt.p).Process(context.Background(), "q", nil, ComplexityELI5)
			if diff := cmp.Diff(classifier.DegradedResult(), got); diff != "" {
				t.Errorf("expected degraded result (-want +got):\n%s", diff)
			}
		})
	}
}

func TestProcessGovernance(t *testing.T) {
	tests := []struct {
		name   string
		c, m   string
		action string
		state  governance.CognitiveState
		status governance.ConstraintStatus
		want   governance.Action
		conf   float64
	}{
		{"misconception", "0.2", "0.8", "CLARIFY", governance.StateMisconception, governance.StatusYellow, governance.ActionClarify, 0.2},
		{"fog", "0.3", "0.3", "DEFER", governance.StateFog, governance.StatusGreen, governance.ActionDefer, 0.3},
		{"unknown action", "0.5", "0.1", "SHRUG", governance.StatePartial, governance.StatusGreen, governance.ActionRespond, 0.5},
		{"clamped", "1.7", "-2", "respond", governance.StateCorrect, governance.StatusYellow, governance.ActionRespond, 1},
		{"finfr", "0.5", "0.99", "ESCALATE", governance.StateMisconception, governance.StatusFINFR, governance.ActionEscalate, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := `{"correctness":` + tt.c + `,"misconception":` + tt.m +
				`,"entity":"X","equation":"f(X) = ?","definition":"d","response":"r","synonyms":[],"antonyms":[],"action":"` + tt.action + `"}`
			got := newEngine(&scripted{research: insight.Response{Text: "r"}, eval: eval}).
				Process(context.Background(), "q", nil, ComplexityStandard)
			if got.ScoreVector.State != tt.state {
				t.Errorf("state = %s, want %s", got.ScoreVector.State, tt.state)
			}
			if got.Constraint.Status != tt.status {
				t.Errorf("status = %s, want %s", got.Constraint.Status, tt.status)
			}
			if got.Action != tt.want {
				t.Errorf("action = %s, want %s", got.Action, tt.want)
			}
			if got.Confidence != tt.conf {
				t.Errorf("confidence = %v, want %v", got.Confidence, tt.conf)
			}
		})
	}
}

func TestProcessUnknownComplexityDefaults(t *testing.T) {
	p := &scripted{research: insight.Response{Text: "r"}, eval: parisEval}
	got := newEngine(p).Process(context.Background(), "q", nil, Complexity("PIRATE"))
	if !strings.HasSuffix(got.Details, "Complexity: STANDARD.") {
		t.Errorf("details = %q", got.Details)
	}
}

func TestProcessNormalizesComplexity(t *testing.T) {
	p := &scripted{research: insight.Response{Text: "r"}, eval: parisEval}
	got := newEngine(p).Process(context.Background(), "q", nil, Complexity(" eli5 "))
	if got.Details != "Epistemic Resolution: CORRECT. Complexity: ELI5." {
		t.Errorf("details = %q", got.Details)
	}
	if len(p.calls) != 2 || !strings.Contains(p.calls[1].prompt, "COMPLEXITY LEVEL: ELI5.") {
		t.Errorf("evaluation prompt should carry the normalized level: %+v", p.calls)
	}
}

// #endregion process-tests

// #region trajectory-tests
func TestTrajectory(t *testing.T) {
	for _, m := range []float64{0, 0.25, 0.5, 1} {
		points, closed := Trajectory(m)
		if len(points) != 21 {
			t.Fatalf("m=%v: %d points", m, len(points))
		}
		if points[0] != (classifier.Point{0, 0}) {
			t.Errorf("m=%v: first point %v", m, points[0])
		}
		last := points[20]
		if math.Abs(last[0]-1) > 1e-12 || math.Abs(last[1]-1) > 1e-12 {
			t.Errorf("m=%v: last point %v", m, last)
		}
		if !closed {
			t.Errorf("m=%v: curve should close", m)
		}
	}
}

func TestCurveControlPoints(t *testing.T) {
	cp := Curve(0.5).ControlPoints()
	want := [][]float64{{0, 0}, {0.3, 0.9}, {0.7, 0.4}, {1, 1}}
	for i := range want {
		for j := range want[i] {
			if math.Abs(cp[i][j]-want[i][j]) > 1e-12 {
				t.Errorf("P%d[%d] = %v, want %v", i, j, cp[i][j], want[i][j])
			}
		}
	}
}

func TestParseComplexity(t *testing.T) {
	tests := []struct {
		in   string
		want Complexity
		ok   bool
	}{
		{"eli5", ComplexityELI5, true},
		{" Technical ", ComplexityTechnical, true},
		{"STANDARD", ComplexityStandard, true},
		{"", ComplexityStandard, false},
		{"expert", ComplexityStandard, false},
	}
	for _, tt := range tests {
		got, ok := ParseComplexity(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseComplexity(%q) = %s, %v; want %s, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

// #endregion trajectory-tests
