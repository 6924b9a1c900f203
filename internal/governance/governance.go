// Package governance derives epistemic state and constraint status from
// correctness and misconception scores.
package governance

import (
	"math"
	"strings"
)

// #region thresholds
const (
	misconceptionFloor = 0.4
	fogThreshold       = 0.5
	correctThreshold   = 0.7

	minGround   = 0.01
	finfrGround = 0.05
	redRatio    = 1.2
	yellowRatio = 0.8
)

// #endregion thresholds

// #region score
// Score derives the score vector and constraint for correctness c and
// misconception m. Pure; inputs are used as given.
func Score(c, m float64) (ScoreVector, Constraint) {
	k := math.Max(c, m)
	f := 1 - k

	state := StatePartial
	switch {
	case m > c && m > misconceptionFloor:
		state = StateMisconception
	case f > fogThreshold:
		state = StateFog
	case c > correctThreshold:
		state = StateCorrect
	}

	ground := math.Max(minGround, 1-m)
	ratio := c / ground

	status := StatusGreen
	switch {
	case ground <= finfrGround:
		status = StatusFINFR
	case ratio > redRatio:
		status = StatusRed
	case ratio >= yellowRatio:
		status = StatusYellow
	}

	return ScoreVector{C: c, M: m, F: f, K: k, State: state},
		Constraint{Status: status, Ratio: ratio}
}

// #endregion score

// #region helpers
// Clamp01 limits v to [0,1]. NaN becomes 0.
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ParseAction maps a model-supplied action name onto Action.
// ok is false for unrecognized names.
func ParseAction(s string) (Action, bool) {
	switch a := Action(strings.ToUpper(strings.TrimSpace(s))); a {
	case ActionRespond, ActionAbstain, ActionClarify, ActionDefer, ActionEscalate:
		return a, true
	}
	return "", false
}

// #endregion helpers
