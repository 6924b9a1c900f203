package governance

// #region cognitive-state
// CognitiveState labels the epistemic state behind a result.
type CognitiveState string

const (
	StateMisconception CognitiveState = "MISCONCEPTION"
	StateFog           CognitiveState = "FOG"
	StateCorrect       CognitiveState = "CORRECT"
	StatePartial       CognitiveState = "PARTIAL"
)

// #endregion cognitive-state

// #region constraint-status
// ConstraintStatus is the traffic light derived from the constraint ratio.
type ConstraintStatus string

const (
	StatusGreen  ConstraintStatus = "GREEN"
	StatusYellow ConstraintStatus = "YELLOW"
	StatusRed    ConstraintStatus = "RED"
	StatusFINFR  ConstraintStatus = "FINFR" // ground collapsed, ratio undefined
)

// #endregion constraint-status

// #region action
// Action tells the presentation layer what to do with a result.
type Action string

const (
	ActionRespond  Action = "RESPOND"
	ActionAbstain  Action = "ABSTAIN"
	ActionClarify  Action = "CLARIFY"
	ActionDefer    Action = "DEFER"
	ActionEscalate Action = "ESCALATE"
)

// #endregion action

// #region score-vector
// ScoreVector carries correctness (C), misconception (M), fog (F) and
// knowledge (K) for a result.
type ScoreVector struct {
	C     float64        `json:"c"`
	M     float64        `json:"m"`
	F     float64        `json:"f"`
	K     float64        `json:"k"`
	State CognitiveState `json:"state"`
}

// Constraint is the status and ratio of correctness against ground.
type Constraint struct {
	Status ConstraintStatus `json:"status"`
	Ratio  float64          `json:"ratio"`
}

// #endregion score-vector
