package ada

// #region imports
import (
	"fmt"
	"time"

	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region research

const researchSystem = "You are the grounding module. Fetch up-to-date data. " +
	"If a user's premise is outdated or wrong, find the correct current data to bridge the gap."

// fallbackResearch is used when the grounding call fails or returns nothing.
const fallbackResearch = "No direct research results. Relying on internal projection manifolds."

// maxCitedSources caps the grounding sources quoted in the evaluation prompt.
const maxCitedSources = 5

func researchPrompt(query string, now time.Time) string {
	return fmt.Sprintf(`Research task for Ada Engine:
Query: %q.
Context: Current real-world date is %s.
Identify current news, status of people, scientific facts, and political leaders.
If the user has a misconception (e.g. referencing an old leader), find the current equivalent or the fact that corrects it.`,
		query, now.Format(time.RFC1123))
}

// #endregion

// #region evaluation

func evaluationSystem(now time.Time) string {
	return fmt.Sprintf("You are Ada. You solve semantic equations. Never stop at an error; "+
		"always resolve the signal into a truthful trajectory. Current Date Context: %d.", now.Year())
}

var evaluationSchema = &insight.Schema{Fields: []insight.Field{
	{Name: "correctness", Type: insight.FieldNumber, Description: "0-1 probability the user's premise is correct"},
	{Name: "misconception", Type: insight.FieldNumber, Description: "0-1 probability the user's premise is a misconception"},
	{Name: "entity", Type: insight.FieldString, Description: "primary entity being discussed"},
	{Name: "equation", Type: insight.FieldString, Description: "e.g. capital(France) = Paris"},
	{Name: "definition", Type: insight.FieldString, Description: "a concise kinematic definition of the primary entity"},
	{Name: "response", Type: insight.FieldString, Description: "the full response, addressing misconceptions and solving the query"},
	{Name: "synonyms", Type: insight.FieldStringList},
	{Name: "antonyms", Type: insight.FieldStringList},
	{Name: "action", Type: insight.FieldString, Description: "one of RESPOND, ABSTAIN, CLARIFY, DEFER, ESCALATE"},
}}

func evaluationPrompt(query, research string, level Complexity, now time.Time) string {
	return fmt.Sprintf(`TEMPORAL CONTEXT: %s.
COMPLEXITY LEVEL: %s.
RESEARCH DATA: %s
SESSION HISTORY: supplied as the preceding conversation turns.

USER INPUT: %q

GOVERNANCE PROTOCOL:
1. Evaluate the input for "Signal Dissonance" (Misconceptions).
2. If Misconception Probability is high, DO NOT stop or abstain.
3. BRIDGE THE GAP: Address the user's premise, explain the shift to the current reality, and solve the underlying semantic equation.
4. If the user asks for synonyms or antonyms, or follows up on a previous point, use the SESSION HISTORY for context.
5. For ELI5: Use simple, warm metaphors and clear language.
6. For TECHNICAL: Use precise terminology and kinematic references.`,
		now.Format(time.RFC1123), level, research, query)
}

// evaluation is the structured payload of the second call.
type evaluation struct {
	Correctness   float64  `json:"correctness"`
	Misconception float64  `json:"misconception"`
	Entity        string   `json:"entity"`
	Equation      string   `json:"equation"`
	Definition    string   `json:"definition"`
	Response      string   `json:"response"`
	Synonyms      []string `json:"synonyms"`
	Antonyms      []string `json:"antonyms"`
	Action        string   `json:"action"`
}

// #endregion
