package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/ledger"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string        `json:"description"`
	Cases       []FixtureCase `json:"cases"`
}

// FixtureCase is one recorded query and the outcome it must reproduce.
type FixtureCase struct {
	ID       string      `json:"id"`
	Query    string      `json:"query"`
	Expected Expectation `json:"expected"`
}

// Expectation lists the fields a replayed result is checked against. Zero
// values for Shape, Entity and Method are not checked.
type Expectation struct {
	Tier     int                   `json:"tier"`
	Shape    classifier.QueryShape `json:"shape,omitempty"`
	Entity   string                `json:"entity,omitempty"`
	Method   string                `json:"method,omitempty"`
	Degraded bool                  `json:"degraded,omitempty"`
}

// #endregion fixture-types

// #region fixture-io

// LoadFixture reads and parses a JSON fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// WriteFixture writes f as indented JSON.
func WriteFixture(path string, f Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write fixture %s: %w", path, err)
	}
	return nil
}

// #endregion fixture-io

// #region fixture-export

// FromEntries builds a fixture from solve entries in the ledger. entries are
// expected newest first, as returned by ledger.Store.Recent; the fixture
// lists them oldest first. Ask entries are skipped since their outcome
// depends on the conversation.
func FromEntries(description string, entries []ledger.Entry) Fixture {
	f := Fixture{Description: description, Cases: []FixtureCase{}}
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		if e.Kind != ledger.KindSolve {
			continue
		}
		f.Cases = append(f.Cases, FixtureCase{
			ID:       e.ID,
			Query:    e.Query,
			Expected: ExpectationOf(e.Result),
		})
	}
	return f
}

// ExpectationOf captures the checked fields of r.
func ExpectationOf(r classifier.SearchResult) Expectation {
	if r.Degraded() {
		return Expectation{Tier: r.Tier, Degraded: true}
	}
	return Expectation{
		Tier:   r.Tier,
		Shape:  r.Shape,
		Entity: r.Entity,
		Method: r.Method,
	}
}

// #endregion fixture-export
