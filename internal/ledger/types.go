package ledger

// #region imports
import (
	"errors"
	"time"

	"github.com/adacomputing/ada-engine/internal/classifier"
)

// #endregion

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("ledger: not found")

// #region entry

// Kind names the operation that produced an entry.
type Kind string

const (
	KindSolve Kind = "solve"
	KindAsk   Kind = "ask"
)

// Entry is one resolved query.
type Entry struct {
	ID        string                  `json:"id"`
	Kind      Kind                    `json:"kind"`
	SessionID string                  `json:"sessionId,omitempty"`
	Query     string                  `json:"query"`
	Result    classifier.SearchResult `json:"result"`
	CreatedAt time.Time               `json:"createdAt"`
}

// #endregion

// #region lexicon

// LexiconEntry is the cached vocabulary for one entity.
type LexiconEntry struct {
	Entity    string                 `json:"entity"`
	Info      classifier.LexicalInfo `json:"info"`
	UpdatedAt time.Time              `json:"updatedAt"`
}

// #endregion
