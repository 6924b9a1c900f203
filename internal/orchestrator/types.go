package orchestrator

// #region imports
import (
	"context"
	"time"

	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/insight"
	"github.com/adacomputing/ada-engine/internal/ledger"
	"github.com/adacomputing/ada-engine/internal/mechanics"
)

// #endregion

// #region report

// Report is the outcome of one Solve or Ask call.
type Report struct {
	ID        string                   `json:"id"`
	SessionID string                   `json:"sessionId,omitempty"`
	Query     string                   `json:"query"`
	Result    classifier.SearchResult  `json:"result"`
	Mechanics mechanics.AnalysisResult `json:"mechanics"`
	CreatedAt time.Time                `json:"createdAt"`
}

// #endregion

// #region store

// Store is the persistence the orchestrator needs. *ledger.Store satisfies it.
type Store interface {
	Record(ctx context.Context, e ledger.Entry) (ledger.Entry, error)
	PutLexicon(ctx context.Context, entity string, info classifier.LexicalInfo) error
	AppendMessages(ctx context.Context, sessionID string, msgs ...insight.Message) error
	Messages(ctx context.Context, sessionID string, limit int) ([]insight.Message, error)
}

// Compile-time check that the ledger satisfies Store.
var _ Store = (*ledger.Store)(nil)

// #endregion
