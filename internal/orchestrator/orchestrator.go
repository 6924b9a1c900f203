// Package orchestrator ties the classifier, the Ada engine, the ledger and
// metrics together behind the Solve and Ask operations.
package orchestrator

// #region imports
import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adacomputing/ada-engine/internal/ada"
	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/insight"
	"github.com/adacomputing/ada-engine/internal/ledger"
	"github.com/adacomputing/ada-engine/internal/mechanics"
	"github.com/adacomputing/ada-engine/internal/metrics"
)

// #endregion

// #region orchestrator-struct

// DefaultHistoryLimit caps the chat turns kept per session.
const DefaultHistoryLimit = 20

// DefaultSession stands in for a blank session ID.
const DefaultSession = "default"

// Config wires an Orchestrator. Store, Metrics and Logger are optional.
type Config struct {
	Classifier   *classifier.Classifier
	Engine       *ada.Engine
	Store        Store
	Metrics      *metrics.Metrics
	Logger       *slog.Logger
	HistoryLimit int
}

// Orchestrator is safe for concurrent use.
type Orchestrator struct {
	classifier   *classifier.Classifier
	engine       *ada.Engine
	store        Store
	metrics      *metrics.Metrics
	logger       *slog.Logger
	historyLimit int
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string][]insight.Message
}

// #endregion

// #region constructor

// New creates an orchestrator. A nil Classifier or Engine is replaced with
// one that has no provider.
func New(cfg Config) *Orchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := cfg.Classifier
	if c == nil {
		c = classifier.New(nil, classifier.WithLogger(logger))
	}
	e := cfg.Engine
	if e == nil {
		e = ada.New(nil, ada.WithLogger(logger))
	}
	limit := cfg.HistoryLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &Orchestrator{
		classifier:   c,
		engine:       e,
		store:        cfg.Store,
		metrics:      cfg.Metrics,
		logger:       logger.With("component", "orchestrator"),
		historyLimit: limit,
		now:          func() time.Time { return time.Now().UTC() },
		sessions:     make(map[string][]insight.Message),
	}
}

// #endregion

// #region solve

// Solve runs the tiered classifier and analyzes the resolved entity.
func (o *Orchestrator) Solve(ctx context.Context, query string) Report {
	result := o.classifier.Process(ctx, query)
	o.metrics.ObserveResult("solve", result)
	o.logger.Info("solve", "tier", result.Tier, "method", result.Method, "entity", result.Entity, "confidence", result.Confidence)

	rep := o.report("", query, result)
	o.record(ctx, ledger.KindSolve, &rep)
	return rep
}

// #endregion

// #region ask

// Ask answers query through the Ada engine with the session's chat history.
// Only successful answers extend the history.
func (o *Orchestrator) Ask(ctx context.Context, sessionID, query string, level ada.Complexity) Report {
	sessionID = sessionKey(sessionID)

	history := o.history(ctx, sessionID)
	result := o.engine.Process(ctx, query, history, level)
	o.metrics.ObserveResult("ask", result)
	o.logger.Info("ask", "session", sessionID, "method", result.Method, "state", result.ScoreVector.State,
		"status", result.Constraint.Status, "action", result.Action)

	if !result.Degraded() {
		turns := []insight.Message{
			{Role: insight.RoleUser, Text: query},
			{Role: insight.RoleModel, Text: result.InsightText},
		}
		o.appendHistory(sessionID, turns)
		if o.store != nil {
			if err := o.store.AppendMessages(ctx, sessionID, turns...); err != nil {
				o.storeFailed("append_messages", err)
			}
		}
		if result.LexicalInfo != nil && strings.TrimSpace(result.Entity) != "" && o.store != nil {
			if err := o.store.PutLexicon(ctx, result.Entity, *result.LexicalInfo); err != nil {
				o.storeFailed("put_lexicon", err)
			}
		}
	}

	rep := o.report(sessionID, query, result)
	o.record(ctx, ledger.KindAsk, &rep)
	return rep
}

// History returns a copy of the cached turns for sessionID.
func (o *Orchestrator) History(ctx context.Context, sessionID string) []insight.Message {
	sessionID = sessionKey(sessionID)
	return o.history(ctx, sessionID)
}

// ResetSession forgets the in-memory history of sessionID. Persisted turns
// are left in the store.
func (o *Orchestrator) ResetSession(sessionID string) {
	sessionID = sessionKey(sessionID)
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sessions[sessionID] = []insight.Message{}
}

// #endregion

// #region helpers

func sessionKey(id string) string {
	if id = strings.TrimSpace(id); id == "" {
		return DefaultSession
	}
	return id
}

func (o *Orchestrator) report(sessionID, query string, result classifier.SearchResult) Report {
	subject := strings.TrimSpace(result.Entity)
	if subject == "" {
		subject = "A"
	}
	return Report{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Query:     query,
		Result:    result,
		Mechanics: mechanics.Analyze(subject),
		CreatedAt: o.now(),
	}
}

// record writes rep to the store. Failures are logged only.
func (o *Orchestrator) record(ctx context.Context, kind ledger.Kind, rep *Report) {
	if o.store == nil {
		return
	}
	_, err := o.store.Record(ctx, ledger.Entry{
		ID:        rep.ID,
		Kind:      kind,
		SessionID: rep.SessionID,
		Query:     rep.Query,
		Result:    rep.Result,
		CreatedAt: rep.CreatedAt,
	})
	if err != nil {
		o.storeFailed("record", err)
	}
}

func (o *Orchestrator) storeFailed(op string, err error) {
	o.metrics.StoreError(op)
	o.logger.Warn("ledger write failed", "op", op, "error", err)
}

// history returns the cached turns, loading them from the store on first use.
func (o *Orchestrator) history(ctx context.Context, sessionID string) []insight.Message {
	o.mu.Lock()
	cached, ok := o.sessions[sessionID]
	o.mu.Unlock()
	if !ok {
		cached = o.loadHistory(ctx, sessionID)
		o.mu.Lock()
		if existing, raced := o.sessions[sessionID]; raced {
			cached = existing
		} else {
			o.sessions[sessionID] = cached
		}
		o.mu.Unlock()
	}
	out := make([]insight.Message, len(cached))
	copy(out, cached)
	return out
}

func (o *Orchestrator) loadHistory(ctx context.Context, sessionID string) []insight.Message {
	if o.store == nil {
		return []insight.Message{}
	}
	msgs, err := o.store.Messages(ctx, sessionID, o.historyLimit)
	if err != nil {
		o.logger.Warn("load session history failed", "session", sessionID, "error", err)
		return []insight.Message{}
	}
	if msgs == nil {
		msgs = []insight.Message{}
	}
	return msgs
}

func (o *Orchestrator) appendHistory(sessionID string, turns []insight.Message) {
	o.mu.Lock()
	defer o.mu.Unlock()
	h := append(o.sessions[sessionID], turns...)
	if len(h) > o.historyLimit {
		h = append([]insight.Message(nil), h[len(h)-o.historyLimit:]...)
	}
	o.sessions[sessionID] = h
}

// #endregion
