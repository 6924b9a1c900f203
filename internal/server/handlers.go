package server

// #region imports
import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/adacomputing/ada-engine/internal/ada"
	"github.com/adacomputing/ada-engine/internal/classifier"
	"github.com/adacomputing/ada-engine/internal/glyph"
	"github.com/adacomputing/ada-engine/internal/ledger"
	"github.com/adacomputing/ada-engine/internal/mechanics"
)

// #endregion

// maxQueryLen bounds the query accepted by /solve, /ask and the console.
const maxQueryLen = 4096

// #region request-types

type solveRequest struct {
	Query string `json:"query"`
}

type askRequest struct {
	SessionID  string `json:"sessionId"`
	Query      string `json:"query"`
	Complexity string `json:"complexity"`
}

type trajectoryResponse struct {
	Misconception float64            `json:"misconception"`
	ControlPoints [][]float64        `json:"controlPoints"`
	Points        []classifier.Point `json:"points"`
	IsClosed      bool               `json:"isClosed"`
}

// #endregion

// #region validation

func validateQuery(q string) error {
	if strings.TrimSpace(q) == "" {
		return errors.New("query is required")
	}
	if len(q) > maxQueryLen {
		return errors.New("query is too long")
	}
	return nil
}

// parseLevel maps a blank level to STANDARD and rejects unknown ones.
func parseLevel(s string) (ada.Complexity, error) {
	if strings.TrimSpace(s) == "" {
		return ada.ComplexityStandard, nil
	}
	level, ok := ada.ParseComplexity(s)
	if !ok {
		return "", errors.New("complexity must be ELI5, STANDARD or TECHNICAL")
	}
	return level, nil
}

// #endregion

// #region engine-handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
	})
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateQuery(req.Query); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, s.orch.Solve(r.Context(), req.Query))
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validateQuery(req.Query); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	level, err := parseLevel(req.Complexity)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSONResponse(w, http.StatusOK, s.orch.Ask(r.Context(), req.SessionID, req.Query, level))
}

func (s *Server) handleSessionHistory(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"sessionId": id,
		"messages":  s.orch.History(r.Context(), id),
	})
}

func (s *Server) handleResetSession(w http.ResponseWriter, r *http.Request) {
	s.orch.ResetSession(mux.Vars(r)["id"])
	w.WriteHeader(http.StatusNoContent)
}

// #endregion

// #region analysis-handlers

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, mechanics.Analyze(mux.Vars(r)["word"]))
}

func (s *Server) handleGlyphs(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, glyph.All())
}

func (s *Server) handleTrajectory(w http.ResponseWriter, r *http.Request) {
	m := 0.0
	if raw := r.URL.Query().Get("m"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			writeErrorResponse(w, http.StatusBadRequest, "m must be a number in [0, 1]")
			return
		}
		m = v
	}
	cps := ada.Curve(m).ControlPoints()
	controls := make([][]float64, len(cps))
	for i, cp := range cps {
		controls[i] = cp
	}
	points, closed := ada.Trajectory(m)
	writeJSONResponse(w, http.StatusOK, trajectoryResponse{
		Misconception: m,
		ControlPoints: controls,
		Points:        points,
		IsClosed:      closed,
	})
}

// #endregion

// #region ledger-handlers

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "ledger not configured")
		return
	}
	entries, err := s.ledger.Recent(r.Context(), parseLimit(r, 20))
	if err != nil {
		s.logger.Error("list history failed", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "failed to list history")
		return
	}
	if entries == nil {
		entries = []ledger.Entry{}
	}
	writeJSONResponse(w, http.StatusOK, entries)
}

func (s *Server) handleHistoryEntry(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "ledger not configured")
		return
	}
	entry, err := s.ledger.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, ledger.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "entry not found")
		return
	}
	if err != nil {
		s.logger.Error("get history entry failed", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "failed to load entry")
		return
	}
	writeJSONResponse(w, http.StatusOK, entry)
}

func (s *Server) handleLexicon(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "ledger not configured")
		return
	}
	entries, err := s.ledger.ListLexicon(r.Context(), parseLimit(r, 50))
	if err != nil {
		s.logger.Error("list lexicon failed", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "failed to list lexicon")
		return
	}
	if entries == nil {
		entries = []ledger.LexiconEntry{}
	}
	writeJSONResponse(w, http.StatusOK, entries)
}

func (s *Server) handleLexiconEntry(w http.ResponseWriter, r *http.Request) {
	if s.ledger == nil {
		writeErrorResponse(w, http.StatusServiceUnavailable, "ledger not configured")
		return
	}
	entry, err := s.ledger.Lexicon(r.Context(), mux.Vars(r)["entity"])
	if errors.Is(err, ledger.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, "entity not found")
		return
	}
	if err != nil {
		s.logger.Error("get lexicon failed", "error", err)
		writeErrorResponse(w, http.StatusInternalServerError, "failed to load lexicon")
		return
	}
	writeJSONResponse(w, http.StatusOK, entry)
}

// #endregion
