package server

// #region imports
import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/adacomputing/ada-engine/internal/mechanics"
	"github.com/adacomputing/ada-engine/internal/orchestrator"
)

// #endregion

// #region console-types

// consoleRequest is one frame sent by a console client. Op is solve, ask or
// analyze; ask uses SessionID and Complexity, analyze reads Query as a word.
type consoleRequest struct {
	Op         string `json:"op"`
	Query      string `json:"query"`
	SessionID  string `json:"sessionId,omitempty"`
	Complexity string `json:"complexity,omitempty"`
}

// consoleReply answers one request. Exactly one of Report, Analysis and
// Error is set.
type consoleReply struct {
	Op       string                    `json:"op"`
	Report   *orchestrator.Report      `json:"report,omitempty"`
	Analysis *mechanics.AnalysisResult `json:"analysis,omitempty"`
	Error    string                    `json:"error,omitempty"`
}

// #endregion

// #region console

// handleConsole upgrades to a websocket and answers request frames in order
// until the client disconnects.
func (s *Server) handleConsole(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("console upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	s.logger.Info("console connected", "remote", r.RemoteAddr)

	for {
		var req consoleRequest
		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("console read ended", "error", err)
			}
			return
		}
		if err := conn.WriteJSON(s.consoleAnswer(r, req)); err != nil {
			s.logger.Debug("console write failed", "error", err)
			return
		}
	}
}

func (s *Server) consoleAnswer(r *http.Request, req consoleRequest) consoleReply {
	op := strings.ToLower(strings.TrimSpace(req.Op))
	reply := consoleReply{Op: op}
	fail := func(err error) consoleReply {
		reply.Error = err.Error()
		return reply
	}

	switch op {
	case "solve":
		if err := validateQuery(req.Query); err != nil {
			return fail(err)
		}
		rep := s.orch.Solve(r.Context(), req.Query)
		reply.Report = &rep
	case "ask":
		if err := validateQuery(req.Query); err != nil {
			return fail(err)
		}
		level, err := parseLevel(req.Complexity)
		if err != nil {
			return fail(err)
		}
		rep := s.orch.Ask(r.Context(), req.SessionID, req.Query, level)
		reply.Report = &rep
	case "analyze":
		a := mechanics.Analyze(req.Query)
		reply.Analysis = &a
	default:
		return fail(errors.New("op must be solve, ask or analyze"))
	}
	return reply
}

// #endregion
