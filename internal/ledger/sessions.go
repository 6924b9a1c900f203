package ledger

// #region imports
import (
	"context"
	"fmt"
	"time"

	"github.com/adacomputing/ada-engine/internal/insight"
)

// #endregion

// #region sessions

// AppendMessages stores chat turns for sessionID in order.
func (s *Store) AppendMessages(ctx context.Context, sessionID string, msgs ...insight.Message) error {
	if len(msgs) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	now := s.now().Format(time.RFC3339Nano)
	for _, m := range msgs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO session_messages (session_id, role, text, created_at) VALUES (?, ?, ?, ?)`,
			sessionID, string(m.Role), m.Text, now,
		); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Messages returns the last limit turns of sessionID, oldest first.
func (s *Store) Messages(ctx context.Context, sessionID string, limit int) ([]insight.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT role, text FROM (
			SELECT id, role, text FROM session_messages WHERE session_id = ? ORDER BY id DESC LIMIT ?
		 ) ORDER BY id ASC`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var out []insight.Message
	for rows.Next() {
		var role, text string
		if err := rows.Scan(&role, &text); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, insight.Message{Role: insight.Role(role), Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return out, nil
}

// #endregion sessions
