package ledger

// #region imports
import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/adacomputing/ada-engine/internal/classifier"
)

// #endregion

// #region lexicon

// PutLexicon caches info for entity, replacing any earlier value.
// Entity names are matched case-insensitively.
func (s *Store) PutLexicon(ctx context.Context, entity string, info classifier.LexicalInfo) error {
	entity = strings.TrimSpace(entity)
	if entity == "" {
		return fmt.Errorf("lexicon: entity is required")
	}
	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("marshal lexicon: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO lexicon (entity, info_json, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(entity) DO UPDATE SET info_json = excluded.info_json, updated_at = excluded.updated_at`,
		entity, string(raw), s.now().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("upsert lexicon: %w", err)
	}
	return nil
}

// Lexicon returns the cached info for entity, or ErrNotFound.
func (s *Store) Lexicon(ctx context.Context, entity string) (LexiconEntry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT entity, info_json, updated_at FROM lexicon WHERE entity = ?`, strings.TrimSpace(entity))
	le, err := scanLexicon(row)
	if errors.Is(err, sql.ErrNoRows) {
		return LexiconEntry{}, fmt.Errorf("lexicon %q: %w", entity, ErrNotFound)
	}
	return le, err
}

// ListLexicon returns up to limit entries, most recently updated first.
func (s *Store) ListLexicon(ctx context.Context, limit int) ([]LexiconEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT entity, info_json, updated_at FROM lexicon ORDER BY updated_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query lexicon: %w", err)
	}
	defer rows.Close()

	var out []LexiconEntry
	for rows.Next() {
		le, err := scanLexicon(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, le)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lexicon: %w", err)
	}
	return out, nil
}

func scanLexicon(r scanner) (LexiconEntry, error) {
	var le LexiconEntry
	var raw, updated string
	if err := r.Scan(&le.Entity, &raw, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return LexiconEntry{}, err
		}
		return LexiconEntry{}, fmt.Errorf("scan lexicon: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &le.Info); err != nil {
		return LexiconEntry{}, fmt.Errorf("unmarshal lexicon %q: %w", le.Entity, err)
	}
	le.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return le, nil
}

// #endregion lexicon
