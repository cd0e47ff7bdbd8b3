package store

import (
	"context"
	"regexp"
	"strings"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
)

// ftsStopWords is a small English stopword set; content tokens shorter than
// this add little discriminating power to an FTS5 MATCH query.
var ftsStopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "of": true,
	"to": true, "in": true, "is": true, "are": true, "for": true, "with": true,
}

var wordRegex = regexp.MustCompile(`[\p{L}\p{N}]+`)

// NormalizeQuery lowercases (preserving CJK/Hangul), strips punctuation,
// drops stopwords, and quotes each surviving token so it is a safe FTS5
// MATCH operand; the final token of length >= 2 gets a prefix wildcard.
// Mirrors spec section 4.3's TextSearcher preprocessing contract.
func NormalizeQuery(raw string) string {
	words := wordRegex.FindAllString(strings.ToLower(raw), -1)
	var tokens []string
	for _, w := range words {
		if ftsStopWords[w] {
			continue
		}
		tokens = append(tokens, w)
	}
	if len(tokens) == 0 {
		return ""
	}
	for i, t := range tokens {
		quoted := `"` + strings.ReplaceAll(t, `"`, `""`) + `"`
		if i == len(tokens)-1 && runeLen(t) >= 2 {
			quoted += "*"
		}
		tokens[i] = quoted
	}
	return strings.Join(tokens, " ")
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// Index inserts or replaces a document's FTS row. FTS5 has no native
// REPLACE, so the delete-then-insert pattern from the teacher's
// SQLiteBM25Index.Index is used.
func (s *SQLiteStore) Index(ctx context.Context, memoryID, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mnerr.Busy(mnerr.ErrCodeStoreBusy, "beginning transaction", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM memory_item_fts WHERE doc_id = ?`, memoryID); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "clearing fts row", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO memory_item_fts(doc_id, content) VALUES (?, ?)`, memoryID, content); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "indexing content", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO fts_doc_ids(doc_id) VALUES (?)`, memoryID); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "tracking doc id", err)
	}
	return commitOrBusy(tx)
}

// Delete removes a document from the FTS index.
func (s *SQLiteStore) Delete(ctx context.Context, memoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM memory_item_fts WHERE doc_id = ?`, memoryID); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "removing fts row", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM fts_doc_ids WHERE doc_id = ?`, memoryID); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "removing doc id", err)
	}
	return nil
}

// Search runs a BM25-like FTS5 query. On an empty normalized query (spec
// section 4.3), match-all is substituted and the result is sorted by
// recency, since FTS5 has no meaningful bm25() for match-all.
func (s *SQLiteStore) Search(ctx context.Context, query string, limit int) ([]TextHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	normalized := NormalizeQuery(query)
	if normalized == "" {
		rows, err := s.db.QueryContext(ctx, `SELECT f.doc_id FROM fts_doc_ids f
			JOIN memory_item m ON m.id = f.doc_id
			ORDER BY m.created_at DESC LIMIT ?`, limit)
		if err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeSearchFailed, "listing all docs", err)
		}
		defer rows.Close()
		var hits []TextHit
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				return nil, mnerr.Internal(mnerr.ErrCodeSearchFailed, "scanning doc id", err)
			}
			hits = append(hits, TextHit{MemoryID: id, Score: 0})
		}
		return hits, rows.Err()
	}

	rows, err := s.db.QueryContext(ctx, `SELECT doc_id, bm25(memory_item_fts) AS score FROM memory_item_fts
		WHERE memory_item_fts MATCH ? ORDER BY score LIMIT ?`, normalized, limit)
	if err != nil {
		// FTS5 syntax errors on pathological input degrade to no results
		// rather than failing the request.
		return []TextHit{}, nil
	}
	defer rows.Close()

	var hits []TextHit
	for rows.Next() {
		var id string
		var score float64
		if err := rows.Scan(&id, &score); err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeSearchFailed, "scanning search hit", err)
		}
		// bm25() returns negative values where more negative is a better
		// match; negate so higher is better throughout the ranker.
		hits = append(hits, TextHit{MemoryID: id, Score: -score})
	}
	return hits, rows.Err()
}
