package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
)

// SQLiteStore is the durable Store implementation: one WAL-mode SQLite file
// holding memory_item, feedback_event, memory_embedding (blob), and
// review_schedule, guarded by a single writer connection and an advisory
// file lock so a second process can't corrupt the WAL concurrently.
//
// Grounded on the teacher's internal/store/sqlite_bm25.go connection and
// pragma setup; generalized from one FTS table to the full memory schema.
type SQLiteStore struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
	lock *flock.Flock
}

// NewSQLiteStore opens (creating if absent) the store at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeInternal, "creating store directory", err)
		}
	}

	fileLock := flock.New(path + ".lock")
	locked, err := fileLock.TryLock()
	if err != nil {
		return nil, mnerr.Busy(mnerr.ErrCodeStoreBusy, "acquiring store lock", err)
	}
	if !locked {
		return nil, mnerr.New(mnerr.ErrCodeStoreBusy, "store is locked by another process", nil)
	}

	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		_ = fileLock.Unlock()
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "opening store", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db, path: path, lock: fileLock}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		_ = fileLock.Unlock()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS memory_item (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			content TEXT NOT NULL,
			importance REAL NOT NULL,
			privacy_scope TEXT NOT NULL,
			created_at INTEGER NOT NULL,
			last_accessed INTEGER,
			pinned INTEGER NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '[]',
			source TEXT NOT NULL DEFAULT '',
			view_count INTEGER NOT NULL DEFAULT 0,
			cite_count INTEGER NOT NULL DEFAULT 0,
			edit_count INTEGER NOT NULL DEFAULT 0,
			deleted INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_memory_item_type ON memory_item(type)`,
		`CREATE INDEX IF NOT EXISTS idx_memory_item_deleted ON memory_item(deleted)`,
		`CREATE VIRTUAL TABLE IF NOT EXISTS memory_item_fts USING fts5(
			doc_id UNINDEXED, content, tokenize='unicode61'
		)`,
		`CREATE TABLE IF NOT EXISTS fts_doc_ids (doc_id TEXT PRIMARY KEY)`,
		`CREATE TABLE IF NOT EXISTS memory_embedding (
			memory_id TEXT PRIMARY KEY,
			vector BLOB NOT NULL,
			dimension INTEGER NOT NULL,
			model TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS feedback_event (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			memory_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			score REAL NOT NULL,
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_memory_id ON feedback_event(memory_id)`,
		`CREATE TABLE IF NOT EXISTS review_schedule (
			memory_id TEXT PRIMARY KEY,
			interval_days REAL NOT NULL,
			last_reviewed_at INTEGER NOT NULL,
			next_review_at INTEGER NOT NULL,
			last_recall_probability REAL NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return mnerr.Internal(mnerr.ErrCodeStoreCorrupt, "initializing schema", err)
		}
	}
	return nil
}

func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	b, _ := json.Marshal(tags)
	return string(b)
}

func decodeTags(raw string) []string {
	var tags []string
	_ = json.Unmarshal([]byte(raw), &tags)
	return tags
}

func unixOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Unix()
}

// CreateMemory writes the row and its FTS shadow in one transaction.
func (s *SQLiteStore) CreateMemory(ctx context.Context, m *Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mnerr.Busy(mnerr.ErrCodeStoreBusy, "beginning transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO memory_item
		(id, type, content, importance, privacy_scope, created_at, last_accessed, pinned, tags, source, view_count, cite_count, edit_count, deleted)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		m.ID, string(m.Type), m.Content, ClampImportance(m.Importance), string(m.PrivacyScope),
		m.CreatedAt.Unix(), unixOrNil(m.LastAccessed), boolToInt(m.Pinned), encodeTags(m.Tags), m.Source,
		m.ViewCount, m.CiteCount, m.EditCount, boolToInt(m.Deleted))
	if err != nil {
		return mnerr.Internal(mnerr.ErrCodeInternal, "inserting memory", err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO memory_item_fts(doc_id, content) VALUES (?, ?)`, m.ID, m.Content); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "indexing memory", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO fts_doc_ids(doc_id) VALUES (?)`, m.ID); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "tracking fts doc id", err)
	}

	if err := tx.Commit(); err != nil {
		return mnerr.Busy(mnerr.ErrCodeStoreBusy, "committing transaction", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func scanMemory(row *sql.Row) (*Memory, error) {
	var m Memory
	var createdAt int64
	var lastAccessed sql.NullInt64
	var pinned, deleted int
	var tags string

	err := row.Scan(&m.ID, &m.Type, &m.Content, &m.Importance, &m.PrivacyScope, &createdAt,
		&lastAccessed, &pinned, &tags, &m.Source, &m.ViewCount, &m.CiteCount, &m.EditCount, &deleted)
	if err == sql.ErrNoRows {
		return nil, mnerr.NotFound(mnerr.ErrCodeMemoryNotFound, "memory not found")
	}
	if err != nil {
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "scanning memory", err)
	}

	m.CreatedAt = time.Unix(createdAt, 0).UTC()
	if lastAccessed.Valid {
		t := time.Unix(lastAccessed.Int64, 0).UTC()
		m.LastAccessed = &t
	}
	m.Pinned = pinned != 0
	m.Deleted = deleted != 0
	m.Tags = decodeTags(tags)
	return &m, nil
}

func (s *SQLiteStore) GetMemory(ctx context.Context, id string) (*Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT id, type, content, importance, privacy_scope, created_at,
		last_accessed, pinned, tags, source, view_count, cite_count, edit_count, deleted
		FROM memory_item WHERE id = ?`, id)
	return scanMemory(row)
}

func (s *SQLiteStore) UpdateMemory(ctx context.Context, m *Memory) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mnerr.Busy(mnerr.ErrCodeStoreBusy, "beginning transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE memory_item SET type=?, content=?, importance=?, privacy_scope=?,
		last_accessed=?, pinned=?, tags=?, source=?, view_count=?, cite_count=?, edit_count=?, deleted=?
		WHERE id=?`,
		string(m.Type), m.Content, ClampImportance(m.Importance), string(m.PrivacyScope),
		unixOrNil(m.LastAccessed), boolToInt(m.Pinned), encodeTags(m.Tags), m.Source,
		m.ViewCount, m.CiteCount, m.EditCount, boolToInt(m.Deleted), m.ID)
	if err != nil {
		return mnerr.Internal(mnerr.ErrCodeInternal, "updating memory", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return mnerr.NotFound(mnerr.ErrCodeMemoryNotFound, "memory not found")
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM memory_item_fts WHERE doc_id = ?`, m.ID); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "re-indexing memory", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO memory_item_fts(doc_id, content) VALUES (?, ?)`, m.ID, m.Content); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "re-indexing memory", err)
	}

	return commitOrBusy(tx)
}

func commitOrBusy(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return mnerr.Busy(mnerr.ErrCodeStoreBusy, "committing transaction", err)
	}
	return nil
}

// SoftDeleteMemory marks the memory deleted and removes it from the FTS
// index (invisible to recall) while retaining the row and its dependents.
func (s *SQLiteStore) SoftDeleteMemory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mnerr.Busy(mnerr.ErrCodeStoreBusy, "beginning transaction", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE memory_item SET deleted=1 WHERE id=? AND deleted=0`, id)
	if err != nil {
		return mnerr.Internal(mnerr.ErrCodeInternal, "soft-deleting memory", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		if _, getErr := s.getMemoryTx(ctx, tx, id); getErr != nil {
			return getErr
		}
		return mnerr.New(mnerr.ErrCodeAlreadyDeleted, "memory already soft-deleted", nil)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM memory_item_fts WHERE doc_id = ?`, id); err != nil {
		return mnerr.Internal(mnerr.ErrCodeIndexFailed, "removing from text index", err)
	}

	return commitOrBusy(tx)
}

func (s *SQLiteStore) getMemoryTx(ctx context.Context, tx *sql.Tx, id string) (*Memory, error) {
	row := tx.QueryRowContext(ctx, `SELECT id, type, content, importance, privacy_scope, created_at,
		last_accessed, pinned, tags, source, view_count, cite_count, edit_count, deleted
		FROM memory_item WHERE id = ?`, id)
	return scanMemory(row)
}

// HardDeleteMemory removes the memory and every dependent row in one
// transaction. Pinned memories are rejected with Conflict.
func (s *SQLiteStore) HardDeleteMemory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return mnerr.Busy(mnerr.ErrCodeStoreBusy, "beginning transaction", err)
	}
	defer tx.Rollback()

	existing, err := s.getMemoryTx(ctx, tx, id)
	if err != nil {
		return err
	}
	if existing.Pinned {
		return mnerr.Conflict(mnerr.ErrCodePinnedCannotHardDelete, "cannot hard-delete a pinned memory")
	}

	for _, stmt := range []string{
		`DELETE FROM memory_item WHERE id = ?`,
		`DELETE FROM memory_item_fts WHERE doc_id = ?`,
		`DELETE FROM fts_doc_ids WHERE doc_id = ?`,
		`DELETE FROM memory_embedding WHERE memory_id = ?`,
		`DELETE FROM feedback_event WHERE memory_id = ?`,
		`DELETE FROM review_schedule WHERE memory_id = ?`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return mnerr.Internal(mnerr.ErrCodeInternal, "hard-deleting memory", err)
		}
	}

	return commitOrBusy(tx)
}

func (s *SQLiteStore) ListMemories(ctx context.Context, filter Filter) ([]*Memory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, type, content, importance, privacy_scope, created_at,
		last_accessed, pinned, tags, source, view_count, cite_count, edit_count, deleted
		FROM memory_item WHERE 1=1`
	var args []any

	if !filter.IncludeSoftDeleted {
		query += " AND deleted = 0"
	}
	if len(filter.IDs) > 0 {
		query += " AND id IN (" + placeholders(len(filter.IDs)) + ")"
		for _, id := range filter.IDs {
			args = append(args, id)
		}
	}
	if len(filter.Types) > 0 {
		query += " AND type IN (" + placeholders(len(filter.Types)) + ")"
		for _, t := range filter.Types {
			args = append(args, string(t))
		}
	}
	if len(filter.PrivacyScope) > 0 {
		query += " AND privacy_scope IN (" + placeholders(len(filter.PrivacyScope)) + ")"
		for _, p := range filter.PrivacyScope {
			args = append(args, string(p))
		}
	}
	if filter.Pinned != nil {
		query += " AND pinned = ?"
		args = append(args, boolToInt(*filter.Pinned))
	}
	if filter.TimeFrom != nil {
		query += " AND created_at >= ?"
		args = append(args, filter.TimeFrom.Unix())
	}
	if filter.TimeTo != nil {
		query += " AND created_at <= ?"
		args = append(args, filter.TimeTo.Unix())
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "listing memories", err)
	}
	defer rows.Close()

	var out []*Memory
	for rows.Next() {
		var m Memory
		var createdAt int64
		var lastAccessed sql.NullInt64
		var pinned, deleted int
		var tags string
		if err := rows.Scan(&m.ID, &m.Type, &m.Content, &m.Importance, &m.PrivacyScope, &createdAt,
			&lastAccessed, &pinned, &tags, &m.Source, &m.ViewCount, &m.CiteCount, &m.EditCount, &deleted); err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeInternal, "scanning memory row", err)
		}
		m.CreatedAt = time.Unix(createdAt, 0).UTC()
		if lastAccessed.Valid {
			t := time.Unix(lastAccessed.Int64, 0).UTC()
			m.LastAccessed = &t
		}
		m.Pinned = pinned != 0
		m.Deleted = deleted != 0
		m.Tags = decodeTags(tags)

		if len(filter.Tags) > 0 && !hasAnyTag(m.Tags, filter.Tags) {
			continue
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}

func hasAnyTag(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, t := range have {
		set[t] = struct{}{}
	}
	for _, w := range want {
		if _, ok := set[w]; ok {
			return true
		}
	}
	return false
}

func placeholders(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		if i > 0 {
			out += ","
		}
		out += "?"
	}
	return out
}

func (s *SQLiteStore) AppendFeedback(ctx context.Context, ev *FeedbackEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO feedback_event (memory_id, kind, score, created_at) VALUES (?,?,?,?)`,
		ev.MemoryID, string(ev.Kind), ev.Score, ev.CreatedAt.Unix())
	if err != nil {
		return mnerr.Internal(mnerr.ErrCodeInternal, "appending feedback", err)
	}
	return nil
}

func (s *SQLiteStore) ListFeedback(ctx context.Context, memoryID string) ([]*FeedbackEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, memory_id, kind, score, created_at FROM feedback_event WHERE memory_id = ? ORDER BY created_at ASC`, memoryID)
	if err != nil {
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "listing feedback", err)
	}
	defer rows.Close()

	var out []*FeedbackEvent
	for rows.Next() {
		var ev FeedbackEvent
		var createdAt int64
		if err := rows.Scan(&ev.ID, &ev.MemoryID, &ev.Kind, &ev.Score, &createdAt); err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeInternal, "scanning feedback", err)
		}
		ev.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, &ev)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpsertEmbedding(ctx context.Context, e *Embedding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := encodeVector(e.Vector)
	if err != nil {
		return mnerr.Internal(mnerr.ErrCodeInternal, "encoding embedding", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO memory_embedding (memory_id, vector, dimension, model, created_at)
		VALUES (?,?,?,?,?)
		ON CONFLICT(memory_id) DO UPDATE SET vector=excluded.vector, dimension=excluded.dimension, model=excluded.model, created_at=excluded.created_at`,
		e.MemoryID, blob, e.Dimension, e.Model, e.CreatedAt.Unix())
	if err != nil {
		return mnerr.Internal(mnerr.ErrCodeInternal, "upserting embedding", err)
	}
	return nil
}

func (s *SQLiteStore) GetEmbedding(ctx context.Context, memoryID string) (*Embedding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT memory_id, vector, dimension, model, created_at FROM memory_embedding WHERE memory_id = ?`, memoryID)
	var e Embedding
	var blob []byte
	var createdAt int64
	if err := row.Scan(&e.MemoryID, &blob, &e.Dimension, &e.Model, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, mnerr.NotFound(mnerr.ErrCodeMemoryNotFound, "embedding not found")
		}
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "scanning embedding", err)
	}
	e.CreatedAt = time.Unix(createdAt, 0).UTC()
	vec, err := decodeVector(blob)
	if err != nil {
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "decoding embedding", err)
	}
	e.Vector = vec
	return &e, nil
}

func (s *SQLiteStore) DeleteEmbedding(ctx context.Context, memoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, `DELETE FROM memory_embedding WHERE memory_id = ?`, memoryID)
	if err != nil {
		return mnerr.Internal(mnerr.ErrCodeInternal, "deleting embedding", err)
	}
	return nil
}

func (s *SQLiteStore) ListEmbeddings(ctx context.Context) ([]*Embedding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT memory_id, vector, dimension, model, created_at FROM memory_embedding`)
	if err != nil {
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "listing embeddings", err)
	}
	defer rows.Close()

	var out []*Embedding
	for rows.Next() {
		var e Embedding
		var blob []byte
		var createdAt int64
		if err := rows.Scan(&e.MemoryID, &blob, &e.Dimension, &e.Model, &createdAt); err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeInternal, "scanning embedding", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		vec, err := decodeVector(blob)
		if err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeInternal, "decoding embedding", err)
		}
		e.Vector = vec
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) UpsertReviewSchedule(ctx context.Context, r *ReviewSchedule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `INSERT INTO review_schedule (memory_id, interval_days, last_reviewed_at, next_review_at, last_recall_probability)
		VALUES (?,?,?,?,?)
		ON CONFLICT(memory_id) DO UPDATE SET interval_days=excluded.interval_days, last_reviewed_at=excluded.last_reviewed_at,
			next_review_at=excluded.next_review_at, last_recall_probability=excluded.last_recall_probability`,
		r.MemoryID, r.IntervalDays, r.LastReviewedAt.Unix(), r.NextReviewAt.Unix(), r.LastRecallProbability)
	if err != nil {
		return mnerr.Internal(mnerr.ErrCodeInternal, "upserting review schedule", err)
	}
	return nil
}

func (s *SQLiteStore) GetReviewSchedule(ctx context.Context, memoryID string) (*ReviewSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT memory_id, interval_days, last_reviewed_at, next_review_at, last_recall_probability FROM review_schedule WHERE memory_id = ?`, memoryID)
	var r ReviewSchedule
	var lastReviewed, nextReview int64
	if err := row.Scan(&r.MemoryID, &r.IntervalDays, &lastReviewed, &nextReview, &r.LastRecallProbability); err != nil {
		if err == sql.ErrNoRows {
			return nil, mnerr.NotFound(mnerr.ErrCodeReviewNotFound, "review schedule not found")
		}
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "scanning review schedule", err)
	}
	r.LastReviewedAt = time.Unix(lastReviewed, 0).UTC()
	r.NextReviewAt = time.Unix(nextReview, 0).UTC()
	return &r, nil
}

func (s *SQLiteStore) ListReviewSchedules(ctx context.Context) ([]*ReviewSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT memory_id, interval_days, last_reviewed_at, next_review_at, last_recall_probability FROM review_schedule`)
	if err != nil {
		return nil, mnerr.Internal(mnerr.ErrCodeInternal, "listing review schedules", err)
	}
	defer rows.Close()

	var out []*ReviewSchedule
	for rows.Next() {
		var r ReviewSchedule
		var lastReviewed, nextReview int64
		if err := rows.Scan(&r.MemoryID, &r.IntervalDays, &lastReviewed, &nextReview, &r.LastRecallProbability); err != nil {
			return nil, mnerr.Internal(mnerr.ErrCodeInternal, "scanning review schedule", err)
		}
		r.LastReviewedAt = time.Unix(lastReviewed, 0).UTC()
		r.NextReviewAt = time.Unix(nextReview, 0).UTC()
		out = append(out, &r)
	}
	return out, rows.Err()
}

// Checkpoint forces a WAL checkpoint, the contention-relief mechanism spec
// section 4.1 calls out ("periodic checkpointing ... triggered when the
// hot writer observes a contention signal").
func (s *SQLiteStore) Checkpoint(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `PRAGMA wal_checkpoint(TRUNCATE)`); err != nil {
		return mnerr.New(mnerr.ErrCodeWALCheckpoint, "wal checkpoint failed", nil)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.db.Exec(`PRAGMA wal_checkpoint(TRUNCATE)`)
	err := s.db.Close()
	_ = s.lock.Unlock()
	return err
}
