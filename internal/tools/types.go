// Package tools implements spec section 4.11's ToolSurface: typed handlers
// (remember, recall, pin, unpin, forget, feedback) composing Store,
// CacheLayer, HybridSearcher, HybridRanker, TaskQueue, and AlertMonitor.
// Handlers are plain methods on Surface taking and returning typed
// request/response structs, following the teacher's request/response/
// logging shape in internal/mcp/server.go's handle*Tool methods, but with
// explicit schemas per spec section 9 rather than a map[string]any args
// blob.
package tools

import "time"

// RememberInput is remember's request schema (spec section 6).
type RememberInput struct {
	Content      string   `json:"content"`
	Type         string   `json:"type,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Importance   *float64 `json:"importance,omitempty"`
	Source       string   `json:"source,omitempty"`
	PrivacyScope string   `json:"privacy_scope,omitempty"`
}

// RememberOutput is remember's response schema.
type RememberOutput struct {
	MemoryID   string    `json:"memory_id"`
	CreatedAt  time.Time `json:"created_at"`
	Type       string    `json:"type"`
	Importance float64   `json:"importance"`
}

// RecallFilter is recall's nested filter shape, the canonical form per
// spec section 9's open-question decision (b).
type RecallFilter struct {
	ID           []string   `json:"id,omitempty"`
	Type         []string   `json:"type,omitempty"`
	Tags         []string   `json:"tags,omitempty"`
	PrivacyScope []string   `json:"privacy_scope,omitempty"`
	TimeFrom     *time.Time `json:"time_from,omitempty"`
	TimeTo       *time.Time `json:"time_to,omitempty"`
	Pinned       *bool      `json:"pinned,omitempty"`
}

// RecallInput is recall's request schema.
type RecallInput struct {
	Query           string        `json:"query"`
	Filters         *RecallFilter `json:"filters,omitempty"`
	Limit           int           `json:"limit,omitempty"`
	VectorWeight    *float64      `json:"vector_weight,omitempty"`
	TextWeight      *float64      `json:"text_weight,omitempty"`
	EnableHybrid    *bool         `json:"enable_hybrid,omitempty"`
	IncludeMetadata bool          `json:"include_metadata,omitempty"`
}

// RecallItem is one ranked result.
type RecallItem struct {
	MemoryID     string            `json:"memory_id"`
	Content      string            `json:"content"`
	Type         string            `json:"type"`
	Importance   float64           `json:"importance"`
	Score        float64           `json:"score"`
	RecallReason string            `json:"recall_reason"`
	Tags         []string          `json:"tags,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

// RecallOutput is recall's response schema.
type RecallOutput struct {
	Items          []RecallItem   `json:"items"`
	TotalCount     int            `json:"total_count"`
	QueryTime      time.Duration  `json:"query_time"`
	SearchType     string         `json:"search_type"`
	FiltersApplied *RecallFilter  `json:"filters_applied,omitempty"`
	SearchOptions  map[string]any `json:"search_options"`
}

// PinInput is pin/unpin's shared request schema.
type PinInput struct {
	ID      string   `json:"id,omitempty"`
	Batch   []string `json:"batch,omitempty"`
	Reason  string   `json:"reason,omitempty"`
	Confirm bool     `json:"confirm,omitempty"`
}

// PinResult is one id's outcome within a pin/unpin batch.
type PinResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// PinOutput is pin/unpin's response schema.
type PinOutput struct {
	Results []PinResult `json:"results"`
}

// ForgetInput is forget's request schema.
type ForgetInput struct {
	ID   string `json:"id"`
	Hard bool   `json:"hard,omitempty"`
}

// ForgetOutput is forget's response schema.
type ForgetOutput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// FeedbackInput is feedback's request schema. Kind is an optional
// extension over the documented {memory_id, helpful, score?} shape: when
// set, it carries the full FeedbackKind enum (viewed/cited/edited in
// addition to helpful/not_helpful) so callers can record usage signals
// the ranking and forgetting formulas read beyond a thumbs up/down.
type FeedbackInput struct {
	MemoryID string   `json:"memory_id"`
	Helpful  bool     `json:"helpful"`
	Score    *float64 `json:"score,omitempty"`
	Kind     string   `json:"kind,omitempty"`
}

// FeedbackOutput is feedback's response schema.
type FeedbackOutput struct {
	MemoryID string `json:"memory_id"`
	Recorded bool   `json:"recorded"`
}
