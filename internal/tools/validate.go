package tools

import (
	"strings"

	mnerr "github.com/mnemo-systems/mnemo/internal/errors"
	"github.com/mnemo-systems/mnemo/internal/store"
)

const maxTextLength = 1000

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return mnerr.Invalid(mnerr.ErrCodeInvalidContent, "content must not be empty")
	}
	if len(content) > maxTextLength {
		return mnerr.Invalid(mnerr.ErrCodeInvalidContent, "content exceeds 1000 characters")
	}
	return nil
}

func validateQuery(query string) error {
	if len(query) > maxTextLength {
		return mnerr.Invalid(mnerr.ErrCodeInvalidQuery, "query exceeds 1000 characters")
	}
	if containsScriptPattern(query) {
		return mnerr.Invalid(mnerr.ErrCodeInvalidQuery, "query contains a disallowed script pattern")
	}
	return nil
}

// containsScriptPattern rejects the obvious script-injection markers a
// query used purely for lexical/vector search has no legitimate reason to
// carry.
func containsScriptPattern(query string) bool {
	lower := strings.ToLower(query)
	for _, pattern := range []string{"<script", "javascript:", "onerror="} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func validateImportance(v float64) error {
	if v < 0 || v > 1 {
		return mnerr.Invalid(mnerr.ErrCodeInvalidImportance, "importance must be within [0,1]")
	}
	return nil
}

func parseMemoryType(raw string) (store.MemoryType, error) {
	if raw == "" {
		return store.TypeEpisodic, nil
	}
	switch store.MemoryType(raw) {
	case store.TypeWorking, store.TypeEpisodic, store.TypeSemantic, store.TypeProcedural:
		return store.MemoryType(raw), nil
	default:
		return "", mnerr.Invalid(mnerr.ErrCodeInvalidType, "type must be one of working|episodic|semantic|procedural")
	}
}

func parsePrivacyScope(raw string) (store.PrivacyScope, error) {
	if raw == "" {
		return store.ScopePrivate, nil
	}
	switch store.PrivacyScope(raw) {
	case store.ScopePrivate, store.ScopeTeam, store.ScopePublic:
		return store.PrivacyScope(raw), nil
	default:
		return "", mnerr.Invalid(mnerr.ErrCodeInvalidRequest, "privacy_scope must be one of private|team|public")
	}
}

// parseFeedbackKind validates an explicit feedback kind against the full
// spec enum. An empty raw is not handled here: Feedback falls back to the
// helpful/not_helpful boolean for backward compatibility with the documented
// `{memory_id, helpful, score?}` schema.
func parseFeedbackKind(raw string) (store.FeedbackKind, error) {
	switch store.FeedbackKind(raw) {
	case store.FeedbackViewed, store.FeedbackCited, store.FeedbackEdited,
		store.FeedbackHelpful, store.FeedbackNotHelpful, store.FeedbackPinned, store.FeedbackUnpinned:
		return store.FeedbackKind(raw), nil
	default:
		return "", mnerr.Invalid(mnerr.ErrCodeInvalidRequest, "kind must be one of viewed|cited|edited|helpful|not_helpful|pinned|unpinned")
	}
}

func clampLimit(requested, defaultLimit, maxLimit int) int {
	if requested <= 0 {
		return defaultLimit
	}
	if requested > maxLimit {
		return maxLimit
	}
	return requested
}
