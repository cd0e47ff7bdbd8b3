package tools

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mnemo-systems/mnemo/internal/cache"
	"github.com/mnemo-systems/mnemo/internal/rank"
	"github.com/mnemo-systems/mnemo/internal/search"
	"github.com/mnemo-systems/mnemo/internal/store"
)

// cachedRecall is what QueryCache actually stores: the ranked items plus
// which path produced them, so a cache hit reproduces the full response.
type cachedRecall struct {
	Items      []RecallItem
	SearchType string
}

// Recall validates the query, checks the QueryCache, and on a miss runs
// CacheLayer → HybridRanker → (TextSearcher ∥ VectorSearcher) → Store
// (spec section 4 control-flow summary).
func (s *Surface) Recall(ctx context.Context, in RecallInput) (*RecallOutput, error) {
	if err := validateQuery(in.Query); err != nil {
		return nil, err
	}

	limit := clampLimit(in.Limit, s.searchCfg.DefaultLimit, s.searchCfg.MaxLimit)
	enableHybrid := true
	if in.EnableHybrid != nil {
		enableHybrid = *in.EnableHybrid
	}
	weights := normalizeRequestWeights(in.VectorWeight, in.TextWeight)

	fingerprint := fingerprintFilter(in.Filters)
	normalizedQuery := strings.ToLower(strings.TrimSpace(in.Query))
	cacheKey := cache.Key(normalizedQuery, fingerprint, limit)
	tokens := tokenize(normalizedQuery)

	start := s.clock()

	if s.Queries != nil {
		if hit, ok := s.Queries.Get(cacheKey, tokens); ok {
			if cr, ok := hit.(cachedRecall); ok {
				return s.finishRecall(cr, in, limit, start), nil
			}
		}
	}

	filter := translateFilter(in.Filters)
	memories, err := s.Store.ListMemories(ctx, filter)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*store.Memory, len(memories))
	for _, m := range memories {
		byID[m.ID] = m
	}

	var vectorSearcher *search.VectorSearcher
	if enableHybrid {
		vectorSearcher = s.VectorSearcher
	}
	hs := search.NewHybridSearcher(s.TextSearcher, vectorSearcher).WithWeights(weights)

	var filterTags []string
	var filterTypes []store.MemoryType
	if in.Filters != nil {
		filterTags = in.Filters.Tags
		for _, t := range in.Filters.Type {
			filterTypes = append(filterTypes, store.MemoryType(t))
		}
	}

	candidates, err := hs.Search(ctx, search.Query{Text: in.Query, Tags: filterTags, Types: filterTypes, Limit: limit}, byID)
	if err != nil {
		return nil, err
	}

	ranked := s.Ranker.Rank(ctx, candidates, byID, s.clock(), limit)

	items := make([]RecallItem, 0, len(ranked))
	for _, r := range ranked {
		mem := byID[r.MemoryID]
		if mem == nil {
			continue
		}
		items = append(items, s.toRecallItem(mem, r, in.IncludeMetadata))
	}

	searchType := "text_only"
	if vectorSearcher != nil {
		searchType = "hybrid"
	}

	cr := cachedRecall{Items: items, SearchType: searchType}
	if s.Queries != nil {
		s.Queries.Set(cacheKey, tokens, cr)
	}

	s.touchAccessed(ctx, items)

	return s.finishRecall(cr, in, limit, start), nil
}

func (s *Surface) finishRecall(cr cachedRecall, in RecallInput, limit int, start time.Time) *RecallOutput {
	return &RecallOutput{
		Items:          cr.Items,
		TotalCount:     len(cr.Items),
		QueryTime:      s.clock().Sub(start),
		SearchType:     cr.SearchType,
		FiltersApplied: in.Filters,
		SearchOptions: map[string]any{
			"limit":         limit,
			"enable_hybrid": in.EnableHybrid == nil || *in.EnableHybrid,
		},
	}
}

func (s *Surface) toRecallItem(mem *store.Memory, r rank.Ranked, includeMetadata bool) RecallItem {
	item := RecallItem{
		MemoryID:     mem.ID,
		Content:      mem.Content,
		Type:         string(mem.Type),
		Importance:   mem.Importance,
		Score:        r.Score,
		RecallReason: r.RecallReason,
		Tags:         mem.Tags,
		CreatedAt:    mem.CreatedAt,
	}
	if includeMetadata {
		item.Metadata = map[string]string{
			"source":        mem.Source,
			"privacy_scope": string(mem.PrivacyScope),
			"pinned":        fmt.Sprintf("%t", mem.Pinned),
		}
	}
	return item
}

// touchAccessed bumps ViewCount/LastAccessed for returned memories so the
// usage signal (views/cites/edits) reflects recall traffic. Best-effort:
// a failure here never fails the read it is attached to.
func (s *Surface) touchAccessed(ctx context.Context, items []RecallItem) {
	now := s.clock()
	for _, item := range items {
		mem, err := s.Store.GetMemory(ctx, item.MemoryID)
		if err != nil {
			continue
		}
		mem.ViewCount++
		mem.LastAccessed = &now
		if err := s.Store.UpdateMemory(ctx, mem); err != nil {
			s.Logger.Warn("updating access counters failed", slog.String("memory_id", item.MemoryID), slog.String("error", err.Error()))
		}
	}
}

func normalizeRequestWeights(vectorWeight, textWeight *float64) search.Weights {
	w := search.DefaultWeights()
	if vectorWeight == nil && textWeight == nil {
		return w
	}
	if vectorWeight != nil {
		w.Vector = *vectorWeight
	}
	if textWeight != nil {
		w.Text = *textWeight
	}
	total := w.Vector + w.Text + w.Tag + w.Title
	if total <= 0 {
		return search.DefaultWeights()
	}
	w.Vector /= total
	w.Text /= total
	w.Tag /= total
	w.Title /= total
	return w
}

func translateFilter(f *RecallFilter) store.Filter {
	if f == nil {
		return store.Filter{}
	}
	filter := store.Filter{
		IDs:      f.ID,
		Tags:     f.Tags,
		TimeFrom: f.TimeFrom,
		TimeTo:   f.TimeTo,
		Pinned:   f.Pinned,
	}
	for _, t := range f.Type {
		filter.Types = append(filter.Types, store.MemoryType(t))
	}
	for _, p := range f.PrivacyScope {
		filter.PrivacyScope = append(filter.PrivacyScope, store.PrivacyScope(p))
	}
	return filter
}

// fingerprintFilter builds a stable string key for the QueryCache, sorting
// every slice field so semantically identical filters hash identically
// regardless of input order.
func fingerprintFilter(f *RecallFilter) string {
	if f == nil {
		return "none"
	}
	var b strings.Builder
	writeSorted := func(label string, vals []string) {
		cp := append([]string(nil), vals...)
		sort.Strings(cp)
		b.WriteString(label)
		b.WriteString(strings.Join(cp, ","))
		b.WriteString(";")
	}
	writeSorted("id=", f.ID)
	writeSorted("type=", f.Type)
	writeSorted("tags=", f.Tags)
	writeSorted("scope=", f.PrivacyScope)
	if f.TimeFrom != nil {
		b.WriteString("from=" + f.TimeFrom.UTC().String() + ";")
	}
	if f.TimeTo != nil {
		b.WriteString("to=" + f.TimeTo.UTC().String() + ";")
	}
	if f.Pinned != nil {
		b.WriteString(fmt.Sprintf("pinned=%t;", *f.Pinned))
	}
	return b.String()
}

func tokenize(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, strings.ToLower(strings.Trim(f, ".,!?;:\"'()")))
	}
	return out
}
