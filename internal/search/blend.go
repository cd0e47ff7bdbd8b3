package search

import "strings"

// tagJaccard is the tag-overlap component of spec section 4.3's relevance
// blend: |query ∩ memory| / |query ∪ memory| over tag sets. An empty query
// tag set contributes zero rather than dividing by zero.
func tagJaccard(queryTags, memoryTags []string) float64 {
	if len(queryTags) == 0 || len(memoryTags) == 0 {
		return 0
	}

	q := make(map[string]struct{}, len(queryTags))
	for _, t := range queryTags {
		q[strings.ToLower(t)] = struct{}{}
	}
	m := make(map[string]struct{}, len(memoryTags))
	for _, t := range memoryTags {
		m[strings.ToLower(t)] = struct{}{}
	}

	intersection := 0
	union := len(m)
	for t := range q {
		if _, ok := m[t]; ok {
			intersection++
		} else {
			union++
		}
	}
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// titleWordCount is an approximation of a "title" over free-text memory
// content: the memory has no dedicated title field, so the blend treats its
// leading words as the title the spec's "title/n-gram hit" component
// scores against.
const titleWordCount = 8

// titleHit scores whether the query's tokens appear among a memory's
// leading words, the n-gram hit signal from spec section 4.3.
func titleHit(queryText, content string) float64 {
	queryTokens := tokensOf(queryText)
	if len(queryTokens) == 0 {
		return 0
	}

	title := strings.Fields(content)
	if len(title) > titleWordCount {
		title = title[:titleWordCount]
	}
	titleSet := make(map[string]struct{}, len(title))
	for _, w := range title {
		titleSet[strings.ToLower(strings.Trim(w, ".,!?;:\"'()"))] = struct{}{}
	}

	hits := 0
	for _, tok := range queryTokens {
		if _, ok := titleSet[tok]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(queryTokens))
}

func tokensOf(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"'()")
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// blendRelevance combines the four components with weight renormalization
// when the vector signal is absent, per spec section 4.3.
func blendRelevance(weights Weights, vectorSim float64, hasVector bool, textScore float64, hasText bool, tagScore, titleScore float64) float64 {
	var sum, totalWeight float64

	if hasVector {
		sum += weights.Vector * vectorSim
		totalWeight += weights.Vector
	}
	if hasText {
		sum += weights.Text * textScore
		totalWeight += weights.Text
	}
	sum += weights.Tag * tagScore
	totalWeight += weights.Tag
	sum += weights.Title * titleScore
	totalWeight += weights.Title

	if totalWeight == 0 {
		return 0
	}
	relevance := sum / totalWeight
	if relevance < 0 {
		return 0
	}
	if relevance > 1 {
		return 1
	}
	return relevance
}
