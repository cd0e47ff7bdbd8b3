package rank

import "strings"

// contentShingles is the token set a memory's content is reduced to for the
// MMR-style Jaccard duplication check spec section 4.5 describes.
func contentShingles(content string) map[string]struct{} {
	fields := strings.Fields(strings.ToLower(content))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:\"'()")
		if f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}

// jaccard is the similarity ratio |a ∩ b| / |a ∪ b| over two token sets.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for t := range a {
		if _, ok := b[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// maxSimilarityTo returns the highest Jaccard similarity between shingles
// and any entry already in selected, the MMR penalty against the
// already-chosen result set.
func maxSimilarityTo(shingles map[string]struct{}, selected []map[string]struct{}) float64 {
	max := 0.0
	for _, s := range selected {
		if sim := jaccard(shingles, s); sim > max {
			max = sim
		}
	}
	return max
}
