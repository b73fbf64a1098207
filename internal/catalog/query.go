package catalog

import (
	"sort"
	"strings"

	"health42/internal/domain"
)

// Sort keys accepted by Query. An empty key preserves merge order.
const (
	SortRatingDesc = "rating_desc"
	SortPriceAsc   = "price_asc"
	SortPriceDesc  = "price_desc"
	SortNewest     = "newest"
)

type Criteria struct {
	Category   string
	SearchTerm string
	Sort       string
}

// Query filters then sorts a supplement collection. Both passes work on
// copies so the canonical collection is never reordered or truncated by
// a display subset.
func Query(records []domain.Supplement, crit Criteria) []domain.Supplement {
	out := make([]domain.Supplement, 0, len(records))
	term := strings.ToLower(strings.TrimSpace(crit.SearchTerm))
	for _, s := range records {
		if crit.Category != "" && s.Category != crit.Category {
			continue
		}
		if term != "" && !strings.Contains(searchText(s), term) {
			continue
		}
		out = append(out, s)
	}

	switch crit.Sort {
	case SortRatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Recency().After(out[j].Recency()) })
	}
	return out
}

// searchText is the haystack for the free-text filter: name, brand and
// tags joined with spaces, lowercased. A term matches if it appears
// anywhere in this concatenation.
func searchText(s domain.Supplement) string {
	parts := append([]string{s.Name, s.Brand}, s.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}
