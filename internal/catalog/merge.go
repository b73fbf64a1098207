package catalog

import (
	"sort"
	"time"
)

// Record is anything the merge engine can reconcile: supplements and
// posts both carry a string identity and a recency timestamp.
type Record interface {
	Identity() string
	Recency() time.Time
}

// Merge reconciles the read-only baseline with locally staged edits into
// one canonical collection. Staged records are conceptually newer: when
// two records share an identity the last occurrence of the concatenation
// baseline+staged wins, so a staged record always overrides its baseline
// counterpart, and a later staged duplicate overrides an earlier one.
//
// Output is ordered by recency, newest first; records whose recency does
// not parse carry the zero time and sort last. Inputs are not mutated.
func Merge[T Record](baseline, staged []T) []T {
	byID := make(map[string]int, len(baseline)+len(staged))
	out := make([]T, 0, len(baseline)+len(staged))
	for _, r := range baseline {
		upsert(&out, byID, r)
	}
	for _, r := range staged {
		upsert(&out, byID, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Recency().After(out[j].Recency())
	})
	return out
}

func upsert[T Record](out *[]T, byID map[string]int, r T) {
	if i, ok := byID[r.Identity()]; ok {
		(*out)[i] = r
		return
	}
	byID[r.Identity()] = len(*out)
	*out = append(*out, r)
}
