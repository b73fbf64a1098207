package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health42/internal/catalog"
	"health42/internal/domain"
)

func supp(id string, price, rating float64, updated string) domain.Supplement {
	return domain.Supplement{ID: id, Name: id, Price: price, Rating: rating, LastUpdated: updated}
}

func TestMergeStagedOverridesBaseline(t *testing.T) {
	baseline := []domain.Supplement{supp("a", 10, 4, "2024-01-01T00:00:00Z")}
	staged := []domain.Supplement{supp("a", 12, 4.5, "2024-06-01T00:00:00Z")}

	merged := catalog.Merge(baseline, staged)

	require.Len(t, merged, 1)
	assert.Equal(t, 12.0, merged[0].Price)
	assert.Equal(t, 4.5, merged[0].Rating)
}

func TestMergeLastStagedDuplicateWins(t *testing.T) {
	staged := []domain.Supplement{
		supp("a", 1, 1, "2024-03-01T00:00:00Z"),
		supp("a", 2, 2, "2024-03-02T00:00:00Z"),
	}
	merged := catalog.Merge(nil, staged)

	require.Len(t, merged, 1)
	assert.Equal(t, 2.0, merged[0].Price)
}

func TestMergeDedupAndOrder(t *testing.T) {
	baseline := []domain.Supplement{
		supp("old", 5, 3, "2023-01-01T00:00:00Z"),
		supp("mid", 6, 3, "2024-01-01T00:00:00Z"),
	}
	staged := []domain.Supplement{
		supp("new", 7, 3, "2024-06-01T00:00:00Z"),
		supp("broken", 8, 3, "not-a-date"),
	}

	merged := catalog.Merge(baseline, staged)

	require.Len(t, merged, 4)
	// newest first; unparseable recency sorts last
	assert.Equal(t, []string{"new", "mid", "old", "broken"},
		[]string{merged[0].ID, merged[1].ID, merged[2].ID, merged[3].ID})

	seen := map[string]bool{}
	for _, s := range merged {
		assert.False(t, seen[s.ID], "duplicate identity %s", s.ID)
		seen[s.ID] = true
	}
}

func TestMergeIdempotent(t *testing.T) {
	baseline := []domain.Supplement{
		supp("a", 10, 4, "2024-01-01T00:00:00Z"),
		supp("b", 20, 5, "2024-02-01T00:00:00Z"),
	}
	staged := []domain.Supplement{supp("a", 12, 4.5, "2024-06-01T00:00:00Z")}

	once := catalog.Merge(baseline, staged)
	twice := catalog.Merge(once, nil)

	assert.Equal(t, once, twice)
}

func TestMergeDoesNotMutateInputs(t *testing.T) {
	baseline := []domain.Supplement{
		supp("b", 20, 5, "2023-01-01T00:00:00Z"),
		supp("a", 10, 4, "2024-01-01T00:00:00Z"),
	}
	catalog.Merge(baseline, []domain.Supplement{supp("b", 99, 1, "2024-06-01T00:00:00Z")})

	assert.Equal(t, "b", baseline[0].ID)
	assert.Equal(t, 20.0, baseline[0].Price)
}

func TestMergePosts(t *testing.T) {
	baseline := []domain.Post{{ID: "p1", Title: "old", PublishedAt: "2024-01-01T00:00:00Z"}}
	staged := []domain.Post{
		{ID: "p2", Title: "new", PublishedAt: "2024-05-01T00:00:00Z"},
		{ID: "p1", Title: "edited", PublishedAt: "2024-01-01T00:00:00Z"},
	}

	merged := catalog.Merge(baseline, staged)

	require.Len(t, merged, 2)
	assert.Equal(t, "p2", merged[0].ID)
	assert.Equal(t, "edited", merged[1].Title)
}
