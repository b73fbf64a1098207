package admin_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health42/internal/admin"
)

func suppForm() map[string]string {
	return map[string]string{
		"name":                 "Marine Collagen",
		"brand":                "GlowLabs",
		"category":             "Beauty",
		"tags":                 "Collagen, Skin , ,Hair",
		"shortDescription":     "Hydrolyzed marine collagen peptides.",
		"descriptionHtml":      "<p>Full description</p>",
		"ingredients":          "Collagen|10g|from wild-caught fish\nVitamin C|90mg\n\nHyaluronic Acid|120mg|",
		"servingsPerContainer": "30",
		"directions":           "One scoop daily.",
		"warnings":             "Consult a physician.",
		"allergens":            "Fish",
		"price":                "29.99",
		"compareAtPrice":       "39.99",
		"rating":               "4.7",
		"reviewsCount":         "812",
		"images":               "img/collagen-1.jpg, img/collagen-2.jpg",
		"clickbankHoplink":     "https://hop.example.net/?tid={{utm}}",
		"sku":                  "GL-COL-01",
		"countryOfOrigin":      "Norway",
		"certifications":       "GMP, Non-GMO",
	}
}

func TestBuildSupplement(t *testing.T) {
	b := admin.NewRecordBuilder()
	before := time.Now().UTC()

	s, err := b.BuildSupplement(suppForm())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(s.ID, "custom-"))
	assert.Equal(t, []string{"Collagen", "Skin", "Hair"}, s.Tags)
	assert.Equal(t, 29.99, s.Price)
	assert.Equal(t, 39.99, s.CompareAtPrice)
	assert.Equal(t, 812, s.ReviewsCount)
	assert.Len(t, s.Images, 2)

	require.Len(t, s.Ingredients, 3)
	assert.Equal(t, "Vitamin C", s.Ingredients[1].Name)
	assert.Equal(t, "90mg", s.Ingredients[1].Dose)
	assert.Equal(t, "", s.Ingredients[1].Note)
	assert.Equal(t, "from wild-caught fish", s.Ingredients[0].Note)

	stamped, err := time.Parse(time.RFC3339, s.LastUpdated)
	require.NoError(t, err)
	assert.False(t, stamped.Before(before.Truncate(time.Second)))
}

func TestBuildSupplementKeepsCallerID(t *testing.T) {
	form := suppForm()
	form["id"] = "collagen-01"

	s, err := admin.NewRecordBuilder().BuildSupplement(form)
	require.NoError(t, err)
	assert.Equal(t, "collagen-01", s.ID)
}

func TestBuildSupplementIDsUnique(t *testing.T) {
	b := admin.NewRecordBuilder()
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		s, err := b.BuildSupplement(suppForm())
		require.NoError(t, err)
		require.False(t, seen[s.ID], "duplicate id %s", s.ID)
		seen[s.ID] = true
	}
}

func TestBuildSupplementRequiredNumericStrict(t *testing.T) {
	for _, field := range []string{"price", "rating", "reviewsCount", "servingsPerContainer"} {
		t.Run(field, func(t *testing.T) {
			form := suppForm()
			form[field] = "abc"

			_, err := admin.NewRecordBuilder().BuildSupplement(form)
			var verr *admin.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestBuildSupplementCompareAtPriceLenient(t *testing.T) {
	form := suppForm()
	form["compareAtPrice"] = "abc"

	s, err := admin.NewRecordBuilder().BuildSupplement(form)
	require.NoError(t, err)
	assert.Equal(t, 0.0, s.CompareAtPrice)
}

func TestBuildSupplementMissingRequiredText(t *testing.T) {
	form := suppForm()
	form["brand"] = "  "

	_, err := admin.NewRecordBuilder().BuildSupplement(form)
	var verr *admin.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "brand", verr.Field)
}

func TestBuildSupplementNeedsAnImage(t *testing.T) {
	form := suppForm()
	form["images"] = " , "

	_, err := admin.NewRecordBuilder().BuildSupplement(form)
	var verr *admin.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "images", verr.Field)
}

func TestBuildSupplementRejectsOutOfRangeRating(t *testing.T) {
	form := suppForm()
	form["rating"] = "7.5"

	_, err := admin.NewRecordBuilder().BuildSupplement(form)
	var verr *admin.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "rating", verr.Field)
}

func postForm() map[string]string {
	return map[string]string{
		"title":       "Collagen, explained",
		"excerpt":     "What the research actually says.",
		"bodyHtml":    "<p>Long read</p>",
		"coverImage":  "img/posts/collagen.jpg",
		"author":      "J. Reyes",
		"category":    "Beauty",
		"tags":        "collagen,skin",
		"publishedAt": "2024-03-15",
	}
}

func TestBuildPostNormalizesPublishedAt(t *testing.T) {
	p, err := admin.NewRecordBuilder().BuildPost(postForm())
	require.NoError(t, err)

	assert.Equal(t, "2024-03-15T00:00:00Z", p.PublishedAt)
	if _, err := time.Parse(time.RFC3339, p.UpdatedAt); err != nil {
		t.Fatalf("updatedAt not stamped: %v", err)
	}
}

func TestBuildPostLenientPublishedAtPassthrough(t *testing.T) {
	form := postForm()
	form["publishedAt"] = "sometime soon"

	p, err := admin.NewRecordBuilder().BuildPost(form)
	require.NoError(t, err)
	assert.Equal(t, "sometime soon", p.PublishedAt)
}

func TestBuildPostMissingTitle(t *testing.T) {
	form := postForm()
	delete(form, "title")

	_, err := admin.NewRecordBuilder().BuildPost(form)
	var verr *admin.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "title", verr.Field)
}
