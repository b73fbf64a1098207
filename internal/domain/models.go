package domain

import (
	"strings"
	"time"
)

// Categories is the fixed set a supplement may belong to. The catalog
// filter and the admin form both render from this list.
var Categories = []string{
	"Dietary Supplements",
	"Men's Health",
	"Women's Health",
	"Dental Health",
	"Beauty",
	"Diets & Weight Loss",
	"Nutrition",
	"Remedies",
}

type Ingredient struct {
	Name string `json:"name"`
	Dose string `json:"dose"`
	Note string `json:"note"`
}

// Supplement is a catalog product. Timestamps are RFC3339 strings as
// stored in the seed JSON; use Recency for ordering.
type Supplement struct {
	ID                   string       `json:"id" validate:"required"`
	Name                 string       `json:"name" validate:"required"`
	Brand                string       `json:"brand" validate:"required"`
	Category             string       `json:"category" validate:"required"`
	Tags                 []string     `json:"tags"`
	ShortDescription     string       `json:"shortDescription" validate:"required"`
	DescriptionHTML      string       `json:"descriptionHtml"`
	Ingredients          []Ingredient `json:"ingredients"`
	ServingsPerContainer int          `json:"servingsPerContainer" validate:"min=0"`
	Directions           string       `json:"directions"`
	Warnings             string       `json:"warnings"`
	Allergens            []string     `json:"allergens"`
	Price                float64      `json:"price" validate:"min=0"`
	CompareAtPrice       float64      `json:"compareAtPrice"`
	Rating               float64      `json:"rating" validate:"min=0,max=5"`
	ReviewsCount         int          `json:"reviewsCount" validate:"min=0"`
	Images               []string     `json:"images" validate:"required,min=1"`
	ClickbankHoplink     string       `json:"clickbankHoplink"`
	SKU                  string       `json:"sku"`
	CountryOfOrigin      string       `json:"countryOfOrigin"`
	Certifications       []string     `json:"certifications"`
	LastUpdated          string       `json:"lastUpdated"`
}

type Post struct {
	ID          string   `json:"id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	Excerpt     string   `json:"excerpt" validate:"required"`
	BodyHTML    string   `json:"bodyHtml" validate:"required"`
	CoverImage  string   `json:"coverImage"`
	Author      string   `json:"author" validate:"required"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// AnalyticsEvent is one outbound affiliate-link click. Field names match
// the exported CSV/JSON produced by earlier datasets.
type AnalyticsEvent struct {
	ProductID string `json:"id"`
	URL       string `json:"url"`
	Timestamp string `json:"timestamp"`
}

func (s Supplement) Identity() string { return s.ID }

// Hoplink fills the {{utm}} slot of the affiliate link template with a
// per-product tracking tag.
func (s Supplement) Hoplink() string {
	return strings.ReplaceAll(s.ClickbankHoplink, "{{utm}}", "product_"+s.ID)
}
func (p Post) Identity() string { return p.ID }

// Recency orders merge output and the "newest" sort. A missing or
// unparseable timestamp returns the zero time, which sorts oldest.
func (s Supplement) Recency() time.Time { return parseStamp(s.LastUpdated) }
func (p Post) Recency() time.Time { return parseStamp(p.PublishedAt) }

func parseStamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
