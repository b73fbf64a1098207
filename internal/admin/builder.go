package admin

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"health42/internal/domain"
)

// idPrefix marks operator-created records so exported datasets can tell
// them apart from seeded ones.
const idPrefix = "custom-"

// RecordBuilder turns raw admin form fields into well-formed records.
// It is strict where the data matters: required text fields and required
// numerics fail the whole build; compareAtPrice alone is lenient and
// falls back to 0, the documented "no compare price" sentinel.
type RecordBuilder struct {
	validate *validator.Validate
	now      func() time.Time

	mu     sync.Mutex
	lastID int64
}

func NewRecordBuilder() *RecordBuilder {
	v := validator.New()
	// report failures under the json name, which is also the form name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &RecordBuilder{validate: v, now: time.Now}
}

func (b *RecordBuilder) BuildSupplement(fields map[string]string) (domain.Supplement, error) {
	price, err := requiredFloat(fields, "price")
	if err != nil {
		return domain.Supplement{}, err
	}
	rating, err := requiredFloat(fields, "rating")
	if err != nil {
		return domain.Supplement{}, err
	}
	reviews, err := requiredInt(fields, "reviewsCount")
	if err != nil {
		return domain.Supplement{}, err
	}
	servings, err := requiredInt(fields, "servingsPerContainer")
	if err != nil {
		return domain.Supplement{}, err
	}

	s := domain.Supplement{
		ID:                   b.identity(fields["id"]),
		Name:                 strings.TrimSpace(fields["name"]),
		Brand:                strings.TrimSpace(fields["brand"]),
		Category:             strings.TrimSpace(fields["category"]),
		Tags:                 splitList(fields["tags"]),
		ShortDescription:     strings.TrimSpace(fields["shortDescription"]),
		DescriptionHTML:      fields["descriptionHtml"],
		Ingredients:          parseIngredients(fields["ingredients"]),
		ServingsPerContainer: servings,
		Directions:           fields["directions"],
		Warnings:             fields["warnings"],
		Allergens:            splitList(fields["allergens"]),
		Price:                price,
		CompareAtPrice:       lenientFloat(fields["compareAtPrice"]),
		Rating:               rating,
		ReviewsCount:         reviews,
		Images:               splitList(fields["images"]),
		ClickbankHoplink:     strings.TrimSpace(fields["clickbankHoplink"]),
		SKU:                  strings.TrimSpace(fields["sku"]),
		CountryOfOrigin:      strings.TrimSpace(fields["countryOfOrigin"]),
		Certifications:       splitList(fields["certifications"]),
		LastUpdated:          b.now().UTC().Format(time.RFC3339),
	}
	if err := b.check(s); err != nil {
		return domain.Supplement{}, err
	}
	return s, nil
}

func (b *RecordBuilder) BuildPost(fields map[string]string) (domain.Post, error) {
	p := domain.Post{
		ID:          b.identity(fields["id"]),
		Title:       strings.TrimSpace(fields["title"]),
		Excerpt:     strings.TrimSpace(fields["excerpt"]),
		BodyHTML:    fields["bodyHtml"],
		CoverImage:  strings.TrimSpace(fields["coverImage"]),
		Author:      strings.TrimSpace(fields["author"]),
		Category:    strings.TrimSpace(fields["category"]),
		Tags:        splitList(fields["tags"]),
		PublishedAt: normalizeStamp(fields["publishedAt"]),
		UpdatedAt:   b.now().UTC().Format(time.RFC3339),
	}
	if err := b.check(p); err != nil {
		return domain.Post{}, err
	}
	return p, nil
}

// check runs struct tag validation and converts the first failure into a
// field-level ValidationError.
func (b *RecordBuilder) check(v any) error {
	err := b.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return invalid(f.Field(), "failed "+f.Tag()+" check")
	}
	return err
}

// identity keeps a caller-supplied id; otherwise it synthesizes one from
// the fixed prefix and a nanosecond timestamp. The suffix is bumped past
// the previous one when the clock has not advanced, so ids stay unique
// within a process.
func (b *RecordBuilder) identity(id string) string {
	id = strings.TrimSpace(id)
	if id != "" {
		return id
	}
	b.mu.Lock()
	n := b.now().UnixNano()
	if n <= b.lastID {
		n = b.lastID + 1
	}
	b.lastID = n
	b.mu.Unlock()
	return idPrefix + strconv.FormatInt(n, 10)
}

func requiredFloat(fields map[string]string, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(fields[name]), 64)
	if err != nil {
		return 0, invalid(name, "not a number")
	}
	return v, nil
}

func requiredInt(fields map[string]string, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(fields[name]))
	if err != nil {
		return 0, invalid(name, "not a whole number")
	}
	return v, nil
}

// lenientFloat is for compareAtPrice only: absent or unparsable means
// "no compare price", encoded as 0.
func lenientFloat(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// splitList parses a comma-delimited field, trimming entries and
// dropping empty segments.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseIngredients parses newline-delimited "name|dose|note" rows. Note
// is optional and defaults to empty; blank lines are skipped.
func parseIngredients(s string) []domain.Ingredient {
	out := []domain.Ingredient{}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parts := strings.SplitN(line, "|", 3)
		ing := domain.Ingredient{Name: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			ing.Dose = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			ing.Note = strings.TrimSpace(parts[2])
		}
		out = append(out, ing)
	}
	return out
}

// normalizeStamp canonicalizes a caller-supplied publish date to RFC3339
// when it parses in a known layout. An unrecognized value passes through
// unchanged for parity with previously exported datasets; it will sort
// oldest.
func normalizeStamp(s string) string {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC().Format(time.RFC3339)
		}
	}
	return s
}
