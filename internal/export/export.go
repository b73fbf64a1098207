package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"

	"health42/internal/domain"
)

// JSON serializes a canonical collection the way the seed files are
// formatted, so an export can replace data/supplements.json or
// data/posts.json directly.
func JSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// AnalyticsCSV writes click events as CSV with a header row. Fields are
// quoted per RFC 4180, so embedded commas in URLs survive a round trip.
func AnalyticsCSV(events []domain.AnalyticsEvent) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "url", "timestamp"}); err != nil {
		return nil, err
	}
	for _, e := range events {
		if err := w.Write([]string{e.ProductID, e.URL, e.Timestamp}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
