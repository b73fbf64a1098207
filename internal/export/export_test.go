package export_test

import (
	"encoding/json"
	"strings"
	"testing"

	"health42/internal/domain"
	"health42/internal/export"
)

func TestJSONRoundTrips(t *testing.T) {
	in := []domain.Supplement{{ID: "s1", Name: "Collagen", Price: 29.99, Tags: []string{"skin"}}}
	b, err := export.JSON(in)
	if err != nil {
		t.Fatal(err)
	}
	var out []domain.Supplement
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || out[0].ID != "s1" || out[0].Price != 29.99 {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestAnalyticsCSVEscapesCommas(t *testing.T) {
	events := []domain.AnalyticsEvent{
		{ProductID: "s1", URL: "https://hop.example.net/?a=1,b=2", Timestamp: "2024-06-01T10:00:00Z"},
	}
	b, err := export.AnalyticsCSV(events)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("want header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "id,url,timestamp" {
		t.Fatalf("bad header: %q", lines[0])
	}
	if !strings.Contains(lines[1], `"https://hop.example.net/?a=1,b=2"`) {
		t.Fatalf("embedded comma not quoted: %q", lines[1])
	}
}

func TestAnalyticsCSVEmpty(t *testing.T) {
	b, err := export.AnalyticsCSV(nil)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(b)) != "id,url,timestamp" {
		t.Fatalf("want header only, got %q", string(b))
	}
}
