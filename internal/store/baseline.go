package store

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"health42/internal/domain"
	applog "health42/internal/log"
)

// BaselineSource reads the read-only seed datasets. Source is either a
// directory containing supplements.json/posts.json or an http(s) base
// URL. Any failure degrades to an empty collection so a missing or
// unreachable seed never takes down a page render.
type BaselineSource struct {
	Source string
	Client *http.Client
}

func NewBaselineSource(source string) *BaselineSource {
	return &BaselineSource{Source: source, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (b *BaselineSource) Supplements() []domain.Supplement {
	return fetchSeed[domain.Supplement](b, "supplements.json")
}

func (b *BaselineSource) Posts() []domain.Post {
	return fetchSeed[domain.Post](b, "posts.json")
}

func fetchSeed[T any](b *BaselineSource, name string) []T {
	raw, err := b.read(name)
	if err != nil {
		applog.Error(nil, "baseline.fetch.fail", err, map[string]any{"file": name})
		return []T{}
	}
	var out []T
	if err := json.Unmarshal(raw, &out); err != nil {
		applog.Error(nil, "baseline.decode.fail", err, map[string]any{"file": name})
		return []T{}
	}
	return out
}

func (b *BaselineSource) read(name string) ([]byte, error) {
	if strings.HasPrefix(b.Source, "http://") || strings.HasPrefix(b.Source, "https://") {
		url := strings.TrimSuffix(b.Source, "/") + "/" + name
		resp, err := b.Client.Get(url)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, fmt.Errorf("baseline fetch %s: %s", url, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
	return os.ReadFile(path.Join(b.Source, name))
}
