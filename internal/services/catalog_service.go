package services

import (
	"sort"

	"health42/internal/catalog"
	"health42/internal/domain"
	"health42/internal/store"
)

// CatalogService owns the canonical collections for one request: the
// read-only baseline merged with locally staged edits. Collections are
// rebuilt per call and never written back except through AdminService.
type CatalogService struct {
	Baseline *store.BaselineSource
	Store    *store.LocalStore
}

func NewCatalogService(b *store.BaselineSource, ls *store.LocalStore) *CatalogService {
	return &CatalogService{Baseline: b, Store: ls}
}

// Supplements builds the canonical supplement collection. The baseline
// fetch and the staged read run concurrently; the merge waits on both.
func (s *CatalogService) Supplements() []domain.Supplement {
	var baseline []domain.Supplement
	done := make(chan struct{})
	go func() {
		baseline = s.Baseline.Supplements()
		close(done)
	}()
	staged := store.Get(s.Store, store.KeyPendingSupplements, []domain.Supplement{})
	<-done
	return catalog.Merge(baseline, staged)
}

// Posts builds the canonical post collection, same shape as Supplements.
func (s *CatalogService) Posts() []domain.Post {
	var baseline []domain.Post
	done := make(chan struct{})
	go func() {
		baseline = s.Baseline.Posts()
		close(done)
	}()
	staged := store.Get(s.Store, store.KeyPendingPosts, []domain.Post{})
	<-done
	return catalog.Merge(baseline, staged)
}

// CatalogPage is the filtered, sorted, paginated storefront view.
func (s *CatalogService) CatalogPage(crit catalog.Criteria, page, pageSize int) catalog.Page[domain.Supplement] {
	return catalog.Paginate(catalog.Query(s.Supplements(), crit), page, pageSize)
}

func (s *CatalogService) BlogPage(page, pageSize int) catalog.Page[domain.Post] {
	return catalog.Paginate(s.Posts(), page, pageSize)
}

// Featured returns the top-n supplements by rating for the homepage.
func (s *CatalogService) Featured(n int) []domain.Supplement {
	all := catalog.Query(s.Supplements(), catalog.Criteria{Sort: catalog.SortRatingDesc})
	if len(all) > n {
		all = all[:n]
	}
	return all
}

// LatestPosts returns the n newest posts (canonical order is already
// newest-first).
func (s *CatalogService) LatestPosts(n int) []domain.Post {
	all := s.Posts()
	if len(all) > n {
		all = all[:n]
	}
	return all
}

func (s *CatalogService) Supplement(id string) (domain.Supplement, bool) {
	for _, sp := range s.Supplements() {
		if sp.ID == id {
			return sp, true
		}
	}
	return domain.Supplement{}, false
}

func (s *CatalogService) Post(id string) (domain.Post, bool) {
	for _, p := range s.Posts() {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Post{}, false
}

// Categories lists the fixed category set, sorted for stable rendering.
func (s *CatalogService) Categories() []string {
	out := append([]string{}, domain.Categories...)
	sort.Strings(out)
	return out
}
