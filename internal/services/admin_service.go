package services

import (
	"health42/internal/admin"
	"health42/internal/domain"
	"health42/internal/store"
)

// AdminService validates operator submissions and appends them to the
// staged-edit keys. The append is read-modify-write; concurrent stagers
// in one process can lose an entry.
type AdminService struct {
	Builder *admin.RecordBuilder
	Store   *store.LocalStore
}

func NewAdminService(ls *store.LocalStore) *AdminService {
	return &AdminService{Builder: admin.NewRecordBuilder(), Store: ls}
}

func (s *AdminService) StageSupplement(fields map[string]string) (domain.Supplement, error) {
	sp, err := s.Builder.BuildSupplement(fields)
	if err != nil {
		return domain.Supplement{}, err
	}
	pending := store.Get(s.Store, store.KeyPendingSupplements, []domain.Supplement{})
	store.Set(s.Store, store.KeyPendingSupplements, append(pending, sp))
	return sp, nil
}

func (s *AdminService) StagePost(fields map[string]string) (domain.Post, error) {
	p, err := s.Builder.BuildPost(fields)
	if err != nil {
		return domain.Post{}, err
	}
	pending := store.Get(s.Store, store.KeyPendingPosts, []domain.Post{})
	store.Set(s.Store, store.KeyPendingPosts, append(pending, p))
	return p, nil
}
