package services

import (
	"sync"
	"time"

	"health42/internal/catalog"
	"health42/internal/domain"
	"health42/internal/store"
)

// AnalyticsService appends an event for every outbound affiliate click.
// Events buffer in memory and a debouncer coalesces rapid clicks into a
// single store write; the log is append-only and exported on demand.
type AnalyticsService struct {
	Store *store.LocalStore

	mu  sync.Mutex
	buf []domain.AnalyticsEvent
	deb *catalog.Debouncer
	now func() time.Time

	// flushMu serializes the store read-append-write: a timer-fired
	// flush racing Events/Close must not base its Set on a stale Get.
	flushMu sync.Mutex
}

func NewAnalyticsService(ls *store.LocalStore, flushDelay time.Duration) *AnalyticsService {
	s := &AnalyticsService{Store: ls, now: time.Now}
	s.deb = catalog.NewDebouncer(flushDelay, s.flush)
	return s
}

func (s *AnalyticsService) RecordClick(productID, url string) {
	s.mu.Lock()
	s.buf = append(s.buf, domain.AnalyticsEvent{
		ProductID: productID,
		URL:       url,
		Timestamp: s.now().UTC().Format(time.RFC3339),
	})
	s.mu.Unlock()
	s.deb.Trigger()
}

// Events flushes anything pending and returns the full click log.
func (s *AnalyticsService) Events() []domain.AnalyticsEvent {
	s.deb.Stop()
	s.flush()
	return store.Get(s.Store, store.KeyAnalytics, []domain.AnalyticsEvent{})
}

// Close flushes the buffer; call on shutdown.
func (s *AnalyticsService) Close() {
	s.deb.Stop()
	s.flush()
}

func (s *AnalyticsService) flush() {
	s.flushMu.Lock()
	defer s.flushMu.Unlock()

	s.mu.Lock()
	pending := s.buf
	s.buf = nil
	s.mu.Unlock()
	if len(pending) == 0 {
		return
	}
	events := store.Get(s.Store, store.KeyAnalytics, []domain.AnalyticsEvent{})
	store.Set(s.Store, store.KeyAnalytics, append(events, pending...))
}
