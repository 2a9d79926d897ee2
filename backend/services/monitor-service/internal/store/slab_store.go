package store

import (
	"sync"

	"powermonitor/backend/services/monitor-service/internal/models"
)

// SlabStore holds the active pricing schedule.
type SlabStore interface {
	Current() models.PricingSchedule
	Replace(schedule models.PricingSchedule)
}

// MemorySlabStore swaps whole schedules under a lock; readers always get a
// private copy, so a replacement never changes a schedule that is being billed.
type MemorySlabStore struct {
	mu       sync.RWMutex
	schedule models.PricingSchedule
}

var _ SlabStore = (*MemorySlabStore)(nil)

// NewMemorySlabStore builds a store seeded with an already validated schedule.
func NewMemorySlabStore(initial models.PricingSchedule) *MemorySlabStore {
	return &MemorySlabStore{schedule: initial.Clone()}
}

// Current returns a copy of the active schedule.
func (s *MemorySlabStore) Current() models.PricingSchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.schedule.Clone()
}

// Replace installs a new schedule. Callers validate before replacing.
func (s *MemorySlabStore) Replace(schedule models.PricingSchedule) {
	next := schedule.Clone()
	s.mu.Lock()
	s.schedule = next
	s.mu.Unlock()
}
