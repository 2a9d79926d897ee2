package store

import (
	"sort"
	"sync"
	"time"

	"powermonitor/backend/services/monitor-service/internal/models"
)

// DefaultCapacity is the number of readings retained when none is configured.
const DefaultCapacity = 100

// ReadingStore is a bounded, time-ordered reading history.
type ReadingStore interface {
	Append(reading models.Reading)
	Query(start, end time.Time) []models.Reading
	Latest() (models.Reading, bool)
	Recent(limit int) []models.Reading
	Len() int
	Capacity() int
}

// MemoryReadingStore keeps at most capacity readings sorted by timestamp and
// evicts the oldest once full. It is safe for concurrent use.
type MemoryReadingStore struct {
	mu       sync.RWMutex
	readings []models.Reading
	capacity int
}

var _ ReadingStore = (*MemoryReadingStore)(nil)

// NewMemoryReadingStore builds a store; non-positive capacity falls back to DefaultCapacity.
func NewMemoryReadingStore(capacity int) *MemoryReadingStore {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &MemoryReadingStore{
		readings: make([]models.Reading, 0, capacity),
		capacity: capacity,
	}
}

// Append inserts the reading in timestamp order. Readings sharing a timestamp
// keep their arrival order.
func (s *MemoryReadingStore) Append(reading models.Reading) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.readings)
	if n == 0 || !reading.Timestamp.Before(s.readings[n-1].Timestamp) {
		s.readings = append(s.readings, reading)
	} else {
		i := sort.Search(n, func(i int) bool { return s.readings[i].Timestamp.After(reading.Timestamp) })
		s.readings = append(s.readings, models.Reading{})
		copy(s.readings[i+1:], s.readings[i:])
		s.readings[i] = reading
	}

	if over := len(s.readings) - s.capacity; over > 0 {
		// Shift in place so the backing array does not grow without bound.
		copy(s.readings, s.readings[over:])
		s.readings = s.readings[:s.capacity]
	}
}

// Query returns a copy of the readings with start <= timestamp <= end, ascending.
func (s *MemoryReadingStore) Query(start, end time.Time) []models.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lo := sort.Search(len(s.readings), func(i int) bool { return !s.readings[i].Timestamp.Before(start) })
	hi := sort.Search(len(s.readings), func(i int) bool { return s.readings[i].Timestamp.After(end) })
	if lo >= hi {
		return []models.Reading{}
	}
	return append([]models.Reading(nil), s.readings[lo:hi]...)
}

// Latest returns the most recent reading, if any.
func (s *MemoryReadingStore) Latest() (models.Reading, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.readings) == 0 {
		return models.Reading{}, false
	}
	return s.readings[len(s.readings)-1], true
}

// Recent returns up to limit most recent readings in ascending order. A
// non-positive limit returns everything retained.
func (s *MemoryReadingStore) Recent(limit int) []models.Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()

	from := 0
	if limit > 0 && limit < len(s.readings) {
		from = len(s.readings) - limit
	}
	return append([]models.Reading{}, s.readings[from:]...)
}

// Len returns the number of retained readings.
func (s *MemoryReadingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.readings)
}

// Capacity returns the retention bound.
func (s *MemoryReadingStore) Capacity() int {
	return s.capacity
}
