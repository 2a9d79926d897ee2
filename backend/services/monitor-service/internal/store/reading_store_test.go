package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powermonitor/backend/services/monitor-service/internal/models"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func at(i int) models.Reading {
	return models.Reading{
		ID:        fmt.Sprintf("r-%d", i),
		Power:     float64(i),
		Timestamp: t0.Add(time.Duration(i) * time.Minute),
	}
}

func TestAppendEvictsOldestBeyondCapacity(t *testing.T) {
	s := NewMemoryReadingStore(100)
	for i := 0; i < 101; i++ {
		s.Append(at(i))
	}

	require.Equal(t, 100, s.Len())
	all := s.Query(t0.Add(-time.Hour), t0.Add(24*time.Hour))
	require.Len(t, all, 100)
	assert.Equal(t, "r-1", all[0].ID)
	assert.Equal(t, "r-100", all[99].ID)

	for i := 101; i < 350; i++ {
		s.Append(at(i))
	}
	assert.LessOrEqual(t, len(s.Query(t0.Add(-time.Hour), t0.Add(24*time.Hour))), 100)
}

func TestDefaultCapacity(t *testing.T) {
	assert.Equal(t, DefaultCapacity, NewMemoryReadingStore(0).Capacity())
	assert.Equal(t, DefaultCapacity, NewMemoryReadingStore(-3).Capacity())
}

func TestQueryIsInclusiveAndOrdered(t *testing.T) {
	s := NewMemoryReadingStore(10)
	for i := 0; i < 6; i++ {
		s.Append(at(i))
	}

	got := s.Query(at(1).Timestamp, at(4).Timestamp)
	require.Len(t, got, 4)
	for i, r := range got {
		assert.Equal(t, fmt.Sprintf("r-%d", i+1), r.ID)
	}

	assert.Empty(t, s.Query(at(10).Timestamp, at(20).Timestamp))
	assert.Empty(t, s.Query(at(4).Timestamp, at(1).Timestamp))
}

func TestAppendOutOfOrderKeepsSortedHistory(t *testing.T) {
	s := NewMemoryReadingStore(3)
	s.Append(at(5))
	s.Append(at(2))
	s.Append(at(8))
	s.Append(at(3))

	got := s.Recent(0)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"r-3", "r-5", "r-8"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestLatestAndRecent(t *testing.T) {
	s := NewMemoryReadingStore(10)
	_, ok := s.Latest()
	assert.False(t, ok)
	assert.Empty(t, s.Recent(5))

	for i := 0; i < 4; i++ {
		s.Append(at(i))
	}
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "r-3", latest.ID)

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "r-2", recent[0].ID)
	assert.Equal(t, "r-3", recent[1].ID)
	assert.Len(t, s.Recent(50), 4)
}

func TestQueryReturnsCopy(t *testing.T) {
	s := NewMemoryReadingStore(10)
	s.Append(at(1))
	got := s.Query(t0, t0.Add(time.Hour))
	got[0].Power = 999

	again := s.Query(t0, t0.Add(time.Hour))
	assert.Equal(t, 1.0, again[0].Power)
}

func TestConcurrentAppendAndQuery(t *testing.T) {
	s := NewMemoryReadingStore(50)
	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				s.Append(at(w*1000 + i))
			}
		}(w)
	}
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got := s.Query(t0, t0.Add(10000*time.Minute))
				assert.LessOrEqual(t, len(got), 50)
				for j := 1; j < len(got); j++ {
					assert.False(t, got[j].Timestamp.Before(got[j-1].Timestamp))
				}
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
