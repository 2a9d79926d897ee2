package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"powermonitor/backend/services/monitor-service/internal/billing"
	"powermonitor/backend/services/monitor-service/internal/models"
	"powermonitor/backend/services/monitor-service/internal/store"
)

func TestPricingUpdateAcceptsAndPersists(t *testing.T) {
	repo := &fakeScheduleRepo{}
	slabs := store.NewMemorySlabStore(models.DefaultSchedule())
	svc := NewPricingService(slabs, repo, zap.NewNop())

	candidate := []models.PricingSlab{
		models.OpenEnded(10, 6),
		models.Bounded(0, 10, 4),
	}
	got, err := svc.Update(context.Background(), candidate)
	require.NoError(t, err)

	want := models.PricingSchedule{models.Bounded(0, 10, 4), models.OpenEnded(10, 6)}
	assert.Equal(t, want, got)
	assert.Equal(t, want, svc.Current())
	require.Len(t, repo.saved, 1)
	assert.Equal(t, want, repo.saved[0])
}

func TestPricingUpdateRejectionKeepsPrevious(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := NewPricingService(store.NewMemorySlabStore(models.DefaultSchedule()), repo, zap.NewNop())

	_, err := svc.Update(context.Background(), []models.PricingSlab{
		models.Bounded(0, 20, 3.5),
		models.OpenEnded(25, 5),
	})
	require.True(t, errors.Is(err, billing.ErrValidation))
	assert.Equal(t, models.DefaultSchedule(), svc.Current())
	assert.Empty(t, repo.saved)
}

func TestPricingUpdatePersistFailureKeepsPrevious(t *testing.T) {
	repo := &fakeScheduleRepo{saveErr: errors.New("db down")}
	svc := NewPricingService(store.NewMemorySlabStore(models.DefaultSchedule()), repo, zap.NewNop())

	_, err := svc.Update(context.Background(), []models.PricingSlab{models.OpenEnded(0, 1)})
	require.Error(t, err)
	assert.False(t, errors.Is(err, billing.ErrValidation))
	assert.Equal(t, models.DefaultSchedule(), svc.Current())
}

func TestPricingUpdateWithoutRepository(t *testing.T) {
	svc := NewPricingService(store.NewMemorySlabStore(models.DefaultSchedule()), nil, zap.NewNop())
	_, err := svc.Update(context.Background(), []models.PricingSlab{models.OpenEnded(0, 1)})
	require.NoError(t, err)
	assert.Equal(t, models.PricingSchedule{models.OpenEnded(0, 1)}, svc.Current())
}

func TestPricingRestore(t *testing.T) {
	stored := models.PricingSchedule{models.Bounded(0, 5, 1), models.OpenEnded(5, 2)}
	repo := &fakeScheduleRepo{latest: stored}
	svc := NewPricingService(store.NewMemorySlabStore(models.DefaultSchedule()), repo, zap.NewNop())

	require.NoError(t, svc.Restore(context.Background()))
	assert.Equal(t, stored, svc.Current())
}

func TestPricingRestoreKeepsDefaultWhenNothingUsable(t *testing.T) {
	ctx := context.Background()

	empty := NewPricingService(store.NewMemorySlabStore(models.DefaultSchedule()), &fakeScheduleRepo{}, zap.NewNop())
	require.NoError(t, empty.Restore(ctx))
	assert.Equal(t, models.DefaultSchedule(), empty.Current())

	broken := &fakeScheduleRepo{latest: models.PricingSchedule{models.Bounded(0, 5, 1)}}
	invalid := NewPricingService(store.NewMemorySlabStore(models.DefaultSchedule()), broken, zap.NewNop())
	require.NoError(t, invalid.Restore(ctx))
	assert.Equal(t, models.DefaultSchedule(), invalid.Current())

	failing := NewPricingService(store.NewMemorySlabStore(models.DefaultSchedule()), &fakeScheduleRepo{loadErr: errors.New("db down")}, zap.NewNop())
	require.Error(t, failing.Restore(ctx))
}
