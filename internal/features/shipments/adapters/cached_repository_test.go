package adapters

import (
	"context"
	"testing"
	"time"

	"shipment-tracker/internal/core/cache"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCachedRepository(t *testing.T) (*CachedShipmentRepository, *SQLShipmentRepository, *miniredis.Miniredis) {
	t.Helper()
	store := newTestSQLRepository(t)

	mr := miniredis.RunT(t)
	redisCache, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "tracker:")
	require.NoError(t, err)
	t.Cleanup(func() { redisCache.Close() })

	return NewCachedShipmentRepository(store, redisCache, 30*time.Second), store, mr
}

func TestCachedShipmentRepository_ListPopulatesSnapshot(t *testing.T) {
	repo, store, mr := newTestCachedRepository(t)
	ctx := context.Background()

	s := sampleShipment(t, time.Now())
	require.NoError(t, store.Create(ctx, s))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, mr.Exists("tracker:"+snapshotKey(0)))
	assert.Equal(t, 30*time.Second, mr.TTL("tracker:"+snapshotKey(0)))

	// Writes that bypass the decorator are not visible until the snapshot goes.
	require.NoError(t, store.Create(ctx, sampleShipment(t, time.Now())))
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	mr.FastForward(31 * time.Second)
	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestCachedShipmentRepository_EmptySnapshotIsNonNil(t *testing.T) {
	repo, _, _ := newTestCachedRepository(t)
	ctx := context.Background()

	_, err := repo.List(ctx)
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestCachedShipmentRepository_WritesInvalidate(t *testing.T) {
	repo, _, mr := newTestCachedRepository(t)
	ctx := context.Background()

	s := sampleShipment(t, time.Now())
	require.NoError(t, repo.Create(ctx, s))
	assert.Equal(t, "1", mustGet(t, mr, "tracker:"+generationCacheKey))

	_, err := repo.List(ctx)
	require.NoError(t, err)
	require.True(t, mr.Exists("tracker:"+snapshotKey(1)))

	require.NoError(t, s.AppendEvent(domain.TrackingEvent{Location: "Kano", Status: domain.StatusDelivered}, time.Now()))
	require.NoError(t, repo.Update(ctx, s))
	assert.False(t, mr.Exists("tracker:"+snapshotKey(1)))
	assert.Equal(t, "2", mustGet(t, mr, "tracker:"+generationCacheKey))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].TrackingHistory, 2)

	require.NoError(t, repo.Delete(ctx, s.TrackingNumber))
	assert.False(t, mr.Exists("tracker:"+snapshotKey(2)))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCachedShipmentRepository_GetUsesSnapshot(t *testing.T) {
	repo, _, _ := newTestCachedRepository(t)
	ctx := context.Background()

	s := sampleShipment(t, time.Now())
	require.NoError(t, repo.Create(ctx, s))
	_, err := repo.List(ctx)
	require.NoError(t, err)

	got, err := repo.GetByTrackingNumber(ctx, " "+s.TrackingNumber+" ")
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	_, err = repo.GetByTrackingNumber(ctx, "SHIP-ZZZZZZZZ")
	assert.ErrorIs(t, err, ports.ErrShipmentNotFound)
}

func TestCachedShipmentRepository_FallsBackWhenCacheDown(t *testing.T) {
	repo, _, mr := newTestCachedRepository(t)
	ctx := context.Background()

	s := sampleShipment(t, time.Now())
	mr.Close()

	require.NoError(t, repo.Create(ctx, s))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	got, err := repo.GetByTrackingNumber(ctx, s.TrackingNumber)
	require.NoError(t, err)
	assert.Equal(t, s.ID, got.ID)

	assert.NoError(t, repo.Ping(ctx))
}

func TestCachedShipmentRepository_CorruptSnapshot(t *testing.T) {
	repo, store, mr := newTestCachedRepository(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sampleShipment(t, time.Now())))
	require.NoError(t, mr.Set("tracker:"+snapshotKey(0), "{not json"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCachedShipmentRepository_InvalidGenerationSkipsCache(t *testing.T) {
	repo, store, mr := newTestCachedRepository(t)
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, sampleShipment(t, time.Now())))
	require.NoError(t, mr.Set("tracker:"+generationCacheKey, "nope"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.False(t, mr.Exists("tracker:"+snapshotKey(0)))
}

// pausingStore holds List after it has read the store, until resume is closed.
type pausingStore struct {
	ports.ShipmentRepository
	listed chan struct{}
	resume chan struct{}
}

func (p *pausingStore) List(ctx context.Context) ([]domain.Shipment, error) {
	shipments, err := p.ShipmentRepository.List(ctx)
	close(p.listed)
	<-p.resume
	return shipments, err
}

func TestCachedShipmentRepository_SlowListDoesNotResurrectSnapshot(t *testing.T) {
	_, store, mr := newTestCachedRepository(t)
	ctx := context.Background()

	redisCache, err := cache.NewRedisAdapter("redis://"+mr.Addr(), "tracker:")
	require.NoError(t, err)
	t.Cleanup(func() { redisCache.Close() })

	slow := &pausingStore{ShipmentRepository: store, listed: make(chan struct{}), resume: make(chan struct{})}
	repo := NewCachedShipmentRepository(slow, redisCache, 30*time.Second)

	s := sampleShipment(t, time.Now())
	require.NoError(t, store.Create(ctx, s))

	done := make(chan error, 1)
	go func() {
		_, err := repo.List(ctx)
		done <- err
	}()
	<-slow.listed

	fresh, err := repo.GetForUpdate(ctx, s.TrackingNumber)
	require.NoError(t, err)
	require.NoError(t, fresh.AppendEvent(domain.TrackingEvent{Location: "Kano", Remark: "first", Status: domain.StatusInTransit}, time.Now()))
	require.NoError(t, repo.Update(ctx, fresh))

	close(slow.resume)
	require.NoError(t, <-done)

	got, err := repo.GetByTrackingNumber(ctx, s.TrackingNumber)
	require.NoError(t, err)
	require.Len(t, got.TrackingHistory, 2)
	assert.Equal(t, "first", got.TrackingHistory[1].Remark)
}

func mustGet(t *testing.T, mr *miniredis.Miniredis, key string) string {
	t.Helper()
	v, err := mr.Get(key)
	require.NoError(t, err)
	return v
}
