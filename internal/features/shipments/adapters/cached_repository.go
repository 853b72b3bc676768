package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shipment-tracker/internal/core/cache"
	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/ports"

	"go.uber.org/zap"
)

const (
	generationCacheKey = "shipments:generation"
	snapshotKeyPrefix  = "shipments:snapshot:"
)

// snapshotKey names the snapshot built while the write generation was gen.
func snapshotKey(gen int64) string {
	return snapshotKeyPrefix + strconv.FormatInt(gen, 10)
}

// CachedShipmentRepository wraps a ShipmentRepository with a cached snapshot of List.
// Snapshots are keyed by a write generation that every write increments after the
// store commits, so a List that read the store before a write can only cache under
// a generation nobody reads again. Cache failures are logged and the store is used
// instead.
type CachedShipmentRepository struct {
	store ports.ShipmentRepository
	cache cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCachedShipmentRepository creates a new CachedShipmentRepository.
func NewCachedShipmentRepository(store ports.ShipmentRepository, c cache.Cache, ttl time.Duration) *CachedShipmentRepository {
	return &CachedShipmentRepository{
		store: store,
		cache: c,
		ttl:   ttl,
		log:   logger.Named("shipment_cache"),
	}
}

// List serves the snapshot when cached, otherwise loads it from the store and caches it.
func (r *CachedShipmentRepository) List(ctx context.Context) ([]domain.Shipment, error) {
	gen, ok := r.generation(ctx)
	if ok {
		if shipments, hit := r.snapshot(ctx, gen); hit {
			return shipments, nil
		}
	}

	shipments, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return shipments, nil
	}

	data, err := json.Marshal(shipments)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal shipment snapshot: %w", err)
	}
	if err := r.cache.Set(ctx, snapshotKey(gen), data, r.ttl); err != nil {
		r.log.Warn("Failed to cache shipment snapshot", zap.Error(err))
	}
	return shipments, nil
}

// GetByTrackingNumber looks in the current snapshot first and falls back to the store.
func (r *CachedShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	if gen, ok := r.generation(ctx); ok {
		if shipments, hit := r.snapshot(ctx, gen); hit {
			key := strings.TrimSpace(trackingNumber)
			for i := range shipments {
				if strings.EqualFold(shipments[i].TrackingNumber, key) {
					return &shipments[i], nil
				}
			}
		}
	}
	return r.store.GetByTrackingNumber(ctx, trackingNumber)
}

// GetForUpdate always reads the store.
func (r *CachedShipmentRepository) GetForUpdate(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	return r.store.GetForUpdate(ctx, trackingNumber)
}

// Create stores the shipment and invalidates the snapshot.
func (r *CachedShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	if err := r.store.Create(ctx, shipment); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Update stores the shipment and invalidates the snapshot.
func (r *CachedShipmentRepository) Update(ctx context.Context, shipment *domain.Shipment) error {
	if err := r.store.Update(ctx, shipment); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Delete removes the shipment and invalidates the snapshot.
func (r *CachedShipmentRepository) Delete(ctx context.Context, trackingNumber string) error {
	if err := r.store.Delete(ctx, trackingNumber); err != nil {
		return err
	}
	r.invalidate(ctx)
	return nil
}

// Ping checks the store and the cache. Only a store failure is reported.
func (r *CachedShipmentRepository) Ping(ctx context.Context) error {
	if err := r.cache.Ping(ctx); err != nil {
		r.log.Warn("Shipment cache unreachable", zap.Error(err))
	}
	return r.store.Ping(ctx)
}

// generation reads the current write generation. A missing counter is generation 0.
// ok is false when the cache cannot be trusted for this call.
func (r *CachedShipmentRepository) generation(ctx context.Context) (int64, bool) {
	data, err := r.cache.Get(ctx, generationCacheKey)
	if errors.Is(err, cache.ErrCacheMiss) {
		return 0, true
	}
	if err != nil {
		r.log.Warn("Failed to read shipment cache generation", zap.Error(err))
		return 0, false
	}

	gen, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		r.log.Warn("Invalid shipment cache generation", zap.ByteString("value", data), zap.Error(err))
		return 0, false
	}
	return gen, true
}

func (r *CachedShipmentRepository) snapshot(ctx context.Context, gen int64) ([]domain.Shipment, bool) {
	data, err := r.cache.Get(ctx, snapshotKey(gen))
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.log.Warn("Failed to read shipment snapshot", zap.Error(err))
		}
		return nil, false
	}

	var shipments []domain.Shipment
	if err := json.Unmarshal(data, &shipments); err != nil {
		r.log.Warn("Discarding corrupt shipment snapshot", zap.Error(err))
		if err := r.cache.Delete(ctx, snapshotKey(gen)); err != nil {
			r.log.Warn("Failed to drop corrupt shipment snapshot", zap.Error(err))
		}
		return nil, false
	}
	if shipments == nil {
		shipments = []domain.Shipment{}
	}
	return shipments, true
}

// invalidate moves to the next generation and drops the snapshot of the previous one.
func (r *CachedShipmentRepository) invalidate(ctx context.Context) {
	gen, err := r.cache.Incr(ctx, generationCacheKey)
	if err != nil {
		r.log.Warn("Failed to advance shipment cache generation", zap.Error(err))
		return
	}
	if err := r.cache.Delete(ctx, snapshotKey(gen-1)); err != nil {
		r.log.Warn("Failed to drop previous shipment snapshot", zap.Error(err))
	}
}
