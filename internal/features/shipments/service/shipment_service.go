package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/shipments/classify"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/lookup"
	"shipment-tracker/internal/features/shipments/ports"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// createAttempts bounds retries when a generated tracking number collides.
	createAttempts = 3
	// writeAttempts bounds read-modify-write retries on a revision conflict.
	writeAttempts = 5
)

// ShipmentService holds the business logic for looking up and maintaining shipments.
type ShipmentService struct {
	repo      ports.ShipmentRepository
	publisher ports.EventPublisher
	detector  classify.AttentionDetector
	now       func() time.Time
}

// NewShipmentService creates a new ShipmentService. publisher may be nil, in which case
// no events are emitted.
func NewShipmentService(repo ports.ShipmentRepository, publisher ports.EventPublisher, detector classify.AttentionDetector) *ShipmentService {
	if detector == nil {
		detector = classify.DefaultAttentionDetector()
	}
	return &ShipmentService{
		repo:      repo,
		publisher: publisher,
		detector:  detector,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns every shipment.
func (s *ShipmentService) List(ctx context.Context) ([]domain.Shipment, error) {
	shipments, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}
	return shipments, nil
}

// Get returns the shipment whose tracking number equals trackingNumber, ignoring case
// and surrounding whitespace.
func (s *ShipmentService) Get(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	tn := strings.TrimSpace(trackingNumber)
	if tn == "" {
		return nil, lookup.ErrEmptyQuery
	}

	shipment, err := s.repo.GetByTrackingNumber(ctx, tn)
	if err != nil {
		if errors.Is(err, ports.ErrShipmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to get shipment: %w", err)
	}
	return shipment, nil
}

// Search resolves query against a fresh snapshot of all shipments and classifies the matches.
// An empty query fails before anything is fetched.
func (s *ShipmentService) Search(ctx context.Context, query string, mode lookup.Mode) ([]TrackedShipment, error) {
	if strings.TrimSpace(query) == "" {
		return nil, lookup.ErrEmptyQuery
	}

	snapshot, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := lookup.Resolve(query, snapshot, mode)
	if err != nil {
		return []TrackedShipment{}, err
	}

	views := make([]TrackedShipment, 0, len(matches))
	for _, m := range matches {
		views = append(views, Describe(m, s.detector))
	}
	return views, nil
}

// Create stores a new shipment with a generated tracking number.
func (s *ShipmentService) Create(ctx context.Context, in domain.ShipmentInput) (*domain.Shipment, error) {
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		shipment, err := domain.NewShipment(in, s.now())
		if err != nil {
			return nil, err
		}

		err = s.repo.Create(ctx, shipment)
		if err == nil {
			logger.Get().Info("Shipment created",
				zap.String("tracking_number", shipment.TrackingNumber),
				zap.String("id", shipment.ID),
			)
			return shipment, nil
		}
		if !errors.Is(err, ports.ErrDuplicateTrackingNumber) {
			return nil, fmt.Errorf("service: failed to create shipment: %w", err)
		}

		logger.Get().Warn("Generated tracking number collided, retrying",
			zap.String("tracking_number", shipment.TrackingNumber),
			zap.Int("attempt", attempt+1),
		)
		lastErr = err
	}
	return nil, fmt.Errorf("service: failed to create shipment: %w", lastErr)
}

// Update replaces the writable fields of the shipment identified by trackingNumber.
func (s *ShipmentService) Update(ctx context.Context, trackingNumber string, in domain.ShipmentInput) (*domain.Shipment, error) {
	shipment, err := s.mutate(ctx, trackingNumber, func(shipment *domain.Shipment) error {
		return shipment.ApplyUpdate(in, s.now())
	})
	if err != nil {
		return nil, wrapWriteError("update shipment", err)
	}
	return shipment, nil
}

// AppendEvent adds a tracking event to the shipment's history. Problem statuses are
// published as attention events; publish failures are logged and do not fail the write.
func (s *ShipmentService) AppendEvent(ctx context.Context, trackingNumber string, ev domain.TrackingEvent) (*domain.Shipment, error) {
	shipment, err := s.mutate(ctx, trackingNumber, func(shipment *domain.Shipment) error {
		return shipment.AppendEvent(ev, s.now())
	})
	if err != nil {
		return nil, wrapWriteError("append tracking event", err)
	}

	latest, _ := shipment.LatestEvent()
	if c := classify.Classify(string(latest.Status)); c.IsProblem {
		s.publishAttention(ctx, shipment, latest, c)
	}
	return shipment, nil
}

// Delete removes the shipment identified by trackingNumber.
func (s *ShipmentService) Delete(ctx context.Context, trackingNumber string) error {
	tn := strings.TrimSpace(trackingNumber)
	if tn == "" {
		return lookup.ErrEmptyQuery
	}

	if err := s.repo.Delete(ctx, tn); err != nil {
		return wrapWriteError("delete shipment", err)
	}
	return nil
}

// mutate reads the stored shipment, applies change and writes it back. A write that
// lost a race against another writer is retried on a fresh read.
func (s *ShipmentService) mutate(ctx context.Context, trackingNumber string, change func(*domain.Shipment) error) (*domain.Shipment, error) {
	tn := strings.TrimSpace(trackingNumber)
	if tn == "" {
		return nil, lookup.ErrEmptyQuery
	}

	var err error
	for attempt := 0; attempt < writeAttempts; attempt++ {
		var shipment *domain.Shipment
		shipment, err = s.repo.GetForUpdate(ctx, tn)
		if err != nil {
			return nil, err
		}
		if err = change(shipment); err != nil {
			return nil, err
		}

		err = s.repo.Update(ctx, shipment)
		if err == nil {
			return shipment, nil
		}
		if !errors.Is(err, ports.ErrRevisionConflict) {
			return nil, err
		}

		logger.Get().Warn("Shipment changed during write, retrying",
			zap.String("tracking_number", shipment.TrackingNumber),
			zap.Int("attempt", attempt+1),
		)
	}
	return nil, err
}

// wrapWriteError keeps caller-facing sentinels bare and wraps store failures.
func wrapWriteError(op string, err error) error {
	switch {
	case errors.Is(err, lookup.ErrEmptyQuery),
		errors.Is(err, ports.ErrShipmentNotFound),
		errors.Is(err, domain.ErrInvalidShipment),
		errors.Is(err, domain.ErrTrackingNumberImmutable):
		return err
	}
	return fmt.Errorf("service: failed to %s: %w", op, err)
}

// Health checks the backing store.
func (s *ShipmentService) Health(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("service: store unavailable: %w", err)
	}
	return nil
}

func (s *ShipmentService) publishAttention(ctx context.Context, shipment *domain.Shipment, ev domain.TrackingEvent, c classify.Classification) {
	if s.publisher == nil {
		return
	}

	event := ports.AttentionEvent{
		ID:             uuid.NewString(),
		TrackingNumber: shipment.TrackingNumber,
		Status:         string(ev.Status),
		Label:          c.NormalizedLabel,
		Location:       ev.Location,
		Remark:         ev.Remark,
		ReceiverEmail:  shipment.Destination.ReceiverEmail,
		OccurredAt:     ev.Date,
	}

	if err := s.publisher.PublishAttention(ctx, event); err != nil {
		logger.Get().Error("Failed to publish attention event",
			zap.String("tracking_number", shipment.TrackingNumber),
			zap.String("status", event.Status),
			zap.Error(err),
		)
	}
}
