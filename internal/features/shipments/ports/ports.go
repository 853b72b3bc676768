package ports

import (
	"context"
	"errors"
	"time"

	"shipment-tracker/internal/features/shipments/domain"
)

var (
	// ErrShipmentNotFound is returned by repositories and fetchers when no record has the tracking number.
	ErrShipmentNotFound = errors.New("shipment not found")
	// ErrDuplicateTrackingNumber is returned when a tracking number is already stored.
	ErrDuplicateTrackingNumber = errors.New("tracking number already exists")
	// ErrUpstream is returned when a collaborator fails or answers with malformed data.
	ErrUpstream = errors.New("shipment data unavailable")
	// ErrRevisionConflict is returned by Update when the record changed since it was read.
	ErrRevisionConflict = errors.New("shipment was modified concurrently")
)

// ShipmentNotFoundMessage is the API message sent with a 404 for an unknown tracking number.
const ShipmentNotFoundMessage = "Shipment not found"

// ShipmentRepository is the secondary port for shipment persistence.
type ShipmentRepository interface {
	// List returns every stored shipment ordered by creation time.
	List(ctx context.Context) ([]domain.Shipment, error)
	// GetByTrackingNumber matches the tracking number case-insensitively. The result may
	// come from a cached snapshot.
	GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	// GetForUpdate reads the current stored record, never a cached copy, so that its
	// Revision can be passed back to Update.
	GetForUpdate(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	// Create stores a new shipment.
	Create(ctx context.Context, shipment *domain.Shipment) error
	// Update overwrites an existing shipment, keyed by its ID, only if its Revision still
	// matches the stored one. On success Revision is advanced; a mismatch returns
	// ErrRevisionConflict.
	Update(ctx context.Context, shipment *domain.Shipment) error
	// Delete removes the shipment with the given tracking number.
	Delete(ctx context.Context, trackingNumber string) error
	// Ping checks that the store is reachable.
	Ping(ctx context.Context) error
}

// ShipmentFetcher is the read-only view of shipments used by presentation clients.
type ShipmentFetcher interface {
	// List fetches every shipment.
	List(ctx context.Context) ([]domain.Shipment, error)
	// Get fetches one shipment by tracking number.
	Get(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
}

// AttentionEvent is emitted when a problem status is appended to a shipment's history.
type AttentionEvent struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	Label          string    `json:"label"`
	Location       string    `json:"location,omitempty"`
	Remark         string    `json:"remark,omitempty"`
	ReceiverEmail  string    `json:"receiverEmail,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// EventPublisher is the secondary port for outbound shipment events.
type EventPublisher interface {
	PublishAttention(ctx context.Context, event AttentionEvent) error
}
