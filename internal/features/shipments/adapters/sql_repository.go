package adapters

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"shipment-tracker/internal/core/database"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/ports"
)

const shipmentSchema = `
CREATE TABLE IF NOT EXISTS shipments (
	id               TEXT PRIMARY KEY,
	tracking_number  TEXT NOT NULL,
	tracking_key     TEXT NOT NULL UNIQUE,
	details          TEXT NOT NULL,
	destination      TEXT NOT NULL,
	origin           TEXT NOT NULL,
	tracking_history TEXT NOT NULL,
	created_at       TEXT NOT NULL,
	updated_at       TEXT NOT NULL,
	revision         INTEGER NOT NULL DEFAULT 1
)`

// storedTimeLayout is fixed width so that text ordering matches time ordering.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const shipmentColumns = `id, tracking_number, details, destination, origin, tracking_history, created_at, updated_at, revision`

// SQLShipmentRepository implements ports.ShipmentRepository on top of database/sql.
// Nested groups and the tracking history are stored as JSON text columns.
type SQLShipmentRepository struct {
	db *database.DB
}

// NewSQLShipmentRepository creates the repository and ensures its table exists.
func NewSQLShipmentRepository(ctx context.Context, db *database.DB) (*SQLShipmentRepository, error) {
	if _, err := db.ExecContext(ctx, shipmentSchema); err != nil {
		return nil, fmt.Errorf("failed to apply shipment schema: %w", err)
	}
	return &SQLShipmentRepository{db: db}, nil
}

// trackingKey is the case-folded form used for uniqueness and lookups.
func trackingKey(trackingNumber string) string {
	return strings.ToUpper(strings.TrimSpace(trackingNumber))
}

// List returns every shipment ordered by creation time.
func (r *SQLShipmentRepository) List(ctx context.Context) ([]domain.Shipment, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+shipmentColumns+` FROM shipments ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query shipments: %w", err)
	}
	defer rows.Close()

	shipments := make([]domain.Shipment, 0)
	for rows.Next() {
		s, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shipments: %w", err)
	}
	return shipments, nil
}

// GetForUpdate is GetByTrackingNumber; the store has no cached layer to bypass.
func (r *SQLShipmentRepository) GetForUpdate(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	return r.GetByTrackingNumber(ctx, trackingNumber)
}

// GetByTrackingNumber matches the tracking number case-insensitively.
func (r *SQLShipmentRepository) GetByTrackingNumber(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	query := r.db.Rebind(`SELECT ` + shipmentColumns + ` FROM shipments WHERE tracking_key = ?`)

	s, err := scanShipment(r.db.QueryRowContext(ctx, query, trackingKey(trackingNumber)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ports.ErrShipmentNotFound, trackingNumber)
	}
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Create inserts a new shipment.
func (r *SQLShipmentRepository) Create(ctx context.Context, shipment *domain.Shipment) error {
	cols, err := encodeShipment(shipment)
	if err != nil {
		return err
	}

	query := r.db.Rebind(`
		INSERT INTO shipments (
			id, tracking_number, tracking_key, details, destination, origin,
			tracking_history, created_at, updated_at, revision
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 1)`)

	_, err = r.db.ExecContext(ctx, query,
		shipment.ID,
		shipment.TrackingNumber,
		trackingKey(shipment.TrackingNumber),
		cols.details,
		cols.destination,
		cols.origin,
		cols.history,
		formatTime(shipment.CreatedAt),
		formatTime(shipment.UpdatedAt),
	)
	if err != nil {
		if r.db.IsUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ports.ErrDuplicateTrackingNumber, shipment.TrackingNumber)
		}
		return fmt.Errorf("failed to insert shipment: %w", err)
	}
	shipment.Revision = 1
	return nil
}

// Update overwrites the mutable columns of an existing shipment when the stored revision
// still equals shipment.Revision. The tracking number column is never written after creation.
func (r *SQLShipmentRepository) Update(ctx context.Context, shipment *domain.Shipment) error {
	cols, err := encodeShipment(shipment)
	if err != nil {
		return err
	}

	query := r.db.Rebind(`
		UPDATE shipments
		SET details = ?, destination = ?, origin = ?, tracking_history = ?, updated_at = ?,
			revision = revision + 1
		WHERE id = ? AND revision = ?`)

	result, err := r.db.ExecContext(ctx, query,
		cols.details,
		cols.destination,
		cols.origin,
		cols.history,
		formatTime(shipment.UpdatedAt),
		shipment.ID,
		shipment.Revision,
	)
	if err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}
	if rowsAffected == 0 {
		return r.missedUpdate(ctx, shipment)
	}
	shipment.Revision++
	return nil
}

// missedUpdate tells a deleted record apart from one written since it was read.
func (r *SQLShipmentRepository) missedUpdate(ctx context.Context, shipment *domain.Shipment) error {
	var exists int
	err := r.db.QueryRowContext(ctx, r.db.Rebind(`SELECT 1 FROM shipments WHERE id = ?`), shipment.ID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ports.ErrShipmentNotFound, shipment.TrackingNumber)
	}
	if err != nil {
		return fmt.Errorf("failed to update shipment: %w", err)
	}
	return fmt.Errorf("%w: %s at revision %d", ports.ErrRevisionConflict, shipment.TrackingNumber, shipment.Revision)
}

// Delete removes the shipment with the given tracking number.
func (r *SQLShipmentRepository) Delete(ctx context.Context, trackingNumber string) error {
	result, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM shipments WHERE tracking_key = ?`), trackingKey(trackingNumber))
	if err != nil {
		return fmt.Errorf("failed to delete shipment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete shipment: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", ports.ErrShipmentNotFound, trackingNumber)
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *SQLShipmentRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

type encodedColumns struct {
	details     string
	destination string
	origin      string
	history     string
}

func encodeShipment(s *domain.Shipment) (encodedColumns, error) {
	var cols encodedColumns
	history := s.TrackingHistory
	if history == nil {
		history = []domain.TrackingEvent{}
	}

	parts := []struct {
		name  string
		value interface{}
		dst   *string
	}{
		{"details", s.Details, &cols.details},
		{"destination", s.Destination, &cols.destination},
		{"origin", s.Origin, &cols.origin},
		{"tracking history", history, &cols.history},
	}
	for _, p := range parts {
		data, err := json.Marshal(p.value)
		if err != nil {
			return cols, fmt.Errorf("%s serialization error: %w", p.name, err)
		}
		*p.dst = string(data)
	}
	return cols, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanShipment(row rowScanner) (*domain.Shipment, error) {
	var (
		s                                     domain.Shipment
		details, destination, origin, history string
		createdAt, updatedAt                  string
	)

	err := row.Scan(&s.ID, &s.TrackingNumber, &details, &destination, &origin, &history, &createdAt, &updatedAt, &s.Revision)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("shipment retrieval error: %w", err)
	}

	parts := []struct {
		name string
		raw  string
		dst  interface{}
	}{
		{"details", details, &s.Details},
		{"destination", destination, &s.Destination},
		{"origin", origin, &s.Origin},
		{"tracking history", history, &s.TrackingHistory},
	}
	for _, p := range parts {
		if err := json.Unmarshal([]byte(p.raw), p.dst); err != nil {
			return nil, fmt.Errorf("%s deserialization error for %s: %w", p.name, s.TrackingNumber, err)
		}
	}

	if s.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(storedTimeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(storedTimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", s, err)
	}
	return t, nil
}
