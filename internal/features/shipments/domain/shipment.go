package domain

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrInvalidShipment is returned when a shipment fails data-contract validation.
	ErrInvalidShipment = errors.New("invalid shipment")
	// ErrTrackingNumberImmutable is returned when an update tries to change the tracking number.
	ErrTrackingNumberImmutable = errors.New("tracking number cannot be changed")
)

// weightPattern accepts a number optionally followed by a unit, e.g. "2.5 kg".
var weightPattern = regexp.MustCompile(`^\d+(\.\d+)?\s*[A-Za-z]*$`)

// Shipment is a stored shipment record together with its tracking history.
type Shipment struct {
	// ID is the opaque record identifier.
	ID string `json:"id"`
	// TrackingNumber is the public identifier, assigned on creation and never changed.
	TrackingNumber string `json:"trackingNumber"`
	// Details describes the shipped goods.
	Details ShipmentDetails `json:"shipmentDetails"`
	// Destination holds receiver information.
	Destination Destination `json:"destination"`
	// Origin holds sender information.
	Origin Origin `json:"origin"`
	// TrackingHistory is kept in insertion order, which is not necessarily date order.
	TrackingHistory []TrackingEvent `json:"trackingHistory"`
	// CreatedAt is when the record was first stored.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time `json:"updatedAt"`
	// Revision is the store's write counter, used to reject updates based on a stale read.
	Revision int64 `json:"-"`
}

// ShipmentDetails describes what is being shipped.
type ShipmentDetails struct {
	Quantity    int    `json:"quantity"`
	Weight      string `json:"weight"`
	ServiceType string `json:"serviceType"`
	Description string `json:"description,omitempty"`
}

// Destination identifies the receiving party.
type Destination struct {
	ReceiverName         string     `json:"receiverName"`
	ReceiverEmail        string     `json:"receiverEmail"`
	ReceiverAddress      string     `json:"receiverAddress,omitempty"`
	ExpectedDeliveryDate *time.Time `json:"expectedDeliveryDate,omitempty"`
}

// Origin identifies the sending party.
type Origin struct {
	SenderName   string     `json:"senderName"`
	Location     string     `json:"location,omitempty"`
	ShipmentDate *time.Time `json:"shipmentDate,omitempty"`
}

// TrackingEvent is one entry of a shipment's history.
type TrackingEvent struct {
	Date     time.Time `json:"date"`
	Location string    `json:"location"`
	Remark   string    `json:"remark"`
	Status   Status    `json:"status"`
}

// ShipmentInput carries the writable fields of a shipment.
type ShipmentInput struct {
	TrackingNumber  string          `json:"trackingNumber,omitempty"`
	Details         ShipmentDetails `json:"shipmentDetails"`
	Destination     Destination     `json:"destination"`
	Origin          Origin          `json:"origin"`
	TrackingHistory []TrackingEvent `json:"trackingHistory"`
}

// NewShipment builds a validated shipment with a generated id and tracking number.
// Any tracking number present in the input is ignored.
func NewShipment(in ShipmentInput, now time.Time) (*Shipment, error) {
	trackingNumber, err := NewTrackingNumber()
	if err != nil {
		return nil, err
	}

	s := &Shipment{
		ID:              uuid.NewString(),
		TrackingNumber:  trackingNumber,
		Details:         in.Details,
		Destination:     in.Destination,
		Origin:          in.Origin,
		TrackingHistory: normalizeHistory(in.TrackingHistory),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// ApplyUpdate replaces the writable fields of s. The tracking number is kept as is;
// an input carrying a different one is rejected.
func (s *Shipment) ApplyUpdate(in ShipmentInput, now time.Time) error {
	if in.TrackingNumber != "" && !strings.EqualFold(in.TrackingNumber, s.TrackingNumber) {
		return ErrTrackingNumberImmutable
	}

	updated := *s
	updated.Details = in.Details
	updated.Destination = in.Destination
	updated.Origin = in.Origin
	updated.TrackingHistory = normalizeHistory(in.TrackingHistory)
	updated.UpdatedAt = now

	if err := updated.Validate(); err != nil {
		return err
	}
	*s = updated
	return nil
}

// AppendEvent adds ev to the end of the history.
func (s *Shipment) AppendEvent(ev TrackingEvent, now time.Time) error {
	ev.Status, _ = ParseStatus(string(ev.Status))
	if err := validateEvent(len(s.TrackingHistory), ev); err != nil {
		return err
	}
	if ev.Date.IsZero() {
		ev.Date = now
	}

	s.TrackingHistory = append(s.TrackingHistory, ev)
	s.UpdatedAt = now
	return nil
}

// LatestEvent returns the last entered history entry, or false when the history is empty.
func (s *Shipment) LatestEvent() (TrackingEvent, bool) {
	if len(s.TrackingHistory) == 0 {
		return TrackingEvent{}, false
	}
	return s.TrackingHistory[len(s.TrackingHistory)-1], true
}

// Clone returns a deep copy so callers can hand out snapshots safely.
func (s *Shipment) Clone() Shipment {
	c := *s
	if s.TrackingHistory != nil {
		c.TrackingHistory = make([]TrackingEvent, len(s.TrackingHistory))
		copy(c.TrackingHistory, s.TrackingHistory)
	}
	return c
}

// Validate checks the persistence field contract.
func (s *Shipment) Validate() error {
	if !ValidTrackingNumber(s.TrackingNumber) {
		return invalid("trackingNumber", "must look like SHIP-XXXXXXXX")
	}
	if s.Details.Quantity <= 0 {
		return invalid("shipmentDetails.quantity", "must be a positive integer")
	}
	if !weightPattern.MatchString(strings.TrimSpace(s.Details.Weight)) {
		return invalid("shipmentDetails.weight", "must be a number optionally followed by a unit")
	}
	if strings.TrimSpace(s.Details.ServiceType) == "" {
		return invalid("shipmentDetails.serviceType", "is required")
	}
	if strings.TrimSpace(s.Destination.ReceiverName) == "" {
		return invalid("destination.receiverName", "is required")
	}
	if _, err := mail.ParseAddress(s.Destination.ReceiverEmail); err != nil {
		return invalid("destination.receiverEmail", "must be a valid email address")
	}
	if strings.TrimSpace(s.Origin.SenderName) == "" {
		return invalid("origin.senderName", "is required")
	}
	for i, ev := range s.TrackingHistory {
		if err := validateEvent(i, ev); err != nil {
			return err
		}
	}
	return nil
}

func validateEvent(index int, ev TrackingEvent) error {
	if !ev.Status.IsKnown() {
		return invalid(fmt.Sprintf("trackingHistory[%d].status", index), fmt.Sprintf("unknown status %q", ev.Status))
	}
	return nil
}

func normalizeHistory(events []TrackingEvent) []TrackingEvent {
	out := make([]TrackingEvent, len(events))
	for i, ev := range events {
		ev.Status, _ = ParseStatus(string(ev.Status))
		out[i] = ev
	}
	return out
}

func invalid(field, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidShipment, field, reason)
}
