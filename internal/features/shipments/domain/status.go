package domain

import "strings"

// Status is a delivery-lifecycle code attached to a tracking event.
type Status string

const (
	// StatusShipmentCreated indicates the shipment record has been registered.
	StatusShipmentCreated Status = "shipment-created"
	// StatusProcessingOrigin indicates the shipment is being processed at origin.
	StatusProcessingOrigin Status = "processing-origin"
	// StatusInTransit indicates the shipment is moving between facilities.
	StatusInTransit Status = "in-transit"
	// StatusArrivedDestinationCountry indicates the shipment reached the destination country.
	StatusArrivedDestinationCountry Status = "arrived-destination-country"
	// StatusProcessingDestination indicates the shipment is being processed at destination.
	StatusProcessingDestination Status = "processing-destination"
	// StatusOutForDelivery indicates the shipment is with the final-mile courier.
	StatusOutForDelivery Status = "out-for-delivery"
	// StatusDelivered indicates the shipment reached the receiver.
	StatusDelivered Status = "delivered"

	StatusFailedDeliveryAttempt Status = "failed-delivery-attempt"
	StatusDelayed               Status = "delayed"
	StatusHeldByCustoms         Status = "held-by-customs"
	StatusAwaitingPickup        Status = "awaiting-pickup"
	StatusReturnedToSender      Status = "returned-to-sender"
	StatusCancelled             Status = "cancelled"
	StatusLost                  Status = "lost"
	StatusDamaged               Status = "damaged"
	StatusOnHold                Status = "on-hold"
)

// Statuses lists the closed set of status codes accepted on write, in display order.
var Statuses = []Status{
	StatusShipmentCreated,
	StatusProcessingOrigin,
	StatusInTransit,
	StatusArrivedDestinationCountry,
	StatusProcessingDestination,
	StatusOutForDelivery,
	StatusDelivered,
	StatusFailedDeliveryAttempt,
	StatusDelayed,
	StatusHeldByCustoms,
	StatusAwaitingPickup,
	StatusReturnedToSender,
	StatusCancelled,
	StatusLost,
	StatusDamaged,
	StatusOnHold,
}

var knownStatuses = func() map[Status]bool {
	m := make(map[Status]bool, len(Statuses))
	for _, s := range Statuses {
		m[s] = true
	}
	return m
}()

// ParseStatus lowercases and trims raw and reports whether it belongs to the closed set.
// The normalized value is returned either way so callers can pass it through.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, knownStatuses[s]
}

// IsKnown reports whether s is a member of the closed status set.
func (s Status) IsKnown() bool {
	return knownStatuses[s]
}
