package service

import (
	"shipment-tracker/internal/features/shipments/classify"
	"shipment-tracker/internal/features/shipments/domain"
)

// EventView is a tracking event together with its classification.
type EventView struct {
	domain.TrackingEvent
	Classification classify.Classification `json:"classification"`
	Stage          classify.Stage          `json:"stage"`
}

// TrackedShipment is the classified, read-only view of a shipment returned by searches.
type TrackedShipment struct {
	Shipment domain.Shipment `json:"shipment"`
	// CurrentStatus is the last entered event, nil when the history is empty.
	CurrentStatus *EventView `json:"currentStatus,omitempty"`
	// Events classifies every history entry independently, in insertion order.
	Events []EventView `json:"events"`
	// Attention is the free-text heuristic applied to the shipment description.
	Attention bool `json:"attention"`
}

// Describe builds the classified view of s. It is a pure function of its inputs.
func Describe(s domain.Shipment, detector classify.AttentionDetector) TrackedShipment {
	view := TrackedShipment{
		Shipment: s.Clone(),
		Events:   make([]EventView, 0, len(s.TrackingHistory)),
	}

	for _, ev := range s.TrackingHistory {
		view.Events = append(view.Events, EventView{
			TrackingEvent:  ev,
			Classification: classify.Classify(string(ev.Status)),
			Stage:          classify.LifecycleStage(string(ev.Status)),
		})
	}

	if n := len(view.Events); n > 0 {
		current := view.Events[n-1]
		view.CurrentStatus = &current
	}

	if detector != nil {
		view.Attention = detector.NeedsAttention(s.Details.Description)
	}
	return view
}
