// Package search holds the state of a tracking search as seen by a presentation layer.
package search

import (
	"errors"
	"strings"

	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/lookup"
)

// Phase is the externally visible state of a search.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseEmpty   Phase = "empty"
	PhaseErrored Phase = "errored"
)

// RecentCapacity is the number of recent queries kept.
const RecentCapacity = 5

const (
	// MessageEmptyQuery is shown inline when the user submits nothing.
	MessageEmptyQuery = "Please enter a tracking number."
	// MessageNotFound is shown when a query matches no shipment.
	MessageNotFound = "No shipment found for that tracking number."
	// MessageUnavailable is shown for any upstream failure. Internal detail is never exposed.
	MessageUnavailable = "Unable to load shipments. Please try again later."
)

// Ticket identifies one submitted query. Results carrying an older ticket are dropped.
type Ticket uint64

// State is a small state machine over a single search box.
// It is not safe for concurrent use.
type State struct {
	phase   Phase
	query   string
	message string
	results []domain.Shipment
	recent  []string
	current Ticket
}

// NewState returns an idle search state.
func NewState() *State {
	return &State{phase: PhaseIdle}
}

// SubmitQuery starts a new search. An empty query leaves the phase unchanged and
// sets an inline validation message.
func (s *State) SubmitQuery(query string) (Ticket, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		s.message = MessageEmptyQuery
		return 0, lookup.ErrEmptyQuery
	}

	s.remember(q)
	s.current++
	s.phase = PhaseLoading
	s.query = q
	s.message = ""
	s.results = nil
	return s.current, nil
}

// ReceiveResults completes the search identified by t. It reports false when t is stale.
func (s *State) ReceiveResults(t Ticket, results []domain.Shipment) bool {
	if !s.accepts(t) {
		return false
	}

	if len(results) == 0 {
		s.phase = PhaseEmpty
		s.message = MessageNotFound
		s.results = nil
		return true
	}

	s.phase = PhaseLoaded
	s.message = ""
	s.results = make([]domain.Shipment, len(results))
	copy(s.results, results)
	return true
}

// ReceiveError fails the search identified by t. A not-found error is treated as an
// empty result. It reports false when t is stale.
func (s *State) ReceiveError(t Ticket, err error) bool {
	if !s.accepts(t) {
		return false
	}

	s.results = nil
	if errors.Is(err, lookup.ErrNotFound) {
		s.phase = PhaseEmpty
		s.message = MessageNotFound
		return true
	}

	s.phase = PhaseErrored
	s.message = MessageUnavailable
	return true
}

func (s *State) accepts(t Ticket) bool {
	return t != 0 && t == s.current && s.phase == PhaseLoading
}

// remember moves q to the front of the recent list, dropping an earlier duplicate.
func (s *State) remember(q string) {
	recent := make([]string, 0, RecentCapacity)
	recent = append(recent, q)
	for _, r := range s.recent {
		if strings.EqualFold(r, q) {
			continue
		}
		if len(recent) == RecentCapacity {
			break
		}
		recent = append(recent, r)
	}
	s.recent = recent
}

// Phase returns the current phase.
func (s *State) Phase() Phase { return s.phase }

// Query returns the last accepted query.
func (s *State) Query() string { return s.query }

// Message returns the user-facing message for the current phase, if any.
func (s *State) Message() string { return s.message }

// Results returns a copy of the displayed results.
func (s *State) Results() []domain.Shipment {
	out := make([]domain.Shipment, len(s.results))
	copy(out, s.results)
	return out
}

// Recent returns the recent queries, most recent first.
func (s *State) Recent() []string {
	out := make([]string, len(s.recent))
	copy(out, s.recent)
	return out
}
