// Package lookup matches user-supplied tracking queries against shipment records.
package lookup

import (
	"errors"
	"fmt"
	"strings"

	"shipment-tracker/internal/features/shipments/domain"
)

var (
	// ErrEmptyQuery is returned when the query is empty after trimming. No lookup is performed.
	ErrEmptyQuery = errors.New("empty query")
	// ErrNotFound is returned alongside an empty result when a well-formed query matches nothing.
	ErrNotFound = errors.New("no matching shipment")
	// ErrUnknownMode is returned by ParseMode for unsupported mode names.
	ErrUnknownMode = errors.New("unknown lookup mode")
)

// Mode selects how a query is matched against tracking numbers.
type Mode string

const (
	// ModeExact matches the whole tracking number, case-insensitively. It is the canonical mode.
	ModeExact Mode = "exact"
	// ModeSubstring matches every tracking number containing the query, case-insensitively.
	ModeSubstring Mode = "substring"
)

// ParseMode converts a user-facing mode name. An empty name yields ModeExact.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeExact:
		return ModeExact, nil
	case ModeSubstring:
		return ModeSubstring, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Resolver holds the lookup policy chosen by a caller.
type Resolver struct {
	// Mode is the matching strategy.
	Mode Mode
	// ShowAllOnEmpty makes an empty query return every record in substring mode
	// instead of failing validation.
	ShowAllOnEmpty bool
}

// Resolve returns the records matching query. Records are returned in input order and
// the input slice is never modified.
func (r Resolver) Resolve(query string, records []domain.Shipment) ([]domain.Shipment, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		if r.ShowAllOnEmpty && r.Mode == ModeSubstring {
			out := make([]domain.Shipment, len(records))
			copy(out, records)
			return out, nil
		}
		return []domain.Shipment{}, ErrEmptyQuery
	}

	var out []domain.Shipment
	switch r.Mode {
	case ModeSubstring:
		out = matchSubstring(q, records)
	default:
		out = matchExact(q, records)
	}

	if len(out) == 0 {
		return []domain.Shipment{}, ErrNotFound
	}
	return out, nil
}

// Resolve matches query against records using mode.
func Resolve(query string, records []domain.Shipment, mode Mode) ([]domain.Shipment, error) {
	return Resolver{Mode: mode}.Resolve(query, records)
}

func matchExact(q string, records []domain.Shipment) []domain.Shipment {
	for _, rec := range records {
		if strings.EqualFold(rec.TrackingNumber, q) {
			return []domain.Shipment{rec}
		}
	}
	return nil
}

func matchSubstring(q string, records []domain.Shipment) []domain.Shipment {
	needle := strings.ToLower(q)
	var out []domain.Shipment
	for _, rec := range records {
		if strings.Contains(strings.ToLower(rec.TrackingNumber), needle) {
			out = append(out, rec)
		}
	}
	return out
}
