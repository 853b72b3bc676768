// Package classify labels tracking statuses and flags the ones that signal delivery risk.
package classify

import (
	"strings"

	"shipment-tracker/internal/features/shipments/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// problemStatuses is the authoritative problem set. Membership is exact, no fuzzy matching.
var problemStatuses = map[domain.Status]bool{
	domain.StatusOnHold:        true,
	domain.StatusLost:          true,
	domain.StatusHeldByCustoms: true,
	domain.StatusDelayed:       true,
}

// Classification is the derived view of a single status code.
type Classification struct {
	// IsProblem is true when the status requires visual escalation.
	IsProblem bool `json:"isProblem"`
	// NormalizedLabel is the human-readable form of the status code.
	NormalizedLabel string `json:"normalizedLabel"`
}

// Classify derives the problem flag and display label of status.
// It accepts any string; unrecognized codes are never problems.
func Classify(status string) Classification {
	code := strings.ToLower(strings.TrimSpace(status))
	return Classification{
		IsProblem:       problemStatuses[domain.Status(code)],
		NormalizedLabel: Label(code),
	}
}

// IsProblem reports whether status is in the problem set.
func IsProblem(status string) bool {
	return problemStatuses[domain.Status(strings.ToLower(strings.TrimSpace(status)))]
}

// Label turns a hyphenated status code into title-cased words: held-by-customs -> Held By Customs.
func Label(status string) string {
	words := strings.Fields(strings.ReplaceAll(strings.TrimSpace(status), "-", " "))
	// cases.Caser keeps state, so one is built per call.
	return cases.Title(language.Und).String(strings.Join(words, " "))
}

// Stage is the position of a status along the forward delivery lifecycle.
type Stage struct {
	// Index is the zero-based step for forward statuses, -1 otherwise.
	Index int `json:"index"`
	// Exception is true for branch or terminal exception statuses.
	Exception bool `json:"exception"`
}

var lifecycle = []domain.Status{
	domain.StatusShipmentCreated,
	domain.StatusProcessingOrigin,
	domain.StatusInTransit,
	domain.StatusArrivedDestinationCountry,
	domain.StatusProcessingDestination,
	domain.StatusOutForDelivery,
	domain.StatusDelivered,
}

// LifecycleStage locates status on the forward lifecycle. It is informational only:
// transition legality between history entries is never checked.
func LifecycleStage(status string) Stage {
	s, known := domain.ParseStatus(status)
	for i, step := range lifecycle {
		if s == step {
			return Stage{Index: i}
		}
	}
	return Stage{Index: -1, Exception: known}
}

// LifecycleLength is the number of forward lifecycle steps.
func LifecycleLength() int {
	return len(lifecycle)
}
