package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

// TrackingNumberPrefix is prepended to every generated tracking number.
const TrackingNumberPrefix = "SHIP-"

const (
	trackingCodeLength   = 8
	trackingCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

var trackingNumberPattern = regexp.MustCompile(`^SHIP-[0-9A-Z]{8}$`)

// NewTrackingNumber returns a fresh SHIP-XXXXXXXX tracking number.
func NewTrackingNumber() (string, error) {
	code := make([]byte, trackingCodeLength)
	base := big.NewInt(int64(len(trackingCodeAlphabet)))
	for i := range code {
		n, err := rand.Int(rand.Reader, base)
		if err != nil {
			return "", fmt.Errorf("failed to generate tracking number: %w", err)
		}
		code[i] = trackingCodeAlphabet[n.Int64()]
	}
	return TrackingNumberPrefix + string(code), nil
}

// ValidTrackingNumber reports whether s has the SHIP-XXXXXXXX shape.
func ValidTrackingNumber(s string) bool {
	return trackingNumberPattern.MatchString(s)
}
