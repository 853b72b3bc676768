package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipment-tracker/internal/features/shipments/lookup"
	"shipment-tracker/internal/features/shipments/ports"
)

const firstShipment = `{
	"id": "1",
	"trackingNumber": "SHIP-AB12CD34",
	"shipmentDetails": {"quantity": 1, "weight": "2 kg", "serviceType": "express", "description": "Parcel held at customs"},
	"destination": {"receiverName": "Grace Hopper", "receiverEmail": "grace@example.com"},
	"origin": {"senderName": "Depot", "location": "Accra"},
	"trackingHistory": [
		{"date": "2024-02-01T10:00:00Z", "location": "Accra", "remark": "picked up", "status": "shipment-created"},
		{"date": "2024-02-02T10:00:00Z", "location": "Lagos", "remark": "inspection", "status": "held-by-customs"}
	]
}`

const secondShipment = `{
	"id": "2",
	"trackingNumber": "SHIP-ZZ99YY88",
	"shipmentDetails": {"quantity": 3, "weight": "1 kg", "serviceType": "standard"},
	"destination": {"receiverName": "Alan Turing", "receiverEmail": "alan@example.com"},
	"origin": {"senderName": "Depot"},
	"trackingHistory": []
}`

func newAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/shipments":
			w.Write([]byte(`{"success": true, "shipments": [` + firstShipment + `,` + secondShipment + `]}`))
		case "/shipments/SHIP-AB12CD34":
			w.Write([]byte(`{"success": true, "shipment": ` + firstShipment + `}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			if strings.HasPrefix(r.URL.Path, "/shipments/") {
				w.Write([]byte(`{"success": false, "message": "Shipment not found"}`))
				return
			}
			w.Write([]byte(`{"success": false, "message": "Route not found"}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func runCLI(t *testing.T, apiURL string, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("NO_COLOR", "")
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--api-url", apiURL}, args...))
	err := cmd.Execute()
	return stdout.String(), err
}

func TestTrackCommand_Exact(t *testing.T) {
	server := newAPIServer(t)

	out, err := runCLI(t, server.URL, "", "track", " ship-ab12cd34 ")
	require.NoError(t, err)
	assert.Contains(t, out, "SHIP-AB12CD34")
	assert.Contains(t, out, "Held By Customs")
	assert.Contains(t, out, "check description")
	assert.Contains(t, out, problemColors.EscapeSeq())
	assert.NotContains(t, out, "SHIP-ZZ99YY88")
	assert.Contains(t, out, "1 shipment(s) matched")
}

func TestTrackCommand_Substring(t *testing.T) {
	server := newAPIServer(t)

	out, err := runCLI(t, server.URL, "", "track", "--mode", "substring", "ship-")
	require.NoError(t, err)
	assert.Contains(t, out, "SHIP-AB12CD34")
	assert.Contains(t, out, "SHIP-ZZ99YY88")
	assert.Contains(t, out, "No updates yet")
	assert.Contains(t, out, "2 shipment(s) matched")
}

func TestTrackCommand_ShowAll(t *testing.T) {
	server := newAPIServer(t)

	out, err := runCLI(t, server.URL, "", "track", "--mode", "substring", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "2 shipment(s) matched")
}

func TestTrackCommand_Errors(t *testing.T) {
	server := newAPIServer(t)

	_, err := runCLI(t, server.URL, "", "track", "  ")
	assert.ErrorIs(t, err, lookup.ErrEmptyQuery)

	_, err = runCLI(t, server.URL, "", "track", "SHIP-AB12")
	assert.ErrorIs(t, err, lookup.ErrNotFound)

	_, err = runCLI(t, server.URL, "", "track", "--mode", "fuzzy", "SHIP-AB12CD34")
	assert.ErrorIs(t, err, lookup.ErrUnknownMode)

	_, err = runCLI(t, "http://127.0.0.1:1", "", "track", "SHIP-AB12CD34")
	assert.ErrorIs(t, err, ports.ErrUpstream)
}

func TestShowCommand(t *testing.T) {
	server := newAPIServer(t)

	out, err := runCLI(t, server.URL, "", "show", "SHIP-AB12CD34")
	require.NoError(t, err)
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "Shipment Created")
	assert.Contains(t, out, "Held By Customs")
	assert.Contains(t, out, problemColors.EscapeSeq())
	assert.Contains(t, out, "inspection")

	_, err = runCLI(t, server.URL, "", "show", "SHIP-00000000")
	assert.ErrorIs(t, err, ports.ErrShipmentNotFound)

	_, err = runCLI(t, server.URL+"/api", "", "show", "SHIP-AB12CD34")
	assert.ErrorIs(t, err, ports.ErrUpstream)
	assert.NotErrorIs(t, err, ports.ErrShipmentNotFound)
}

func TestStatusesCommand(t *testing.T) {
	out, err := runCLI(t, "http://unused.invalid", "", "statuses")
	require.NoError(t, err)
	assert.Contains(t, out, "out-for-delivery")
	assert.Contains(t, out, "Out For Delivery")
	assert.Contains(t, out, "6/7")
	assert.Contains(t, out, "exception")
}

func TestStatusesCommand_NoColor(t *testing.T) {
	out, err := runCLI(t, "http://unused.invalid", "", "--no-color", "statuses")
	require.NoError(t, err)
	assert.Contains(t, out, "Held By Customs")
	assert.NotContains(t, out, "\x1b[")
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Success", nil, 0},
		{"NoMatch", fmt.Errorf("track: %w", lookup.ErrNotFound), exitNotFound},
		{"UnknownShipment", fmt.Errorf("%w: SHIP-00000000", ports.ErrShipmentNotFound), exitNotFound},
		{"Upstream", fmt.Errorf("%w: connection refused", ports.ErrUpstream), exitFailure},
		{"EmptyQuery", lookup.ErrEmptyQuery, exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestWatchCommand(t *testing.T) {
	server := newAPIServer(t)

	stdin := strings.Join([]string{
		"SHIP-AB12CD34",
		"",
		"SHIP-NOPE0000",
		"ship-ab12cd34",
	}, "\n")

	out, err := runCLI(t, server.URL, stdin, "watch")
	require.NoError(t, err)
	assert.Contains(t, out, "Please enter a tracking number.")
	assert.Contains(t, out, "SHIP-NOPE0000: No shipment found for that tracking number.")
	assert.Contains(t, out, "Recent searches")

	recent := out[strings.Index(out, "Recent searches"):]
	assert.Contains(t, recent, "ship-ab12cd34")
	assert.Contains(t, recent, "SHIP-NOPE0000")
	assert.NotContains(t, recent, "SHIP-AB12CD34", "case-insensitive duplicate should be collapsed")
}

func TestWatchCommand_Unavailable(t *testing.T) {
	out, err := runCLI(t, "http://127.0.0.1:1", "SHIP-AB12CD34\n", "watch")
	require.NoError(t, err)
	assert.Contains(t, out, "Unable to load shipments. Please try again later.")
	assert.NotContains(t, out, "127.0.0.1")
}
