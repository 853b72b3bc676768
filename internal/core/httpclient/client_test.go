package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipment-tracker/internal/core/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoggingRoundTripper_Headers verifies the user agent and ray id are sent.
func TestLoggingRoundTripper_Headers(t *testing.T) {
	var gotAgent, gotRay string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		gotRay = r.Header.Get(RayIDHeader)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	logger.Init("development", "debug")

	ctx := WithRayID(context.Background(), "ray-123")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL, nil)
	require.NoError(t, err)

	resp, err := NewClient(time.Second).Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, UserAgent, gotAgent)
	assert.Equal(t, "ray-123", gotRay)
	assert.Empty(t, req.Header.Get(RayIDHeader), "caller request must not be mutated")
}

// TestLoggingRoundTripper_KeepsCallerHeaders verifies explicit headers win.
func TestLoggingRoundTripper_KeepsCallerHeaders(t *testing.T) {
	var gotAgent string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
	}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "shipctl")

	resp, err := NewClient(time.Second).Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "shipctl", gotAgent)
}

// TestLoggingRoundTripper_Error verifies that failed requests are returned.
func TestLoggingRoundTripper_Error(t *testing.T) {
	logger.Init("development", "debug")

	client := NewClient(1 * time.Second)
	_, err := client.Get("http://invalid-url-that-does-not-exist.local")
	require.Error(t, err)
}

func TestRayID_Missing(t *testing.T) {
	assert.Empty(t, RayID(context.Background()))
}
