package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shipment-tracker/internal/core/httpclient"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/ports"
)

// envelope is the response shape of the shipments API.
type envelope struct {
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Error     string            `json:"error"`
	RayID     string            `json:"ray_id"`
	Shipments []domain.Shipment `json:"shipments"`
	Shipment  *domain.Shipment  `json:"shipment"`
}

// HTTPShipmentFetcher implements ports.ShipmentFetcher against the shipments API.
type HTTPShipmentFetcher struct {
	client  *http.Client
	baseURL string
}

// NewHTTPShipmentFetcher creates a fetcher for the API rooted at baseURL.
func NewHTTPShipmentFetcher(baseURL string, timeout time.Duration) *HTTPShipmentFetcher {
	return &HTTPShipmentFetcher{
		client:  httpclient.NewClient(timeout),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// List fetches every shipment. An empty store yields an empty, non-nil slice.
func (f *HTTPShipmentFetcher) List(ctx context.Context) ([]domain.Shipment, error) {
	env, status, err := f.get(ctx, "/shipments")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK || !env.Success {
		return nil, upstreamError(status, env)
	}
	if env.Shipments == nil {
		return []domain.Shipment{}, nil
	}
	return env.Shipments, nil
}

// Get fetches one shipment. Only the API's own shipment-not-found answer maps to
// ports.ErrShipmentNotFound; any other 404, such as an unknown route, is an upstream failure.
func (f *HTTPShipmentFetcher) Get(ctx context.Context, trackingNumber string) (*domain.Shipment, error) {
	env, status, err := f.get(ctx, "/shipments/"+url.PathEscape(strings.TrimSpace(trackingNumber)))
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound && env.Message == ports.ShipmentNotFoundMessage {
		return nil, fmt.Errorf("%w: %s", ports.ErrShipmentNotFound, trackingNumber)
	}
	if status != http.StatusOK || !env.Success || env.Shipment == nil {
		return nil, upstreamError(status, env)
	}
	return env.Shipment, nil
}

func (f *HTTPShipmentFetcher) get(ctx context.Context, path string) (*envelope, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ports.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: failed to decode response (status %d): %v", ports.ErrUpstream, resp.StatusCode, err)
	}
	return &env, resp.StatusCode, nil
}

func upstreamError(status int, env *envelope) error {
	msg := env.Message
	if msg == "" {
		msg = "unsuccessful response"
	}
	if env.RayID != "" {
		return fmt.Errorf("%w: %s (status %d, ray %s)", ports.ErrUpstream, msg, status, env.RayID)
	}
	return fmt.Errorf("%w: %s (status %d)", ports.ErrUpstream, msg, status)
}
