package httpclient

import (
	"context"
	"net/http"
	"time"

	"shipment-tracker/internal/core/logger"

	"go.uber.org/zap"
)

// RayIDHeader carries the request id across service hops.
const RayIDHeader = "X-Ray-ID"

// UserAgent is sent on every outbound request that does not set one.
const UserAgent = "shipment-tracker/1.0"

type rayIDKey struct{}

// WithRayID returns a context whose outbound requests carry the given ray id.
func WithRayID(ctx context.Context, rayID string) context.Context {
	return context.WithValue(ctx, rayIDKey{}, rayID)
}

// RayID returns the ray id stored by WithRayID, if any.
func RayID(ctx context.Context) string {
	id, _ := ctx.Value(rayIDKey{}).(string)
	return id
}

// LoggingRoundTripper tags outbound requests and logs their outcome.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	log := logger.Named("httpclient")

	rayID := RayID(req.Context())
	if req.Header.Get("User-Agent") == "" || (rayID != "" && req.Header.Get(RayIDHeader) == "") {
		// RoundTrippers must not mutate the caller's request.
		req = req.Clone(req.Context())
		if req.Header.Get("User-Agent") == "" {
			req.Header.Set("User-Agent", UserAgent)
		}
		if rayID != "" && req.Header.Get(RayIDHeader) == "" {
			req.Header.Set(RayIDHeader, rayID)
		}
	}

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	}
	if rayID != "" {
		fields = append(fields, zap.String("ray_id", rayID))
	}

	resp, err := lrt.Proxied.RoundTrip(req)
	fields = append(fields, zap.Duration("duration", time.Since(start)))

	if err != nil {
		log.Error("HTTP request failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	log.Debug("HTTP request completed", append(fields, zap.Int("status_code", resp.StatusCode))...)
	return resp, nil
}

// NewClient returns an http.Client with the logging transport.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
		},
		Timeout: timeout,
	}
}
