package handler

import (
	"context"
	"errors"
	"strings"

	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/features/shipments/classify"
	"shipment-tracker/internal/features/shipments/domain"
	"shipment-tracker/internal/features/shipments/lookup"
	"shipment-tracker/internal/features/shipments/ports"
	"shipment-tracker/internal/features/shipments/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShipmentService is the behaviour the handler needs from the service layer.
type ShipmentService interface {
	List(ctx context.Context) ([]domain.Shipment, error)
	Get(ctx context.Context, trackingNumber string) (*domain.Shipment, error)
	Search(ctx context.Context, query string, mode lookup.Mode) ([]service.TrackedShipment, error)
	Create(ctx context.Context, in domain.ShipmentInput) (*domain.Shipment, error)
	Update(ctx context.Context, trackingNumber string, in domain.ShipmentInput) (*domain.Shipment, error)
	AppendEvent(ctx context.Context, trackingNumber string, ev domain.TrackingEvent) (*domain.Shipment, error)
	Delete(ctx context.Context, trackingNumber string) error
	Health(ctx context.Context) error
}

// ShipmentHandler handles HTTP requests for shipments.
type ShipmentHandler struct {
	service     ShipmentService
	defaultMode lookup.Mode
}

// NewShipmentHandler creates a new ShipmentHandler. defaultMode is used by searches
// that do not pass a mode.
func NewShipmentHandler(svc ShipmentService, defaultMode lookup.Mode) *ShipmentHandler {
	return &ShipmentHandler{
		service:     svc,
		defaultMode: defaultMode,
	}
}

// ErrorResponse is the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Error is a stable machine code, set for server-side failures only.
	Error string `json:"error,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// ShipmentListResponse wraps GET /shipments.
type ShipmentListResponse struct {
	Success   bool              `json:"success"`
	Shipments []domain.Shipment `json:"shipments"`
}

// ShipmentResponse wraps single shipment responses.
type ShipmentResponse struct {
	Success  bool             `json:"success"`
	Shipment *domain.Shipment `json:"shipment"`
}

// SearchResponse wraps GET /tracking/search.
type SearchResponse struct {
	Success bool                      `json:"success"`
	Mode    lookup.Mode               `json:"mode"`
	Results []service.TrackedShipment `json:"results"`
}

// StatusInfo describes one status code.
type StatusInfo struct {
	Code      domain.Status `json:"code"`
	Label     string        `json:"label"`
	IsProblem bool          `json:"isProblem"`
	// Stage is the zero-based lifecycle step, -1 for exception statuses.
	Stage int `json:"stage"`
}

// StatusListResponse wraps GET /statuses.
type StatusListResponse struct {
	Success  bool         `json:"success"`
	Statuses []StatusInfo `json:"statuses"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ListShipments godoc
// @Summary List shipments
// @Description Returns every stored shipment ordered by creation time
// @Tags shipments
// @Produce json
// @Success 200 {object} ShipmentListResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipments [get]
func (h *ShipmentHandler) ListShipments(c *fiber.Ctx) error {
	shipments, err := h.service.List(c.UserContext())
	if err != nil {
		return h.internalError(c, "Failed to fetch shipments", err)
	}
	return c.JSON(ShipmentListResponse{Success: true, Shipments: shipments})
}

// GetShipment godoc
// @Summary Get a shipment by tracking number
// @Description Exact lookup, ignoring case and surrounding whitespace
// @Tags shipments
// @Produce json
// @Param trackingNumber path string true "Tracking Number"
// @Success 200 {object} ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipments/{trackingNumber} [get]
func (h *ShipmentHandler) GetShipment(c *fiber.Ctx) error {
	shipment, err := h.service.Get(c.UserContext(), c.Params("trackingNumber"))
	if err != nil {
		return h.fail(c, "Failed to fetch shipment", err)
	}
	return c.JSON(ShipmentResponse{Success: true, Shipment: shipment})
}

// SearchShipments godoc
// @Summary Search shipments
// @Description Resolves the query against all shipments and classifies each match
// @Tags tracking
// @Produce json
// @Param q query string true "Tracking number or fragment"
// @Param mode query string false "exact or substring"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tracking/search [get]
func (h *ShipmentHandler) SearchShipments(c *fiber.Ctx) error {
	mode := h.defaultMode
	if raw := strings.TrimSpace(c.Query("mode")); raw != "" {
		parsed, err := lookup.ParseMode(raw)
		if err != nil {
			return h.fail(c, "", err)
		}
		mode = parsed
	}

	results, err := h.service.Search(c.UserContext(), c.Query("q"), mode)
	if err != nil {
		return h.fail(c, "Failed to search shipments", err)
	}
	return c.JSON(SearchResponse{Success: true, Mode: mode, Results: results})
}

// ListStatuses godoc
// @Summary List status codes
// @Description Returns the closed set of status codes with labels and problem flags
// @Tags tracking
// @Produce json
// @Success 200 {object} StatusListResponse
// @Router /statuses [get]
func (h *ShipmentHandler) ListStatuses(c *fiber.Ctx) error {
	statuses := make([]StatusInfo, 0, len(domain.Statuses))
	for _, s := range domain.Statuses {
		cl := classify.Classify(string(s))
		statuses = append(statuses, StatusInfo{
			Code:      s,
			Label:     cl.NormalizedLabel,
			IsProblem: cl.IsProblem,
			Stage:     classify.LifecycleStage(string(s)).Index,
		})
	}
	return c.JSON(StatusListResponse{Success: true, Statuses: statuses})
}

// CreateShipment godoc
// @Summary Create a shipment
// @Description Stores a new shipment and assigns it a tracking number
// @Tags admin
// @Accept json
// @Produce json
// @Param shipment body domain.ShipmentInput true "Shipment"
// @Success 201 {object} ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipments [post]
func (h *ShipmentHandler) CreateShipment(c *fiber.Ctx) error {
	var in domain.ShipmentInput
	if err := c.BodyParser(&in); err != nil {
		return h.badRequest(c, "Invalid request body")
	}

	shipment, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return h.fail(c, "Failed to create shipment", err)
	}
	return c.Status(fiber.StatusCreated).JSON(ShipmentResponse{Success: true, Shipment: shipment})
}

// UpdateShipment godoc
// @Summary Update a shipment
// @Description Replaces the writable fields; the tracking number cannot change
// @Tags admin
// @Accept json
// @Produce json
// @Param trackingNumber path string true "Tracking Number"
// @Param shipment body domain.ShipmentInput true "Shipment"
// @Success 200 {object} ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipments/{trackingNumber} [put]
func (h *ShipmentHandler) UpdateShipment(c *fiber.Ctx) error {
	var in domain.ShipmentInput
	if err := c.BodyParser(&in); err != nil {
		return h.badRequest(c, "Invalid request body")
	}

	shipment, err := h.service.Update(c.UserContext(), c.Params("trackingNumber"), in)
	if err != nil {
		return h.fail(c, "Failed to update shipment", err)
	}
	return c.JSON(ShipmentResponse{Success: true, Shipment: shipment})
}

// AppendEvent godoc
// @Summary Append a tracking event
// @Description Adds an event to the end of the shipment's history
// @Tags admin
// @Accept json
// @Produce json
// @Param trackingNumber path string true "Tracking Number"
// @Param event body domain.TrackingEvent true "Tracking event"
// @Success 200 {object} ShipmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipments/{trackingNumber}/events [post]
func (h *ShipmentHandler) AppendEvent(c *fiber.Ctx) error {
	var ev domain.TrackingEvent
	if err := c.BodyParser(&ev); err != nil {
		return h.badRequest(c, "Invalid request body")
	}

	shipment, err := h.service.AppendEvent(c.UserContext(), c.Params("trackingNumber"), ev)
	if err != nil {
		return h.fail(c, "Failed to append tracking event", err)
	}
	return c.JSON(ShipmentResponse{Success: true, Shipment: shipment})
}

// DeleteShipment godoc
// @Summary Delete a shipment
// @Tags admin
// @Produce json
// @Param trackingNumber path string true "Tracking Number"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /shipments/{trackingNumber} [delete]
func (h *ShipmentHandler) DeleteShipment(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), c.Params("trackingNumber")); err != nil {
		return h.fail(c, "Failed to delete shipment", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *ShipmentHandler) Health(c *fiber.Ctx) error {
	if err := h.service.Health(c.UserContext()); err != nil {
		logger.Get().Error("Health check failed", zap.Error(err), zap.String("ray_id", rayID(c)))
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{Status: "unavailable"})
	}
	return c.JSON(HealthResponse{Status: "ok"})
}

// fail maps service errors onto status codes. internalMsg is the message used for 500s.
func (h *ShipmentHandler) fail(c *fiber.Ctx, internalMsg string, err error) error {
	switch {
	case errors.Is(err, lookup.ErrEmptyQuery):
		return h.badRequest(c, "Tracking number is required")
	case errors.Is(err, lookup.ErrUnknownMode):
		return h.badRequest(c, "Mode must be exact or substring")
	case errors.Is(err, domain.ErrInvalidShipment), errors.Is(err, domain.ErrTrackingNumberImmutable):
		return h.badRequest(c, err.Error())
	case errors.Is(err, lookup.ErrNotFound), errors.Is(err, ports.ErrShipmentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Message: ports.ShipmentNotFoundMessage,
			RayID:   rayID(c),
		})
	case errors.Is(err, ports.ErrRevisionConflict):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
			Message: "Shipment is being modified, please retry",
			RayID:   rayID(c),
		})
	default:
		return h.internalError(c, internalMsg, err)
	}
}

func (h *ShipmentHandler) badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

func (h *ShipmentHandler) internalError(c *fiber.Ctx, msg string, err error) error {
	id := rayID(c)
	logger.Get().Error(msg, zap.Error(err), zap.String("ray_id", id), zap.String("path", c.Path()))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Message: msg,
		Error:   "internal_error",
		RayID:   id,
	})
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}
