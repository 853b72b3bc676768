package server

import (
	"errors"
	"fmt"
	"time"

	"shipment-tracker/internal/core/config"
	"shipment-tracker/internal/core/httpclient"
	"shipment-tracker/internal/core/logger"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"

	_ "shipment-tracker/docs/swagger"
)

const shutdownTimeout = 10 * time.Second

// Server holds the Fiber application and configuration.
type Server struct {
	// App is the main Fiber application instance.
	App *fiber.App
	// cfg holds the application configuration.
	cfg *config.AppConfig
}

// New creates a new Server instance with configured middleware.
func New(cfg *config.AppConfig) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		AppName:               logger.ServiceName,
		ErrorHandler:          errorHandler,
	})

	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Header: httpclient.RayIDHeader,
	}))

	app.Use(fiberzap.New(fiberzap.Config{
		Logger: logger.Get(),
		Fields: []string{"requestId", "status", "method", "path", "latency"},
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + httpclient.RayIDHeader,
		ExposeHeaders: httpclient.RayIDHeader,
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	return &Server{
		App: app,
		cfg: cfg,
	}
}

// NotFound registers the catch-all for unknown routes. Call it after every route.
func (s *Server) NotFound() {
	s.App.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Route not found",
		})
	})
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.cfg.ServerPort)
	logger.Get().Info("Starting server", zap.String("address", addr))
	return s.App.Listen(addr)
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown() error {
	logger.Get().Info("Shutting down server")
	return s.App.ShutdownWithTimeout(shutdownTimeout)
}

// errorHandler answers errors that escape the handlers, including recovered panics.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	rayID, _ := c.Locals("requestid").(string)
	if code >= fiber.StatusInternalServerError {
		logger.Get().Error("Unhandled request error",
			zap.Error(err),
			zap.String("ray_id", rayID),
			zap.String("path", c.Path()),
		)
	}

	body := fiber.Map{
		"success": false,
		"message": message,
		"ray_id":  rayID,
	}
	if code >= fiber.StatusInternalServerError {
		body["error"] = "internal_error"
	}
	return c.Status(code).JSON(body)
}
