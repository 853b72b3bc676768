package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"shipment-tracker/internal/core/cache"
	"shipment-tracker/internal/core/config"
	"shipment-tracker/internal/core/database"
	"shipment-tracker/internal/core/logger"
	"shipment-tracker/internal/core/messaging"
	"shipment-tracker/internal/core/server"
	"shipment-tracker/internal/features/shipments/adapters"
	"shipment-tracker/internal/features/shipments/classify"
	"shipment-tracker/internal/features/shipments/handler"
	"shipment-tracker/internal/features/shipments/lookup"
	"shipment-tracker/internal/features/shipments/ports"
	"shipment-tracker/internal/features/shipments/service"

	"go.uber.org/zap"
)

// @title Shipment Tracker API
// @version 1.0
// @description This API stores shipments and resolves tracking-number lookups with classified status history.
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("db_driver", cfg.Database.Driver),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	defaultMode, err := lookup.ParseMode(cfg.Search.Mode)
	if err != nil {
		l.Fatal("Invalid search mode", zap.Error(err))
	}

	// Initialize Shipment Store
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		l.Fatal("Database connection failed", zap.Error(err))
	}
	defer db.Close()

	sqlRepo, err := adapters.NewSQLShipmentRepository(ctx, db)
	if err != nil {
		l.Fatal("Shipment schema setup failed", zap.Error(err))
	}

	var repo ports.ShipmentRepository = sqlRepo
	if cfg.Cache.Enabled() {
		redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL, "tracker:")
		if err != nil {
			l.Fatal("Redis configuration invalid", zap.Error(err))
		}
		defer redisCache.Close()

		if err := redisCache.Ping(ctx); err != nil {
			l.Warn("Redis unreachable, snapshot cache will fall back to the store", zap.Error(err))
		}
		repo = adapters.NewCachedShipmentRepository(sqlRepo, redisCache, cfg.Cache.TTL())
		l.Info("Shipment snapshot cache enabled", zap.Duration("ttl", cfg.Cache.TTL()))
	}

	// Initialize Attention Event Publisher
	var publisher ports.EventPublisher = adapters.NoopEventPublisher{}
	if cfg.Messaging.Enabled() {
		mq := messaging.NewClient(cfg.Messaging)
		if err := mq.Connect(ctx); err != nil {
			l.Warn("RabbitMQ unavailable, attention events will not be delivered", zap.Error(err))
		}
		defer mq.Close()
		publisher = adapters.NewAMQPEventPublisher(mq)
	}

	// Initialize Shipment Service & Handler
	shipmentSvc := service.NewShipmentService(repo, publisher, classify.DefaultAttentionDetector())
	shipmentHdl := handler.NewShipmentHandler(shipmentSvc, defaultMode)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Get("/health", shipmentHdl.Health)
	srv.App.Get("/statuses", shipmentHdl.ListStatuses)
	srv.App.Get("/tracking/search", shipmentHdl.SearchShipments)

	shipments := srv.App.Group("/shipments")
	shipments.Get("/", shipmentHdl.ListShipments)
	shipments.Post("/", shipmentHdl.CreateShipment)
	shipments.Get("/:trackingNumber", shipmentHdl.GetShipment)
	shipments.Put("/:trackingNumber", shipmentHdl.UpdateShipment)
	shipments.Delete("/:trackingNumber", shipmentHdl.DeleteShipment)
	shipments.Post("/:trackingNumber/events", shipmentHdl.AppendEvent)

	srv.NotFound()

	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
	l.Info("Server stopped")
}
