package main

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"message-hub/internal/config"
	"message-hub/internal/handlers"
	"message-hub/internal/observability"
	"message-hub/internal/presence"
	"message-hub/internal/session"
	"message-hub/internal/store"
	"message-hub/internal/ws"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := store.EnsureDir(cfg.HistoryFile); err != nil {
		log.Fatalf("failed to create data dir: %v", err)
	}
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("failed to create upload dir: %v", err)
	}

	messageLog, err := store.OpenFileLog(cfg.HistoryFile)
	if err != nil {
		log.Fatalf("failed to open message log: %v", err)
	}
	defer messageLog.Close()
	log.Printf("message log loaded: %d events from %s", messageLog.Len(), cfg.HistoryFile)

	ctx := context.Background()
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracing(ctx, cfg.OTLPEndpoint, "message-hub")
		if err != nil {
			log.Printf("tracing disabled: %v", err)
		} else {
			defer shutdown(ctx)
		}
	}

	if cfg.AMQPURL != "" {
		publisher, err := observability.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Printf("audit publishing disabled: %v", err)
		} else {
			observability.SetPublisher(publisher)
			defer publisher.Close()
			log.Printf("audit publishing enabled exchange=%s", cfg.AMQPExchange)
		}
	}

	hub := ws.NewHub()
	registry := presence.NewRegistry()
	gateway := session.New(messageLog, registry, hub, cfg.ReplayLimit)

	wsHandler := ws.NewHandler(hub, gateway)
	messageHandler := handlers.NewMessageHandler(gateway)
	uploadHandler := handlers.NewUploadHandler(gateway, cfg.UploadDir)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(observability.HTTPMetricsMiddleware())
	router.Use(otelgin.Middleware("message-hub"))

	router.GET("/messages", messageHandler.GetMessages)
	router.POST("/upload", uploadHandler.Upload)
	router.GET("/ws", wsHandler.Handle)
	router.GET("/healthz", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.Static("/uploads", cfg.UploadDir)
	router.Static("/public", cfg.PublicDir)
	router.StaticFile("/", filepath.Join(cfg.PublicDir, "index.html"))

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
