package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/parkonic/ticket-portal/internal/config"
	"github.com/parkonic/ticket-portal/internal/database"
	"github.com/parkonic/ticket-portal/internal/flash"
	"github.com/parkonic/ticket-portal/internal/handler"
	"github.com/parkonic/ticket-portal/internal/queue"
	"github.com/parkonic/ticket-portal/internal/repository"
	"github.com/parkonic/ticket-portal/internal/router"
	queue_publisher "github.com/parkonic/ticket-portal/internal/service"
	"github.com/parkonic/ticket-portal/internal/storage"
	"github.com/parkonic/ticket-portal/internal/web"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	db, err := database.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	// Schema creation and seeding run exactly once, before the server
	// accepts any request.
	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := database.Seed(ctx, db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; flash messages disabled")
	}

	h := &handler.TicketHandler{
		Store:   repository.NewTicketRepo(db),
		Saver:   storage.NewSaver(cfg.StaticDir),
		Flashes: flash.NewStore(rdb, cfg.SecretKey),
		Publish: queue_publisher.PublishTicketEvent,
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("template parsing failed: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	router.RegisterRoutes(e, h, cfg.StaticDir)

	// Background consumer mirrors published ticket events into logs/tickets.log.
	go queue.StartTicketConsumer()

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
