package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"festago/backend/internal/api/handler"
	"festago/backend/internal/incident"
	"festago/backend/internal/localization"
	"festago/backend/internal/models"
	"festago/backend/internal/report"
	"festago/backend/internal/scanner"
	"festago/backend/internal/storage"
	"festago/backend/internal/trust"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "festagodb"),
		envOr("DB_PORT", "5432"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.Actor{},
		&models.Violation{},
		&models.ScoreHistory{},
		&models.Report{},
		&models.Suspension{},
		&models.Appeal{},
		&models.Badge{},
		&models.Incident{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	log.Println("Starting Festago Trust & Safety engine...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Dependencies
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	loc, err := localization.NewLocalizer()
	if err != nil {
		log.Fatalf("Failed to load localization: %v", err)
	}
	if dir := os.Getenv("LOCALES_DIR"); dir != "" {
		if err := loc.LoadDir(dir); err != nil {
			log.Printf("Warning: failed to load locales from %s: %v", dir, err)
		}
	}

	// 2. Engine services
	trustSvc := trust.NewService(s)
	reportSvc := report.NewService(s, trustSvc)
	sc := scanner.New()

	// 3. Incident fast path: feed hub, notifiers, queue worker
	feed := incident.NewFeedHub(s)
	go feed.Run()

	var notifiers []incident.Notifier
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_OPS_CHAT_ID"), 10, 64)
		if err != nil {
			log.Fatalf("TELEGRAM_OPS_CHAT_ID is not a valid chat id: %v", err)
		}
		tg, err := incident.NewTelegramNotifier(token, chatID)
		if err != nil {
			log.Fatalf("Failed to start incident notifier: %v", err)
		}
		notifiers = append(notifiers, tg)
	}
	worker := incident.NewWorker(s, notifiers...)
	go worker.Run(context.Background())

	// 4. Gin routing
	r := gin.Default()
	h := handler.NewHandler(trustSvc, reportSvc, sc, loc, feed)

	r.GET("/token", h.GetActorToken)

	// Scoring events are subsystem-to-engine calls; the actor ids in their
	// bodies are only trusted behind the service credential.
	events := r.Group("/events", handler.ServiceAuth())
	{
		events.POST("/message", h.MessageSubmitted)
		events.POST("/booking", h.BookingOutcomeChanged)
		events.POST("/review", h.ReviewSubmitted)
	}

	authed := r.Group("/", handler.ActorAuth())
	{
		authed.POST("/reports", h.SubmitReport)
		authed.POST("/appeals", h.SubmitAppeal)
		authed.GET("/actors/:id/safety", h.GetSafetyStatus)
		authed.GET("/actors/:id/can-message", h.CanMessage)
	}

	ops := r.Group("/ops", handler.OpsAuth())
	{
		ops.POST("/reports/:id/investigate", h.InvestigateReport)
		ops.POST("/reports/:id/resolve", h.ResolveReport)
		ops.POST("/reports/:id/dismiss", h.DismissReport)
		ops.POST("/reports/:id/escalate", h.EscalateReport)
		ops.POST("/appeals/:id/approve", h.ApproveAppeal)
		ops.POST("/appeals/:id/reject", h.RejectAppeal)
		ops.POST("/actors/:id/suspend", h.SuspendActor)
		ops.POST("/actors/:id/reactivate", h.ReactivateActor)
		ops.GET("/incidents/ws", h.ServeIncidentFeed)
	}

	server := &http.Server{
		Addr:           ":" + envOr("PORT", "8080"),
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}
