package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/handler/http"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/notification"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/adapters/widget"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-habit-engine/internal/core/workers"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	serverPort := envOr("PORT", "8080")

	loc := time.Local
	if tz := os.Getenv("TZ_NAME"); tz != "" {
		parsed, err := time.LoadLocation(tz)
		if err != nil {
			log.Fatalf("Critical: Invalid TZ_NAME %q: %v", tz, err)
		}
		loc = parsed
	}
	clock := domain.SystemClock{Loc: loc}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	var habitRepo domain.HabitRepository = repository.NewPostgresHabitRepository(db)
	settingsRepo := repository.NewPostgresSettingsRepository(db)

	redisDB, _ := strconv.Atoi(envOr("REDIS_DB", "0"))
	rdb, err := cache.NewRedisClient(
		envOr("REDIS_HOST", "localhost"),
		envOr("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		redisDB,
	)
	if err != nil {
		log.Printf("Redis unavailable, continuing without cache and widgets: %v", err)
		rdb = nil
	} else {
		habitRepo = repository.NewCachedHabitRepository(habitRepo, rdb)
		log.Println("Redis connected, habit cache enabled.")
	}

	var renderer domain.WidgetRenderer
	if rdb != nil {
		renderer = widget.NewRedisRenderer(rdb, clock, 0)
	} else {
		renderer = widget.NewLogRenderer(clock)
	}

	worker := workers.NewRefreshWorker(habitRepo, settingsRepo, renderer, clock, 0)

	scheduler := notification.NewLocalScheduler()

	habitService := services.NewHabitService(habitRepo, scheduler, worker, clock)
	statsService := services.NewStatsService(habitRepo, clock)
	exchangeService := services.NewExchangeService(habitRepo, settingsRepo, clock)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(habitService),
		StatsHandler:    adapterHTTP.NewStatsHandler(statsService),
		ExchangeHandler: adapterHTTP.NewExchangeHandler(exchangeService),
		DB:              db,
		Redis:           rdb,
		StartTime:       startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Kanso Habit Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
