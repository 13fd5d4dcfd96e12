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

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nutrilog-app/nutrilog-engine/internal/adapters/cache"
	adapterHTTP "github.com/nutrilog-app/nutrilog-engine/internal/adapters/handler/http"
	"github.com/nutrilog-app/nutrilog-engine/internal/adapters/repository"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/domain"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/services"
	"github.com/nutrilog-app/nutrilog-engine/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")

	serverPort := getEnv("PORT", "8080")

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("Critical: JWT_SECRET must be set")
	}

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

	// Redis is optional: without it the API still serves every endpoint,
	// just without cached summaries and rate limiting.
	var redisClient *redis.Client
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if client, err := cache.NewRedisClient(
		getEnv("REDIS_HOST", "localhost"),
		getEnv("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		redisDB,
	); err != nil {
		log.Printf("Redis unavailable, continuing without cache: %v", err)
	} else {
		redisClient = client
	}

	userRepo := repository.NewPostgresUserRepository(db.DB)

	var logRepo domain.LogRepository = repository.NewPostgresLogRepository(db)
	var summaryCache services.SummaryCache
	if redisClient != nil {
		logRepo = repository.NewCachedLogRepository(logRepo, redisClient)
		summaryCache = cache.NewRedisSummaryCache(redisClient)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var worker *workers.SummaryWorker
	if summaryCache != nil {
		worker = workers.NewSummaryWorker(logRepo, summaryCache)
		worker.Start(ctx)
	}

	authService := services.NewAuthService(userRepo)
	tokenService := services.NewTokenService(jwtSecret, "nutrilog-engine", 24*time.Hour, userRepo)
	profileService := services.NewProfileService(userRepo)
	logService := services.NewLogService(logRepo, summaryCache, worker)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:    adapterHTTP.NewAuthHandler(authService, tokenService),
		ProfileHandler: adapterHTTP.NewProfileHandler(profileService),
		LogHandler:     adapterHTTP.NewLogHandler(logService),
		SummaryHandler: adapterHTTP.NewSummaryHandler(logService),
		TokenService:   tokenService,
		DB:             db,
		Redis:          redisClient,
		StartTime:      startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Nutrilog Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
