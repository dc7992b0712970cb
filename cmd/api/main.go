package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"ewastemap/internal/config"
	"ewastemap/internal/model"
	"ewastemap/internal/server"
	"ewastemap/internal/service"
)

func main() {
	log.Println("[API] Starting India E-Waste Map server...")

	// Load configuration
	cfg := config.Load()

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := openDatabase(cfg)
	if err != nil {
		log.Fatalf("[API] Failed to connect to database: %v", err)
	}
	log.Println("[API] Connected to database")

	// Auto migrate
	if err := autoMigrate(db); err != nil {
		log.Fatalf("[API] Failed to migrate database: %v", err)
	}
	log.Println("[API] Database migrated")

	// Seed demo data on first run
	if err := service.NewSeeder(db).Run(context.Background()); err != nil {
		log.Fatalf("[API] Failed to seed database: %v", err)
	}

	// Optional Redis connection for login rate limiting
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisURL})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("[API] Failed to connect to Redis: %v", err)
		}
		cancel()
		log.Println("[API] Connected to Redis, login rate limiting enabled")
		defer redisClient.Close()
	}

	// Create and setup server
	srv := server.NewServer(cfg, db, redisClient)
	srv.Setup()

	addr := fmt.Sprintf(":%d", cfg.Port)
	go func() {
		if err := srv.Run(addr); err != nil {
			log.Fatalf("[API] Failed to start server: %v", err)
		}
	}()

	log.Printf("[API] Server ready on %s", addr)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	log.Println("[API] Shutting down...")

	srv.Shutdown()
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Println("[API] Server stopped")
}

// openDatabase connects to Postgres when DATABASE_URL is a postgres URL,
// and to a local SQLite file otherwise.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	if cfg.IsPostgres() {
		return gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(cfg.DatabaseURL), &gorm.Config{})
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Marker{},
		&model.LoginLog{},
		&model.OperationLog{},
	)
}
