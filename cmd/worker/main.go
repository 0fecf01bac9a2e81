package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	infraCache "worker-profile-service/internal/infrastructure/cache"
	"worker-profile-service/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := LoadConfig()
	logger.Init(cfg.Environment)

	redisCache := infraCache.NewRedisCache(
		cfg.CacheRedisAddr,
		cfg.CacheRedisPassword,
		cfg.CacheRedisDB,
	)

	handlers := NewEventHandlers(redisCache)
	srv := setupAsynqServer(cfg, handlers)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	srv.Shutdown()
}
