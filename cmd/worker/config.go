package main

import (
	"os"
	"strconv"
)

// Config is the event worker's runtime configuration, read from the same
// environment variables as the API process.
type Config struct {
	Environment string

	QueueRedisAddr     string
	QueueRedisPassword string
	QueueRedisDB       int

	CacheRedisAddr     string
	CacheRedisPassword string
	CacheRedisDB       int

	Concurrency int
}

func LoadConfig() *Config {
	return &Config{
		Environment: getEnv("APP_ENV", "development"),

		QueueRedisAddr:     getEnv("QUEUE_REDIS_ADDR", "localhost:6379"),
		QueueRedisPassword: getEnv("QUEUE_REDIS_PASSWORD", ""),
		QueueRedisDB:       getEnvInt("QUEUE_REDIS_DB", 1),

		CacheRedisAddr:     getEnv("CACHE_REDIS_ADDR", "localhost:6379"),
		CacheRedisPassword: getEnv("CACHE_REDIS_PASSWORD", ""),
		CacheRedisDB:       getEnvInt("CACHE_REDIS_DB", 0),

		Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
