package main

import (
	"log"
	"os"
)

// workerConfig holds the worker-specific settings
type workerConfig struct {
	RedisAddr   string
	Concurrency int
}

// loadWorkerConfig loads configuration from environment variables
func loadWorkerConfig() *workerConfig {
	cfg := &workerConfig{
		RedisAddr:   getEnv("REDIS_HOST", "localhost:6379"),
		Concurrency: 10,
	}

	log.Printf("[Config] Redis: %s", cfg.RedisAddr)

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
