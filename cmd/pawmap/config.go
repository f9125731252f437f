package main

import (
	"github.com/joho/godotenv"

	"pawmap/shared/go/config"
)

// loadConfig reads the local env file if present, then resolves all settings
// from the environment.
func loadConfig() (*config.Config, error) {
	_ = godotenv.Load("config/local.env")
	return config.Load()
}
