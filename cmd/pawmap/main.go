package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pawmap/internal/store"
	"pawmap/shared/go/logging"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		logging.Fatal(err, "load config")
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	logging.SetGlobalLogger(logger)

	db, err := openDatabase(context.Background(), cfg.Database.URL)
	if err != nil {
		logger.Fatal(err, "open database")
	}
	defer db.Close()

	dataStore := store.New(db)

	if err := bootstrapDemoData(context.Background(), dataStore); err != nil {
		logger.Fatal(err, "bootstrap demo data")
	}

	handler := newHTTPHandler(cfg, dataStore)

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logging.Info(fmt.Sprintf("API listening on %s", server.Addr))
	if err := server.ListenAndServe(); err != nil {
		logger.Fatal(err, "server error")
	}
}
