package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"houses-api/confs"
	"houses-api/db"
	"houses-api/logger"
	"houses-api/server"
	"houses-api/storage"

	"github.com/gin-gonic/gin"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	appLog, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer appLog.Sync()

	if cfg.LogMode == "production" || cfg.LogMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to connect to DB", "error", err)
	}

	store, err := storage.New(ctx, cfg, appLog)
	if err != nil {
		appLog.Fatal("Failed to open photo store", "error", err)
	}
	defer store.Close(context.Background())

	// run server
	srv := server.NewServer(cfg, database, store, appLog)
	if err := srv.Start(ctx); err != nil {
		appLog.Error("Server stopped with error", "error", err)
	}
}
