package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/giftswap/blobstore"
	"github.com/danielhkuo/giftswap/cliparse"
	"github.com/danielhkuo/giftswap/db"
	"github.com/danielhkuo/giftswap/router"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect and create schema (tables)
	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database setup failed", "error", err, "driver", cfg.DatabaseType)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database schema ready", "driver", cfg.DatabaseType)

	blobs, err := blobstore.Open(context.Background(), cfg, dbConn)
	if err != nil {
		slog.Error("blob store setup failed", "error", err, "backend", cfg.BlobBackend)
		os.Exit(1)
	}
	slog.Info("Blob store ready", "backend", cfg.BlobBackend)

	// Create server
	server := http.Server{
		Handler:           router.NewHandler(dbConn, blobs, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "base_url", cfg.BaseURL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
