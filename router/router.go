// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/giftswap/blobstore"
	"github.com/danielhkuo/giftswap/cliparse"
	"github.com/danielhkuo/giftswap/handlers"
	"github.com/danielhkuo/giftswap/middleware"
)

func NewRouter(db *sql.DB, blobs blobstore.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(cfg)
	exchangeHandler := handlers.NewExchangeHandler(blobs, cfg)
	kudosHandler := handlers.NewKudosHandler(db, cfg)
	poolHandler := handlers.NewPoolHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Stateless matching
	mux.HandleFunc("POST /match", middleware.WithLogging(matchHandler.Match))
	mux.HandleFunc("GET /share/{code}", middleware.WithLogging(matchHandler.GetShared))

	// Stored exchanges (admin operations)
	mux.HandleFunc("POST /exchanges", middleware.WithLogging(exchangeHandler.CreateExchange))
	mux.HandleFunc("GET /exchanges/{id}/admin", middleware.WithLogging(exchangeHandler.GetExchangeAdmin))
	mux.HandleFunc("PUT /exchanges/{id}", middleware.WithLogging(exchangeHandler.UpdateExchange))
	mux.HandleFunc("DELETE /exchanges/{id}", middleware.WithLogging(exchangeHandler.DeleteExchange))
	mux.HandleFunc("POST /exchanges/{id}/draw", middleware.WithLogging(exchangeHandler.DrawExchange))

	// Participant reveal (public, uses share slug)
	mux.HandleFunc("GET /exchanges/{slug}/reveal", middleware.WithLogging(exchangeHandler.Reveal))

	// Kudos boards
	mux.HandleFunc("POST /boards", middleware.WithLogging(kudosHandler.CreateBoard))
	mux.HandleFunc("GET /boards/{id}", middleware.WithLogging(kudosHandler.GetBoard))
	mux.HandleFunc("POST /boards/{id}/kudos", middleware.WithLogging(kudosHandler.PostKudos))
	mux.HandleFunc("DELETE /boards/{id}/kudos/{kudosID}", middleware.WithLogging(kudosHandler.DeleteKudos))

	// Baby pools
	mux.HandleFunc("POST /pools", middleware.WithLogging(poolHandler.CreatePool))
	mux.HandleFunc("GET /pools/{id}", middleware.WithLogging(poolHandler.GetPool))
	mux.HandleFunc("POST /pools/{id}/guesses", middleware.WithLogging(poolHandler.SubmitGuess))
	mux.HandleFunc("POST /pools/{id}/close", middleware.WithLogging(poolHandler.ClosePool))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("giftswap API v1"))
	})

	return mux
}

// NewHandler returns the full HTTP stack: routes wrapped in CORS
func NewHandler(db *sql.DB, blobs blobstore.Store, cfg cliparse.Config) http.Handler {
	return middleware.CORS(NewRouter(db, blobs, cfg))
}
