// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/giftswap/auth"
	"github.com/danielhkuo/giftswap/cliparse"
	"github.com/danielhkuo/giftswap/middleware"
	"github.com/danielhkuo/giftswap/models"
)

type PoolHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPoolHandler(db *sql.DB, cfg cliparse.Config) *PoolHandler {
	return &PoolHandler{db: db, cfg: cfg}
}

// CreatePool handles POST /pools
func (h *PoolHandler) CreatePool(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePoolRequest
	if !middleware.DecodeRequest(w, r, &req) {
		return
	}

	poolID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate pool ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pool")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO baby_pool (id, title, parent_names, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, poolID, req.Title, req.ParentNames, req.DueDate, models.PoolOpen, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert pool", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create pool")
		return
	}

	slog.Info("pool created", "pool_id", poolID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePoolResponse{
		PoolID:   poolID,
		AdminKey: auth.GenerateAdminKey(poolID, h.cfg.AdminKeySalt),
	})
}

// SubmitGuess handles POST /pools/{id}/guesses
// Each name may guess once per pool, compared case-insensitively.
func (h *PoolHandler) SubmitGuess(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("id")
	if poolID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pool_id is required")
		return
	}

	var req models.SubmitGuessRequest
	if !middleware.DecodeRequest(w, r, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name cannot be blank")
		return
	}
	nameKey := strings.ToLower(name)

	var status string
	err := h.db.QueryRow("SELECT status FROM baby_pool WHERE id = $1", poolID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pool not found")
		return
	}
	if err != nil {
		slog.Error("failed to query pool", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status != models.PoolOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Pool is closed")
		return
	}

	var taken bool
	err = h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM baby_guess WHERE pool_id = $1 AND name_key = $2)
	`, poolID, nameKey).Scan(&taken)
	if err != nil {
		slog.Error("failed to check guess name", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if taken {
		middleware.ErrorResponse(w, http.StatusConflict, "Someone with that name has already guessed")
		return
	}

	guessID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate guess ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit guess")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO baby_guess (id, pool_id, name, name_key, birth_date, weight_grams, sex, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, guessID, poolID, name, nameKey, req.BirthDate, req.WeightGrams, req.Sex, time.Now().UTC())
	if err != nil {
		// Lost a race with a guess under the same name
		if h.db.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM baby_guess WHERE pool_id = $1 AND name_key = $2)
		`, poolID, nameKey).Scan(&taken) == nil && taken {
			middleware.ErrorResponse(w, http.StatusConflict, "Someone with that name has already guessed")
			return
		}
		slog.Error("failed to insert guess", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit guess")
		return
	}

	slog.Info("guess submitted", "pool_id", poolID, "guess_id", guessID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitGuessResponse{
		GuessID: guessID,
	})
}

// GetPool handles GET /pools/{id}
// Once the pool is closed the guesses come back ranked.
func (h *PoolHandler) GetPool(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("id")
	if poolID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pool_id is required")
		return
	}

	pool, err := h.loadPool(poolID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pool not found")
		return
	}
	if err != nil {
		slog.Error("failed to query pool", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	guesses, err := h.loadGuesses(poolID)
	if err != nil {
		slog.Error("failed to query guesses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if pool.Status == models.PoolClosed && pool.ActualBirthDate != nil && pool.ActualWeightGrams != nil && pool.ActualSex != nil {
		outcome, err := ParseOutcome(*pool.ActualBirthDate, *pool.ActualWeightGrams, *pool.ActualSex)
		if err == nil {
			guesses, err = RankGuesses(outcome, guesses)
		}
		if err != nil {
			slog.Error("failed to rank guesses", "error", err, "pool_id", poolID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to rank guesses")
			return
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.PoolWithGuesses{
		Pool:    pool,
		Guesses: guesses,
	})
}

// ClosePool handles POST /pools/{id}/close
func (h *PoolHandler) ClosePool(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("id")
	if poolID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pool_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(poolID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.ClosePoolRequest
	if !middleware.DecodeRequest(w, r, &req) {
		return
	}

	outcome, err := ParseOutcome(req.BirthDate, req.WeightGrams, req.Sex)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	var status string
	err = h.db.QueryRow("SELECT status FROM baby_pool WHERE id = $1", poolID).Scan(&status)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Pool not found")
		return
	}
	if err != nil {
		slog.Error("failed to query pool", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if status != models.PoolOpen {
		middleware.ErrorResponse(w, http.StatusConflict, "Pool is already closed")
		return
	}

	closedAt := time.Now().UTC()
	result, err := h.db.Exec(`
		UPDATE baby_pool
		SET status = $1, actual_birth_date = $2, actual_weight_grams = $3, actual_sex = $4, closed_at = $5
		WHERE id = $6 AND status = $7
	`, models.PoolClosed, req.BirthDate, req.WeightGrams, req.Sex, closedAt, poolID, models.PoolOpen)
	if err != nil {
		slog.Error("failed to close pool", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to close pool")
		return
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Pool is already closed")
		return
	}

	guesses, err := h.loadGuesses(poolID)
	if err != nil {
		slog.Error("failed to query guesses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	results, err := RankGuesses(outcome, guesses)
	if err != nil {
		slog.Error("failed to rank guesses", "error", err, "pool_id", poolID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to rank guesses")
		return
	}

	slog.Info("pool closed", "pool_id", poolID, "guesses", len(results))

	middleware.JSONResponse(w, http.StatusOK, models.ClosePoolResponse{
		ClosedAt: closedAt,
		Results:  results,
	})
}

func (h *PoolHandler) loadPool(poolID string) (models.Pool, error) {
	var pool models.Pool
	var birthDate, sex sql.NullString
	var weight sql.NullInt64
	var closedAt sql.NullTime

	err := h.db.QueryRow(`
		SELECT id, title, parent_names, due_date, status,
		       actual_birth_date, actual_weight_grams, actual_sex, closed_at, created_at
		FROM baby_pool WHERE id = $1
	`, poolID).Scan(&pool.ID, &pool.Title, &pool.ParentNames, &pool.DueDate, &pool.Status,
		&birthDate, &weight, &sex, &closedAt, &pool.CreatedAt)
	if err != nil {
		return models.Pool{}, err
	}

	if birthDate.Valid {
		pool.ActualBirthDate = &birthDate.String
	}
	if weight.Valid {
		grams := int(weight.Int64)
		pool.ActualWeightGrams = &grams
	}
	if sex.Valid {
		pool.ActualSex = &sex.String
	}
	if closedAt.Valid {
		pool.ClosedAt = &closedAt.Time
	}
	return pool, nil
}

func (h *PoolHandler) loadGuesses(poolID string) ([]models.Guess, error) {
	rows, err := h.db.Query(`
		SELECT id, pool_id, name, birth_date, weight_grams, sex, created_at
		FROM baby_guess
		WHERE pool_id = $1
		ORDER BY created_at, id
	`, poolID)
	if err != nil {
		return nil, fmt.Errorf("failed to query guesses: %w", err)
	}
	defer rows.Close()

	guesses := []models.Guess{}
	for rows.Next() {
		var g models.Guess
		if err := rows.Scan(&g.ID, &g.PoolID, &g.Name, &g.BirthDate, &g.WeightGrams, &g.Sex, &g.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan guess: %w", err)
		}
		guesses = append(guesses, g)
	}
	return guesses, rows.Err()
}
