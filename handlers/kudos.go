// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/giftswap/auth"
	"github.com/danielhkuo/giftswap/cliparse"
	"github.com/danielhkuo/giftswap/middleware"
	"github.com/danielhkuo/giftswap/models"
)

type KudosHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewKudosHandler(db *sql.DB, cfg cliparse.Config) *KudosHandler {
	return &KudosHandler{db: db, cfg: cfg}
}

// CreateBoard handles POST /boards
func (h *KudosHandler) CreateBoard(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBoardRequest
	if !middleware.DecodeRequest(w, r, &req) {
		return
	}

	boardID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate board ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO kudos_board (id, title, recipient_name, creator_name, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, boardID, req.Title, req.RecipientName, req.CreatorName, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create board")
		return
	}

	slog.Info("board created", "board_id", boardID, "creator", req.CreatorName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateBoardResponse{
		BoardID:  boardID,
		AdminKey: auth.GenerateAdminKey(boardID, h.cfg.AdminKeySalt),
		BoardURL: h.cfg.BaseURL + "/boards/" + boardID,
	})
}

// PostKudos handles POST /boards/{id}/kudos
func (h *KudosHandler) PostKudos(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")
	if boardID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "board_id is required")
		return
	}

	var req models.PostKudosRequest
	if !middleware.DecodeRequest(w, r, &req) {
		return
	}

	author := strings.TrimSpace(req.Author)
	message := strings.TrimSpace(req.Message)
	if author == "" || message == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "author and message cannot be blank")
		return
	}

	var exists bool
	err := h.db.QueryRow("SELECT EXISTS(SELECT 1 FROM kudos_board WHERE id = $1)", boardID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Board not found")
		return
	}

	kudosID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate kudos ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post kudos")
		return
	}

	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)

	_, err = h.db.Exec(`
		INSERT INTO kudos (id, board_id, author, message, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, kudosID, boardID, author, message, ipHash, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert kudos", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to post kudos")
		return
	}

	slog.Info("kudos posted", "board_id", boardID, "kudos_id", kudosID)

	middleware.JSONResponse(w, http.StatusCreated, models.PostKudosResponse{
		KudosID: kudosID,
	})
}

// GetBoard handles GET /boards/{id}
// Kudos are listed newest first.
func (h *KudosHandler) GetBoard(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")
	if boardID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "board_id is required")
		return
	}

	var board models.Board
	err := h.db.QueryRow(`
		SELECT id, title, recipient_name, creator_name, created_at
		FROM kudos_board WHERE id = $1
	`, boardID).Scan(&board.ID, &board.Title, &board.RecipientName, &board.CreatorName, &board.CreatedAt)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Board not found")
		return
	}
	if err != nil {
		slog.Error("failed to query board", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	rows, err := h.db.Query(`
		SELECT id, board_id, author, message, created_at
		FROM kudos
		WHERE board_id = $1
		ORDER BY created_at DESC, id
	`, boardID)
	if err != nil {
		slog.Error("failed to query kudos", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	kudos := []models.Kudos{}
	for rows.Next() {
		var k models.Kudos
		if err := rows.Scan(&k.ID, &k.BoardID, &k.Author, &k.Message, &k.CreatedAt); err != nil {
			slog.Error("failed to scan kudos", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		k.PostedAgo = humanize.Time(k.CreatedAt)
		kudos = append(kudos, k)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read kudos", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.BoardWithKudos{
		Board: board,
		Kudos: kudos,
	})
}

// DeleteKudos handles DELETE /boards/{id}/kudos/{kudosID}
func (h *KudosHandler) DeleteKudos(w http.ResponseWriter, r *http.Request) {
	boardID := r.PathValue("id")
	kudosID := r.PathValue("kudosID")
	if boardID == "" || kudosID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "board_id and kudos_id are required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(boardID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	result, err := h.db.Exec("DELETE FROM kudos WHERE id = $1 AND board_id = $2", kudosID, boardID)
	if err != nil {
		slog.Error("failed to delete kudos", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	n, err := result.RowsAffected()
	if err != nil {
		slog.Error("failed to check deleted rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Kudos not found")
		return
	}

	slog.Info("kudos removed", "board_id", boardID, "kudos_id", kudosID)

	w.WriteHeader(http.StatusNoContent)
}
