// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/danielhkuo/giftswap/auth"
	"github.com/danielhkuo/giftswap/blobstore"
	"github.com/danielhkuo/giftswap/cliparse"
	"github.com/danielhkuo/giftswap/match"
	"github.com/danielhkuo/giftswap/middleware"
	"github.com/danielhkuo/giftswap/models"
)

type ExchangeHandler struct {
	blobs     blobstore.Store
	cfg       cliparse.Config
	generator *match.Generator
}

func NewExchangeHandler(blobs blobstore.Store, cfg cliparse.Config) *ExchangeHandler {
	return &ExchangeHandler{blobs: blobs, cfg: cfg, generator: newGenerator(cfg)}
}

func exchangeKey(id string) string {
	return "exchanges/" + id + ".json"
}

func slugKey(slug string) string {
	return "slugs/" + slug
}

func (h *ExchangeHandler) load(ctx context.Context, id string) (*models.Exchange, error) {
	var ex models.Exchange
	if err := blobstore.GetJSON(ctx, h.blobs, exchangeKey(id), &ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (h *ExchangeHandler) save(ctx context.Context, ex *models.Exchange) error {
	return blobstore.PutJSON(ctx, h.blobs, exchangeKey(ex.ID), ex)
}

// loadForAdmin checks the admin key and loads the exchange, writing the error response on failure
func (h *ExchangeHandler) loadForAdmin(w http.ResponseWriter, r *http.Request) (*models.Exchange, bool) {
	exchangeID := r.PathValue("id")
	if exchangeID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "exchange_id is required")
		return nil, false
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(exchangeID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return nil, false
	}

	ex, err := h.load(r.Context(), exchangeID)
	if errors.Is(err, blobstore.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exchange not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to load exchange", "error", err, "exchange_id", exchangeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return nil, false
	}
	return ex, true
}

// CreateExchange handles POST /exchanges
func (h *ExchangeHandler) CreateExchange(w http.ResponseWriter, r *http.Request) {
	var req models.CreateExchangeRequest
	if !middleware.DecodeRequest(w, r, &req) {
		return
	}

	exchangeID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate exchange ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create exchange")
		return
	}

	assignIDs(req.Participants)

	now := time.Now().UTC()
	ex := &models.Exchange{
		ID:                exchangeID,
		Title:             req.Title,
		Budget:            req.Budget,
		OrganizerName:     req.OrganizerName,
		ShareSlug:         auth.GenerateShareSlug(exchangeID, h.cfg.SlugSalt),
		Status:            models.StatusDraft,
		Participants:      nonNil(req.Participants),
		Exclusions:        nonNil(req.Exclusions),
		ForcedAssignments: nonNil(req.ForcedAssignments),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	ctx := r.Context()
	if err := h.save(ctx, ex); err != nil {
		slog.Error("failed to store exchange", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create exchange")
		return
	}
	if err := h.blobs.Put(ctx, slugKey(ex.ShareSlug), []byte(ex.ID)); err != nil {
		slog.Error("failed to store share slug", "error", err)
		// An exchange nobody holds the admin key for is unreachable
		if err := h.blobs.Delete(ctx, exchangeKey(ex.ID)); err != nil {
			slog.Error("failed to remove orphaned exchange", "error", err, "exchange_id", ex.ID)
		}
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create exchange")
		return
	}

	slog.Info("exchange created", "exchange_id", exchangeID, "organizer", req.OrganizerName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateExchangeResponse{
		ExchangeID: exchangeID,
		AdminKey:   auth.GenerateAdminKey(exchangeID, h.cfg.AdminKeySalt),
		ShareSlug:  ex.ShareSlug,
	})
}

// GetExchangeAdmin handles GET /exchanges/{id}/admin
func (h *ExchangeHandler) GetExchangeAdmin(w http.ResponseWriter, r *http.Request) {
	ex, ok := h.loadForAdmin(w, r)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, ex)
}

// UpdateExchange handles PUT /exchanges/{id}
// Replacing the participants or rules discards any previous draw.
func (h *ExchangeHandler) UpdateExchange(w http.ResponseWriter, r *http.Request) {
	ex, ok := h.loadForAdmin(w, r)
	if !ok {
		return
	}

	var req models.UpdateExchangeRequest
	if !middleware.DecodeRequest(w, r, &req) {
		return
	}

	assignIDs(req.Participants)

	if req.Title != "" {
		ex.Title = req.Title
	}
	ex.Budget = req.Budget
	ex.Participants = nonNil(req.Participants)
	ex.Exclusions = nonNil(req.Exclusions)
	ex.ForcedAssignments = nonNil(req.ForcedAssignments)
	ex.Matches = nil
	ex.Status = models.StatusDraft
	ex.DrawnAt = nil
	ex.UpdatedAt = time.Now().UTC()

	if err := h.save(r.Context(), ex); err != nil {
		slog.Error("failed to update exchange", "error", err, "exchange_id", ex.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update exchange")
		return
	}

	slog.Info("exchange updated", "exchange_id", ex.ID, "participants", len(ex.Participants))

	middleware.JSONResponse(w, http.StatusOK, ex)
}

// DeleteExchange handles DELETE /exchanges/{id}
// The slug goes first so reveal links stop working even if the document delete fails.
func (h *ExchangeHandler) DeleteExchange(w http.ResponseWriter, r *http.Request) {
	ex, ok := h.loadForAdmin(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	if err := h.blobs.Delete(ctx, slugKey(ex.ShareSlug)); err != nil {
		slog.Error("failed to delete share slug", "error", err, "exchange_id", ex.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete exchange")
		return
	}
	if err := h.blobs.Delete(ctx, exchangeKey(ex.ID)); err != nil {
		slog.Error("failed to delete exchange", "error", err, "exchange_id", ex.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete exchange")
		return
	}

	slog.Info("exchange deleted", "exchange_id", ex.ID)

	w.WriteHeader(http.StatusNoContent)
}

// DrawExchange handles POST /exchanges/{id}/draw
// Drawing again replaces the previous matches; reveal tokens stay the same.
func (h *ExchangeHandler) DrawExchange(w http.ResponseWriter, r *http.Request) {
	ex, ok := h.loadForAdmin(w, r)
	if !ok {
		return
	}

	matches, ok := draw(w, h.generator, ex.Participants, ex.Exclusions, ex.ForcedAssignments)
	if !ok {
		return
	}

	now := time.Now().UTC()
	ex.Matches = make([]models.StoredMatch, len(matches))
	for i, m := range matches {
		ex.Matches[i] = models.StoredMatch{GiverID: m.Giver.ID, ReceiverID: m.Receiver.ID}
	}
	ex.Status = models.StatusDrawn
	ex.DrawnAt = &now
	ex.UpdatedAt = now

	if err := h.save(r.Context(), ex); err != nil {
		slog.Error("failed to store draw", "error", err, "exchange_id", ex.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to store draw")
		return
	}

	links := make([]models.RevealLink, len(matches))
	for i, m := range matches {
		token := auth.GenerateRevealToken(ex.ID, m.Giver.ID, h.cfg.AdminKeySalt)
		links[i] = models.RevealLink{
			ParticipantID: m.Giver.ID,
			Name:          m.Giver.Name,
			RevealToken:   token,
			RevealURL:     h.revealURL(ex.ShareSlug, m.Giver.ID, token),
		}
	}

	slog.Info("exchange drawn", "exchange_id", ex.ID, "matches", len(matches))

	middleware.JSONResponse(w, http.StatusOK, models.DrawResponse{
		DrawnAt: now,
		Links:   links,
	})
}

func (h *ExchangeHandler) revealURL(slug, participantID, token string) string {
	q := url.Values{}
	q.Set("participant", participantID)
	q.Set("token", token)
	return fmt.Sprintf("%s/exchanges/%s/reveal?%s", h.cfg.BaseURL, url.PathEscape(slug), q.Encode())
}

// Reveal handles GET /exchanges/{slug}/reveal
// The token comes from X-Reveal-Token, or the token query parameter of a reveal link.
func (h *ExchangeHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	participantID := r.URL.Query().Get("participant")
	if slug == "" || participantID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slug and participant are required")
		return
	}

	token := r.Header.Get("X-Reveal-Token")
	if token == "" {
		token = r.URL.Query().Get("token")
	}

	ctx := r.Context()
	rawID, err := h.blobs.Get(ctx, slugKey(slug))
	if errors.Is(err, blobstore.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exchange not found")
		return
	}
	if err != nil {
		slog.Error("failed to resolve share slug", "error", err, "slug", slug)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}
	exchangeID := string(rawID)

	if err := auth.ValidateRevealToken(exchangeID, participantID, token, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid reveal token")
		return
	}

	ex, err := h.load(ctx, exchangeID)
	if errors.Is(err, blobstore.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Exchange not found")
		return
	}
	if err != nil {
		slog.Error("failed to load exchange", "error", err, "exchange_id", exchangeID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
		return
	}

	if ex.Status != models.StatusDrawn {
		middleware.ErrorResponse(w, http.StatusConflict, "Names have not been drawn yet")
		return
	}

	for _, m := range ex.Matches {
		if m.GiverID != participantID {
			continue
		}
		giver, gok := ex.Participant(m.GiverID)
		receiver, rok := ex.Participant(m.ReceiverID)
		if !gok || !rok {
			break
		}
		middleware.JSONResponse(w, http.StatusOK, models.RevealResponse{
			ExchangeTitle: ex.Title,
			Budget:        ex.Budget,
			Giver:         giver,
			Receiver:      receiver,
		})
		return
	}

	middleware.ErrorResponse(w, http.StatusNotFound, "Participant not found in this draw")
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
