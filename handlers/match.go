// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/giftswap/cliparse"
	"github.com/danielhkuo/giftswap/match"
	"github.com/danielhkuo/giftswap/middleware"
	"github.com/danielhkuo/giftswap/models"
	"github.com/danielhkuo/giftswap/sharecode"
)

type MatchHandler struct {
	cfg       cliparse.Config
	generator *match.Generator
}

func NewMatchHandler(cfg cliparse.Config) *MatchHandler {
	return &MatchHandler{cfg: cfg, generator: newGenerator(cfg)}
}

func newGenerator(cfg cliparse.Config) *match.Generator {
	return match.NewGenerator(
		match.WithMaxAttempts(cfg.MatchMaxAttempts),
		match.WithExhaustiveFallback(cfg.MatchExhaustive),
	)
}

// assignIDs gives every participant without an ID a fresh one
func assignIDs(participants []match.Participant) {
	for i := range participants {
		participants[i].ID = strings.TrimSpace(participants[i].ID)
		if participants[i].ID == "" {
			participants[i].ID = uuid.NewString()
		}
	}
}

// draw validates the constraints and generates matches, writing the error response on failure
func draw(w http.ResponseWriter, g *match.Generator, participants []match.Participant, exclusions []match.Exclusion, forced []match.ForcedAssignment) ([]match.Match, bool) {
	if err := match.Validate(participants, exclusions, forced); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	matches, err := g.Generate(participants, exclusions, forced)
	if errors.Is(err, match.ErrInfeasible) {
		middleware.ErrorResponse(w, http.StatusUnprocessableEntity,
			"Too many constraints: no valid assignment found. Remove some exclusions or forced assignments and try again.")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to generate matches", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to generate matches")
		return nil, false
	}
	return matches, true
}

// Match handles POST /match
func (h *MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req models.MatchRequest
	if !middleware.DecodeRequest(w, r, &req) {
		return
	}

	assignIDs(req.Participants)

	matches, ok := draw(w, h.generator, req.Participants, req.Exclusions, req.ForcedAssignments)
	if !ok {
		return
	}

	code, err := sharecode.Encode(sharecode.FromMatches(req.Title, matches))
	if err != nil {
		slog.Error("failed to encode share code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create share code")
		return
	}

	slog.Info("matches generated", "participants", len(matches))

	middleware.JSONResponse(w, http.StatusOK, models.MatchResponse{
		Matches:   matches,
		ShareCode: code,
		ShareURL:  h.cfg.BaseURL + "/share/" + code,
	})
}

// GetShared handles GET /share/{code}
// With ?giver= only that giver's receiver is returned; otherwise just the names.
func (h *MatchHandler) GetShared(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := sharecode.Decode(code)
	if errors.Is(err, sharecode.ErrCodeTooLarge) {
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Share code too large")
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid share code")
		return
	}

	giver := r.URL.Query().Get("giver")
	if giver == "" {
		middleware.JSONResponse(w, http.StatusOK, models.SharedSummaryResponse{
			Title:        result.Title,
			Participants: result.Givers(),
		})
		return
	}

	pair, found := result.Lookup(giver)
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "No participant with that name")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SharedPairResponse{
		Title:     result.Title,
		Giver:     pair.Giver,
		Receiver:  pair.Receiver,
		Interests: pair.Interests,
	})
}
