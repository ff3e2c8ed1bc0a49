// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/giftswap/match"
	"github.com/danielhkuo/giftswap/models"
	"github.com/danielhkuo/giftswap/testutil"
)

// TestFullExchangeWorkflow tests the complete exchange lifecycle:
// create → draw → reveal → re-draw → edit → reveal blocked → draw again
func TestFullExchangeWorkflow(t *testing.T) {
	handler, _ := setupExchangeHandler(t)

	// Step 1: Create exchange with a couple who must not draw each other
	created := createExchange(t, handler, models.CreateExchangeRequest{
		Title:         "Neighbours",
		OrganizerName: "Pat",
		Participants: []match.Participant{
			{ID: "pat", Name: "Pat"},
			{ID: "sam", Name: "Sam"},
			{ID: "lee", Name: "Lee", Interests: "plants"},
			{ID: "kim", Name: "Kim"},
			{ID: "ray", Name: "Ray"},
		},
		Exclusions:        []match.Exclusion{{P1: "pat", P2: "sam"}},
		ForcedAssignments: []match.ForcedAssignment{{GiverID: "kim", ReceiverID: "lee"}},
	})

	drawNames := func(t *testing.T) models.DrawResponse {
		t.Helper()
		w := httptest.NewRecorder()
		handler.DrawExchange(w, adminRequest("POST", "/exchanges/x/draw", created.ExchangeID, created.AdminKey, nil))
		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.DrawResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	revealFor := func(participant, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/exchanges/x/reveal?participant="+participant, nil)
		req.SetPathValue("slug", created.ShareSlug)
		req.Header.Set("X-Reveal-Token", token)
		w := httptest.NewRecorder()
		handler.Reveal(w, req)
		return w
	}

	// Step 2: Draw
	first := drawNames(t)
	tokens := map[string]string{}
	for _, link := range first.Links {
		tokens[link.ParticipantID] = link.RevealToken
	}
	if len(tokens) != 5 {
		t.Fatalf("Expected 5 reveal tokens, got %d", len(tokens))
	}

	// Step 3: Kim always gets Lee, interests included
	w := revealFor("kim", tokens["kim"])
	testutil.AssertStatus(t, w, http.StatusOK)
	var kim models.RevealResponse
	testutil.AssertJSON(t, w, &kim)
	if kim.Receiver.ID != "lee" || kim.Receiver.Interests != "plants" {
		t.Errorf("Expected Kim to draw Lee, got %+v", kim.Receiver)
	}

	// Step 4: Re-draw keeps the same tokens
	second := drawNames(t)
	for _, link := range second.Links {
		if tokens[link.ParticipantID] != link.RevealToken {
			t.Errorf("Reveal token for %s changed after re-draw", link.ParticipantID)
		}
	}
	testutil.AssertStatus(t, revealFor("pat", tokens["pat"]), http.StatusOK)

	// Step 5: Editing the exchange clears the draw
	w = httptest.NewRecorder()
	handler.UpdateExchange(w, adminRequest("PUT", "/exchanges/x", created.ExchangeID, created.AdminKey, models.UpdateExchangeRequest{
		Participants: []match.Participant{
			{ID: "pat", Name: "Pat"},
			{ID: "sam", Name: "Sam"},
			{ID: "lee", Name: "Lee"},
		},
	}))
	testutil.AssertStatus(t, w, http.StatusOK)
	testutil.AssertStatus(t, revealFor("pat", tokens["pat"]), http.StatusConflict)

	// Step 6: Draw again; Ray left so his token finds nothing
	third := drawNames(t)
	if len(third.Links) != 3 {
		t.Errorf("Expected 3 reveal links, got %d", len(third.Links))
	}
	testutil.AssertStatus(t, revealFor("ray", tokens["ray"]), http.StatusNotFound)
}

// TestFullPoolWorkflow tests a baby pool from creation to ranked results
func TestFullPoolWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewPoolHandler(db, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.CreatePool(w, testutil.MakeRequest("POST", "/pools", models.CreatePoolRequest{
		Title: "Baby Kim", ParentNames: "Jo & Max", DueDate: "2026-06-01",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var created models.CreatePoolResponse
	testutil.AssertJSON(t, w, &created)

	for _, g := range []models.SubmitGuessRequest{
		{Name: "Aunt Bea", BirthDate: "2026-06-03", WeightGrams: 3600, Sex: models.SexGirl},
		{Name: "Uncle Al", BirthDate: "2026-05-30", WeightGrams: 3100, Sex: models.SexBoy},
	} {
		req := testutil.MakeRequest("POST", "/pools/x/guesses", g, nil)
		req.SetPathValue("id", created.PoolID)
		w := httptest.NewRecorder()
		handler.SubmitGuess(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	req := testutil.MakeRequest("POST", "/pools/x/close", models.ClosePoolRequest{
		BirthDate: "2026-06-02", WeightGrams: 3500, Sex: models.SexGirl,
	}, map[string]string{"X-Admin-Key": created.AdminKey})
	req.SetPathValue("id", created.PoolID)
	w = httptest.NewRecorder()
	handler.ClosePool(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var closed models.ClosePoolResponse
	testutil.AssertJSON(t, w, &closed)
	if len(closed.Results) != 2 || closed.Results[0].Name != "Aunt Bea" {
		t.Errorf("Expected Aunt Bea to win, got %+v", closed.Results)
	}

	// Late guesses are refused
	req = testutil.MakeRequest("POST", "/pools/x/guesses", models.SubmitGuessRequest{
		Name: "Cousin Vi", BirthDate: "2026-06-02", WeightGrams: 3500, Sex: models.SexGirl,
	}, nil)
	req.SetPathValue("id", created.PoolID)
	w = httptest.NewRecorder()
	handler.SubmitGuess(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}
