// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/danielhkuo/giftswap/auth"
	"github.com/danielhkuo/giftswap/blobstore"
	"github.com/danielhkuo/giftswap/match"
	"github.com/danielhkuo/giftswap/models"
	"github.com/danielhkuo/giftswap/testutil"
)

func setupExchangeHandler(t *testing.T) (*ExchangeHandler, blobstore.Store) {
	t.Helper()
	blobs := blobstore.NewSQLStore(testutil.SetupTestDB(t))
	return NewExchangeHandler(blobs, testutil.GetTestConfig()), blobs
}

// createExchange creates an exchange through the handler and returns the response
func createExchange(t *testing.T, handler *ExchangeHandler, req models.CreateExchangeRequest) models.CreateExchangeResponse {
	t.Helper()

	w := httptest.NewRecorder()
	handler.CreateExchange(w, testutil.MakeRequest("POST", "/exchanges", req, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateExchangeResponse
	testutil.AssertJSON(t, w, &resp)
	return resp
}

func family() models.CreateExchangeRequest {
	return models.CreateExchangeRequest{
		Title:         "Family 2025",
		Budget:        "$30",
		OrganizerName: "Ann",
		Participants: []match.Participant{
			{ID: "ann", Name: "Ann"},
			{ID: "ben", Name: "Ben", Interests: "board games"},
			{ID: "cy", Name: "Cy"},
			{ID: "dee", Name: "Dee"},
		},
		Exclusions: []match.Exclusion{{P1: "ann", P2: "ben"}},
	}
}

func adminRequest(method, path, id, adminKey string, body interface{}) *http.Request {
	req := testutil.MakeRequest(method, path, body, map[string]string{"X-Admin-Key": adminKey})
	req.SetPathValue("id", id)
	return req
}

func TestCreateExchange(t *testing.T) {
	handler, blobs := setupExchangeHandler(t)
	cfg := testutil.GetTestConfig()

	t.Run("valid exchange", func(t *testing.T) {
		resp := createExchange(t, handler, family())

		if resp.AdminKey != auth.GenerateAdminKey(resp.ExchangeID, cfg.AdminKeySalt) {
			t.Error("Admin key does not match expected value")
		}
		if resp.ShareSlug != auth.GenerateShareSlug(resp.ExchangeID, cfg.SlugSalt) {
			t.Error("Share slug does not match expected value")
		}

		id, err := blobs.Get(t.Context(), slugKey(resp.ShareSlug))
		if err != nil {
			t.Fatalf("Expected slug index entry: %v", err)
		}
		if string(id) != resp.ExchangeID {
			t.Errorf("Slug points at %s, want %s", id, resp.ExchangeID)
		}

		var ex models.Exchange
		if err := blobstore.GetJSON(t.Context(), blobs, exchangeKey(resp.ExchangeID), &ex); err != nil {
			t.Fatalf("Failed to load stored exchange: %v", err)
		}
		if ex.Status != models.StatusDraft || len(ex.Participants) != 4 {
			t.Errorf("Unexpected stored exchange %+v", ex)
		}
	})

	t.Run("participant ids are filled in", func(t *testing.T) {
		req := family()
		req.Participants = []match.Participant{{Name: "Ann"}, {Name: "Ben"}}
		resp := createExchange(t, handler, req)

		var ex models.Exchange
		if err := blobstore.GetJSON(t.Context(), blobs, exchangeKey(resp.ExchangeID), &ex); err != nil {
			t.Fatalf("Failed to load stored exchange: %v", err)
		}
		for _, p := range ex.Participants {
			if p.ID == "" {
				t.Errorf("Participant %s has no ID", p.Name)
			}
		}
	})

	tests := []struct {
		name string
		body interface{}
	}{
		{"missing title", models.CreateExchangeRequest{OrganizerName: "Ann"}},
		{"missing organizer", models.CreateExchangeRequest{Title: "Family"}},
		{"invalid JSON", "invalid json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.CreateExchange(w, testutil.MakeRequest("POST", "/exchanges", tt.body, nil))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestGetExchangeAdmin(t *testing.T) {
	handler, _ := setupExchangeHandler(t)
	created := createExchange(t, handler, family())

	t.Run("valid key", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetExchangeAdmin(w, adminRequest("GET", "/exchanges/x/admin", created.ExchangeID, created.AdminKey, nil))

		testutil.AssertStatus(t, w, http.StatusOK)
		var ex models.Exchange
		testutil.AssertJSON(t, w, &ex)
		if ex.Title != "Family 2025" || ex.Budget != "$30" {
			t.Errorf("Unexpected exchange %+v", ex)
		}
	})

	t.Run("wrong key", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.GetExchangeAdmin(w, adminRequest("GET", "/exchanges/x/admin", created.ExchangeID, "nope", nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown exchange", func(t *testing.T) {
		cfg := testutil.GetTestConfig()
		key := auth.GenerateAdminKey("missing", cfg.AdminKeySalt)
		w := httptest.NewRecorder()
		handler.GetExchangeAdmin(w, adminRequest("GET", "/exchanges/missing/admin", "missing", key, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestDrawAndReveal(t *testing.T) {
	handler, _ := setupExchangeHandler(t)
	created := createExchange(t, handler, family())

	reveal := func(participant, token string) *httptest.ResponseRecorder {
		q := url.Values{"participant": {participant}}
		req := httptest.NewRequest("GET", "/exchanges/"+created.ShareSlug+"/reveal?"+q.Encode(), nil)
		req.SetPathValue("slug", created.ShareSlug)
		req.Header.Set("X-Reveal-Token", token)
		w := httptest.NewRecorder()
		handler.Reveal(w, req)
		return w
	}

	cfg := testutil.GetTestConfig()
	annToken := auth.GenerateRevealToken(created.ExchangeID, "ann", cfg.AdminKeySalt)

	t.Run("reveal before draw", func(t *testing.T) {
		testutil.AssertStatus(t, reveal("ann", annToken), http.StatusConflict)
	})

	w := httptest.NewRecorder()
	handler.DrawExchange(w, adminRequest("POST", "/exchanges/x/draw", created.ExchangeID, created.AdminKey, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var drawn models.DrawResponse
	testutil.AssertJSON(t, w, &drawn)
	if len(drawn.Links) != 4 {
		t.Fatalf("Expected 4 reveal links, got %d", len(drawn.Links))
	}

	received := map[string]bool{}
	for _, link := range drawn.Links {
		t.Run("reveal "+link.Name, func(t *testing.T) {
			if link.RevealToken != auth.GenerateRevealToken(created.ExchangeID, link.ParticipantID, cfg.AdminKeySalt) {
				t.Error("Unexpected reveal token")
			}

			w := reveal(link.ParticipantID, link.RevealToken)
			testutil.AssertStatus(t, w, http.StatusOK)

			var resp models.RevealResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Giver.ID != link.ParticipantID {
				t.Errorf("Expected giver %s, got %s", link.ParticipantID, resp.Giver.ID)
			}
			if resp.Receiver.ID == resp.Giver.ID {
				t.Error("Participant drew themselves")
			}
			pair := [2]string{resp.Giver.ID, resp.Receiver.ID}
			if pair == [2]string{"ann", "ben"} || pair == [2]string{"ben", "ann"} {
				t.Errorf("Excluded pair drawn: %v", pair)
			}
			if resp.ExchangeTitle != "Family 2025" || resp.Budget != "$30" {
				t.Errorf("Unexpected exchange details %+v", resp)
			}
			received[resp.Receiver.ID] = true
		})
	}
	if len(received) != 4 {
		t.Errorf("Expected every participant to receive once, got %v", received)
	}

	t.Run("reveal link carries the token", func(t *testing.T) {
		link := drawn.Links[0]
		u, err := url.Parse(link.RevealURL)
		if err != nil {
			t.Fatalf("Bad reveal URL: %v", err)
		}
		req := httptest.NewRequest("GET", u.RequestURI(), nil)
		req.SetPathValue("slug", created.ShareSlug)
		w := httptest.NewRecorder()
		handler.Reveal(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("someone else's token", func(t *testing.T) {
		testutil.AssertStatus(t, reveal("ben", annToken), http.StatusUnauthorized)
	})

	t.Run("unknown slug", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/exchanges/nope/reveal?participant=ann", nil)
		req.SetPathValue("slug", "nope")
		req.Header.Set("X-Reveal-Token", annToken)
		w := httptest.NewRecorder()
		handler.Reveal(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("missing participant", func(t *testing.T) {
		testutil.AssertStatus(t, reveal("", annToken), http.StatusBadRequest)
	})
}

func TestDrawExchangeErrors(t *testing.T) {
	handler, _ := setupExchangeHandler(t)

	t.Run("infeasible", func(t *testing.T) {
		req := family()
		req.Participants = req.Participants[:2]
		created := createExchange(t, handler, req)

		w := httptest.NewRecorder()
		handler.DrawExchange(w, adminRequest("POST", "/exchanges/x/draw", created.ExchangeID, created.AdminKey, nil))
		testutil.AssertStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("duplicate names", func(t *testing.T) {
		req := family()
		req.Participants = append(req.Participants, match.Participant{ID: "ann2", Name: "ann"})
		created := createExchange(t, handler, req)

		w := httptest.NewRecorder()
		handler.DrawExchange(w, adminRequest("POST", "/exchanges/x/draw", created.ExchangeID, created.AdminKey, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		req := family()
		req.Participants = append(req.Participants, match.Participant{ID: "ann", Name: "Eve"})
		created := createExchange(t, handler, req)

		w := httptest.NewRecorder()
		handler.DrawExchange(w, adminRequest("POST", "/exchanges/x/draw", created.ExchangeID, created.AdminKey, nil))
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("wrong key", func(t *testing.T) {
		created := createExchange(t, handler, family())

		w := httptest.NewRecorder()
		handler.DrawExchange(w, adminRequest("POST", "/exchanges/x/draw", created.ExchangeID, "wrong", nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestUpdateExchange(t *testing.T) {
	handler, _ := setupExchangeHandler(t)
	created := createExchange(t, handler, family())

	w := httptest.NewRecorder()
	handler.DrawExchange(w, adminRequest("POST", "/exchanges/x/draw", created.ExchangeID, created.AdminKey, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	update := models.UpdateExchangeRequest{
		Budget: "$50",
		Participants: []match.Participant{
			{ID: "ann", Name: "Ann"},
			{ID: "ben", Name: "Ben"},
			{Name: "Eve"},
		},
		ForcedAssignments: []match.ForcedAssignment{{GiverID: "ann", ReceiverID: "ben"}},
	}

	w = httptest.NewRecorder()
	handler.UpdateExchange(w, adminRequest("PUT", "/exchanges/x", created.ExchangeID, created.AdminKey, update))
	testutil.AssertStatus(t, w, http.StatusOK)

	var ex models.Exchange
	testutil.AssertJSON(t, w, &ex)
	if ex.Status != models.StatusDraft || ex.DrawnAt != nil || len(ex.Matches) != 0 {
		t.Errorf("Expected the previous draw to be cleared, got %+v", ex)
	}
	if ex.Title != "Family 2025" {
		t.Errorf("Expected title to be kept, got %s", ex.Title)
	}
	if ex.Budget != "$50" || len(ex.Participants) != 3 || ex.Participants[2].ID == "" {
		t.Errorf("Unexpected updated exchange %+v", ex)
	}

	t.Run("wrong key", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.UpdateExchange(w, adminRequest("PUT", "/exchanges/x", created.ExchangeID, "wrong", update))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestDeleteExchange(t *testing.T) {
	handler, blobs := setupExchangeHandler(t)
	created := createExchange(t, handler, family())

	t.Run("wrong key", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.DeleteExchange(w, adminRequest("DELETE", "/exchanges/x", created.ExchangeID, "wrong", nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	w := httptest.NewRecorder()
	handler.DeleteExchange(w, adminRequest("DELETE", "/exchanges/x", created.ExchangeID, created.AdminKey, nil))
	testutil.AssertStatus(t, w, http.StatusNoContent)

	if _, err := blobs.Get(t.Context(), exchangeKey(created.ExchangeID)); !errors.Is(err, blobstore.ErrNotFound) {
		t.Errorf("Expected exchange document to be gone, got %v", err)
	}
	if _, err := blobs.Get(t.Context(), slugKey(created.ShareSlug)); !errors.Is(err, blobstore.ErrNotFound) {
		t.Errorf("Expected slug entry to be gone, got %v", err)
	}

	t.Run("reveal after delete", func(t *testing.T) {
		cfg := testutil.GetTestConfig()
		req := httptest.NewRequest("GET", "/exchanges/"+created.ShareSlug+"/reveal?participant=ann", nil)
		req.SetPathValue("slug", created.ShareSlug)
		req.Header.Set("X-Reveal-Token", auth.GenerateRevealToken(created.ExchangeID, "ann", cfg.AdminKeySalt))
		w := httptest.NewRecorder()
		handler.Reveal(w, req)
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})

	t.Run("delete twice", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.DeleteExchange(w, adminRequest("DELETE", "/exchanges/x", created.ExchangeID, created.AdminKey, nil))
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

// slugFailStore fails writes to the slug index
type slugFailStore struct {
	blobstore.Store
}

func (s slugFailStore) Put(ctx context.Context, key string, data []byte) error {
	if strings.HasPrefix(key, "slugs/") {
		return errors.New("slug index unavailable")
	}
	return s.Store.Put(ctx, key, data)
}

func TestCreateExchangeRollsBackOnSlugFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewExchangeHandler(slugFailStore{blobstore.NewSQLStore(db)}, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.CreateExchange(w, testutil.MakeRequest("POST", "/exchanges", family(), nil))
	testutil.AssertStatus(t, w, http.StatusInternalServerError)

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM blob_entry").Scan(&count); err != nil {
		t.Fatalf("Failed to count blobs: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected the exchange document to be rolled back, found %d entries", count)
	}
}
