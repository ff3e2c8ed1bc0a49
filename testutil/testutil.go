// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/giftswap/auth"
	"github.com/danielhkuo/giftswap/cliparse"
	"github.com/danielhkuo/giftswap/db"
)

// SetupTestDB opens a fresh SQLite database file with the full schema.
// It is closed when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	cfg := GetTestConfig()
	cfg.DatabaseURL = filepath.Join(t.TempDir(), "test.db")

	conn, err := db.Open(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:             3318,
		DatabaseType:     cliparse.DatabaseSQLite,
		DatabaseURL:      "test.db",
		AdminKeySalt:     "test-admin-salt",
		SlugSalt:         "test-slug-salt",
		BlobBackend:      cliparse.BlobSQL,
		BaseURL:          "https://gifts.example",
		MatchMaxAttempts: 100,
		MatchExhaustive:  true,
	}
}

// CreateTestBoard creates a kudos board and returns its ID and admin key
func CreateTestBoard(t *testing.T, db *sql.DB, cfg cliparse.Config, recipient string) (boardID, adminKey string) {
	t.Helper()

	boardID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(boardID, cfg.AdminKeySalt)

	_, err := db.Exec(`
		INSERT INTO kudos_board (id, title, recipient_name, creator_name, created_at)
		VALUES ($1, 'Thanks!', $2, 'Organiser', $3)
	`, boardID, recipient, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test board: %v", err)
	}

	return boardID, adminKey
}

// AddTestKudos posts a message to a board and returns its ID
func AddTestKudos(t *testing.T, db *sql.DB, boardID, author, message string, at time.Time) string {
	t.Helper()

	kudosID, _ := auth.GenerateID(12)
	_, err := db.Exec(`
		INSERT INTO kudos (id, board_id, author, message, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, kudosID, boardID, author, message, at.UTC())
	if err != nil {
		t.Fatalf("Failed to create test kudos: %v", err)
	}

	return kudosID
}

// CreateTestPool creates an open baby pool and returns its ID and admin key
func CreateTestPool(t *testing.T, db *sql.DB, cfg cliparse.Config, dueDate string) (poolID, adminKey string) {
	t.Helper()

	poolID, _ = auth.GenerateID(16)
	adminKey = auth.GenerateAdminKey(poolID, cfg.AdminKeySalt)

	_, err := db.Exec(`
		INSERT INTO baby_pool (id, title, parent_names, due_date, status, created_at)
		VALUES ($1, 'Baby Pool', 'Sam & Alex', $2, 'open', $3)
	`, poolID, dueDate, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test pool: %v", err)
	}

	return poolID, adminKey
}

// AddTestGuess adds a guess to a pool
func AddTestGuess(t *testing.T, db *sql.DB, poolID, name, birthDate string, weightGrams int, sex string) string {
	t.Helper()

	guessID, _ := auth.GenerateID(12)
	_, err := db.Exec(`
		INSERT INTO baby_guess (id, pool_id, name, name_key, birth_date, weight_grams, sex, created_at)
		VALUES ($1, $2, $3, lower($3), $4, $5, $6, $7)
	`, guessID, poolID, name, birthDate, weightGrams, sex, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test guess: %v", err)
	}

	return guessID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
