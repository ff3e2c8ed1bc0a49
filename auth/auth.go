// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAdminKey    = errors.New("invalid admin key")
	ErrInvalidRevealToken = errors.New("invalid reveal token")
)

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func mac(salt string, parts ...string) []byte {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(strings.Join(parts, ":")))
	return h.Sum(nil)
}

// GenerateAdminKey creates an HMAC-based admin key for an exchange, board or pool.
// It is deterministic, so nothing needs to be stored to check it.
func GenerateAdminKey(resourceID, salt string) string {
	// Use URL-safe base64 and trim padding for cleaner keys
	return base64.RawURLEncoding.EncodeToString(mac(salt, resourceID))
}

// ValidateAdminKey checks if the provided admin key is valid for the resource
func ValidateAdminKey(resourceID, adminKey, salt string) error {
	expected := GenerateAdminKey(resourceID, salt)
	if !hmac.Equal([]byte(adminKey), []byte(expected)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// GenerateRevealToken creates the token a participant uses to see who they drew
func GenerateRevealToken(exchangeID, participantID, salt string) string {
	sum := mac(salt, "reveal", exchangeID, participantID)
	return base64.RawURLEncoding.EncodeToString(sum[:18])
}

// ValidateRevealToken checks a participant's reveal token
func ValidateRevealToken(exchangeID, participantID, token, salt string) error {
	expected := GenerateRevealToken(exchangeID, participantID, salt)
	if !hmac.Equal([]byte(token), []byte(expected)) {
		return ErrInvalidRevealToken
	}
	return nil
}

// GenerateShareSlug creates a short, deterministic URL slug for a resource
// Uses HMAC for determinism and base62 encoding for URL-friendliness
func GenerateShareSlug(resourceID, salt string) string {
	sum := mac(salt, "slug", resourceID)

	// Take first 8 bytes for a shorter slug
	return base62Encode(sum[:8])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	sum := mac(salt, "ip", ip)
	// Return first 16 hex chars (64 bits) - enough for moderation
	return hex.EncodeToString(sum[:8])
}
