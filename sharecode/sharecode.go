// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sharecode

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/danielhkuo/giftswap/match"
)

const (
	// MaxCodeLength bounds the encoded form accepted by Decode
	MaxCodeLength = 16 << 10
	// maxDecoded bounds the inflated JSON
	maxDecoded = 256 << 10
)

var (
	ErrInvalidCode  = errors.New("invalid share code")
	ErrCodeTooLarge = errors.New("share code too large")
)

// Pair is one giver → receiver line of a shared draw
type Pair struct {
	Giver     string `json:"g"`
	Receiver  string `json:"r"`
	Interests string `json:"i,omitempty"`
}

// Result is everything a share code carries
type Result struct {
	Title string `json:"t,omitempty"`
	Pairs []Pair `json:"p"`
}

// FromMatches keeps only names and the receiver's interests
func FromMatches(title string, matches []match.Match) Result {
	r := Result{Title: title, Pairs: make([]Pair, len(matches))}
	for i, m := range matches {
		r.Pairs[i] = Pair{
			Giver:     m.Giver.Name,
			Receiver:  m.Receiver.Name,
			Interests: m.Receiver.Interests,
		}
	}
	return r
}

// Lookup finds the pair for a giver, ignoring case and surrounding spaces
func (r Result) Lookup(giver string) (Pair, bool) {
	want := strings.TrimSpace(giver)
	for _, p := range r.Pairs {
		if strings.EqualFold(strings.TrimSpace(p.Giver), want) {
			return p, true
		}
	}
	return Pair{}, false
}

// Givers lists the participants in draw order
func (r Result) Givers() []string {
	names := make([]string, len(r.Pairs))
	for i, p := range r.Pairs {
		names[i] = p.Giver
	}
	return names
}

// Encode deflates the result and returns it as unpadded URL-safe base64
func Encode(r Result) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("failed to create compressor: %w", err)
	}
	if err := json.NewEncoder(w).Encode(r); err != nil {
		return "", fmt.Errorf("failed to encode share code: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to compress share code: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// Decode reverses Encode
func Decode(code string) (Result, error) {
	if len(code) > MaxCodeLength {
		return Result{}, ErrCodeTooLarge
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(code))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}

	fr := flate.NewReader(bytes.NewReader(raw))
	defer fr.Close()

	data, err := io.ReadAll(io.LimitReader(fr, maxDecoded+1))
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	if len(data) > maxDecoded {
		return Result{}, ErrCodeTooLarge
	}

	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidCode, err)
	}
	if len(r.Pairs) == 0 {
		return Result{}, fmt.Errorf("%w: no pairs", ErrInvalidCode)
	}
	return r, nil
}
