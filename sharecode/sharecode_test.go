// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sharecode

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/klauspost/compress/flate"

	"github.com/danielhkuo/giftswap/match"
)

func TestEncodeDecode(t *testing.T) {
	matches := []match.Match{
		{Giver: match.Participant{ID: "1", Name: "Ann"}, Receiver: match.Participant{ID: "2", Name: "Ben", Interests: "board games"}},
		{Giver: match.Participant{ID: "2", Name: "Ben"}, Receiver: match.Participant{ID: "1", Name: "Ann"}},
	}

	code, err := Encode(FromMatches("Family 2025", matches))
	if err != nil {
		t.Fatal(err)
	}
	if strings.ContainsAny(code, "+/=") {
		t.Errorf("code is not URL-safe: %s", code)
	}

	r, err := Decode(code)
	if err != nil {
		t.Fatal(err)
	}
	if r.Title != "Family 2025" {
		t.Errorf("title = %q", r.Title)
	}

	p, ok := r.Lookup("  ann ")
	if !ok || p.Receiver != "Ben" || p.Interests != "board games" {
		t.Errorf("Lookup(ann) = %+v, %v", p, ok)
	}
	if _, ok := r.Lookup("Zed"); ok {
		t.Error("Lookup should miss unknown givers")
	}

	givers := r.Givers()
	if len(givers) != 2 || givers[0] != "Ann" || givers[1] != "Ben" {
		t.Errorf("Givers() = %v", givers)
	}
}

func TestDecode_Errors(t *testing.T) {
	deflate := func(s string) string {
		var buf bytes.Buffer
		w, _ := flate.NewWriter(&buf, flate.DefaultCompression)
		w.Write([]byte(s))
		w.Close()
		return base64.RawURLEncoding.EncodeToString(buf.Bytes())
	}

	tests := []struct {
		name    string
		code    string
		wantErr error
	}{
		{"not base64", "!!!", ErrInvalidCode},
		{"not deflate", base64.RawURLEncoding.EncodeToString([]byte("plain text")), ErrInvalidCode},
		{"not json", deflate("hello"), ErrInvalidCode},
		{"no pairs", deflate(`{"t":"x","p":[]}`), ErrInvalidCode},
		{"too long", strings.Repeat("a", MaxCodeLength+1), ErrCodeTooLarge},
		{"inflates too far", deflate(`{"t":"` + strings.Repeat("x", maxDecoded) + `"}`), ErrCodeTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.code); !errors.Is(err, tt.wantErr) {
				t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
