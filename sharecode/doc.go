// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package sharecode packs a finished draw into a URL-safe token so results
// can be passed around without storing anything.
//
// A code is compact JSON (names and the receiver's interests only), deflated
// with github.com/klauspost/compress/flate and encoded as unpadded base64url.
// Decode refuses codes longer than MaxCodeLength and inflated payloads over
// 256 KiB.
package sharecode
