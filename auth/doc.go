// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides capability keys and token generation.

Nothing here is stored: every key is an HMAC of the resource ID, so it can be
recomputed and compared on each request.

# Admin Keys

Exchanges, kudos boards and baby pools each hand their creator an admin key:

	adminKey := auth.GenerateAdminKey(exchangeID, salt)
	err := auth.ValidateAdminKey(exchangeID, adminKey, salt)

Clients send it in the X-Admin-Key header.

# Reveal Tokens

Each exchange participant gets a private link carrying a reveal token:

	token := auth.GenerateRevealToken(exchangeID, participantID, salt)

Tokens stay the same across re-draws, so links sent out earlier keep working.

# Share Slugs

Short base62 slugs for public links:

	slug := auth.GenerateShareSlug(exchangeID, salt)

# IP Hashing

	hash := auth.HashIP(ipAddress, salt)

Kudos posts keep only this hash, for moderation.
*/
package auth
