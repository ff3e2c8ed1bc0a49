// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the giftswap API.

# Handler Types

Each handler is a struct holding its storage and config:

  - MatchHandler: stateless draws and share codes
  - ExchangeHandler: stored exchanges, draws and reveals (blob store)
  - KudosHandler: kudos boards (SQL)
  - PoolHandler: baby pools (SQL)

Handlers are created via constructor functions:

	exchangeHandler := handlers.NewExchangeHandler(blobs, cfg)
	kudosHandler := handlers.NewKudosHandler(db, cfg)

# Drawing Names

Both POST /match and POST /exchanges/{id}/draw check the constraints with
match.Validate (400 on a broken precondition, such as a repeated name or ID) and then run the generator
(422 when no assignment exists). Participants sent without an ID get a UUID.

# Exchange Lifecycle

Exchanges move between two states: draft → drawn

	POST /exchanges           → CreateExchange (returns admin_key, share_slug)
	PUT  /exchanges/{id}      → UpdateExchange (back to draft)
	POST /exchanges/{id}/draw → DrawExchange (returns reveal links)
	DELETE /exchanges/{id}    → DeleteExchange (removes the document and slug)

Admin operations require the X-Admin-Key header. Each exchange is one JSON
document at exchanges/<id>.json; slugs/<slug> maps the public slug to the ID.

# Reveals

A participant sees only their own receiver:

	GET /exchanges/{slug}/reveal?participant={id}

The reveal token goes in X-Reveal-Token, or in the token query parameter
of the link returned by the draw. Tokens are HMACs of the exchange and
participant, so a re-draw keeps them valid.

# Baby Pool Scoring

RankGuesses orders guesses by days off, then grams off, then the right sex.
Guesses tied on all three share a rank.
*/
package handlers
