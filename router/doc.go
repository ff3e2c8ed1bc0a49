// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the giftswap API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, blobs, cfg)

NewHandler wraps the same routes in the CORS middleware and is what the
HTTP server and the Lambda adapter serve.

# Endpoints

Health:

	GET /health

Stateless matching:

	POST /match        - Draw names, returns matches and a share code
	GET  /share/{code} - Decode a share code (?giver= for one pair)

Exchanges (admin, requires X-Admin-Key):

	POST /exchanges           - Create exchange
	GET  /exchanges/{id}/admin - Get exchange details
	PUT    /exchanges/{id}    - Replace participants and rules
	DELETE /exchanges/{id}    - Delete exchange and its share slug
	POST /exchanges/{id}/draw - Draw names, returns reveal links

Reveal (public, uses share slug and X-Reveal-Token):

	GET /exchanges/{slug}/reveal?participant={id}

Kudos boards:

	POST   /boards                        - Create board
	GET    /boards/{id}                   - Board and messages
	POST   /boards/{id}/kudos             - Post a message
	DELETE /boards/{id}/kudos/{kudosID}   - Remove a message (admin)

Baby pools:

	POST /pools              - Create pool
	GET  /pools/{id}         - Pool and guesses
	POST /pools/{id}/guesses - Submit a guess
	POST /pools/{id}/close   - Record the outcome and rank (admin)

# Handler Initialization

Exchanges live in the blob store; boards and pools in SQL:

	matchHandler := handlers.NewMatchHandler(cfg)
	exchangeHandler := handlers.NewExchangeHandler(blobs, cfg)
	kudosHandler := handlers.NewKudosHandler(db, cfg)
	poolHandler := handlers.NewPoolHandler(db, cfg)
*/
package router
