// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON, checked with Validate:

  - MatchRequest: participants, exclusions, forced_assignments, title
  - CreateExchangeRequest / UpdateExchangeRequest: exchange rules
  - CreateBoardRequest, PostKudosRequest: kudos boards
  - CreatePoolRequest, SubmitGuessRequest, ClosePoolRequest: baby pools

# Response Types

  - MatchResponse: matches, share_code, share_url
  - SharedPairResponse / SharedSummaryResponse: decoded share codes
  - CreateExchangeResponse: exchange_id, admin_key, share_slug
  - DrawResponse: drawn_at, links (one reveal link per giver)
  - RevealResponse: the giver and the receiver they drew
  - CreateBoardResponse, PostKudosResponse, BoardWithKudos
  - CreatePoolResponse, SubmitGuessResponse, ClosePoolResponse, PoolWithGuesses
  - ErrorResponse: error, message

# Domain Types

  - Exchange: the stored exchange document, kept in the blob store as JSON
  - StoredMatch: a drawn pair by participant ID
  - Board, Kudos: kudos board rows
  - Pool, Guess: baby pool rows; Guess carries its score once ranked

# Validation

Validate runs go-playground/validator over the validate tags and reports
fields by their JSON names:

	if err := models.Validate(&req); err != nil {
		// "title is required; due_date must be a date like 2025-12-24"
	}
*/
package models
