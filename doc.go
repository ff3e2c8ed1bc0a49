// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the giftswap API server.

giftswap runs Secret Santa style gift exchanges: an organiser lists the
participants, who must not draw whom, and who must draw whom, and the
server draws a valid assignment. Kudos boards and baby pools ride along
as small side apps.

# Starting the Server

With no configuration beyond the two secrets, the server uses a local
SQLite file:

	ADMIN_KEY_SALT=... SLUG_SALT=... go run .

Or against Postgres and S3:

	go run . -t postgres -d "postgres://..." -blob s3 -s3-bucket my-bucket

A .env file in the working directory is read if present.

# Configuration

Required settings:

  - ADMIN_KEY_SALT (-admin-salt): Secret for admin keys and reveal tokens
  - SLUG_SALT (-slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t), DATABASE_URL (-d): sqlite (default) or postgres
  - BLOB_BACKEND (-blob): sql (default) or s3, with S3_BUCKET and S3_PREFIX
  - BASE_URL (-base-url): Prefix for share and reveal links
  - MATCH_MAX_ATTEMPTS (-max-attempts): Greedy draw attempts

# Architecture

  - match: The constrained random assignment generator
  - handlers: HTTP request handlers (match, exchanges, kudos, pools)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and validation
  - auth: Admin keys, reveal tokens, slugs
  - sharecode: Compressed shareable results
  - blobstore: JSON documents in SQL or S3
  - db: Connection and schema creation
  - cliparse: Configuration parsing

cmd/lambda serves the same handler from AWS Lambda.
*/
package main
