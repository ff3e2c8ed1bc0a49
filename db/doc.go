// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and creates the schema.

# Drivers

DATABASE_TYPE picks the driver:

  - sqlite (default): modernc.org/sqlite, pure Go, used for development and tests
  - postgres: github.com/lib/pq

Open pings the connection and runs CreateSchema:

	conn, err := db.Open(cfg)

The same SQL (with $1 placeholders) runs on both. The only dialect difference
is the binary column type of the blob table.

# Tables

  - blob_entry: key-value store behind blobstore.SQLStore
  - kudos_board, kudos: Kudos boards and their messages
  - baby_pool, baby_guess: Baby pools and guesses

Stored exchanges live in blob_entry (or S3), not in tables of their own.

	kudos_board 1──* kudos
	baby_pool 1──* baby_guess

All foreign keys use ON DELETE CASCADE.
*/
package db
