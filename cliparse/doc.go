// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Before flags are resolved, a dotenv file (default .env, see -env-file) is
loaded with godotenv if it exists. Variables already set in the environment
win over the file.

# CLI Flags

	-p             Server port
	-d             Database URL
	-t             Database type (sqlite or postgres)
	-blob          Blob backend (sql or s3)
	-s3-bucket     S3 bucket
	-base-url      Public base URL used in share and reveal links
	-max-attempts  Greedy draw attempts
	-exhaustive    Exhaustive search after greedy attempts fail
	-admin-salt    Admin key salt
	-slug-salt     Share slug salt
	-env-file      Dotenv file to load

# Environment Variables

Flags fall back to environment variables, then defaults:

	PORT               → -p (3318)
	DATABASE_TYPE      → -t (sqlite)
	DATABASE_URL       → -d (giftswap.db for sqlite)
	BLOB_BACKEND       → -blob (sql)
	S3_BUCKET          → -s3-bucket
	S3_PREFIX          (giftswap/)
	AWS_REGION         (us-east-1)
	BASE_URL           → -base-url (http://localhost:PORT)
	MATCH_MAX_ATTEMPTS → -max-attempts (100)
	MATCH_EXHAUSTIVE   → -exhaustive (true)
	ADMIN_KEY_SALT     → -admin-salt
	SLUG_SALT          → -slug-salt

# Validation

ParseFlags returns an error if:

  - ADMIN_KEY_SALT or SLUG_SALT is missing
  - DATABASE_TYPE is postgres and DATABASE_URL is missing
  - BLOB_BACKEND is s3 and S3_BUCKET is missing
  - a type or backend name is unknown, or a number or boolean does not parse
*/
package cliparse
