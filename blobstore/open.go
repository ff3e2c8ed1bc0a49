// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package blobstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/giftswap/cliparse"
)

// Open returns the store selected by cfg.BlobBackend.
// The SQL backend shares db; the S3 backend loads AWS credentials from the environment.
func Open(ctx context.Context, cfg cliparse.Config, db *sql.DB) (Store, error) {
	switch cfg.BlobBackend {
	case cliparse.BlobSQL, "":
		return NewSQLStore(db), nil
	case cliparse.BlobS3:
		return NewS3StoreFromEnv(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.BlobBackend)
	}
}
