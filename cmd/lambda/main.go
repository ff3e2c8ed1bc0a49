// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command lambda serves the giftswap API from AWS Lambda behind an HTTP API (payload v2).
//
// Configuration comes from the function's environment, as for the server:
// DATABASE_TYPE=postgres with DATABASE_URL, BLOB_BACKEND=s3 with S3_BUCKET.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/danielhkuo/giftswap/blobstore"
	"github.com/danielhkuo/giftswap/cliparse"
	"github.com/danielhkuo/giftswap/db"
	"github.com/danielhkuo/giftswap/router"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := cliparse.ParseFlags(nil)
	if err != nil {
		slog.Error("Error parsing configuration", "error", err)
		os.Exit(1)
	}

	dbConn, err := db.Open(cfg)
	if err != nil {
		slog.Error("database setup failed", "error", err)
		os.Exit(1)
	}

	blobs, err := blobstore.Open(context.Background(), cfg, dbConn)
	if err != nil {
		slog.Error("blob store setup failed", "error", err)
		os.Exit(1)
	}

	adapter := httpadapter.NewV2(router.NewHandler(dbConn, blobs, cfg))
	lambda.Start(adapter.ProxyWithContext)
}
