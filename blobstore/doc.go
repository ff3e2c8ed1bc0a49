// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package blobstore is a small key-value store for JSON documents.

Two backends implement Store:

  - SQLStore: the blob_entry table in the application database
  - S3Store: objects in an S3 bucket under a key prefix

Missing keys return ErrNotFound from both. GetJSON and PutJSON wrap the
read-modify-write cycle the handlers use; there is no locking, the last
write wins.
*/
package blobstore
