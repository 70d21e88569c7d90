// Copyright (c) 2026 Tintero. All rights reserved.
// Author: dev@tintero.shop

/*
Package storage provides access to the object store holding cover images and
book files.

Book files are never written through the public API (there is no upload
pipeline); they are placed in the bucket out of band or by the seed command
and addressed by an opaque key stored on the catalog record. Download
fulfillment asks this package for a readable stream by key.
*/
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tintero-app/tintero/internal/platform/apperr"
)

// ObjectStore is the blob-store contract consumed by the download workflow
// and the seed command.
type ObjectStore interface {
	// Get opens a readable stream for the object at key. A missing object
	// yields [apperr.NotFound] ("File"), distinct from a token mismatch.
	Get(ctx context.Context, key string) (io.ReadCloser, int64, error)

	// Put uploads an object.
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Delete removes an object. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// MinioStore implements [ObjectStore] for MinIO/S3-compatible storage.
type MinioStore struct {
	client *minio.Client
	bucket string
}

// NewMinioStore connects to MinIO and ensures the bucket exists.
func NewMinioStore(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("storage: create bucket: %w", err)
		}
	}

	return &MinioStore{client: client, bucket: bucket}, nil
}

// Get opens a readable stream for the object at key.
func (m *MinioStore) Get(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	object, err := m.client.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("storage: get object: %w", err)
	}

	// GetObject is lazy: Stat forces the first round trip so a missing key
	// surfaces here instead of on the first Read.
	info, err := object.Stat()
	if err != nil {
		_ = object.Close()
		var response minio.ErrorResponse
		if errors.As(err, &response) && response.Code == "NoSuchKey" {
			return nil, 0, apperr.NotFound("File")
		}
		return nil, 0, fmt.Errorf("storage: stat object: %w", err)
	}

	return object, info.Size, nil
}

// Put uploads an object.
func (m *MinioStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("storage: put object: %w", err)
	}
	return nil
}

// Delete removes an object.
func (m *MinioStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("storage: delete object: %w", err)
	}
	return nil
}
