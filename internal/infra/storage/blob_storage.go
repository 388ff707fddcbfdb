// Package storage stores report attachments in a gocloud.dev blob bucket.
package storage

import (
	"context"
	"io"
	"log/slog"

	"civic/config"
	"civic/internal/domain/service"
	"civic/internal/errors"

	"go.uber.org/fx"
	"gocloud.dev/blob"
	"gocloud.dev/gcerrors"

	// Bucket URL schemes accepted in storage.bucketUrl.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/memblob"
	_ "gocloud.dev/blob/s3blob"
)

const defaultBucketURL = "mem://"

// Params holds dependencies for the attachment storage, injected by Fx.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

type blobStorage struct {
	bucket *blob.Bucket
}

// NewAttachmentStorage opens the configured bucket. Without storage.bucketUrl the
// attachments are kept in memory.
func NewAttachmentStorage(params Params) (service.AttachmentStorage, error) {
	bucketURL := defaultBucketURL
	if params.Config.Storage != nil && params.Config.Storage.BucketURL != "" {
		bucketURL = params.Config.Storage.BucketURL
	}
	if bucketURL == defaultBucketURL {
		params.Logger.Warn("Attachment storage not configured, using in-memory bucket")
	}

	bucket, err := blob.OpenBucket(context.Background(), bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "open bucket %s", bucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return errors.Wrap(bucket.Close(), "close bucket")
		},
	})

	return NewBlobStorage(bucket), nil
}

// NewBlobStorage wraps an already opened bucket.
func NewBlobStorage(bucket *blob.Bucket) service.AttachmentStorage {
	return &blobStorage{bucket: bucket}
}

// Put streams r into the bucket under key. A failed copy aborts the write so no
// truncated object is left behind.
func (s *blobStorage) Put(ctx context.Context, key, contentType string, r io.Reader) error {
	writeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(writeCtx, key, &blob.WriterOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrapf(err, "open writer for %s", key)
	}

	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()

		return errors.Wrapf(err, "write %s", key)
	}

	return errors.Wrapf(w.Close(), "commit %s", key)
}

// Delete removes the object. A missing object is not an error.
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return errors.Wrapf(err, "delete %s", key)
	}

	return nil
}

// Exists reports whether an object is stored under key.
func (s *blobStorage) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return false, errors.Wrapf(err, "exists %s", key)
	}

	return ok, nil
}
