package service

import (
	"context"
	"io"
)

// AttachmentStorage stores report attachments in object storage.
type AttachmentStorage interface {
	// Put writes the content under key.
	Put(ctx context.Context, key, contentType string, r io.Reader) error

	// Delete removes the object stored under key. Missing objects are not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) (bool, error)
}
