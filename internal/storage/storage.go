package storage

import (
	"context"
	"io"
	"time"
)

// Package storage contains object storage abstractions for S3-compatible stores.
// Implementations must avoid using local disk and rely on streaming I/O only.

// PresignExpiry is how long a minted write credential stays valid. Uploads that
// stall past this window fail at the store, bounding abandoned transfers.
const PresignExpiry = 20 * time.Minute

// Pinned object headers. Uploaded media is immutable (replacement means a new
// key), so long-term caching is safe; inline disposition renders media in the
// browser instead of forcing a download.
const (
	CacheControlImmutable    = "public, max-age=31536000, immutable"
	ContentDispositionInline = "inline"
)

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the
// implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
type ObjectInfo struct {
	Key         string
	Size        int64
	ETag        string
	ContentType string
}

// Storage is a reusable, S3-compatible object storage client interface.
type Storage interface {
	// Put uploads an object under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)

	// Delete removes an object by key. Deleting an absent object is not an error.
	Delete(ctx context.Context, key string) error

	// PresignPut mints a time-limited URL authorizing a single PUT of the object at
	// key. The returned headers are signed into the credential and must be sent
	// verbatim by the uploader, content type included.
	PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, map[string]string, error)

	// PublicURL returns the stable, externally resolvable address of the object at
	// key. Deterministic; does not touch the store.
	PublicURL(key string) string
}
