package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"clubmedia/internal/config"
)

// minioStorage implements the Storage interface against any S3-compatible backend
// (AWS S3, MinIO). It is safe for concurrent use by multiple goroutines.
type minioStorage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIO creates an S3-compatible storage client. It validates the configuration
// eagerly and verifies the bucket exists (creating it when missing), so a
// misconfigured deployment fails at startup rather than on the first upload.
func NewMinIO(cfg config.StorageConfig) (Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}

	publicBase := strings.TrimRight(cfg.PublicBaseURL, "/")
	if publicBase == "" {
		publicBase = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	ms := &minioStorage{client: cli, bucket: cfg.Bucket, publicBase: publicBase}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return ms, nil
}

// Put uploads an object using streaming I/O only (no local disk).
func (m *minioStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	info, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:        opt.ContentType,
		CacheControl:       CacheControlImmutable,
		ContentDisposition: ContentDispositionInline,
		UserMetadata:       opt.Metadata,
	})
	if err != nil {
		return ObjectInfo{}, err
	}
	return ObjectInfo{
		Key:         key,
		Size:        info.Size,
		ETag:        info.ETag,
		ContentType: opt.ContentType,
	}, nil
}

// Delete removes an object by key. An already-absent object is treated as
// success, so deletes are idempotent.
func (m *minioStorage) Delete(ctx context.Context, key string) error {
	err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
	if err != nil && minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return nil
	}
	return err
}

// PresignPut mints a presigned PUT URL with the content type and the immutable
// cache headers signed in. The uploader must send the returned headers unchanged
// or the store rejects the signature.
func (m *minioStorage) PresignPut(ctx context.Context, key, contentType string, expiry time.Duration) (string, map[string]string, error) {
	hdr := http.Header{}
	hdr.Set("Content-Type", contentType)
	hdr.Set("Cache-Control", CacheControlImmutable)
	hdr.Set("Content-Disposition", ContentDispositionInline)

	u, err := m.client.PresignHeader(ctx, http.MethodPut, m.bucket, key, expiry, url.Values{}, hdr)
	if err != nil {
		return "", nil, err
	}

	pinned := make(map[string]string, len(hdr))
	for k := range hdr {
		pinned[k] = hdr.Get(k)
	}
	return u.String(), pinned, nil
}

// PublicURL returns the stable address of key, e.g.
// https://club-media.s3.eu-central-1.amazonaws.com/highlights/1700000000000-a1b2c3d4e5f6.mp4
func (m *minioStorage) PublicURL(key string) string {
	return m.publicBase + "/" + key
}
