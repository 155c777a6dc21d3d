package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/url"
	"path/filepath"
	"strings"

	"clubmedia/internal/model"
	"clubmedia/internal/storage"
)

// MaxUploadBytes is the hard ceiling for a single media object. Enforced both
// when issuing a write credential and again on the server-proxied path, which
// never trusts the client-side check.
const MaxUploadBytes int64 = 200 << 20

var (
	ErrStorageNotConfigured = errors.New("object storage is not configured")
	ErrFileNameRequired     = errors.New("file name is required")
	ErrContentTypeRequired  = errors.New("content type is required")
	ErrInvalidFolder        = errors.New("unknown media folder")
	ErrURLRequired          = errors.New("public url is required")
	ErrReaderNil            = errors.New("reader is nil")
)

// PayloadTooLargeError reports a declared or received size above MaxUploadBytes.
type PayloadTooLargeError struct {
	Size int64
}

func (e *PayloadTooLargeError) Error() string {
	return fmt.Sprintf("file is too large: %d MiB exceeds the %d MiB limit", roundMiB(e.Size), MaxUploadBytes>>20)
}

// IntegrityError reports a proxied upload whose received byte count does not
// match the size the client declared. Nothing is written to the store.
type IntegrityError struct {
	Declared int64
	Received int64
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("upload integrity check failed: declared %d bytes, received %d", e.Declared, e.Received)
}

func roundMiB(size int64) int64 {
	return int64(math.Round(float64(size) / float64(1<<20)))
}

// UploadService implements the media upload pipeline's server side: minting
// direct-upload credentials, accepting proxied fallback uploads, and deleting
// objects by their public URL.
type UploadService interface {
	// IssueUpload mints a 20-minute write credential for one direct PUT of the
	// described file and returns it with the object's eventual public URL. The
	// store is untouched until the client actually performs the PUT.
	IssueUpload(ctx context.Context, req model.UploadRequest) (*model.UploadGrant, error)

	// ProxyUpload receives file bytes through the application server and writes
	// them to the store under a freshly derived key, returning the public URL.
	// req.Size is the client-declared byte count and must match exactly what r
	// yields, otherwise an IntegrityError is returned and nothing is stored.
	ProxyUpload(ctx context.Context, r io.Reader, req model.UploadRequest) (string, error)

	// DeleteByURL resolves a previously issued public URL back to its storage key
	// and removes the object. Deleting an already-absent object succeeds.
	DeleteByURL(ctx context.Context, publicURL string) error
}

type uploadService struct {
	store storage.Storage
}

// NewUploadService constructs an UploadService over the given object store.
func NewUploadService(store storage.Storage) UploadService {
	return &uploadService{store: store}
}

func (s *uploadService) IssueUpload(ctx context.Context, req model.UploadRequest) (*model.UploadGrant, error) {
	if s.store == nil {
		return nil, ErrStorageNotConfigured
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Size > MaxUploadBytes {
		return nil, &PayloadTooLargeError{Size: req.Size}
	}

	key := storage.GenerateKey(req.FileName, req.Folder)

	uploadURL, headers, err := s.store.PresignPut(ctx, key, req.ContentType, storage.PresignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}

	return &model.UploadGrant{
		UploadURL: uploadURL,
		PublicURL: s.store.PublicURL(key),
		Key:       key,
		Headers:   headers,
	}, nil
}

func (s *uploadService) ProxyUpload(ctx context.Context, r io.Reader, req model.UploadRequest) (string, error) {
	if s.store == nil {
		return "", ErrStorageNotConfigured
	}
	if r == nil {
		return "", ErrReaderNil
	}
	if req.FileName == "" {
		return "", ErrFileNameRequired
	}
	if !req.Folder.Valid() {
		return "", ErrInvalidFolder
	}
	if req.Size > MaxUploadBytes {
		return "", &PayloadTooLargeError{Size: req.Size}
	}

	// Buffer the payload so the byte count can be verified before anything is
	// written; a truncated body must never become a silently partial object.
	buf, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", fmt.Errorf("read upload body: %w", err)
	}
	if int64(len(buf)) > MaxUploadBytes {
		return "", &PayloadTooLargeError{Size: int64(len(buf))}
	}
	if int64(len(buf)) != req.Size {
		return "", &IntegrityError{Declared: req.Size, Received: int64(len(buf))}
	}

	// The fallback path derives its own key; it never reuses a key reserved by a
	// prior presign for the same logical upload.
	key := storage.GenerateKey(req.FileName, req.Folder)

	_, err = s.store.Put(ctx, key, bytes.NewReader(buf), storage.PutObjectOptions{
		Size:        int64(len(buf)),
		ContentType: inferContentType(req.FileName, req.ContentType),
		Metadata:    map[string]string{"original-filename": req.FileName},
	})
	if err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}

	return s.store.PublicURL(key), nil
}

func (s *uploadService) DeleteByURL(ctx context.Context, publicURL string) error {
	if s.store == nil {
		return ErrStorageNotConfigured
	}
	key, err := s.keyFromURL(publicURL)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete storage object: %w", err)
	}
	return nil
}

// keyFromURL strips the public base from a URL, leaving the storage key. URLs
// from a different base fall back to the raw path component.
func (s *uploadService) keyFromURL(publicURL string) (string, error) {
	if publicURL == "" {
		return "", ErrURLRequired
	}
	base := s.store.PublicURL("")
	if strings.HasPrefix(publicURL, base) && len(publicURL) > len(base) {
		return publicURL[len(base):], nil
	}
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("parse public url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if key == "" {
		return "", ErrURLRequired
	}
	return key, nil
}

// validateRequest applies the credential-issuance preconditions in order:
// identity of the file first, then the declared size.
func validateRequest(req model.UploadRequest) error {
	if req.FileName == "" {
		return ErrFileNameRequired
	}
	if req.ContentType == "" {
		return ErrContentTypeRequired
	}
	if !req.Folder.Valid() {
		return ErrInvalidFolder
	}
	return nil
}

// extContentTypes maps video extensions for the proxied path, where browsers
// sometimes submit an empty or generic part content type.
var extContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
}

func inferContentType(fileName, declared string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if ct, ok := extContentTypes[strings.ToLower(filepath.Ext(fileName))]; ok {
		return ct
	}
	return "video/mp4"
}
