package storage

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"clubmedia/internal/model"
)

const (
	keyTokenLength  = 12
	keyTokenCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateKey derives a storage key of the form {folder}/{unixMillis}-{token}.{ext}.
//
// The millisecond timestamp plus a random alphanumeric token makes collisions
// negligible; no uniqueness check is performed against the store. The extension is
// whatever follows the last "." of the original filename — a name without one
// yields a key with a trailing dot, which is accepted. Both the presign path and
// the server-side fallback call this, so the fallback always writes under a fresh
// key rather than the one reserved for the direct attempt.
func GenerateKey(originalFileName string, folder model.Folder) string {
	ext := ""
	if i := strings.LastIndex(originalFileName, "."); i >= 0 {
		ext = originalFileName[i+1:]
	}
	return fmt.Sprintf("%s/%d-%s.%s", folder, time.Now().UnixMilli(), randomToken(keyTokenLength), ext)
}

func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp-derived token rather than panicking mid-upload.
		return fmt.Sprintf("%x", time.Now().UnixNano())[:n]
	}
	for i := range b {
		b[i] = keyTokenCharset[int(b[i])%len(keyTokenCharset)]
	}
	return string(b)
}
