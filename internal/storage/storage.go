// Package storage defines the object store used for question paper PDFs.
// Two implementations exist: MinioStorage for any S3-compatible provider
// (MinIO, AWS S3, Supabase S3) and FileStorage for a local directory.
package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"
)

// ErrObjectExists is returned by Put when overwrite is false and an object
// already exists at the key.
var ErrObjectExists = errors.New("object already exists")

// ErrInvalidKey is returned for empty, absolute or parent-escaping keys.
var ErrInvalidKey = errors.New("invalid object key")

// Storage is the interface for storing objects and locating them.
type Storage interface {
	// Put stores size bytes from reader at exactly key and returns the key.
	// With overwrite=false an existing object makes Put fail with ErrObjectExists.
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string, overwrite bool) (string, error)
	// Resolve returns a fetchable URL for key. It never fails: a missing
	// object surfaces as a 404 when the URL is fetched.
	Resolve(ctx context.Context, key string) string
}

// cleanKey normalizes a key and rejects ones that could leave the bucket root.
func cleanKey(key string) (string, error) {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, `\`) {
		return "", ErrInvalidKey
	}
	cleaned := path.Clean(key)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}

// joinURL appends key to base, escaping each path segment.
func joinURL(base, key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
