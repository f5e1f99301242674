// Package blobstore provides document storage for uploaded consent forms.
// It defines the path-keyed Store interface, an in-memory implementation for
// testing and development, and an S3-backed implementation for production.
package blobstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var (
	ErrBlobNotFound       = errors.New("blob not found")
	ErrBlobExists         = errors.New("blob already exists")
	ErrFileTooLarge       = errors.New("file exceeds maximum allowed size")
	ErrInvalidContentType = errors.New("content type is not allowed")
)

// MaxFileSize is the maximum allowed upload size in bytes (5 MB).
const MaxFileSize = 5 * 1024 * 1024

// AllowedContentTypes lists the MIME types accepted for consent forms.
var AllowedContentTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"application/pdf": true,
}

// AllowedExtensions maps accepted file extensions (lowercase, no dot) to
// their canonical content type.
var AllowedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"pdf":  "application/pdf",
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Path        string    `json:"path"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// Store is the contract for blob storage backends. Objects are addressed by
// their full path (e.g. "consents/<camp-id>.pdf").
type Store interface {
	// Upload stores content at path and returns the stored path. When
	// overwrite is false and the path already holds an object, it returns
	// ErrBlobExists.
	Upload(ctx context.Context, path, contentType string, content io.Reader, overwrite bool) (string, error)
	Download(ctx context.Context, path string) (io.ReadCloser, *ObjectInfo, error)
	Delete(ctx context.Context, path string) error
}

// ValidateUpload rejects uploads whose extension or declared content type is
// outside the accepted set. It returns the canonical content type to store.
func ValidateUpload(filename, contentType string) (string, error) {
	ext := Extension(filename)
	canonical, ok := AllowedExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: extension %q", ErrInvalidContentType, ext)
	}
	if contentType != "" && contentType != "application/octet-stream" && !AllowedContentTypes[contentType] {
		return "", fmt.Errorf("%w: %s", ErrInvalidContentType, contentType)
	}
	return canonical, nil
}

// Extension returns the lowercase extension of filename without the dot, or
// "" when the filename has none.
func Extension(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

func readLimited(content io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(content, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading content: %w", err)
	}
	if int64(len(data)) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

type storedObject struct {
	info    ObjectInfo
	content []byte
}

// MemoryStore is a thread-safe, in-memory Store for testing and development.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]*storedObject
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string]*storedObject)}
}

func (s *MemoryStore) Upload(_ context.Context, path, contentType string, content io.Reader, overwrite bool) (string, error) {
	data, err := readLimited(content)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !overwrite {
		if _, exists := s.objects[path]; exists {
			return "", ErrBlobExists
		}
	}
	s.objects[path] = &storedObject{
		info: ObjectInfo{
			Path:        path,
			ContentType: contentType,
			Size:        int64(len(data)),
			UploadedAt:  time.Now().UTC(),
		},
		content: data,
	}
	return path, nil
}

func (s *MemoryStore) Download(_ context.Context, path string) (io.ReadCloser, *ObjectInfo, error) {
	s.mu.RLock()
	obj, ok := s.objects[path]
	s.mu.RUnlock()

	if !ok {
		return nil, nil, ErrBlobNotFound
	}
	info := obj.info
	return io.NopCloser(bytes.NewReader(obj.content)), &info, nil
}

func (s *MemoryStore) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[path]; !ok {
		return ErrBlobNotFound
	}
	delete(s.objects, path)
	return nil
}
