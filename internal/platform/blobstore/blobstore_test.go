package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestMemoryStore_UploadDownload(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	path, err := store.Upload(ctx, "consents/camp-1.pdf", "application/pdf", strings.NewReader("pdf-bytes"), false)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if path != "consents/camp-1.pdf" {
		t.Errorf("path = %q", path)
	}

	rc, info, err := store.Download(ctx, "consents/camp-1.pdf")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	defer rc.Close()

	data, _ := io.ReadAll(rc)
	if string(data) != "pdf-bytes" {
		t.Errorf("content = %q", data)
	}
	if info.ContentType != "application/pdf" || info.Size != int64(len("pdf-bytes")) {
		t.Errorf("info = %+v", info)
	}
}

func TestMemoryStore_OverwriteSemantics(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Upload(ctx, "consents/camp-1.pdf", "application/pdf", strings.NewReader("v1"), false)

	// Create-only upload on an occupied path fails.
	_, err := store.Upload(ctx, "consents/camp-1.pdf", "application/pdf", strings.NewReader("v2"), false)
	if !errors.Is(err, ErrBlobExists) {
		t.Fatalf("expected ErrBlobExists, got %v", err)
	}

	// Upsert replaces the content.
	if _, err := store.Upload(ctx, "consents/camp-1.pdf", "application/pdf", strings.NewReader("v2"), true); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	rc, _, _ := store.Download(ctx, "consents/camp-1.pdf")
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "v2" {
		t.Errorf("expected upsert to replace content, got %q", data)
	}
}

func TestMemoryStore_RejectsOversizedUpload(t *testing.T) {
	store := NewMemoryStore()
	big := bytes.Repeat([]byte("a"), MaxFileSize+1)

	_, err := store.Upload(context.Background(), "consents/big.pdf", "application/pdf", bytes.NewReader(big), true)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
}

func TestMemoryStore_DeleteAndMissing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if _, _, err := store.Download(ctx, "consents/none.pdf"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("download missing: expected ErrBlobNotFound, got %v", err)
	}
	if err := store.Delete(ctx, "consents/none.pdf"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("delete missing: expected ErrBlobNotFound, got %v", err)
	}

	store.Upload(ctx, "consents/camp-2.png", "image/png", strings.NewReader("png"), true)
	if err := store.Delete(ctx, "consents/camp-2.png"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, _, err := store.Download(ctx, "consents/camp-2.png"); !errors.Is(err, ErrBlobNotFound) {
		t.Errorf("expected deleted object to be gone, got %v", err)
	}
}

func TestValidateUpload(t *testing.T) {
	cases := []struct {
		name        string
		filename    string
		contentType string
		want        string
		wantErr     bool
	}{
		{"pdf", "consent.pdf", "application/pdf", "application/pdf", false},
		{"jpg", "consent.JPG", "image/jpeg", "image/jpeg", false},
		{"jpeg", "scan.jpeg", "", "image/jpeg", false},
		{"png octet-stream", "form.png", "application/octet-stream", "image/png", false},
		{"exe rejected", "malware.exe", "application/pdf", "", true},
		{"no extension", "consent", "application/pdf", "", true},
		{"mismatched type", "consent.pdf", "text/html", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateUpload(tc.filename, tc.contentType)
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidContentType) {
					t.Fatalf("expected ErrInvalidContentType, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("content type = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtension(t *testing.T) {
	cases := map[string]string{
		"consent.pdf":      "pdf",
		"photo.JPEG":       "jpeg",
		"archive.tar.gz":   "gz",
		"noext":            "",
		"trailing-dot.":    "",
		"consents/a.b.png": "png",
	}
	for in, want := range cases {
		if got := Extension(in); got != want {
			t.Errorf("Extension(%q) = %q, want %q", in, got, want)
		}
	}
}
