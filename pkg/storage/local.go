// Package storage persists uploaded logo images on the local filesystem
// and hands out public URLs for embedding them into the offer email.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"offer-form-backend/internal/domain"
	"offer-form-backend/pkg/images"

	"github.com/google/uuid"
)

// Logos larger than this get downscaled before storing; big enough for
// print preview, small enough to keep the email light.
const maxLogoDimension = 1200

var allowedMIMETypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// LocalStore stores logos under a base directory. All writes are
// confined to baseDir; filenames are generated, never taken from the
// upload.
type LocalStore struct {
	baseDir string
	baseURL string
	maxSize int64
}

// NewLocalStore creates the base directory if needed. baseURL is the
// public prefix under which baseDir is served (e.g. "https://host/uploads").
func NewLocalStore(baseDir, baseURL string, maxSize int64) (*LocalStore, error) {
	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve upload directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{
		baseDir: absDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
	}, nil
}

// Store validates type and size of the upload, downscales oversized
// images and writes the file. Rejected uploads return one of the
// domain.ErrLogo* sentinels.
func (s *LocalStore) Store(ctx context.Context, fh *multipart.FileHeader) (*domain.StoredLogo, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if fh.Size > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes", domain.ErrLogoTooLarge, fh.Size)
	}

	// The declared type is checked like the client header it is, then
	// the content is sniffed so a renamed file cannot slip through.
	if declared := fh.Header.Get("Content-Type"); declared != "" {
		if _, ok := allowedMIMETypes[declared]; !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrLogoTypeNotAllowed, declared)
		}
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: stream larger than declared size", domain.ErrLogoTooLarge)
	}

	sniffed := http.DetectContentType(data)
	ext, ok := allowedMIMETypes[sniffed]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLogoTypeNotAllowed, sniffed)
	}

	// The sniff only checks the magic prefix; a corrupt body shows up
	// here as a decode failure.
	scaled, err := images.Downscale(data, maxLogoDimension)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLogoUnreadable, err)
	}

	filename := uuid.NewString() + ext
	path := filepath.Join(s.baseDir, filename)
	if err := os.WriteFile(path, scaled, 0644); err != nil {
		return nil, fmt.Errorf("failed to write logo: %w", err)
	}

	return &domain.StoredLogo{
		URL:  s.baseURL + "/" + filename,
		Path: path,
	}, nil
}
