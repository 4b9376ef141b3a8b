// Package storage keeps uploaded files (submissions, lesson attachments)
// outside the database. Records store the object name returned by Save.
package storage

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"eduforge/backend/config"

	"github.com/google/uuid"
)

// Upload directories.
const (
	SubmissionsDir = "submissions"
	LessonFilesDir = "lesson_files"
)

type FileStore interface {
	// Save writes the uploaded file under dir and returns its object name.
	Save(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error)
	Delete(ctx context.Context, name string) error
	// URL returns where a saved object can be fetched. It may be relative to
	// the API host.
	URL(name string) string
}

var unsafeChars = regexp.MustCompile(`[^\w.-]+`)

// ObjectName builds a collision-free name for an upload inside dir.
func ObjectName(dir, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	base = unsafeChars.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == "_" {
		base = "upload"
	}
	return path.Join(dir, uuid.NewString()+"_"+base)
}

// Open returns the store selected by MEDIA_BACKEND.
func Open(ctx context.Context, cfg *config.Config) (FileStore, error) {
	switch cfg.MediaBackend {
	case config.MediaGCS:
		store, err := NewGCSStore(ctx, cfg.GCSBucket, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.MediaLocal:
		store, err := NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported MEDIA_BACKEND %q", cfg.MediaBackend)
	}
}
