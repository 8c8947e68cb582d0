// Package upload stores course content files on local disk.
//
// Disk writes are not covered by any database transaction; callers pair
// every write with a compensating Remove on their failure paths.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

var (
	ErrFileType = errors.New("invalid file type, only PDF, MP4, JPEG and PNG files are allowed")
	ErrFileSize = errors.New("file exceeds the maximum allowed size")
)

// MIME types accepted for course content.
var allowedTypes = map[string]bool{
	"application/pdf": true,
	"video/mp4":       true,
	"image/jpeg":      true,
	"image/png":       true,
}

type Store struct {
	dir     string
	maxSize int64
}

func NewStore(dir string, maxSize int64) *Store {
	return &Store{dir: dir, maxSize: maxSize}
}

// Validate checks size and content type without writing anything. The type
// is sniffed from the leading bytes, not taken from the client's header.
func (s *Store) Validate(fh *multipart.FileHeader) error {
	if fh.Size > s.maxSize {
		return ErrFileSize
	}

	src, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return fmt.Errorf("read upload: %w", err)
	}

	if !allowedTypes[sniffContentType(head[:n], fh)] {
		return ErrFileType
	}
	return nil
}

// Save validates the upload and writes it under the store directory with a
// generated collision-resistant name, preserving the original extension.
// Returns the stored path; the caller owns removing it if a later step of
// its operation fails.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	if err := s.Validate(fh); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}

	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), filepath.Ext(fh.Filename))
	path := filepath.Join(s.dir, name)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create stored file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return "", fmt.Errorf("write stored file: %w", err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close stored file: %w", err)
	}

	return path, nil
}

// Remove deletes a stored file. A file that is already gone is not an
// error; the point is that it no longer exists.
func (s *Store) Remove(path string) error {
	if path == "" {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file: %w", err)
	}
	return nil
}

// Exists reports whether the stored file is still on disk.
func (s *Store) Exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Open opens a stored file for streaming.
func (s *Store) Open(path string) (*os.File, error) {
	return os.Open(path)
}

// sniffContentType detects the MIME type from the file's leading bytes.
// MP4 containers are not covered by the stdlib sniffer, so fall back to the
// declared type for video uploads it reports as generic octet-stream.
func sniffContentType(head []byte, fh *multipart.FileHeader) string {
	detected := http.DetectContentType(head)
	if detected == "application/octet-stream" || detected == "video/mp4" {
		if declared := fh.Header.Get("Content-Type"); declared == "video/mp4" {
			return "video/mp4"
		}
	}
	return detected
}
