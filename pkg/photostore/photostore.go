// Package photostore keeps profile photos as flat files in one directory.
package photostore

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"visitor-management/pkg/apperror"
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

var allowedTypes = []string{"image/jpeg", "image/png"}

// file is what Save writes an upload into.
type file interface {
	io.Writer
	Close() error
}

type Store struct {
	dir      string
	maxBytes int64
	create   func(path string) (file, error)
}

// New creates dir if needed.
func New(dir string, maxBytes int64) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &Store{dir: dir, maxBytes: maxBytes, create: createExclusive}, nil
}

func createExclusive(path string) (file, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
}

func (s *Store) Dir() string {
	return s.dir
}

// Save validates and writes an upload, returning the generated file name
// <ownerID>-<uuid><ext>.
func (s *Store) Save(ownerID, originalName string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", apperror.Validation("only jpeg, jpg and png images are allowed")
	}

	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", apperror.Validation(fmt.Sprintf("file too large, maximum is %d bytes", s.maxBytes))
	}
	if len(data) == 0 {
		return "", apperror.Validation("file is empty")
	}

	if !mimetype.EqualsAny(mimetype.Detect(data).String(), allowedTypes...) {
		return "", apperror.Validation("file content is not a jpeg or png image")
	}

	name := fmt.Sprintf("%s-%s%s", ownerID, uuid.NewString(), ext)
	if err := s.write(filepath.Join(s.dir, name), data); err != nil {
		return "", err
	}
	return name, nil
}

// write creates path exclusively. On any failure the partial file is removed.
func (s *Store) write(path string, data []byte) (err error) {
	f, err := s.create(path)
	if err != nil {
		return fmt.Errorf("failed to create photo file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write photo file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close photo file: %w", err)
	}
	return nil
}

// Path resolves a stored name to its file, refusing anything that is not a bare file name.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", apperror.NotFound("photo not found")
	}
	full := filepath.Join(s.dir, name)
	if _, err := os.Stat(full); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", apperror.NotFound("photo not found")
		}
		return "", fmt.Errorf("failed to stat photo: %w", err)
	}
	return full, nil
}

// Remove deletes a stored photo. A missing file is not an error.
func (s *Store) Remove(name string) error {
	if name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove photo: %w", err)
	}
	return nil
}
