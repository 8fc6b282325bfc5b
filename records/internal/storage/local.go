package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedExtensions are the upload types served back under /uploads/.
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
	".html": true,
}

// LocalStore writes uploads to a directory on disk. Stored names are
// generated, never taken from the client, so a request cannot choose
// where its bytes land.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) (*LocalStore, error) {
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{baseDir: baseDir}, nil
}

// BaseDir returns the root of the upload tree.
func (s *LocalStore) BaseDir() string {
	return s.baseDir
}

// Save stores the content under a generated name in the given
// subdirectory and returns the web path ("/uploads/<subdir>/<name>").
// Only the extension of originalName is kept.
func (s *LocalStore) Save(subdir, originalName string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedType
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate file name: %w", err)
	}
	name := id.String() + ext

	subdir = filepath.Base(filepath.Clean(subdir))
	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create subdirectory: %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, content); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + subdir + "/" + name, nil
}

// SaveBytes is Save for in-memory content, used for generated
// artifacts such as dossiers.
func (s *LocalStore) SaveBytes(subdir, originalName string, content []byte) (string, error) {
	return s.Save(subdir, originalName, strings.NewReader(string(content)))
}
