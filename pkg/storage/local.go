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
	ErrInvalidToken = errors.New("storage: invalid file token")
	ErrNotFound     = errors.New("storage: file not found")
)

// LocalStorage keeps résumé files on disk under a base directory.
// Callers only ever handle the flat filename token returned by Save.
type LocalStorage struct {
	baseDir string
}

func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		baseDir = "./uploads/resumes"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Save copies r into a new file and returns its token. The original extension is kept.
func (s *LocalStorage) Save(originalName string, r io.Reader) (string, error) {
	token := uuid.New().String() + strings.ToLower(filepath.Ext(originalName))
	file, err := os.Create(filepath.Join(s.baseDir, token))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	if _, err := io.Copy(file, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return token, nil
}

// Open returns a read-only handle for the stored file.
func (s *LocalStorage) Open(token string) (*os.File, error) {
	path, err := s.Path(token)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return file, nil
}

func (s *LocalStorage) Exists(token string) bool {
	path, err := s.Path(token)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Path resolves a token to its location, refusing anything that is not a plain file name.
func (s *LocalStorage) Path(token string) (string, error) {
	if token == "" || token != filepath.Base(token) || token == "." || token == ".." {
		return "", ErrInvalidToken
	}
	return filepath.Join(s.baseDir, token), nil
}
