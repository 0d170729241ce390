package store

import (
	"os"
	"path/filepath"
)

// FileStore reads and writes files under a root directory. Raw inputs such
// as the athlete catalog live under one store, derived reports under another.
type FileStore struct {
	Root string // e.g. "data/raw"
}

func NewFileStore(root string) *FileStore {
	return &FileStore{Root: root}
}

func (s *FileStore) Path(rel string) string {
	return filepath.Join(s.Root, rel)
}

func (s *FileStore) Exists(rel string) bool {
	_, err := os.Stat(s.Path(rel))
	return err == nil
}

// WriteRaw stores body at rel as is, creating parent directories.
func (s *FileStore) WriteRaw(rel string, body []byte) error {
	path := s.Path(rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, body, 0o644)
}

func (s *FileStore) ReadRaw(rel string) ([]byte, error) {
	return os.ReadFile(s.Path(rel))
}
