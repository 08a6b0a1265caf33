package sessionstorage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-playground/errors/v5"
)

var _ Store = &FileStore{}

// FileStore persists entries as a single JSON object on disk. Every
// mutation rewrites the file through a temp-file rename, so readers never
// observe a partially written file.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]string
}

// NewFileStore opens or creates the store backed by path. A missing file
// yields an empty store; an unreadable or malformed file is an error so
// the caller can decide whether to discard it.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:    path,
		entries: make(map[string]string),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}

		return nil, errors.Wrap(err, "os.ReadFile()")
	}

	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, errors.Wrap(err, "json.Unmarshal()")
	}

	return s, nil
}

func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.entries[key]

	return value, ok, nil
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = value

	return s.flush()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[key]; !ok {
		return nil
	}
	delete(s.entries, key)

	return s.flush()
}

func (s *FileStore) flush() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return errors.Wrap(err, "json.Marshal()")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "os.CreateTemp()")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return errors.Wrap(err, "os.File.Write()")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "os.File.Close()")
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "os.Rename()")
	}

	return nil
}
