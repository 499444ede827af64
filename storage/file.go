package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// errCorruptDocument marks a store file that exists but is not a JSON object.
// Set replaces such a file; any other read failure is returned.
var errCorruptDocument = errors.New("decode store")

// FileKV keeps every key in one JSON object file. The whole document is
// rewritten on each Set through a temp file and rename.
type FileKV struct {
	mu   sync.Mutex
	path string
}

// NewFileKV returns a store backed by the JSON file at path.
// The file is created lazily on the first Set.
func NewFileKV(path string) (*FileKV, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file store path is empty")
	}
	return &FileKV{path: path}, nil
}

// Path returns the backing file location.
func (s *FileKV) Path() string {
	return s.path
}

func (s *FileKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return nil, false, err
	}
	value, ok := doc[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

func (s *FileKV) Set(_ context.Context, key string, value []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	switch {
	case errors.Is(err, errCorruptDocument):
		doc = map[string]json.RawMessage{}
	case err != nil:
		return err
	}
	if !json.Valid(value) {
		encoded, err := json.Marshal(string(value))
		if err != nil {
			return fmt.Errorf("encode value for %q: %w", key, err)
		}
		value = encoded
	}
	doc[key] = json.RawMessage(value)

	return s.write(doc)
}

func (s *FileKV) Close() error {
	return nil
}

func (s *FileKV) load() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read store: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	doc := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", errCorruptDocument, err)
	}
	return doc, nil
}

func (s *FileKV) write(doc map[string]json.RawMessage) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}

	body, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}
	body = append(body, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json")
	if err != nil {
		return fmt.Errorf("create temp store: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp store: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replace store: %w", err)
	}
	return nil
}
