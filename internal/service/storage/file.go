package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	apperrors "github.com/kapu/pokedex-go/pkg/errors"
)

// FileStore keeps all keys in a single JSON object file. Each value must
// itself be valid JSON; it is embedded raw in the object.
type FileStore struct {
	path   string
	logger *zap.Logger
	mu     sync.Mutex
}

func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if path == "" {
		return nil, apperrors.NewValidationError("storage file path is required", "path", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.NewStorageError("failed to create storage directory", "open", "", err)
	}

	logger.Info("File storage opened", zap.String("path", path))

	return &FileStore{
		path:   path,
		logger: logger,
	}, nil
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		return nil, false, apperrors.NewStorageError("get failed", "get", key, err)
	}
	value, ok := values[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set rewrites the whole file through a temp file and rename.
func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return apperrors.NewStorageError("value is not valid JSON", "set", key, nil)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.readAll()
	if err != nil {
		f.logger.Warn("Storage file unreadable, starting fresh",
			zap.String("path", f.path),
			zap.Error(err),
		)
		values = make(map[string]json.RawMessage)
	}
	values[key] = json.RawMessage(append([]byte(nil), value...))

	data, err := json.Marshal(values)
	if err != nil {
		return apperrors.NewStorageError("marshal failed", "set", key, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".storage-*.json")
	if err != nil {
		return apperrors.NewStorageError("temp file failed", "set", key, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperrors.NewStorageError("write failed", "set", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError("write failed", "set", key, err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return apperrors.NewStorageError("rename failed", "set", key, err)
	}
	return nil
}

func (f *FileStore) Close() error {
	return nil
}

func (f *FileStore) readAll() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return make(map[string]json.RawMessage), nil
	}

	values := make(map[string]json.RawMessage)
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}
