// Package caught owns the set of Pokémon names the user has marked as
// caught. The set is read from a BlobStore once and written back in full
// after every toggle.
package caught

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/kapu/pokedex-go/internal/service/storage"
	apperrors "github.com/kapu/pokedex-go/pkg/errors"
)

// Checker is the read side of the store, used by filters and views.
type Checker interface {
	IsCaught(name string) bool
}

type Store struct {
	blob   storage.BlobStore
	key    string
	logger *zap.Logger

	mu    sync.RWMutex
	names []string
	index map[string]struct{}
}

var _ Checker = (*Store)(nil)

// Load reads the persisted set. A missing key, a read error or a body
// that is not a JSON string array all yield an empty set; corruption is
// logged and never returned. Null and empty entries are dropped.
func Load(ctx context.Context, blob storage.BlobStore, key string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		blob:   blob,
		key:    key,
		logger: logger,
		index:  make(map[string]struct{}),
	}

	data, found, err := blob.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn("Failed to read caught set, starting empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return s
	case !found:
		logger.Info("No caught set persisted yet", zap.String("key", key))
		return s
	}

	var stored []*string
	if err := json.Unmarshal(data, &stored); err != nil {
		logger.Warn("Persisted caught set is not a JSON string array, starting empty",
			zap.String("key", key),
			zap.Error(err),
		)
		return s
	}

	for _, entry := range stored {
		if entry == nil || *entry == "" {
			continue
		}
		name := *entry
		if _, dup := s.index[name]; dup {
			continue
		}
		s.index[name] = struct{}{}
		s.names = append(s.names, name)
	}

	logger.Info("Caught set loaded",
		zap.String("key", key),
		zap.Int("count", len(s.names)),
	)
	return s
}

func (s *Store) IsCaught(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.index[name]
	return ok
}

// Names returns the caught names in insertion order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.names)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.names)
}

// Toggle flips membership of name and writes the whole set back before
// returning. The in-memory change is kept even when the write fails; the
// failure is logged and returned as a StorageError.
func (s *Store) Toggle(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	caught := false
	if _, ok := s.index[name]; ok {
		delete(s.index, name)
		s.names = slices.DeleteFunc(s.names, func(n string) bool { return n == name })
	} else {
		s.index[name] = struct{}{}
		s.names = append(s.names, name)
		caught = true
	}

	s.logger.Debug("Caught set toggled",
		zap.String("name", name),
		zap.Bool("caught", caught),
		zap.Int("count", len(s.names)),
	)

	return caught, s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) error {
	names := s.names
	if names == nil {
		names = []string{}
	}
	data, err := json.Marshal(names)
	if err != nil {
		return apperrors.NewStorageError("marshal failed", "set", s.key, err)
	}

	if err := s.blob.Set(ctx, s.key, data); err != nil {
		s.logger.Error("Failed to persist caught set",
			zap.String("key", s.key),
			zap.Int("count", len(names)),
			zap.Error(err),
		)
		var storageErr *apperrors.StorageError
		if errors.As(err, &storageErr) {
			return storageErr
		}
		return apperrors.NewStorageError("persist failed", "set", s.key, err)
	}
	return nil
}
