package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fediwatch/reporter/internal/storage"
	"go.uber.org/zap"
)

type Policy string

const (
	// PolicyTTL treats entries older than the configured lifespan as absent.
	PolicyTTL Policy = "ttl"
	// PolicyKeep never expires entries.
	PolicyKeep Policy = "keep"
)

// Store is a file-backed result cache. One entry per operation name, one
// JSON file per entry. Freshness is judged against the single timestamp the
// store was constructed with, so every lookup in a run sees the same cache
// state no matter how long the run takes.
type Store struct {
	dir      string
	now      time.Time
	policy   Policy
	lifespan time.Duration
	logger   *zap.Logger
}

func NewStore(dir string, now time.Time, policy Policy, lifespan time.Duration, logger *zap.Logger) (*Store, error) {
	switch policy {
	case PolicyTTL, PolicyKeep:
	default:
		return nil, fmt.Errorf("unknown cache policy: %s", policy)
	}

	err := storage.CreateDir(dir)
	if err != nil {
		return nil, err
	}

	return &Store{
		dir:      dir,
		now:      now,
		policy:   policy,
		lifespan: lifespan,
		logger:   logger,
	}, nil
}

// EntryPath returns the file an entry is stored in.
func (s *Store) EntryPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Lookup returns the stored bytes for name. A stale entry under the ttl
// policy counts as absent; it stays on disk and is overwritten by the next
// Put.
func (s *Store) Lookup(name string) ([]byte, bool, error) {
	path := s.EntryPath(name)

	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	if s.policy == PolicyTTL && s.now.Sub(fi.ModTime()) >= s.lifespan {
		return nil, false, nil
	}

	b, err := storage.Read(path)
	if err != nil {
		return nil, false, err
	}

	return b, true, nil
}

// Put writes data as an indented JSON entry. Entries are meant to be opened
// in an editor and shared, not only read back.
func (s *Store) Put(name string, data any) error {
	b, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		return err
	}

	return storage.Save(s.EntryPath(name), b)
}

// Entry describes a stored cache entry.
type Entry struct {
	Name      string
	Size      int64
	WrittenAt time.Time
	Age       time.Duration
	Fresh     bool
}

// Stat reports on the entry for name, fresh or not.
func (s *Store) Stat(name string) (*Entry, bool, error) {
	fi, err := os.Stat(s.EntryPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}

	age := s.now.Sub(fi.ModTime())

	return &Entry{
		Name:      name,
		Size:      fi.Size(),
		WrittenAt: fi.ModTime(),
		Age:       age,
		Fresh:     s.policy == PolicyKeep || age < s.lifespan,
	}, true, nil
}

// Remove deletes the entry for name. Removing an absent entry is not an
// error.
func (s *Store) Remove(name string) error {
	path := s.EntryPath(name)
	if !storage.Exists(path) {
		return nil
	}

	return storage.EraseFile(path)
}

// Through memoizes fetch under name. On a hit the stored entry is decoded
// and returned without invoking fetch; on a miss the fetched value is
// persisted and then returned as-is.
func Through[T any](s *Store, name string, fetch func() (T, error)) (T, error) {
	var zero T

	b, ok, err := s.Lookup(name)
	if err != nil {
		return zero, err
	}

	if ok {
		s.logger.Info("loading from cache", zap.String("op", name))

		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return zero, fmt.Errorf("decoding cached %s: %w", name, err)
		}

		return v, nil
	}

	s.logger.Info("calling", zap.String("op", name))

	v, err := fetch()
	if err != nil {
		return zero, err
	}

	s.logger.Info("writing to cache", zap.String("op", name))

	err = s.Put(name, v)
	if err != nil {
		return zero, err
	}

	return v, nil
}

// Key derives an entry name from an operation name and its arguments. With
// no arguments the name is used as-is, which is the common case; entries
// are keyed by operation identity alone.
func Key(name string, args ...any) string {
	if len(args) == 0 {
		return name
	}

	h := sha256.Sum256([]byte(fmt.Sprint(args...)))

	return fmt.Sprintf("%s-%s", name, hex.EncodeToString(h[:4]))
}
