// Package storage persists engine options and search telemetry across process restarts in an
// embedded badger key-value store, so a UCI GUI that never sends "setoption" again still gets
// the operator's last-configured hash size and depth, and so long-running telemetry survives
// a crash or "quit".
package storage

import (
	"encoding/json"
	"time"

	badger "github.com/dgraph-io/badger/v4"
)

const (
	keyOptions   = "options"
	keyTelemetry = "telemetry"
)

// Options are the persisted UCI-configurable knobs. Every field is saved as given, zero
// values included; Load returns DefaultOptions() merged with whatever was last saved.
type Options struct {
	HashMB   int    `json:"hash_mb"`
	Depth    int    `json:"depth"`
	Noise    int    `json:"noise"`
	OwnBook  bool   `json:"own_book"`
	BookPath string `json:"book_path"`
}

func DefaultOptions() *Options {
	return &Options{HashMB: 32, Depth: 0, Noise: 0, OwnBook: false}
}

// Telemetry tracks cumulative search activity across all games this engine has analyzed.
type Telemetry struct {
	SearchesRun int       `json:"searches_run"`
	TotalNodes  uint64    `json:"total_nodes"`
	LastDepth   int       `json:"last_depth"`
	LastUpdated time.Time `json:"last_updated"`
}

func NewTelemetry() *Telemetry {
	return &Telemetry{}
}

// Storage wraps a badger database holding the two keys above. A nil *Storage is valid and
// every method on it is a safe no-op, so callers can treat persistence as optional without
// nil-checking at every call site.
type Storage struct {
	db *badger.DB
}

// Open opens (creating if necessary) a badger database rooted at dir. Badger's own logger is
// silenced since engine stdout/stderr is reserved for the UCI protocol stream.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// LoadOptions returns the last-saved options, or DefaultOptions() if none were ever saved.
func (s *Storage) LoadOptions() (*Options, error) {
	opt := DefaultOptions()
	if s == nil || s.db == nil {
		return opt, nil
	}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyOptions))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, opt)
		})
	})
	return opt, err
}

func (s *Storage) SaveOptions(opt *Options) error {
	if s == nil || s.db == nil {
		return nil
	}

	data, err := json.Marshal(opt)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyOptions), data)
	})
}

// LoadTelemetry returns the last-saved telemetry, or an empty Telemetry if none was ever saved.
func (s *Storage) LoadTelemetry() (*Telemetry, error) {
	t := NewTelemetry()
	if s == nil || s.db == nil {
		return t, nil
	}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyTelemetry))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, t)
		})
	})
	return t, err
}

func (s *Storage) SaveTelemetry(t *Telemetry) error {
	if s == nil || s.db == nil {
		return nil
	}

	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyTelemetry), data)
	})
}

// RecordSearch loads the current telemetry, folds in one completed search's stats, and
// saves it back. Errors loading or saving are returned; on a nil Storage it is a no-op.
func (s *Storage) RecordSearch(depth int, nodes uint64) error {
	if s == nil || s.db == nil {
		return nil
	}

	t, err := s.LoadTelemetry()
	if err != nil {
		return err
	}
	t.SearchesRun++
	t.TotalNodes += nodes
	t.LastDepth = depth
	t.LastUpdated = time.Now()
	return s.SaveTelemetry(t)
}
