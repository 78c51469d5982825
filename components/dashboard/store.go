package dashboard

import (
	"encoding/json"
	"errors"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// Persistence keys. One value per key, JSON-encoded.
const (
	KeyChartsCollapsed = "charts.collapsed"
	KeyChartWidgets    = "charts.widgets"
	KeyChartRow        = "charts.layout.row"
	KeyChartColumn     = "charts.layout.column"
	KeyChartPresets    = "charts.presets"
	KeyTilesVisible    = "tiles.visible"
	KeyTilesOrder      = "tiles.order"
	KeyTilesPresets    = "tiles.presets"
	KeyInterval        = "period.range"
	KeyGranularity     = "period.granularity"
	KeyFilterCampaign  = "filters.campaign"
	KeyFilterCreator   = "filters.creator"
	KeyFilterProduct   = "filters.product"
	KeyFilterLink      = "filters.link"
	KeySummaryOpen     = "summary.open"
)

// GridColumnsKey returns the column-visibility key for a table.
func GridColumnsKey(tableID string) string { return "grid." + tableID + ".columns" }

// GridRowsKey returns the row-count key for a table.
func GridRowsKey(tableID string) string { return "grid." + tableID + ".rows" }

// GridPresetsKey returns the preset-map key for a table.
func GridPresetsKey(tableID string) string { return "grid." + tableID + ".presets" }

// GridCollapsedKey returns the collapse-flag key for a table.
func GridCollapsedKey(tableID string) string { return "grid." + tableID + ".collapsed" }

// Store is the view-state persistence surface. Get reports ok=false for a
// missing key; implementations keep Set/Delete atomic per key.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	Delete(key string) error
}

// MemoryStore is a Store backed by a plain map. Useful for tests and
// throwaway sessions.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (s *MemoryStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	s.values[key] = v
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// BadgerStore persists view state in a Badger database so board sessions
// survive process restarts.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore wraps an open Badger handle. The caller owns the handle
// lifecycle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// OpenBadgerStore opens (or creates) a Badger database at path with logging
// routed away from stderr.
func OpenBadgerStore(path string) (*BadgerStore, func() error, error) {
	db, err := badger.Open(badger.DefaultOptions(path).WithLogger(nil))
	if err != nil {
		return nil, nil, err
	}
	return &BadgerStore{db: db}, db.Close, nil
}

func (s *BadgerStore) Get(key string) ([]byte, bool, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (s *BadgerStore) Set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *BadgerStore) Delete(key string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// loadJSON reads and decodes key, returning fallback when the key is absent
// or the payload does not parse. Persistence is best effort: failures are
// logged at debug and never surface to the caller.
func loadJSON[T any](s Store, key string, fallback T, log logrus.FieldLogger) T {
	raw, ok, err := s.Get(key)
	if err != nil {
		log.WithError(err).WithField("key", key).Debug("view state read failed, using fallback")
		return fallback
	}
	if !ok {
		return fallback
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		log.WithError(err).WithField("key", key).Debug("view state payload malformed, using fallback")
		return fallback
	}
	return out
}

// saveJSON encodes and writes key, logging failures at debug.
func saveJSON(s Store, key string, value any, log logrus.FieldLogger) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.WithError(err).WithField("key", key).Debug("view state encode failed")
		return
	}
	if err := s.Set(key, raw); err != nil {
		log.WithError(err).WithField("key", key).Debug("view state write failed")
	}
}

func deleteKey(s Store, key string, log logrus.FieldLogger) {
	if err := s.Delete(key); err != nil {
		log.WithError(err).WithField("key", key).Debug("view state delete failed")
	}
}
