/*
Package config implements the persistent settings store.

Settings are small named unsigned integers: key bindings, the selected
palette and so on. The sqlite implementation keeps them in a single table so
they survive restarts; Memory is a map for tests and for running without a
database.
*/
package config

import (
	"database/sql"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pkg/errors"
)

// ErrNotFound is returned when reading a setting that was never written.
var ErrNotFound = errors.New("config: setting not found")

// Store reads and writes named settings.
type Store interface {
	Uint32(name string) (uint32, error)
	SetUint32(name string, value uint32) error
}

// SQLiteStore is a Store backed by a sqlite database.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens or creates the database in file. Use ":memory:" for a
// throwaway store.
func Open(file string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", file)
	if err != nil {
		return nil, errors.Wrap(err, "config: open")
	}
	// In-memory databases are per connection
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS setting (name TEXT PRIMARY KEY NOT NULL, value INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "config: create table")
	}

	return &SQLiteStore{
		db: db,
	}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Uint32 implements Store.
func (s *SQLiteStore) Uint32(name string) (uint32, error) {
	var v int64
	switch err := s.db.QueryRow("SELECT value FROM setting WHERE name = ?", name).Scan(&v); err {
	case sql.ErrNoRows:
		return 0, errors.Wrap(ErrNotFound, name)
	case nil:
		if v < 0 || v > 1<<32-1 {
			return 0, errors.Errorf("config: %s: value %d out of range", name, v)
		}
		return uint32(v), nil
	default:
		return 0, errors.Wrapf(err, "config: read %s", name)
	}
}

// SetUint32 implements Store.
func (s *SQLiteStore) SetUint32(name string, value uint32) error {
	if _, err := s.db.Exec("INSERT OR REPLACE INTO setting (name, value) VALUES (?, ?)", name, int64(value)); err != nil {
		return errors.Wrapf(err, "config: write %s", name)
	}
	return nil
}

// All returns every stored setting, ordered by name.
func (s *SQLiteStore) All() ([]Setting, error) {
	rows, err := s.db.Query("SELECT name, value FROM setting ORDER BY name")
	if err != nil {
		return nil, errors.Wrap(err, "config: list")
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var st Setting
		var v int64
		if err := rows.Scan(&st.Name, &v); err != nil {
			return nil, errors.Wrap(err, "config: list")
		}
		st.Value = uint32(v)
		settings = append(settings, st)
	}
	return settings, rows.Err()
}

// Reset removes every stored setting.
func (s *SQLiteStore) Reset() error {
	if _, err := s.db.Exec("DELETE FROM setting"); err != nil {
		return errors.Wrap(err, "config: reset")
	}
	return nil
}

// Setting is a single stored value.
type Setting struct {
	Name  string
	Value uint32
}

// Memory is a Store held in a map.
type Memory struct {
	mu sync.Mutex
	m  map[string]uint32
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		m: make(map[string]uint32),
	}
}

// Uint32 implements Store.
func (m *Memory) Uint32(name string) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.m[name]
	if !ok {
		return 0, errors.Wrap(ErrNotFound, name)
	}
	return v, nil
}

// SetUint32 implements Store.
func (m *Memory) SetUint32(name string, value uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.m[name] = value
	return nil
}

// All returns every stored setting, ordered by name.
func (m *Memory) All() []Setting {
	m.mu.Lock()
	defer m.mu.Unlock()

	settings := make([]Setting, 0, len(m.m))
	for k, v := range m.m {
		settings = append(settings, Setting{k, v})
	}
	sort.Slice(settings, func(i, j int) bool { return settings[i].Name < settings[j].Name })
	return settings
}
