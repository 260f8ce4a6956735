// Package store owns the lifecycle of the target database a table is recovered into.
//
// A Store is an explicit handle: the caller creates it, passes it to the importer
// and closes or destroys it. Nothing here keeps global state, so two runs with
// different locations never interfere.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"dump-salvage/internal/dialect"
	"dump-salvage/internal/errors"
)

// DefaultSQLiteFile is the file name used under the temp dir when no location is configured.
const DefaultSQLiteFile = "wp_temp.db"

// Store is an open target database.
type Store struct {
	DB       *sql.DB
	Dialect  dialect.Dialect
	Location string // file path for sqlite, DSN otherwise
	Table    string
}

// DefaultLocation returns the sqlite file used when none is configured.
func DefaultLocation() string {
	return filepath.Join(os.TempDir(), DefaultSQLiteFile)
}

// Create discards whatever a previous run left at location and opens a clean
// store. For sqlite the file is deleted; on a server only table is dropped,
// since the rest of the database is not ours.
func Create(d dialect.Dialect, location, table string) (*Store, error) {
	if isFile(d) {
		if location == "" {
			location = DefaultLocation()
		}
		// An in-memory database has no file and starts empty anyway.
		if path := sqliteFile(location); path != "" {
			for _, p := range []string{path, path + "-journal", path + "-wal", path + "-shm"} {
				if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
					return nil, errors.Wrap(errors.StoreFailure, "failed to remove previous store "+p, err)
				}
			}
		}
	}

	s, err := Open(d, location, table)
	if err != nil {
		return nil, err
	}
	if !isFile(d) {
		if _, err := s.DB.Exec(d.DropTableQuery(table)); err != nil {
			s.Close()
			return nil, errors.Wrap(errors.StoreFailure, "failed to drop previous "+table, err)
		}
	}
	return s, nil
}

// Open connects to an existing store without resetting it.
func Open(d dialect.Dialect, location, table string) (*Store, error) {
	if isFile(d) && location == "" {
		location = DefaultLocation()
	}
	if location == "" {
		return nil, errors.New(errors.StoreFailure, "target.dsn is required for "+d.Name())
	}

	db, err := sql.Open(d.DriverName(), location)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailure, "failed to open db", err)
	}
	// Session settings live on one connection, and the pipeline is sequential.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.StoreFailure, "failed to connect to db", err)
	}
	for _, q := range d.SetupQueries() {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return nil, errors.Wrap(errors.StoreFailure, fmt.Sprintf("setup query %q failed", q), err)
		}
	}
	return &Store{DB: db, Dialect: d, Location: location, Table: table}, nil
}

// Close releases the connection and keeps the data.
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

// Destroy closes the store and removes what Create made.
func (s *Store) Destroy() error {
	if s == nil {
		return nil
	}
	if !isFile(s.Dialect) {
		if _, err := s.DB.Exec(s.Dialect.DropTableQuery(s.Table)); err != nil {
			s.Close()
			return fmt.Errorf("failed to drop %s: %w", s.Table, err)
		}
		return s.Close()
	}
	if err := s.Close(); err != nil {
		return err
	}
	if path := sqliteFile(s.Location); path != "" {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}
	return nil
}

// sqliteFile returns the file behind a sqlite DSN such as "file:/x.db?_pragma=...",
// or "" for an in-memory database.
func sqliteFile(location string) string {
	path := strings.TrimPrefix(location, "file:")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == ":memory:" || strings.Contains(location, "mode=memory") {
		return ""
	}
	return path
}

func isFile(d dialect.Dialect) bool {
	_, ok := d.(*dialect.SQLiteDialect)
	return ok
}
