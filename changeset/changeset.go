// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package changeset provides the changeset-id to changeset-tags lookup used
// to cross-reference emitted tag changes.  The lookup is built in a separate
// pass over a changeset metadata dump, before the main run begins, and is
// read-only afterwards.  It is backed by an embedded BadgerDB store.
package changeset

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"m4o.io/tagdiff/model"
)

// Lookup maps a changeset id to the tag set of that changeset.  An unknown
// changeset yields a nil map, never an error.
type Lookup interface {
	Tags(changeset int64) (model.Tags, error)
}

// Config holds configuration for opening a Store.
type Config struct {
	// Path is the store directory.  Ignored when InMemory is set.
	Path string

	// InMemory keeps the store off disk, for tests.
	InMemory bool

	// ReadOnly opens an existing store for lookup only.
	ReadOnly bool

	// Logger receives badger's internal logging.  Nil disables it.
	Logger *slog.Logger
}

// Store is a changeset-tag lookup backed by BadgerDB.
type Store struct {
	db *badger.DB
}

var _ Lookup = (*Store)(nil)

// Open opens the store described by cfg, creating it when absent.
func Open(cfg Config) (*Store, error) {
	opts := badger.DefaultOptions(cfg.Path).
		WithInMemory(cfg.InMemory).
		WithReadOnly(cfg.ReadOnly).
		WithLogger(nil)

	if cfg.Logger != nil {
		opts = opts.WithLogger(badgerLogger{logger: cfg.Logger})
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("unable to open changeset store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying store.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tags returns the tag set of the changeset, or nil when the changeset is
// unknown.
func (s *Store) Tags(changeset int64) (model.Tags, error) {
	var tags model.Tags

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(changeset))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		} else if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &tags)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("unable to look up changeset %d: %w", changeset, err)
	}

	return tags, nil
}

func key(changeset int64) []byte {
	var k [8]byte

	binary.BigEndian.PutUint64(k[:], uint64(changeset))

	return k[:]
}

// badgerLogger adapts slog to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}
