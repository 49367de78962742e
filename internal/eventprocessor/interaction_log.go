// Shopwise - Hybrid Product Recommendation and Search
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopwise

package eventprocessor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/shopwise/internal/catalog"
	"github.com/tomtom215/shopwise/internal/logging"
)

const (
	prefixInteraction = "ix/"
	prefixEventID     = "id/"
)

// InteractionLog is a durable append-only store of recorded interactions
// backed by BadgerDB. Keys sort by record time, so a scan returns
// interactions in the order they happened.
type InteractionLog struct {
	db     *badger.DB
	mu     sync.RWMutex
	closed bool
}

// OpenInteractionLog opens (or creates) the log at path.
// An empty path opens an in-memory log, used by tests and the memory backend.
func OpenInteractionLog(path string, syncWrites bool) (*InteractionLog, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
		opts.SyncWrites = syncWrites
	}

	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", path).
		Bool("in_memory", path == "").
		Msg("interaction log opened")

	return &InteractionLog{db: db}, nil
}

func interactionKey(e *InteractionEvent) []byte {
	return []byte(fmt.Sprintf("%s%020d/%s", prefixInteraction, e.RecordedAt.UnixNano(), e.EventID))
}

// Append stores event. Replaying an event id already in the log is a no-op
// and reports false.
func (l *InteractionLog) Append(ctx context.Context, event *InteractionEvent) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return false, ErrLogClosed
	}

	data, err := json.Marshal(event)
	if err != nil {
		return false, fmt.Errorf("marshal interaction: %w", err)
	}

	stored := false
	err = l.db.Update(func(txn *badger.Txn) error {
		idKey := []byte(prefixEventID + event.EventID)
		_, err := txn.Get(idKey)
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		key := interactionKey(event)
		if err := txn.Set(key, data); err != nil {
			return err
		}
		if err := txn.Set(idKey, key); err != nil {
			return err
		}
		stored = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("append interaction: %w", err)
	}
	return stored, nil
}

// Interactions returns every logged interaction in record order.
// Entries that fail to decode are skipped with a warning.
func (l *InteractionLog) Interactions(ctx context.Context) ([]catalog.Interaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return nil, ErrLogClosed
	}

	var out []catalog.Interaction
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixInteraction)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			item := it.Item()
			var event InteractionEvent
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &event)
			})
			if err != nil {
				logging.Warn().Err(err).Str("key", string(item.Key())).Msg("skipping undecodable interaction")
				continue
			}
			out = append(out, event.Interaction())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan interactions: %w", err)
	}
	return out, nil
}

// Count returns the number of logged interactions.
func (l *InteractionLog) Count() (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return 0, ErrLogClosed
	}

	n := 0
	err := l.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(prefixInteraction)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			n++
		}
		return nil
	})
	return n, err
}

// Close closes the underlying database.
func (l *InteractionLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return nil
	}
	l.closed = true
	return l.db.Close()
}
