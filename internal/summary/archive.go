// Vinoscope - Wine Tasting Journal Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vinoscope

package summary

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/vinoscope/internal/models"
)

// Archive persists generated summaries for completed years so they are
// computed at most once. Backed by an embedded Badger store.
type Archive struct {
	db *badger.DB
}

// OpenArchive opens (or creates) the archive at path. An empty path
// disables persistence and returns a nil archive, which every method
// treats as a cache that never hits.
func OpenArchive(path string) (*Archive, error) {
	if path == "" {
		return nil, nil
	}

	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open summary archive at %s: %w", path, err)
	}
	return &Archive{db: db}, nil
}

// Close releases the underlying store.
func (a *Archive) Close() error {
	if a == nil {
		return nil
	}
	return a.db.Close()
}

// Get returns the archived summary for the user and year, or nil when
// none has been stored.
func (a *Archive) Get(userID string, year int) (*models.YearSummary, error) {
	if a == nil {
		return nil, nil
	}

	var summary models.YearSummary
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(archiveKey(userID, year))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &summary)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read archived summary %s/%d: %w", userID, year, err)
	}
	return &summary, nil
}

// Put stores a summary, replacing any previous one for the same user and
// year.
func (a *Archive) Put(summary *models.YearSummary) error {
	if a == nil {
		return nil
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary %s/%d: %w", summary.UserID, summary.Year, err)
	}

	err = a.db.Update(func(txn *badger.Txn) error {
		return txn.Set(archiveKey(summary.UserID, summary.Year), data)
	})
	if err != nil {
		return fmt.Errorf("store summary %s/%d: %w", summary.UserID, summary.Year, err)
	}
	return nil
}

// Delete removes an archived summary if present.
func (a *Archive) Delete(userID string, year int) error {
	if a == nil {
		return nil
	}
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(archiveKey(userID, year))
	})
}

func archiveKey(userID string, year int) []byte {
	return []byte(fmt.Sprintf("summary/%s/%d", userID, year))
}
