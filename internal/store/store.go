// Package store archives finished games in an embedded BadgerDB.
package store

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/powerchess/powerchess-backend/internal/model"
)

const gameKeyPrefix = "game:"

var ErrNotFound = errors.New("game record not found")

// GameRecord is the archived form of a completed game.
type GameRecord struct {
	ID          string               `json:"id"`
	Result      string               `json:"result"`
	FinalFEN    string               `json:"finalFen"`
	Moves       []string             `json:"moves"`
	Modifiers   []model.ModifierKind `json:"modifiers"`
	CompletedAt time.Time            `json:"completedAt"`
}

// Store wraps BadgerDB for persistent storage.
type Store struct {
	db *badger.DB
}

func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) SaveGame(record GameRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(gameKeyPrefix+record.ID), data)
	})
}

func (s *Store) LoadGame(id string) (*GameRecord, error) {
	record := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(gameKeyPrefix + id))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, record)
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *Store) ListGameIDs() ([]string, error) {
	ids := []string{}
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		prefix := []byte(gameKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			ids = append(ids, string(it.Item().Key()[len(prefix):]))
		}
		return nil
	})
	return ids, err
}
