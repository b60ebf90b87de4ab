package storage

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-logr/logr"
	"github.com/klauspost/compress/zstd"
)

// Key prefixes
const (
	prefixGame  = "game/"
	prefixPerft = "perft/"
)

// ErrGameNotFound is returned when no game is archived under an ID.
var ErrGameNotFound = errors.New("game not found")

// Store wraps BadgerDB for the game archive and the perft cache.
type Store struct {
	db  *badger.DB
	enc *zstd.Encoder
	dec *zstd.Decoder
	log logr.Logger
}

// Open opens or creates the database in dir. An empty dir selects the
// platform data directory.
func Open(dir string, logger logr.Logger) (*Store, error) {
	if dir == "" {
		var err error
		if dir, err = GetDatabaseDir(); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
	}
	logger.V(1).Info("opening database", "dir", dir)
	return open(badger.DefaultOptions(dir), logger)
}

// OpenInMemory creates a database that lives only as long as the Store.
func OpenInMemory(logger logr.Logger) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), logger)
}

func open(opts badger.Options, logger logr.Logger) (*Store, error) {
	db, err := badger.Open(opts.WithLogger(badgerLogger{logger.WithName("badger")}))
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("storage: %w", err)
	}

	return &Store{db: db, enc: enc, dec: dec, log: logger}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	s.dec.Close()
	if err := s.enc.Close(); err != nil {
		s.log.Error(err, "closing encoder")
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Size returns the on-disk size of the LSM tree and the value log.
func (s *Store) Size() (lsm, vlog int64) {
	return s.db.Size()
}

func perftKey(hash uint64, depth int) []byte {
	key := make([]byte, len(prefixPerft)+9)
	n := copy(key, prefixPerft)
	binary.BigEndian.PutUint64(key[n:], hash)
	key[n+8] = byte(depth)
	return key
}

// PerftGet returns the stored node count for hash at depth.
func (s *Store) PerftGet(hash uint64, depth int) (uint64, bool, error) {
	var nodes uint64
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(hash, depth))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return fmt.Errorf("perft entry has %d bytes", len(val))
			}
			nodes = binary.BigEndian.Uint64(val)
			found = true
			return nil
		})
	})
	if err != nil {
		return 0, false, fmt.Errorf("storage: perft get: %w", err)
	}
	return nodes, found, nil
}

// PerftPut stores the node count for hash at depth.
func (s *Store) PerftPut(hash uint64, depth int, nodes uint64) error {
	val := binary.BigEndian.AppendUint64(nil, nodes)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(hash, depth), val)
	})
	if err != nil {
		return fmt.Errorf("storage: perft put: %w", err)
	}
	return nil
}

// PerftCache adapts a Store to the Get/Put cache interface of the perft
// runner. Errors are logged and treated as misses.
type PerftCache struct {
	s *Store
}

// PerftCache returns the store's perft cache view.
func (s *Store) PerftCache() PerftCache {
	return PerftCache{s: s}
}

func (c PerftCache) Get(hash uint64, depth int) (uint64, bool) {
	n, ok, err := c.s.PerftGet(hash, depth)
	if err != nil {
		c.s.log.Error(err, "perft cache read", "depth", depth)
		return 0, false
	}
	return n, ok
}

func (c PerftCache) Put(hash uint64, depth int, nodes uint64) {
	if err := c.s.PerftPut(hash, depth, nodes); err != nil {
		c.s.log.Error(err, "perft cache write", "depth", depth)
	}
}

// badgerLogger routes badger's printf-style logging to logr.
type badgerLogger struct {
	log logr.Logger
}

func (l badgerLogger) Errorf(format string, args ...any) {
	l.log.Error(nil, strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Warningf(format string, args ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Infof(format string, args ...any) {
	l.log.V(1).Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l badgerLogger) Debugf(format string, args ...any) {
	l.log.V(2).Info(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
