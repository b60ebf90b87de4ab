package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/chessrules/internal/board"
)

// GameRecord is an archived game: the starting position, the moves played
// in UCI notation and the outcome they led to.
type GameRecord struct {
	ID        string    `json:"id"`
	StartFEN  string    `json:"start_fen"`
	Moves     []string  `json:"moves"`
	FinalFEN  string    `json:"final_fen"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewGameRecord replays moves from startFEN, checking each one, and returns
// the record of the resulting game. Moves are stored in lowercase.
func NewGameRecord(startFEN string, moves []string) (*GameRecord, error) {
	pos, err := board.ParseFEN(startFEN)
	if err != nil {
		return nil, err
	}

	rec := &GameRecord{
		StartFEN:  pos.FEN(),
		Moves:     make([]string, 0, len(moves)),
		CreatedAt: time.Now().UTC(),
	}
	for i, s := range moves {
		m, err := pos.ParseUCIMove(s)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if err := pos.MakeMove(m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		rec.Moves = append(rec.Moves, m.String())
	}

	rec.FinalFEN = pos.FEN()
	rec.Status = pos.Status().String()
	rec.ID = gameID(rec.StartFEN, rec.Moves)
	return rec, nil
}

// gameID identifies a game by its start position and moves, so archiving
// the same game twice overwrites the first copy.
func gameID(startFEN string, moves []string) string {
	d := xxhash.New()
	d.WriteString(startFEN)
	for _, m := range moves {
		d.WriteString(" ")
		d.WriteString(m)
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// Replay plays the record's moves again and returns the final position.
// It fails if the result differs from the recorded final FEN.
func Replay(rec *GameRecord) (*board.Position, error) {
	pos, err := board.ParseFEN(rec.StartFEN)
	if err != nil {
		return nil, err
	}
	for i, s := range rec.Moves {
		m, err := pos.ParseUCIMove(s)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		if err := pos.MakeMove(m); err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
	}
	if got := pos.FEN(); got != rec.FinalFEN {
		return nil, fmt.Errorf("game %s: replay ends in %q, record says %q", rec.ID, got, rec.FinalFEN)
	}
	return pos, nil
}

// SaveGame archives a game record.
func (s *Store) SaveGame(rec *GameRecord) error {
	if rec.ID == "" {
		return errors.New("storage: game record has no ID")
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	val := s.enc.EncodeAll(data, nil)

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixGame+rec.ID), val)
	})
	if err != nil {
		return fmt.Errorf("storage: save game: %w", err)
	}
	s.log.V(1).Info("saved game", "id", rec.ID, "moves", len(rec.Moves), "bytes", len(val))
	return nil
}

// LoadGame returns the game archived under id.
func (s *Store) LoadGame(id string) (*GameRecord, error) {
	var rec *GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixGame + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrGameNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			rec, err = s.decodeGame(val)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("storage: load game %s: %w", id, err)
	}
	return rec, nil
}

// ListGames returns every archived game, oldest first.
func (s *Store) ListGames() ([]*GameRecord, error) {
	var games []*GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				rec, err := s.decodeGame(val)
				if err != nil {
					return err
				}
				games = append(games, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("storage: list games: %w", err)
	}

	slices.SortStableFunc(games, func(a, b *GameRecord) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return games, nil
}

// DeleteGame removes the game archived under id.
func (s *Store) DeleteGame(id string) error {
	key := []byte(prefixGame + id)
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrGameNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return fmt.Errorf("storage: delete game %s: %w", id, err)
	}
	return nil
}

func (s *Store) decodeGame(val []byte) (*GameRecord, error) {
	data, err := s.dec.DecodeAll(val, nil)
	if err != nil {
		return nil, fmt.Errorf("decompress: %w", err)
	}
	rec := &GameRecord{}
	if err := json.Unmarshal(data, rec); err != nil {
		return nil, err
	}
	return rec, nil
}
