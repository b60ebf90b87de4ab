package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"

	"github.com/hailam/chessrules/internal/board"
)

var foolsMate = []string{"f2f3", "e7e5", "g2g4", "d8h4"}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenInMemory(logr.Discard())
	if err != nil {
		t.Fatalf("OpenInMemory: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewGameRecord(t *testing.T) {
	rec, err := NewGameRecord(board.StartFEN, []string{"F2F3", "e7e5", "g2g4", "d8h4"})
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	if rec.Status != board.Checkmate.String() {
		t.Errorf("Status = %q, want checkmate", rec.Status)
	}
	if diff := cmp.Diff(foolsMate, rec.Moves); diff != "" {
		t.Errorf("moves not normalized (-want +got):\n%s", diff)
	}
	want := "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	if rec.FinalFEN != want {
		t.Errorf("FinalFEN = %q, want %q", rec.FinalFEN, want)
	}
	if len(rec.ID) != 16 {
		t.Errorf("ID = %q, want 16 hex digits", rec.ID)
	}

	again, err := NewGameRecord(board.StartFEN, foolsMate)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	if again.ID != rec.ID {
		t.Error("the same game got two different IDs")
	}

	other, err := NewGameRecord(board.StartFEN, foolsMate[:3])
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	if other.ID == rec.ID || other.Status != board.Ongoing.String() {
		t.Errorf("prefix game: ID %q, status %q", other.ID, other.Status)
	}
}

func TestNewGameRecordErrors(t *testing.T) {
	if _, err := NewGameRecord("not a fen", nil); !errors.Is(err, board.ErrMalformedFEN) {
		t.Errorf("bad FEN: %v, want ErrMalformedFEN", err)
	}
	if _, err := NewGameRecord(board.StartFEN, []string{"e2e4", "e2e4"}); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("illegal move: %v, want ErrIllegalMove", err)
	}
	if _, err := NewGameRecord(board.StartFEN, []string{"e2"}); !errors.Is(err, board.ErrMalformedUCI) {
		t.Errorf("malformed move: %v, want ErrMalformedUCI", err)
	}
}

func TestGameArchive(t *testing.T) {
	s := newTestStore(t)

	first, err := NewGameRecord(board.StartFEN, foolsMate)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	second, err := NewGameRecord(board.StartFEN, []string{"e2e4", "e7e5"})
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	// Saved out of order; ListGames sorts by creation time.
	for _, rec := range []*GameRecord{second, first} {
		if err := s.SaveGame(rec); err != nil {
			t.Fatalf("SaveGame: %v", err)
		}
	}

	loaded, err := s.LoadGame(first.ID)
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	if diff := cmp.Diff(first, loaded); diff != "" {
		t.Errorf("loaded record differs (-saved +loaded):\n%s", diff)
	}

	games, err := s.ListGames()
	if err != nil {
		t.Fatalf("ListGames: %v", err)
	}
	if diff := cmp.Diff([]*GameRecord{first, second}, games); diff != "" {
		t.Errorf("ListGames mismatch (-want +got):\n%s", diff)
	}

	if err := s.DeleteGame(first.ID); err != nil {
		t.Fatalf("DeleteGame: %v", err)
	}
	if _, err := s.LoadGame(first.ID); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("LoadGame after delete = %v, want ErrGameNotFound", err)
	}
	if err := s.DeleteGame(first.ID); !errors.Is(err, ErrGameNotFound) {
		t.Errorf("second DeleteGame = %v, want ErrGameNotFound", err)
	}
	if err := s.SaveGame(&GameRecord{}); err == nil {
		t.Error("SaveGame without ID should fail")
	}
}

func TestReplay(t *testing.T) {
	rec, err := NewGameRecord(board.StartFEN, foolsMate)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}

	pos, err := Replay(rec)
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if !pos.IsCheckmate() {
		t.Error("replayed position is not checkmate")
	}

	rec.FinalFEN = board.StartFEN
	if _, err := Replay(rec); err == nil {
		t.Error("Replay should fail when the final FEN does not match")
	}

	rec.Moves = append(rec.Moves, "e1e2")
	if _, err := Replay(rec); !errors.Is(err, board.ErrIllegalMove) {
		t.Errorf("Replay past mate = %v, want ErrIllegalMove", err)
	}
}

func TestPerftCache(t *testing.T) {
	s := newTestStore(t)

	if _, ok, err := s.PerftGet(0xdeadbeef, 3); err != nil || ok {
		t.Errorf("PerftGet on empty store = %v, %v", ok, err)
	}
	if err := s.PerftPut(0xdeadbeef, 3, 8902); err != nil {
		t.Fatalf("PerftPut: %v", err)
	}
	if n, ok, err := s.PerftGet(0xdeadbeef, 3); err != nil || !ok || n != 8902 {
		t.Errorf("PerftGet = %d, %v, %v, want 8902", n, ok, err)
	}
	if _, ok, _ := s.PerftGet(0xdeadbeef, 4); ok {
		t.Error("depth is not part of the key")
	}

	c := s.PerftCache()
	c.Put(1, 2, 400)
	if n, ok := c.Get(1, 2); !ok || n != 400 {
		t.Errorf("PerftCache.Get = %d, %v, want 400", n, ok)
	}
}

func TestOpenPersists(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, logr.Discard())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	rec, err := NewGameRecord(board.StartFEN, foolsMate)
	if err != nil {
		t.Fatalf("NewGameRecord: %v", err)
	}
	if err := s.SaveGame(rec); err != nil {
		t.Fatalf("SaveGame: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(dir, logr.Discard())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	if _, err := s.LoadGame(rec.ID); err != nil {
		t.Errorf("LoadGame after reopen: %v", err)
	}
}

func TestDataPaths(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("XDG_DATA_HOME", tmp)
	t.Setenv("APPDATA", tmp)
	t.Setenv("HOME", tmp)

	dataDir, err := GetDataDir()
	if err != nil {
		t.Fatalf("GetDataDir failed: %v", err)
	}
	if filepath.Base(dataDir) != appName {
		t.Errorf("GetDataDir = %q, want a %q directory", dataDir, appName)
	}

	dbDir, err := GetDatabaseDir()
	if err != nil {
		t.Fatalf("GetDatabaseDir failed: %v", err)
	}
	if filepath.Dir(dbDir) != dataDir {
		t.Errorf("GetDatabaseDir = %q, want it under %q", dbDir, dataDir)
	}
	if _, err := os.Stat(dbDir); os.IsNotExist(err) {
		t.Errorf("database directory was not created: %s", dbDir)
	}
}

func TestBaseDataDir(t *testing.T) {
	env := map[string]string{"APPDATA": `C:\Users\u\AppData\Roaming`, "XDG_DATA_HOME": "/xdg"}
	getenv := func(k string) string { return env[k] }
	noenv := func(string) string { return "" }
	home := func() (string, error) { return "/home/u", nil }

	tests := []struct {
		name   string
		goos   string
		getenv func(string) string
		want   string
	}{
		{"darwin", "darwin", getenv, filepath.Join("/home/u", "Library", "Application Support")},
		{"windows env", "windows", getenv, env["APPDATA"]},
		{"windows fallback", "windows", noenv, filepath.Join("/home/u", "AppData", "Roaming")},
		{"linux env", "linux", getenv, "/xdg"},
		{"linux fallback", "linux", noenv, filepath.Join("/home/u", ".local", "share")},
		{"other unix", "freebsd", noenv, filepath.Join("/home/u", ".local", "share")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := baseDataDir(tt.goos, tt.getenv, home)
			if err != nil {
				t.Fatalf("baseDataDir: %v", err)
			}
			if got != tt.want {
				t.Errorf("baseDataDir = %q, want %q", got, tt.want)
			}
		})
	}

	errHome := errors.New("no home")
	_, err := baseDataDir("linux", noenv, func() (string, error) { return "", errHome })
	if !errors.Is(err, errHome) {
		t.Errorf("missing home: err = %v, want it to wrap %v", err, errHome)
	}
}
