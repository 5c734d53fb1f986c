// Package state persists what outlives a session: the last queue and
// position, recently played tracks and liked tracks.
package state

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/llehouerou/cadence/internal/playback"
)

const (
	appName      = "cadence"
	dbFileName   = "cadence.db"
	saveDebounce = 500 * time.Millisecond
)

// Store is the sqlite-backed state store.
type Store struct {
	db        *sql.DB
	sessionID string
	logger    *slog.Logger

	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   *playback.Session
}

// Open opens the store at path, or at the default data location when path
// is empty.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	// One connection keeps :memory: databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{db: db, sessionID: uuid.NewString(), logger: logger}, nil
}

// DefaultPath returns $XDG_DATA_HOME/cadence/cadence.db.
func DefaultPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}

// SessionID identifies this run in saved sessions.
func (s *Store) SessionID() string {
	return s.sessionID
}

// DB returns the underlying database for stores sharing the state file.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close flushes a pending session save and closes the database.
func (s *Store) Close() error {
	if err := s.FlushSession(context.Background()); err != nil {
		s.logger.Warn("flush session", "error", err)
	}
	return s.db.Close()
}

// SaveSession schedules a debounced save of the session.
func (s *Store) SaveSession(sess playback.Session) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.pending = &sess

	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}

	s.saveTimer = time.AfterFunc(saveDebounce, func() {
		if err := s.FlushSession(context.Background()); err != nil {
			s.logger.Warn("save session", "error", err)
		}
	})
}

// FlushSession writes a pending session save immediately.
func (s *Store) FlushSession(ctx context.Context) error {
	s.saveMu.Lock()
	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}
	pending := s.pending
	s.pending = nil
	s.saveMu.Unlock()

	if pending == nil {
		return nil
	}
	return saveSession(ctx, s.db, s.sessionID, *pending)
}

// GetSession returns the last saved session, or nil if none.
func (s *Store) GetSession(ctx context.Context) (*playback.Session, error) {
	return getSession(ctx, s.db)
}

// SaveRecent replaces the recently played list (most recent first).
func (s *Store) SaveRecent(ctx context.Context, ids []string) error {
	return saveRecent(ctx, s.db, ids)
}

// Recent returns the recently played list, most recent first.
func (s *Store) Recent(ctx context.Context) ([]string, error) {
	return getRecent(ctx, s.db)
}

// ToggleLiked flips the liked flag of a track and returns the new value.
func (s *Store) ToggleLiked(ctx context.Context, id string) (bool, error) {
	return toggleLiked(ctx, s.db, id)
}

// IsLiked reports whether the track is liked.
func (s *Store) IsLiked(ctx context.Context, id string) (bool, error) {
	return isLiked(ctx, s.db, id)
}

// Liked returns liked track ids, most recently liked first.
func (s *Store) Liked(ctx context.Context) ([]string, error) {
	return getLiked(ctx, s.db)
}
