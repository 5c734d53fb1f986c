package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/config"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/logging"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/playlists"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/stderr"
)

// env holds everything a command needs to drive playback.
type env struct {
	logger    *slog.Logger
	logCloser io.Closer
	store     *state.Store
	catalog   *catalog.Catalog
	virtual   *player.Virtual
	output    player.Interface
	engine    *playback.Engine
	capture   *stderr.Capture
}

// openEnv wires logging, the state store, the catalog, the media output
// and the engine from the loaded config. With captureStderr set, whatever
// the audio backend writes to stderr is sent to the log instead.
func openEnv(ctx context.Context, c *config.Config, captureStderr bool) (*env, error) {
	logPath := c.LogFile
	if logPath == "" {
		logPath = logging.DefaultPath()
	}
	logger, logCloser, err := logging.Setup(logPath, c.GetLogLevel())
	if err != nil {
		fmt.Fprintf(os.Stderr, "cadence: logging disabled: %v\n", err)
	}

	store, err := state.Open(c.StateFile, logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, errors.New(errmsg.Format(errmsg.OpInitialize, err))
	}

	cat := withUserPlaylists(ctx, loadCatalog(ctx, c.MusicDir, logger), store.DB(), logger)
	virtual := player.NewVirtual(durationLookup(cat))

	var (
		output  player.Interface
		capture *stderr.Capture
	)
	switch c.GetOutput() {
	case config.OutputVirtual:
		output = player.NewRouter(nil, virtual)
	default:
		if captureStderr {
			if capture, err = stderr.Start(logger); err != nil {
				logger.Warn("capture stderr", "error", err)
			}
		}
		output = player.NewRouter(player.NewSpeaker(logger), virtual)
	}

	engine := playback.New(cat, output, playback.Options{Logger: logger})
	if err := engine.SetVolume(c.GetVolume()); err != nil {
		logger.Warn("set volume", "error", err)
	}
	engine.SetShuffle(c.Shuffle)
	if err := engine.SetRepeatMode(c.GetRepeatMode()); err != nil {
		logger.Warn("set repeat mode", "error", err)
	}

	return &env{
		logger:    logger,
		logCloser: logCloser,
		store:     store,
		catalog:   cat,
		virtual:   virtual,
		output:    output,
		engine:    engine,
		capture:   capture,
	}, nil
}

// restoreSession loads the last saved session into the engine.
func (e *env) restoreSession(ctx context.Context) {
	sess, err := e.store.GetSession(ctx)
	if err != nil {
		e.logger.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
		return
	}
	if sess == nil {
		return
	}
	if err := e.engine.Restore(*sess); err != nil {
		e.logger.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
	}
}

// Close saves the session and releases every resource.
func (e *env) Close() {
	e.store.SaveSession(e.engine.Session())
	_ = e.engine.Close()
	if err := e.output.Close(); err != nil {
		e.logger.Warn("close output", "error", err)
	}
	if err := e.store.Close(); err != nil {
		e.logger.Warn(errmsg.Format(errmsg.OpSessionSave, err))
	}
	if e.capture != nil {
		e.capture.Stop()
	}
	_ = e.logCloser.Close()
}

// loadCatalog returns the built-in catalog, extended with the tracks found
// in musicDir.
func loadCatalog(ctx context.Context, musicDir string, logger *slog.Logger) *catalog.Catalog {
	cat := catalog.Seed()
	if musicDir == "" {
		return cat
	}

	start := time.Now()
	scanned, skipped, err := catalog.Scan(ctx, musicDir)
	for _, s := range skipped {
		logger.Debug("skipped file", "path", s.Path, "error", s.Err)
	}
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpCatalogScan, err))
		return cat
	}
	logger.Info("scanned music folder",
		"dir", musicDir,
		"tracks", scanned.Len(),
		"skipped", len(skipped),
		"took", time.Since(start))
	return catalog.Merge(cat, scanned)
}

// withUserPlaylists adds the stored user playlists to cat. Read failures
// are logged and leave cat unchanged.
func withUserPlaylists(ctx context.Context, cat *catalog.Catalog, db *sql.DB, logger *slog.Logger) *catalog.Catalog {
	user, err := playlists.New(db).Catalog(ctx)
	if err != nil {
		logger.Warn(errmsg.Format(errmsg.OpPlaylistLoad, err))
		return cat
	}
	return catalog.Merge(cat, user)
}

// durationLookup resolves virtual refs and media refs to catalog durations.
func durationLookup(cat *catalog.Catalog) player.DurationFunc {
	byRef := make(map[string]time.Duration, cat.Len())
	for _, t := range cat.Tracks() {
		byRef[player.VirtualRef(t.ID)] = t.Duration
		if t.MediaRef != "" {
			byRef[t.MediaRef] = t.Duration
		}
	}
	return func(ref string) (time.Duration, bool) {
		d, ok := byRef[ref]
		return d, ok
	}
}

func trackLabel(t catalog.Track) string {
	if t.Artist == "" {
		return t.Title
	}
	return fmt.Sprintf("%s - %s", t.Title, t.Artist)
}
