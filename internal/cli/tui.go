package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/llehouerou/cadence/internal/app"
	"github.com/llehouerou/cadence/internal/history"
	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/mpris"
	"github.com/llehouerou/cadence/internal/notify"
)

func runTUI(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	e, err := openEnv(ctx, cfg, true)
	if err != nil {
		return err
	}
	defer e.Close()

	if cfg.RestoreSessionEnabled() {
		e.restoreSession(ctx)
	}

	startWatchers(ctx, e)

	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(e.engine, e.logger)
		if err != nil {
			e.logger.Warn("mpris unavailable", "error", err)
		} else {
			defer adapter.Close()
		}
	}

	m := app.New(app.Deps{
		Engine:       e.engine,
		Catalog:      e.catalog,
		Store:        e.store,
		Virtual:      e.virtual,
		Lyrics:       lyrics.NewSource(""),
		Logger:       e.logger,
		SleepPresets: cfg.GetSleepPresets(),
	})

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run player: %w", err)
	}
	return nil
}

// startWatchers attaches the bookkeeping collaborators to the engine. They
// stop when ctx is cancelled or the engine closes.
func startWatchers(ctx context.Context, e *env) {
	recent, err := e.store.Recent(ctx)
	if err != nil {
		e.logger.Warn("load recently played", "error", err)
	}
	rec := history.NewRecorder(cfg.GetHistorySize(), recent)
	rec.SetSaver(e.store, e.logger)
	go rec.Watch(ctx, e.engine.Subscribe())

	if !cfg.NotificationsEnabled() {
		return
	}
	n, err := notify.New()
	if err != nil {
		e.logger.Warn("notifications unavailable", "error", err)
		return
	}
	go notify.NewTrackWatcher(n, e.logger).Watch(ctx, e.engine.Subscribe())
}
