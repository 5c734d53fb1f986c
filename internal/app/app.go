// Package app is the bubbletea front end over the playback engine.
package app

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/lyrics"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/player"
	"github.com/llehouerou/cadence/internal/search"
	"github.com/llehouerou/cadence/internal/state"
	"github.com/llehouerou/cadence/internal/ui/queuepanel"
)

// FocusTarget is the panel receiving list keys.
type FocusTarget int

const (
	FocusPlayer FocusTarget = iota
	FocusQueue
)

// Deps are the collaborators the front end drives.
type Deps struct {
	Engine  *playback.Engine
	Catalog *catalog.Catalog
	Store   state.Interface
	Virtual *player.Virtual // advanced by the UI tick; nil when unused
	Lyrics  *lyrics.Source  // nil disables lyrics
	Logger  *slog.Logger

	SleepPresets []time.Duration
}

// Model is the root application model.
type Model struct {
	Engine  *playback.Engine
	Catalog *catalog.Catalog
	Store   state.Interface
	Virtual *player.Virtual
	Lyrics  *lyrics.Source
	Keys    *keymap.Resolver
	Logger  *slog.Logger

	QueuePanel queuepanel.Model
	Search     search.Model
	SearchMode bool
	Focus      FocusTarget
	ShowLyrics bool

	State        playback.State
	CurrentLyric *lyrics.Lyrics
	Liked        bool
	SleepPresets []time.Duration
	sleepStep    int // index of the last preset applied, -1 for none

	StatusMsg string
	ErrorMsg  string
	Width     int
	Height    int

	sub *playback.Subscription
}

// New creates the root model and subscribes to the engine.
func New(d Deps) Model {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	keys := keymap.NewResolver(keymap.All)

	m := Model{
		Engine:       d.Engine,
		Catalog:      d.Catalog,
		Store:        d.Store,
		Virtual:      d.Virtual,
		Lyrics:       d.Lyrics,
		Keys:         keys,
		Logger:       logger,
		QueuePanel:   queuepanel.New(d.Catalog, keys),
		Search:       search.New(d.Catalog.Tracks(), keys),
		ShowLyrics:   true,
		SleepPresets: d.SleepPresets,
		sleepStep:    -1,
		sub:          d.Engine.Subscribe(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(), m.WatchEvents()}
	if m.State.Current != nil {
		cmds = append(cmds,
			m.fetchLyricsCmd(*m.State.Current),
			m.loadLikedCmd(m.State.Current.ID),
		)
	}
	return tea.Batch(cmds...)
}

// refresh pulls a fresh snapshot from the engine into every view.
func (m *Model) refresh() {
	m.State = m.Engine.Snapshot()
	m.QueuePanel.SetState(m.State)
}
