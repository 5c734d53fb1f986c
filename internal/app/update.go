package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/search"
	"github.com/llehouerou/cadence/internal/ui/queuepanel"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.resizeComponents()
		return m, nil

	case TickMsg:
		if m.Virtual != nil {
			m.Virtual.Advance(time.Second)
		}
		m.Engine.Tick()
		m.refresh()
		return m, TickCmd()

	case StateChangedMsg:
		m.refresh()
		m.saveSession()
		return m, m.WatchEvents()

	case TrackStartedMsg:
		return m.handleTrackStarted(msg)

	case EngineErrorMsg:
		m.ErrorMsg = errmsg.FormatRef(msg.Operation, msg.Ref, msg.Err)
		m.refresh()
		return m, m.WatchEvents()

	case EventsClosedMsg:
		return m, nil

	case LyricsMsg:
		return m.handleLyrics(msg)

	case LikedMsg:
		return m.handleLiked(msg)

	case search.ResultMsg:
		return m.handleSearchResult(msg)

	case queuepanel.JumpToTrackMsg:
		m.apply(errmsg.OpPlaybackStart, m.Engine.PlayIndex(msg.Index))
		return m, nil

	case queuepanel.DequeueMsg:
		m.apply(errmsg.OpQueueRemove, m.Engine.Dequeue(msg.ID))
		return m, nil

	case queuepanel.MoveMsg:
		m.apply(errmsg.OpQueueReorder, m.Engine.Reorder(msg.From, msg.To))
		return m, nil

	case queuepanel.ClearMsg:
		m.Engine.ClearQueue()
		m.refresh()
		return m, nil

	case queuepanel.UndoMsg:
		if m.Engine.Undo() {
			m.StatusMsg = "Undid queue change"
		}
		m.refresh()
		return m, nil

	case queuepanel.RedoMsg:
		if m.Engine.Redo() {
			m.StatusMsg = "Redid queue change"
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.SearchMode {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleTrackStarted(msg TrackStartedMsg) (tea.Model, tea.Cmd) {
	m.refresh()
	m.CurrentLyric = nil
	m.Liked = false
	m.ErrorMsg = ""
	return m, tea.Batch(
		m.fetchLyricsCmd(msg.Track),
		m.loadLikedCmd(msg.Track.ID),
		m.WatchEvents(),
	)
}

func (m Model) handleLyrics(msg LyricsMsg) (tea.Model, tea.Cmd) {
	if msg.TrackID != m.State.CurrentID() {
		return m, nil
	}
	if msg.Result.Err != nil {
		m.Logger.Warn("lyrics lookup failed", "track", msg.TrackID, "err", msg.Result.Err)
		return m, nil
	}
	m.CurrentLyric = msg.Result.Lyrics
	return m, nil
}

func (m Model) handleLiked(msg LikedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		if msg.Toggled {
			m.ErrorMsg = errmsg.Format(errmsg.OpFavoriteToggle, msg.Err)
		}
		m.Logger.Warn("liked lookup failed", "track", msg.TrackID, "err", msg.Err)
		return m, nil
	}
	if msg.TrackID != m.State.CurrentID() {
		return m, nil
	}
	m.Liked = msg.Liked
	if msg.Toggled {
		if msg.Liked {
			m.StatusMsg = "Added to liked songs"
		} else {
			m.StatusMsg = "Removed from liked songs"
		}
	}
	return m, nil
}

func (m Model) handleSearchResult(msg search.ResultMsg) (tea.Model, tea.Cmd) {
	m.SearchMode = false
	m.Search.Blur()
	if msg.Canceled {
		return m, nil
	}
	if msg.Enqueue {
		if m.apply(errmsg.OpQueueAdd, m.Engine.Enqueue(msg.Track.ID)) {
			m.StatusMsg = fmt.Sprintf("Queued %s", msg.Track.Title)
		}
		return m, nil
	}
	if msg.Album {
		return m.playAlbumOf(msg.Track)
	}
	m.apply(errmsg.OpPlaybackLoad, m.Engine.LoadAndPlay(msg.Track.ID, msg.Matches...))
	return m, nil
}

// playAlbumOf replaces the queue with the album of t from its first track.
func (m Model) playAlbumOf(t catalog.Track) (tea.Model, tea.Cmd) {
	album, ok := m.Catalog.AlbumOf(t.ID)
	ids := lo.Map(m.Catalog.Resolve(album.TrackIDs), func(tr catalog.Track, _ int) string { return tr.ID })
	if !ok || len(ids) == 0 {
		m.StatusMsg = fmt.Sprintf("No album for %s", t.Title)
		return m, nil
	}
	if m.apply(errmsg.OpPlaybackLoad, m.Engine.LoadAndPlay(ids[0], ids...)) {
		m.StatusMsg = fmt.Sprintf("Playing %s", album.Title)
	}
	return m, nil
}

// apply records the outcome of an engine intent and refreshes the views.
// Conditions the engine reports as no-ops are not shown.
func (m *Model) apply(op errmsg.Op, err error) bool {
	m.refresh()
	if err == nil {
		return true
	}
	if errors.Is(err, playback.ErrEmptyQueue) || errors.Is(err, playback.ErrMissingCurrentTrack) {
		m.Logger.Debug("intent ignored", "op", string(op), "err", err)
		return false
	}
	m.ErrorMsg = errmsg.Format(op, err)
	return false
}

func (m *Model) saveSession() {
	if m.Store == nil {
		return
	}
	m.Store.SaveSession(m.Engine.Session())
}
