package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/catalog"
)

const storeTimeout = 2 * time.Second

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// WatchEvents returns a command that waits for the next engine event.
func (m Model) WatchEvents() tea.Cmd {
	if m.sub == nil {
		return nil
	}
	sub := m.sub
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return StateChangedMsg(e)
		case e := <-sub.TrackStarted:
			return TrackStartedMsg(e)
		case e := <-sub.Error:
			return EngineErrorMsg(e)
		case <-sub.Done:
			return EventsClosedMsg{}
		}
	}
}

func (m Model) fetchLyricsCmd(track catalog.Track) tea.Cmd {
	if m.Lyrics == nil {
		return nil
	}
	src := m.Lyrics
	return func() tea.Msg {
		return LyricsMsg{TrackID: track.ID, Result: src.Fetch(track)}
	}
}

func (m Model) loadLikedCmd(id string) tea.Cmd {
	if m.Store == nil || id == "" {
		return nil
	}
	store := m.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		liked, err := store.IsLiked(ctx, id)
		return LikedMsg{TrackID: id, Liked: liked, Err: err}
	}
}

func (m Model) toggleLikedCmd(id string) tea.Cmd {
	if m.Store == nil || id == "" {
		return nil
	}
	store := m.Store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		liked, err := store.ToggleLiked(ctx, id)
		return LikedMsg{TrackID: id, Liked: liked, Toggled: true, Err: err}
	}
}
