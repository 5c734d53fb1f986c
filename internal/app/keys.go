package app

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/errmsg"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/ui/render"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
)

// keyHandler attempts to handle a key.
type keyHandler func(key string) (bool, tea.Cmd)

// handleKeyMsg routes a key press: the open search prompt takes every key,
// then the focused queue panel, then global and playback bindings.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.SearchMode {
		var cmd tea.Cmd
		m.Search, cmd = m.Search.Update(msg)
		return m, cmd
	}

	m.ErrorMsg = ""
	m.StatusMsg = ""

	key := msg.String()
	for _, h := range []keyHandler{
		func(string) (bool, tea.Cmd) { return m.handleQueueKeys(msg) },
		m.handleGlobalKeys,
		m.handlePlaybackKeys,
	} {
		if handled, cmd := h(key); handled {
			return m, cmd
		}
	}
	return m, nil
}

func (m *Model) handleQueueKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if m.Focus != FocusQueue {
		return false, nil
	}
	if m.Keys.ResolveOnly(keymap.ContextQueue, msg.String()) == "" {
		return false, nil
	}
	var cmd tea.Cmd
	m.QueuePanel, cmd = m.QueuePanel.Update(msg)
	return true, cmd
}

func (m *Model) handleGlobalKeys(key string) (bool, tea.Cmd) {
	switch m.Keys.ResolveOnly(keymap.ContextGlobal, key) {
	case keymap.ActionQuit:
		return true, tea.Quit
	case keymap.ActionSwitchFocus:
		if m.Focus == FocusQueue {
			m.Focus = FocusPlayer
		} else {
			m.Focus = FocusQueue
		}
		m.QueuePanel.SetFocused(m.Focus == FocusQueue)
		return true, nil
	case keymap.ActionSearch:
		m.SearchMode = true
		return true, m.Search.Focus()
	case keymap.ActionToggleLyrics:
		m.ShowLyrics = !m.ShowLyrics
		return true, nil
	}
	return false, nil
}

func (m *Model) handlePlaybackKeys(key string) (bool, tea.Cmd) {
	switch m.Keys.ResolveOnly(keymap.ContextPlayback, key) {
	case keymap.ActionPlayPause:
		m.apply(errmsg.OpPlaybackStart, m.Engine.TogglePlayPause())
	case keymap.ActionNextTrack:
		m.apply(errmsg.OpPlaybackStart, m.Engine.SkipNext())
	case keymap.ActionPrevTrack:
		m.apply(errmsg.OpPlaybackStart, m.Engine.SkipPrevious())
	case keymap.ActionSeekForward:
		m.apply(errmsg.OpPlaybackSeek, m.Engine.SeekBy(seekStep))
	case keymap.ActionSeekBack:
		m.apply(errmsg.OpPlaybackSeek, m.Engine.SeekBy(-seekStep))
	case keymap.ActionVolumeUp:
		m.apply(errmsg.OpPlaybackMode, m.Engine.SetVolume(min(m.State.Volume+volumeStep, 1)))
	case keymap.ActionVolumeDown:
		m.apply(errmsg.OpPlaybackMode, m.Engine.SetVolume(max(m.State.Volume-volumeStep, 0)))
	case keymap.ActionCycleRepeat:
		mode := m.Engine.CycleRepeatMode()
		m.refresh()
		m.StatusMsg = "Repeat: " + mode.String()
	case keymap.ActionToggleShuffle:
		if m.Engine.ToggleShuffle() {
			m.StatusMsg = "Shuffle on"
		} else {
			m.StatusMsg = "Shuffle off"
		}
		m.refresh()
	case keymap.ActionSleepTimer:
		m.nextSleepPreset()
	case keymap.ActionSleepCancel:
		m.sleepStep = -1
		if m.apply(errmsg.OpSleepTimer, m.Engine.SetSleepTimer(0)) {
			m.StatusMsg = "Sleep timer off"
		}
	case keymap.ActionToggleLiked:
		return true, m.toggleLikedCmd(m.State.CurrentID())
	default:
		return false, nil
	}
	return true, nil
}

// nextSleepPreset applies the preset after the last one applied, wrapping
// to off after the longest.
func (m *Model) nextSleepPreset() {
	if len(m.SleepPresets) == 0 {
		return
	}
	m.sleepStep++
	if m.sleepStep >= len(m.SleepPresets) {
		m.sleepStep = -1
		if m.apply(errmsg.OpSleepTimer, m.Engine.SetSleepTimer(0)) {
			m.StatusMsg = "Sleep timer off"
		}
		return
	}
	d := m.SleepPresets[m.sleepStep]
	if m.apply(errmsg.OpSleepTimer, m.Engine.SetSleepTimer(d)) {
		m.StatusMsg = fmt.Sprintf("Sleep in %s", render.FormatDuration(d))
	}
}
