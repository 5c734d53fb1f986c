package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/ui/playerbar"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// statusHeight is the single status/error line under the player bar.
const statusHeight = 1

// resizeComponents hands each panel its share of the window.
func (m *Model) resizeComponents() {
	main := m.mainHeight()
	m.QueuePanel.SetSize(m.Width, main)
	m.Search.SetSize(m.Width, main)
}

func (m Model) mainHeight() int {
	return max(m.Height-playerbar.Height-statusHeight, 0)
}

// lyricLine returns the lyric line for the current position.
func (m Model) lyricLine() string {
	if !m.ShowLyrics || m.CurrentLyric == nil {
		return ""
	}
	text, _ := m.CurrentLyric.TextAt(m.State.Position)
	return text
}

// View implements tea.Model.
func (m Model) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}

	var main string
	if m.SearchMode {
		main = m.Search.View()
	} else {
		main = m.QueuePanel.View()
	}

	bar := playerbar.Render(playerbar.NewState(m.State, m.Liked, m.lyricLine()), m.Width)

	return lipgloss.JoinVertical(lipgloss.Left, main, bar, m.renderStatus())
}

func (m Model) renderStatus() string {
	s := styles.T().S()
	switch {
	case m.ErrorMsg != "":
		return s.Error.Render(render.Clip(m.ErrorMsg, m.Width))
	case m.StatusMsg != "":
		return s.Success.Render(render.Clip(m.StatusMsg, m.Width))
	}
	return s.Subtle.Render(render.Clip(m.helpLine(), m.Width))
}

// helpLine lists the main bindings for the focused panel.
func (m Model) helpLine() string {
	actions := []keymap.Action{
		keymap.ActionPlayPause, keymap.ActionNextTrack, keymap.ActionSearch,
		keymap.ActionSwitchFocus, keymap.ActionQuit,
	}
	if m.Focus == FocusQueue {
		actions = []keymap.Action{
			keymap.ActionSelect, keymap.ActionDelete, keymap.ActionMoveItemDown,
			keymap.ActionUndo, keymap.ActionSwitchFocus,
		}
	}
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		keys := m.Keys.KeysFor(a)
		if len(keys) == 0 {
			continue
		}
		parts = append(parts, keys[0]+" "+strings.ReplaceAll(string(a), "_", " "))
	}
	return strings.Join(parts, "  ")
}
