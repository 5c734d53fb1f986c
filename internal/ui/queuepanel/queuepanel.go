// Package queuepanel renders the play queue and turns key presses into
// queue edit requests.
package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/keymap"
	"github.com/llehouerou/cadence/internal/playback"
)

// panelOverhead is border + header + separator.
const panelOverhead = 4

// TrackResolver looks up queue entries by id.
type TrackResolver interface {
	Track(id string) (catalog.Track, bool)
}

// Model represents the queue panel state.
type Model struct {
	tracks  TrackResolver
	keys    *keymap.Resolver
	state   playback.State
	cursor  int
	offset  int
	width   int
	height  int
	focused bool
}

// New creates a new queue panel model.
func New(tracks TrackResolver, keys *keymap.Resolver) Model {
	return Model{
		tracks: tracks,
		keys:   keys,
		state:  playback.State{Index: -1},
	}
}

// SetState replaces the displayed snapshot. The cursor follows the playing
// entry when the queue changes length or the current index moves.
func (m *Model) SetState(s playback.State) {
	follow := len(s.Queue) != len(m.state.Queue) || s.Index != m.state.Index
	m.state = s
	if follow && !m.focused {
		m.SyncCursor()
		return
	}
	m.clampCursor()
}

// State returns the displayed snapshot.
func (m Model) State() playback.State {
	return m.state
}

// SetFocused sets whether the panel is focused.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// IsFocused returns whether the panel is focused.
func (m Model) IsFocused() bool {
	return m.focused
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureCursorVisible()
}

// Cursor returns the cursor position.
func (m Model) Cursor() int {
	return m.cursor
}

// Update handles messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	n := len(m.state.Queue)
	switch m.keys.ResolveOnly(keymap.ContextQueue, keyMsg.String()) {
	case keymap.ActionMoveDown:
		m.moveCursor(1)
	case keymap.ActionMoveUp:
		m.moveCursor(-1)
	case keymap.ActionJumpStart:
		m.cursor = 0
		m.offset = 0
	case keymap.ActionJumpEnd:
		if n > 0 {
			m.cursor = n - 1
			m.ensureCursorVisible()
		}
	case keymap.ActionSelect:
		if n > 0 {
			return m, send(JumpToTrackMsg{Index: m.cursor})
		}
	case keymap.ActionDelete:
		if n > 0 {
			return m, send(DequeueMsg{ID: m.state.Queue[m.cursor]})
		}
	case keymap.ActionClear:
		if n > 0 {
			return m, send(ClearMsg{})
		}
	case keymap.ActionMoveItemUp:
		return m.moveItem(-1)
	case keymap.ActionMoveItemDown:
		return m.moveItem(1)
	case keymap.ActionUndo:
		if m.state.CanUndo {
			return m, send(UndoMsg{})
		}
	case keymap.ActionRedo:
		if m.state.CanRedo {
			return m, send(RedoMsg{})
		}
	}

	return m, nil
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// moveItem requests moving the cursor entry by delta and keeps the cursor on it.
func (m Model) moveItem(delta int) (Model, tea.Cmd) {
	to := m.cursor + delta
	if to < 0 || to >= len(m.state.Queue) {
		return m, nil
	}
	from := m.cursor
	m.cursor = to
	m.ensureCursorVisible()
	return m, send(MoveMsg{From: from, To: to})
}

// SyncCursor moves the cursor to the currently playing entry.
func (m *Model) SyncCursor() {
	if m.state.Index >= 0 && m.state.Index < len(m.state.Queue) {
		m.cursor = m.state.Index
	}
	m.clampCursor()
}

func (m *Model) moveCursor(delta int) {
	if len(m.state.Queue) == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), len(m.state.Queue)-1)
	m.ensureCursorVisible()
}

func (m *Model) clampCursor() {
	m.cursor = min(m.cursor, len(m.state.Queue)-1)
	m.cursor = max(m.cursor, 0)
	m.ensureCursorVisible()
}

func (m *Model) ensureCursorVisible() {
	listHeight := m.listHeight()
	if listHeight <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+listHeight {
		m.offset = m.cursor - listHeight + 1
	}
	m.offset = min(m.offset, max(len(m.state.Queue)-listHeight, 0))
}

func (m Model) listHeight() int {
	return m.height - panelOverhead
}
