// Package search is the catalog search prompt.
package search

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/keymap"
)

// ResultMsg is emitted when the prompt completes.
// Emitted on select (play), add (enqueue), album or cancel.
type ResultMsg struct {
	Track    catalog.Track
	Matches  []string // ids of every match, in ranked order
	Enqueue  bool     // add to queue instead of playing
	Album    bool     // play the album Track belongs to
	Canceled bool
}

// Model is the search prompt with its ranked results.
type Model struct {
	input   textinput.Model
	keys    *keymap.Resolver
	matcher *Matcher
	matches []Match
	cursor  int
	offset  int
	width   int
	height  int
}

// New creates a search model over the given tracks.
func New(tracks []catalog.Track, keys *keymap.Resolver) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "title, artist or album"
	ti.CharLimit = 120

	m := Model{
		input:   ti,
		keys:    keys,
		matcher: NewMatcher(tracks),
	}
	m.refresh()
	return m
}

// Focus starts accepting input and clears the previous query.
func (m *Model) Focus() tea.Cmd {
	m.input.SetValue("")
	m.cursor = 0
	m.offset = 0
	m.refresh()
	return m.input.Focus()
}

// Blur stops accepting input.
func (m *Model) Blur() {
	m.input.Blur()
}

// SetSize sets the area the prompt renders in.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = max(width-6, 1)
	m.adjustOffset()
}

// Query returns the current query.
func (m Model) Query() string {
	return m.input.Value()
}

// Selected returns the track under the cursor.
func (m Model) Selected() (catalog.Track, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return catalog.Track{}, false
	}
	return m.matcher.Track(m.matches[m.cursor].Index), true
}

// MatchIDs returns the ids of all current matches.
func (m Model) MatchIDs() []string {
	ids := make([]string, len(m.matches))
	for i, match := range m.matches {
		ids[i] = m.matcher.Track(match.Index).ID
	}
	return ids
}

// Update handles key input while the prompt is open.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch m.keys.ResolveOnly(keymap.ContextSearch, key.String()) {
	case keymap.ActionCancel:
		return m, result(ResultMsg{Canceled: true})

	case keymap.ActionSelect, keymap.ActionAdd:
		track, found := m.Selected()
		if !found {
			return m, nil
		}
		enqueue := m.keys.ResolveOnly(keymap.ContextSearch, key.String()) == keymap.ActionAdd
		return m, result(ResultMsg{Track: track, Matches: m.MatchIDs(), Enqueue: enqueue})

	case keymap.ActionAlbum:
		track, found := m.Selected()
		if !found {
			return m, nil
		}
		return m, result(ResultMsg{Track: track, Album: true})

	case keymap.ActionMoveUp:
		if m.cursor > 0 {
			m.cursor--
			m.adjustOffset()
		}
		return m, nil

	case keymap.ActionMoveDown:
		if m.cursor < len(m.matches)-1 {
			m.cursor++
			m.adjustOffset()
		}
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.cursor = 0
		m.offset = 0
		m.refresh()
	}
	return m, cmd
}

func result(r ResultMsg) tea.Cmd {
	return func() tea.Msg { return r }
}

func (m *Model) refresh() {
	m.matches = m.matcher.Search(m.input.Value())
	if m.cursor >= len(m.matches) {
		m.cursor = max(0, len(m.matches)-1)
	}
	m.adjustOffset()
}

func (m *Model) adjustOffset() {
	visible := m.visibleHeight()
	if visible <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
}
