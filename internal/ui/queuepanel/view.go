package queuepanel

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

const (
	playingSymbol = "▶"
	shuffleSymbol = "⇄"
	repeatSymbol  = "↻"
	repeatOneMark = "¹"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	innerWidth := m.width - 2
	content := m.renderHeader(innerWidth) + "\n" +
		render.Rule(innerWidth) + "\n" +
		m.renderTrackList(innerWidth, m.listHeight())

	return styles.PanelStyle(m.focused).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders the queue position and total length on the left and
// the mode markers on the right.
func (m Model) renderHeader(innerWidth int) string {
	var total time.Duration
	for _, id := range m.state.Queue {
		if t, ok := m.tracks.Track(id); ok {
			total += t.Duration
		}
	}
	left := fmt.Sprintf("Queue (%d/%d)", m.state.Index+1, len(m.state.Queue))
	if total > 0 {
		left += "  " + render.FormatDuration(total)
	}

	modes := m.modeMarkers()
	left = render.Fit(left, innerWidth-lipgloss.Width(modes))
	return styles.T().S().Title.Render(left) + styles.T().S().Playing.Render(modes)
}

func (m Model) modeMarkers() string {
	var parts []string
	if m.state.Shuffle {
		parts = append(parts, shuffleSymbol)
	}
	switch m.state.Repeat {
	case playback.RepeatOff:
	case playback.RepeatQueue:
		parts = append(parts, repeatSymbol)
	case playback.RepeatTrack:
		parts = append(parts, repeatSymbol+repeatOneMark)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "  ") + " "
}

func (m Model) renderTrackList(innerWidth, listHeight int) string {
	if listHeight <= 0 {
		return ""
	}
	if len(m.state.Queue) == 0 {
		lines := []string{styles.T().S().Subtle.Render(render.Pad("Queue is empty", innerWidth))}
		for len(lines) < listHeight {
			lines = append(lines, render.Blank(innerWidth))
		}
		return strings.Join(lines, "\n")
	}

	lines := make([]string, 0, listHeight)
	for i := range listHeight {
		idx := i + m.offset
		if idx >= len(m.state.Queue) {
			lines = append(lines, render.Blank(innerWidth))
			continue
		}
		lines = append(lines, m.renderTrackLine(idx, innerWidth))
	}
	return strings.Join(lines, "\n")
}

// renderTrackLine renders one entry: marker, title, artist and duration.
func (m Model) renderTrackLine(idx, width int) string {
	id := m.state.Queue[idx]
	title, artist, length := id, "", ""
	if t, ok := m.tracks.Track(id); ok {
		title = t.Title
		artist = t.Artist
		length = render.FormatDuration(t.Duration)
	}

	prefix := "  "
	if idx == m.state.Index {
		prefix = playingSymbol + " "
	}

	suffix := ""
	if length != "" {
		suffix = " " + length
	}
	contentWidth := max(width-2-lipgloss.Width(suffix), 0)
	titleWidth := contentWidth / 2
	line := prefix +
		render.Fit(title, titleWidth) +
		render.Fit(artist, contentWidth-titleWidth) +
		suffix

	return m.entryStyle(idx).Render(line)
}

func (m Model) entryStyle(idx int) lipgloss.Style {
	s := styles.T().S()
	isCursor := idx == m.cursor && m.focused
	isPlaying := idx == m.state.Index
	isPlayed := m.state.Index >= 0 && idx < m.state.Index

	switch {
	case isCursor && isPlaying:
		return s.Cursor.Inherit(s.Playing)
	case isCursor && isPlayed:
		return s.Cursor.Inherit(s.Played)
	case isCursor:
		return s.Cursor
	case isPlaying:
		return s.Playing
	case isPlayed:
		return s.Played
	default:
		return s.Base
	}
}
