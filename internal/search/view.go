package search

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/catalog"
	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

const maxVisibleResults = 20

func boxStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().BorderFocus)
}

func selectedStyle() lipgloss.Style {
	return styles.T().S().Playing
}

func normalStyle() lipgloss.Style {
	return styles.T().S().Base
}

func dimStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

func (m Model) visibleHeight() int {
	// border (2) + input line (1) + separator (1)
	h := max(m.height-4, 1)
	return min(h, maxVisibleResults)
}

func (m Model) emptyMessage() string {
	if m.matcher.Len() == 0 {
		return "Catalog is empty"
	}
	return "No matches"
}

func formatResultLine(t catalog.Track, width int, isCursor bool) string {
	prefix := "  "
	if isCursor {
		prefix = "> "
	}
	avail := max(width-len(prefix), 0)

	right := render.FormatDuration(t.Duration)
	left := t.Title
	if t.Artist != "" {
		left += " · " + t.Artist
	}
	left = render.Fit(left, max(avail-lipgloss.Width(right)-1, 0))
	return prefix + left + " " + dimStyle().Render(right)
}

// View renders the prompt and results.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	innerW := m.width - 2

	lines := []string{m.input.View(), render.Rule(innerW)}

	visible := m.visibleHeight()
	if len(m.matches) == 0 {
		lines = append(lines, dimStyle().Render(m.emptyMessage()))
	} else {
		end := min(m.offset+visible, len(m.matches))
		for i := m.offset; i < end; i++ {
			track := m.matcher.Track(m.matches[i].Index)
			line := formatResultLine(track, innerW, i == m.cursor)
			if i == m.cursor {
				lines = append(lines, selectedStyle().Render(line))
			} else {
				lines = append(lines, normalStyle().Render(line))
			}
		}
	}
	for len(lines) < visible+2 {
		lines = append(lines, "")
	}

	return boxStyle().Width(innerW).Render(strings.Join(lines, "\n"))
}
