package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Theme is the color palette. Styles built from it are available through S.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color
	FgSubtle lipgloss.Color

	BgCursor lipgloss.Color

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color
	Liked   lipgloss.Color

	once   sync.Once
	styles *Styles
}

// Styles are the text styles the views share.
type Styles struct {
	Base    lipgloss.Style
	Muted   lipgloss.Style
	Subtle  lipgloss.Style
	Title   lipgloss.Style
	Playing lipgloss.Style // the current queue entry
	Played  lipgloss.Style // entries before the current one
	Cursor  lipgloss.Style
	Lyric   lipgloss.Style
	Liked   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

var cadence = Theme{
	Primary:     "#7dd3fc",
	Secondary:   "#c4b5fd",
	FgBase:      "#d4d4d4",
	FgMuted:     "#8a8a8a",
	FgSubtle:    "#5c5c5c",
	BgCursor:    "#2e3440",
	Border:      "#4c566a",
	BorderFocus: "#7dd3fc",
	Success:     "#a3be8c",
	Error:       "#ff6b6b",
	Liked:       "#ff79c6",
}

// T returns the active theme.
func T() *Theme {
	return &cadence
}

// S returns the theme's styles, built on first use.
func (t *Theme) S() *Styles {
	t.once.Do(func() {
		fg := func(c lipgloss.Color) lipgloss.Style {
			return lipgloss.NewStyle().Foreground(c)
		}
		t.styles = &Styles{
			Base:    fg(t.FgBase),
			Muted:   fg(t.FgMuted),
			Subtle:  fg(t.FgSubtle),
			Title:   fg(t.FgBase).Bold(true),
			Playing: fg(t.Primary).Bold(true),
			Played:  fg(t.FgSubtle),
			Cursor:  fg(t.FgBase).Background(t.BgCursor),
			Lyric:   fg(t.Secondary).Italic(true),
			Liked:   fg(t.Liked),
			Success: fg(t.Success),
			Error:   fg(t.Error),
		}
	})
	return t.styles
}
