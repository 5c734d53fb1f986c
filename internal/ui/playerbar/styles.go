package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/styles"
)

const (
	playSymbol  = "▶"
	pauseSymbol = "⏸"
	likedSymbol = "♥"
)

func barStyle() lipgloss.Style {
	return styles.PanelStyle(false)
}

func titleStyle() lipgloss.Style {
	return styles.T().S().Title
}

func artistStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func metaStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

func activeStyle() lipgloss.Style {
	return styles.T().S().Playing
}

func lyricStyle() lipgloss.Style {
	return styles.T().S().Lyric
}

func likedStyle() lipgloss.Style {
	return styles.T().S().Liked
}
