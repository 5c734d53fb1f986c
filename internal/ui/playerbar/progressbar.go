package playerbar

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/ui/render"
	"github.com/llehouerou/cadence/internal/ui/styles"
)

// RenderProgressBar renders status, elapsed time, a gradient bar and total.
// Format: ▶  1:23  ━━━━━─────  4:56
func RenderProgressBar(position, duration time.Duration, width int, playing bool) string {
	status := playSymbol
	if !playing {
		status = pauseSymbol
	}

	posStr := render.FormatDuration(position)
	durStr := render.FormatDuration(duration)

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(posStr) + 2 + 2 + lipgloss.Width(durStr)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + posStr + " / " + durStr
	}

	filled := filledCells(position, duration, barWidth)
	t := styles.T()
	bar := styles.Gradient(strings.Repeat("━", filled), t.Primary, t.Secondary) +
		metaStyle().Render(strings.Repeat("─", barWidth-filled))

	return status + "  " + posStr + "  " + bar + "  " + durStr
}

// filledCells returns how many of width cells represent position.
func filledCells(position, duration time.Duration, width int) int {
	if duration <= 0 || position <= 0 {
		return 0
	}
	ratio := float64(position) / float64(duration)
	return min(int(float64(width)*ratio), width)
}
