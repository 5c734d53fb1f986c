// Package playerbar renders the now playing bar.
package playerbar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/cadence/internal/playback"
	"github.com/llehouerou/cadence/internal/ui/render"
)

// Height is the rendered height: two content rows plus borders.
const Height = 4

// State holds everything needed to render the player bar.
type State struct {
	HasTrack       bool
	Playing        bool
	Title          string
	Artist         string
	Album          string
	Position       time.Duration
	Duration       time.Duration
	Volume         float64
	Shuffle        bool
	Repeat         playback.RepeatMode
	SleepRemaining time.Duration
	Liked          bool
	Lyric          string
}

// NewState builds the bar state from an engine snapshot.
func NewState(s playback.State, liked bool, lyric string) State {
	st := State{
		HasTrack:       s.HasTrack(),
		Playing:        s.Playing,
		Position:       s.Position,
		Duration:       s.Duration,
		Volume:         s.Volume,
		Shuffle:        s.Shuffle,
		Repeat:         s.Repeat,
		SleepRemaining: s.SleepRemaining,
		Liked:          liked,
		Lyric:          lyric,
	}
	if s.Current != nil {
		st.Title = s.Current.Title
		st.Artist = s.Current.Artist
		st.Album = s.Current.Album
	}
	return st
}

// Render returns the player bar for the given width.
func Render(s State, width int) string {
	innerWidth := max(width-6, 0)

	var top string
	if !s.HasTrack {
		top = metaStyle().Render("Nothing playing")
	} else {
		top = renderTrackLine(s, innerWidth)
	}
	bottom := render.Row(renderLyric(s, innerWidth/2), RenderModes(s), innerWidth)

	return barStyle().Padding(0, 2).Width(width - 2).Render(top + "\n" + bottom)
}

func renderTrackLine(s State, width int) string {
	title := s.Title
	if title == "" {
		title = "Unknown Track"
	}
	var marker string
	if s.Liked {
		marker = likedStyle().Render(likedSymbol) + " "
	}

	var infoParts []string
	if s.Artist != "" {
		infoParts = append(infoParts, s.Artist)
	}
	if s.Album != "" {
		infoParts = append(infoParts, s.Album)
	}
	info := strings.Join(infoParts, " · ")

	// Keep at least a third of the line for the progress bar.
	textWidth := width*2/3 - lipgloss.Width(marker)
	separator := "   "
	var text string
	titleWidth := lipgloss.Width(title)
	switch {
	case info == "" || titleWidth+len(separator) >= textWidth:
		text = titleStyle().Render(render.Clip(title, textWidth))
	default:
		text = titleStyle().Render(title) + separator +
			artistStyle().Render(render.Clip(info, textWidth-titleWidth-len(separator)))
	}

	text = marker + text
	barWidth := max(width-lipgloss.Width(text)-len(separator), 0)
	return text + separator + RenderProgressBar(s.Position, s.Duration, barWidth, s.Playing)
}

func renderLyric(s State, width int) string {
	if s.Lyric == "" || width <= 0 {
		return ""
	}
	return lyricStyle().Render(render.Clip(render.Sanitize(s.Lyric), width))
}

// RenderModes renders the shuffle, repeat, sleep and volume indicators.
// Format: ⇄ shuffle  ↻ queue  ☾ 14:59  vol 80%
func RenderModes(s State) string {
	var parts []string

	if s.Shuffle {
		parts = append(parts, activeStyle().Render("⇄ shuffle"))
	} else {
		parts = append(parts, metaStyle().Render("⇄ off"))
	}

	repeat := "↻ " + s.Repeat.String()
	if s.Repeat == playback.RepeatOff {
		parts = append(parts, metaStyle().Render(repeat))
	} else {
		parts = append(parts, activeStyle().Render(repeat))
	}

	if s.SleepRemaining > 0 {
		parts = append(parts, artistStyle().Render("☾ "+render.FormatDuration(s.SleepRemaining)))
	}

	parts = append(parts, artistStyle().Render(fmt.Sprintf("vol %d%%", int(s.Volume*100+0.5))))
	return strings.Join(parts, "  ")
}
