// Package render holds width-aware text helpers shared by the views.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize drops invalid UTF-8 and control characters other than tab, and
// turns non-breaking spaces into plain ones. Tag metadata is full of them.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, unclean) < 0 {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\u00a0':
			return ' '
		case unclean(r):
			return -1
		}
		return r
	}, strings.ToValidUTF8(s, ""))
}

func unclean(r rune) bool {
	return r == '\u00a0' || (r != '\t' && unicode.IsControl(r))
}

// Clip cuts s to width cells, ending with an ellipsis when cut. Escape
// sequences are kept intact.
func Clip(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, ellipsis)
}

// Pad right-fills plain text with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Fit sanitizes, clips and pads s to exactly width cells.
func Fit(s string, width int) string {
	return Pad(Clip(Sanitize(s), width), width)
}

// Row puts left and right at the edges of a width-cell line, keeping at
// least one space between them.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Rule is a horizontal line.
func Rule(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// Blank is a line of spaces.
func Blank(width int) string {
	return strings.Repeat(" ", max(width, 0))
}
