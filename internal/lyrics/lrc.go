// Package lyrics parses LRC lyrics and finds them for catalog tracks.
package lyrics

import (
	"bufio"
	"io"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Line is a single lyric line and the position it starts at.
type Line struct {
	Time time.Duration
	Text string
}

// Lyrics holds parsed lyrics. Unsynced lyrics keep every line at zero.
type Lyrics struct {
	Lines  []Line
	Synced bool
	Title  string
	Artist string
	Album  string
	Offset time.Duration
}

// LineAt returns the index of the last line starting at or before pos.
// Returns -1 before the first line or when the lyrics are unsynced.
func (l *Lyrics) LineAt(pos time.Duration) int {
	if l == nil || !l.Synced {
		return -1
	}
	return sort.Search(len(l.Lines), func(i int) bool {
		return l.Lines[i].Time > pos
	}) - 1
}

// TextAt returns the text of the line active at pos.
func (l *Lyrics) TextAt(pos time.Duration) (string, bool) {
	i := l.LineAt(pos)
	if i < 0 {
		return "", false
	}
	return l.Lines[i].Text, true
}

var (
	// [mm:ss], [mm:ss.xx], [mm:ss.xxx] and [mm:ss:xx]
	timestampRe = regexp.MustCompile(`\[(\d+):(\d{1,2})(?:[.:](\d{1,3}))?\]`)

	// [tag:value] header lines
	metadataRe = regexp.MustCompile(`^\[([a-zA-Z]+):(.*)\]$`)
)

// ParseLRC parses LRC lyrics. Input without any timestamp is returned as
// unsynced lyrics, one line per non-empty input line.
func ParseLRC(r io.Reader) (*Lyrics, error) {
	lyrics := &Lyrics{}
	var plain []Line

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		stamps := timestampRe.FindAllStringSubmatchIndex(raw, -1)
		if len(stamps) == 0 || stamps[0][0] != 0 {
			if meta := metadataRe.FindStringSubmatch(raw); meta != nil {
				lyrics.setTag(strings.ToLower(meta[1]), strings.TrimSpace(meta[2]))
				continue
			}
			plain = append(plain, Line{Text: raw})
			continue
		}

		text := strings.TrimSpace(raw[stamps[len(stamps)-1][1]:])
		for _, m := range stamps {
			lyrics.Lines = append(lyrics.Lines, Line{
				Time: stampDuration(raw, m),
				Text: text,
			})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(lyrics.Lines) == 0 {
		lyrics.Lines = plain
		return lyrics, nil
	}

	lyrics.Synced = true
	for i := range lyrics.Lines {
		lyrics.Lines[i].Time = max(0, lyrics.Lines[i].Time-lyrics.Offset)
	}
	slices.SortStableFunc(lyrics.Lines, func(a, b Line) int {
		return int(a.Time - b.Time)
	})
	return lyrics, nil
}

func (l *Lyrics) setTag(tag, value string) {
	switch tag {
	case "ar":
		l.Artist = value
	case "ti":
		l.Title = value
	case "al":
		l.Album = value
	case "offset":
		// Positive offsets show lines earlier.
		if ms, err := strconv.Atoi(strings.TrimPrefix(value, "+")); err == nil {
			l.Offset = time.Duration(ms) * time.Millisecond
		}
	}
}

// stampDuration converts the submatch m of timestampRe in s.
func stampDuration(s string, m []int) time.Duration {
	group := func(n int) string {
		if m[2*n] < 0 {
			return ""
		}
		return s[m[2*n]:m[2*n+1]]
	}

	minutes, _ := strconv.Atoi(group(1))
	seconds, _ := strconv.Atoi(group(2))
	d := time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second

	if frac := group(3); frac != "" {
		n, _ := strconv.Atoi(frac)
		switch len(frac) {
		case 1:
			d += time.Duration(n) * 100 * time.Millisecond
		case 2:
			d += time.Duration(n) * 10 * time.Millisecond
		default:
			d += time.Duration(n) * time.Millisecond
		}
	}
	return d
}
