package search

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/llehouerou/cadence/internal/catalog"
)

// minCoverage is the share of a query word's trigrams a track must contain.
const minCoverage = 0.4

// Match is a ranked hit: the index of a track in the matcher and its score.
type Match struct {
	Index int
	Score float64
}

type trigrams map[string]struct{}

// Matcher ranks catalog tracks against multi-word queries using trigram
// coverage. Every query word must match.
type Matcher struct {
	tracks     []catalog.Track
	normalized []string
	grams      []trigrams
}

// NewMatcher indexes tracks by title, artist and album.
func NewMatcher(tracks []catalog.Track) *Matcher {
	m := &Matcher{
		tracks:     tracks,
		normalized: make([]string, len(tracks)),
		grams:      make([]trigrams, len(tracks)),
	}
	for i, t := range tracks {
		text := normalize(t.Title + " " + t.Artist + " " + t.Album)
		m.normalized[i] = text
		m.grams[i] = trigramsOf(text)
	}
	return m
}

// Track returns the indexed track at i.
func (m *Matcher) Track(i int) catalog.Track {
	return m.tracks[i]
}

// Len returns the number of indexed tracks.
func (m *Matcher) Len() int {
	return len(m.tracks)
}

// Search returns matches, best first. An empty query matches every track
// in catalog order.
func (m *Matcher) Search(query string) []Match {
	words := strings.Fields(normalize(query))
	if len(words) == 0 {
		all := make([]Match, len(m.tracks))
		for i := range all {
			all[i] = Match{Index: i}
		}
		return all
	}

	wordGrams := make([]trigrams, len(words))
	for i, w := range words {
		wordGrams[i] = trigramsOf(w)
	}

	var matches []Match
	for i := range m.tracks {
		if score := m.score(i, words, wordGrams); score > 0 {
			matches = append(matches, Match{Index: i, Score: score})
		}
	}
	slices.SortStableFunc(matches, func(a, b Match) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})
	return matches
}

func (m *Matcher) score(i int, words []string, wordGrams []trigrams) float64 {
	text := m.normalized[i]
	total := 0.0
	for w, word := range words {
		exact := strings.Contains(text, word)

		// Too short for trigrams to say anything.
		if len([]rune(word)) <= 2 {
			if !exact {
				return 0
			}
			total++
			continue
		}

		s := coverage(wordGrams[w], m.grams[i])
		if s < minCoverage {
			return 0
		}
		if exact {
			s += 0.5
		}
		total += s
	}
	return total / float64(len(words))
}

var foldDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize lowercases s and strips diacritics so "cafe" finds "Café".
func normalize(s string) string {
	folded, _, err := transform.String(foldDiacritics, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// trigramsOf returns the trigram set of s, padded so prefixes and suffixes
// produce their own trigrams.
func trigramsOf(s string) trigrams {
	if s == "" {
		return nil
	}
	r := []rune("  " + s + "  ")
	set := make(trigrams, len(r))
	for i := 0; i+3 <= len(r); i++ {
		tri := string(r[i : i+3])
		if strings.TrimSpace(tri) != "" {
			set[tri] = struct{}{}
		}
	}
	return set
}

// coverage is |query ∩ item| / |query|.
func coverage(query, item trigrams) float64 {
	if len(query) == 0 {
		return 0
	}
	hit := 0
	for tri := range query {
		if _, ok := item[tri]; ok {
			hit++
		}
	}
	return float64(hit) / float64(len(query))
}
