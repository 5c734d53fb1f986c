package lyrics

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/xdg"
	"github.com/dhowden/tag"

	"github.com/llehouerou/cadence/internal/catalog"
)

// Where lyrics were found.
const (
	FromLocal    = "local"
	FromCache    = "cache"
	FromEmbedded = "embedded"
	FromNone     = "not_found"
)

// Source finds lyrics next to media files, in the cache directory, or in
// the media file's tags.
type Source struct {
	cacheDir string
}

// NewSource creates a source caching under cacheDir, or under
// $XDG_CACHE_HOME/cadence/lyrics when empty.
func NewSource(cacheDir string) *Source {
	if cacheDir == "" {
		cacheDir = filepath.Join(xdg.CacheHome, "cadence", "lyrics")
	}
	return &Source{cacheDir: cacheDir}
}

// FetchResult is the outcome of a lookup.
type FetchResult struct {
	Lyrics *Lyrics
	Source string
	Err    error
}

// Fetch looks up lyrics for a track, in order:
// 1. <media>.lrc beside the media file
// 2. the cache, keyed by artist and title
// 3. lyrics embedded in the media file's tags
//
// Missing lyrics are not an error.
func (s *Source) Fetch(track catalog.Track) FetchResult {
	if track.MediaRef != "" {
		res := s.fromFile(lrcPathForMedia(track.MediaRef), FromLocal)
		if res.Lyrics != nil || res.Err != nil {
			return res
		}
	}

	if path := s.cachePath(track.Artist, track.Title); path != "" {
		res := s.fromFile(path, FromCache)
		if res.Lyrics != nil || res.Err != nil {
			return res
		}
	}

	if track.MediaRef != "" {
		return s.fromTags(track)
	}
	return FetchResult{Source: FromNone}
}

// Save stores LRC content in the cache for a track.
func (s *Source) Save(artist, title, content string) error {
	path := s.cachePath(artist, title)
	if path == "" {
		return errors.New("artist and title required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o600)
}

func (s *Source) fromFile(path, source string) FetchResult {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return FetchResult{Source: FromNone}
	}
	if err != nil {
		return FetchResult{Source: FromNone, Err: err}
	}
	defer f.Close()

	lyrics, err := ParseLRC(f)
	if err != nil {
		return FetchResult{Source: FromNone, Err: err}
	}
	if len(lyrics.Lines) == 0 {
		return FetchResult{Source: FromNone}
	}
	return FetchResult{Lyrics: lyrics, Source: source}
}

func (s *Source) fromTags(track catalog.Track) FetchResult {
	f, err := os.Open(track.MediaRef)
	if err != nil {
		return FetchResult{Source: FromNone}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil || strings.TrimSpace(m.Lyrics()) == "" {
		return FetchResult{Source: FromNone}
	}

	lyrics, err := ParseLRC(strings.NewReader(m.Lyrics()))
	if err != nil || len(lyrics.Lines) == 0 {
		return FetchResult{Source: FromNone, Err: err}
	}
	if lyrics.Artist == "" {
		lyrics.Artist = track.Artist
	}
	if lyrics.Title == "" {
		lyrics.Title = track.Title
	}
	return FetchResult{Lyrics: lyrics, Source: FromEmbedded}
}

// lrcPathForMedia returns the .lrc path beside a media file.
func lrcPathForMedia(mediaPath string) string {
	return strings.TrimSuffix(mediaPath, filepath.Ext(mediaPath)) + ".lrc"
}

// cachePath returns the cache file for a track, or "" without artist and title.
func (s *Source) cachePath(artist, title string) string {
	if s.cacheDir == "" || artist == "" || title == "" {
		return ""
	}
	return filepath.Join(s.cacheDir, sanitizeFilename(artist), sanitizeFilename(title)+".lrc")
}

var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)

func sanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "_")
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "_"
	}
	return name
}
