package catalog

import (
	"context"
	"fmt"
	"hash/fnv"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dhowden/tag"
	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/player"
)

// ScanError records a file that could not be added to the catalog.
type ScanError struct {
	Path string
	Err  error
}

func (e ScanError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e ScanError) Unwrap() error {
	return e.Err
}

// Scan walks dir and builds a catalog of the audio files it finds. Albums are
// derived from the album artist and album tags. Files whose tags or audio
// cannot be read are skipped and returned as ScanErrors.
func Scan(ctx context.Context, dir string) (*Catalog, []ScanError, error) {
	var tracks []Track
	var skipped []ScanError

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() || !player.IsMusicFile(path) {
			return nil
		}
		t, err := readTrack(path)
		if err != nil {
			skipped = append(skipped, ScanError{Path: path, Err: err})
			return nil
		}
		tracks = append(tracks, t)
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("scan %s: %w", dir, err)
	}

	return New(tracks, albumsFromTracks(tracks), nil), skipped, nil
}

func readTrack(path string) (Track, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Track{}, err
	}

	duration, err := player.ProbeDuration(abs)
	if err != nil {
		return Track{}, err
	}

	t := Track{
		ID:       fileTrackID(abs),
		Title:    filepath.Base(abs),
		MediaRef: abs,
		Duration: duration,
	}

	f, err := os.Open(abs)
	if err != nil {
		return Track{}, err
	}
	defer f.Close()

	// Untagged files are still playable; keep the filename as title.
	m, err := tag.ReadFrom(f)
	if err != nil {
		return t, nil //nolint:nilerr // missing tags are not a scan failure
	}
	if m.Title() != "" {
		t.Title = m.Title()
	}
	t.Artist = m.AlbumArtist()
	if t.Artist == "" {
		t.Artist = m.Artist()
	}
	t.Album = m.Album()
	t.Genre = m.Genre()
	if y := m.Year(); y > 0 {
		t.ReleaseDate = strconv.Itoa(y)
	}
	return t, nil
}

func albumsFromTracks(tracks []Track) []Album {
	tagged := lo.Filter(tracks, func(t Track, _ int) bool { return t.Album != "" })
	groups := lo.GroupBy(tagged, func(t Track) string { return t.Artist + "\x00" + t.Album })

	// Preserve walk order so album listings are stable.
	keys := lo.Uniq(lo.Map(tagged, func(t Track, _ int) string { return t.Artist + "\x00" + t.Album }))
	return lo.Map(keys, func(key string, _ int) Album {
		group := groups[key]
		first := group[0]
		return Album{
			ID:          fileTrackID(key),
			Title:       first.Album,
			Artist:      first.Artist,
			ReleaseDate: first.ReleaseDate,
			Genre:       first.Genre,
			TrackIDs:    lo.Map(group, func(t Track, _ int) string { return t.ID }),
		}
	})
}

func fileTrackID(key string) string {
	h := fnv.New64a()
	h.Write([]byte(key))
	return fmt.Sprintf("f%x", h.Sum64())
}
