// Package catalog holds the immutable track, album and playlist records the
// player works with.
package catalog

import (
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// Track is a playable song or episode.
type Track struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	Genre       string
	CoverRef    string
	MediaRef    string // file path, or empty for tracks without audio
	Duration    time.Duration
	ReleaseDate string
	PlayCount   int64
}

// Album groups tracks released together.
type Album struct {
	ID          string
	Title       string
	Artist      string
	CoverRef    string
	ReleaseDate string
	Genre       string
	TrackIDs    []string
}

// Playlist is a user-curated list of tracks.
type Playlist struct {
	ID          string
	Name        string
	Description string
	CoverRef    string
	TrackIDs    []string
	Public      bool
	Creator     string
}

// Results holds the matches of a catalog search.
type Results struct {
	Tracks    []Track
	Albums    []Album
	Playlists []Playlist
}

// IsEmpty returns true if nothing matched.
func (r Results) IsEmpty() bool {
	return len(r.Tracks) == 0 && len(r.Albums) == 0 && len(r.Playlists) == 0
}

// Catalog is a read-only index of tracks, albums and playlists.
// It is safe for concurrent use since it never changes after New.
type Catalog struct {
	tracks    []Track
	byID      map[string]int
	albums    []Album
	playlists []Playlist
}

// New builds a catalog. Tracks with a duplicate ID or a non-positive duration
// are dropped; album and playlist entries referencing unknown tracks are kept
// as-is since lookups tolerate missing ids.
func New(tracks []Track, albums []Album, playlists []Playlist) *Catalog {
	c := &Catalog{
		byID: make(map[string]int, len(tracks)),
	}
	for _, t := range tracks {
		if t.ID == "" || t.Duration <= 0 {
			continue
		}
		if _, dup := c.byID[t.ID]; dup {
			continue
		}
		c.byID[t.ID] = len(c.tracks)
		c.tracks = append(c.tracks, t)
	}
	c.albums = slices.Clone(albums)
	c.playlists = slices.Clone(playlists)
	return c
}

// Merge returns a catalog containing base plus the extra catalogs.
// Earlier catalogs win on id collisions.
func Merge(base *Catalog, extra ...*Catalog) *Catalog {
	tracks := slices.Clone(base.tracks)
	albums := slices.Clone(base.albums)
	playlists := slices.Clone(base.playlists)
	for _, e := range extra {
		if e == nil {
			continue
		}
		tracks = append(tracks, e.tracks...)
		albums = append(albums, e.albums...)
		playlists = append(playlists, e.playlists...)
	}
	return New(tracks, albums, playlists)
}

// Track returns the track with the given id.
func (c *Catalog) Track(id string) (Track, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Track{}, false
	}
	return c.tracks[i], true
}

// Tracks returns a copy of all tracks in catalog order.
func (c *Catalog) Tracks() []Track {
	return slices.Clone(c.tracks)
}

// Len returns the number of tracks.
func (c *Catalog) Len() int {
	return len(c.tracks)
}

// Albums returns a copy of all albums.
func (c *Catalog) Albums() []Album {
	return slices.Clone(c.albums)
}

// Playlists returns a copy of all playlists.
func (c *Catalog) Playlists() []Playlist {
	return slices.Clone(c.playlists)
}

// Album returns the album with the given id.
func (c *Catalog) Album(id string) (Album, bool) {
	return lo.Find(c.albums, func(a Album) bool { return a.ID == id })
}

// Playlist returns the playlist with the given id.
func (c *Catalog) Playlist(id string) (Playlist, bool) {
	return lo.Find(c.playlists, func(p Playlist) bool { return p.ID == id })
}

// AlbumOf returns the first album listing the track.
func (c *Catalog) AlbumOf(trackID string) (Album, bool) {
	return lo.Find(c.albums, func(a Album) bool { return slices.Contains(a.TrackIDs, trackID) })
}

// Resolve maps ids to tracks, skipping ids the catalog does not know.
func (c *Catalog) Resolve(ids []string) []Track {
	return lo.FilterMap(ids, func(id string, _ int) (Track, bool) {
		return c.Track(id)
	})
}

// Genres returns the distinct track genres in first-seen order.
func (c *Catalog) Genres() []string {
	genres := lo.Map(c.tracks, func(t Track, _ int) string { return t.Genre })
	return lo.Uniq(lo.Compact(genres))
}

// ByGenre returns tracks of the given genre. "All" or "" returns every track.
func (c *Catalog) ByGenre(genre string) []Track {
	if genre == "" || strings.EqualFold(genre, "all") {
		return c.Tracks()
	}
	return lo.Filter(c.tracks, func(t Track, _ int) bool {
		return strings.EqualFold(t.Genre, genre)
	})
}

// Search matches tracks by title, artist or album, albums by title or
// artist, and playlists by name. Matching is a case-insensitive substring
// test; an empty query matches nothing.
func (c *Catalog) Search(query string) Results {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Results{}
	}
	has := func(fields ...string) bool {
		return lo.SomeBy(fields, func(f string) bool {
			return strings.Contains(strings.ToLower(f), q)
		})
	}
	return Results{
		Tracks: lo.Filter(c.tracks, func(t Track, _ int) bool {
			return has(t.Title, t.Artist, t.Album)
		}),
		Albums: lo.Filter(c.albums, func(a Album, _ int) bool {
			return has(a.Title, a.Artist)
		}),
		Playlists: lo.Filter(c.playlists, func(p Playlist, _ int) bool {
			return has(p.Name)
		}),
	}
}

// TotalDuration sums the durations of the given track ids that resolve.
func (c *Catalog) TotalDuration(ids []string) time.Duration {
	return lo.SumBy(c.Resolve(ids), func(t Track) time.Duration { return t.Duration })
}
