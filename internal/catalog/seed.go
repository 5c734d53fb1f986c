package catalog

import "time"

// Seed returns the built-in demo catalog. None of its tracks carry audio, so
// they play through the virtual output.
func Seed() *Catalog {
	tracks := []Track{
		{ID: "1", Title: "Blinding Lights", Artist: "The Weeknd", Album: "After Hours", Genre: "Pop", Duration: 200 * time.Second, ReleaseDate: "2020-03-20", PlayCount: 2_500_000_000},
		{ID: "2", Title: "Shape of You", Artist: "Ed Sheeran", Album: "÷ (Divide)", Genre: "Pop", Duration: 233 * time.Second, ReleaseDate: "2017-01-06", PlayCount: 3_000_000_000},
		{ID: "3", Title: "Someone Like You", Artist: "Adele", Album: "21", Genre: "Soul", Duration: 285 * time.Second, ReleaseDate: "2011-01-24", PlayCount: 1_800_000_000},
		{ID: "4", Title: "Bohemian Rhapsody", Artist: "Queen", Album: "A Night at the Opera", Genre: "Rock", Duration: 355 * time.Second, ReleaseDate: "1975-10-31", PlayCount: 1_600_000_000},
		{ID: "5", Title: "Billie Jean", Artist: "Michael Jackson", Album: "Thriller", Genre: "Pop", Duration: 294 * time.Second, ReleaseDate: "1983-01-02", PlayCount: 1_400_000_000},
		{ID: "6", Title: "Hotel California", Artist: "Eagles", Album: "Hotel California", Genre: "Rock", Duration: 391 * time.Second, ReleaseDate: "1976-12-08", PlayCount: 1_200_000_000},
	}
	albums := []Album{
		{ID: "after-hours", Title: "After Hours", Artist: "The Weeknd", ReleaseDate: "2020-03-20", Genre: "Pop", TrackIDs: []string{"1"}},
		{ID: "divide", Title: "÷ (Divide)", Artist: "Ed Sheeran", ReleaseDate: "2017-03-03", Genre: "Pop", TrackIDs: []string{"2"}},
		{ID: "21", Title: "21", Artist: "Adele", ReleaseDate: "2011-01-24", Genre: "Soul", TrackIDs: []string{"3"}},
	}
	playlists := []Playlist{
		{ID: "favorites", Name: "My Favorites", Description: "All my favorite songs in one place", TrackIDs: []string{"1", "2", "3"}, Creator: "You"},
		{ID: "rock-classics", Name: "Rock Classics", Description: "The greatest rock songs of all time", TrackIDs: []string{"4", "6"}, Public: true, Creator: "You"},
		{ID: "pop-hits", Name: "Pop Hits", Description: "Latest and greatest pop music", TrackIDs: []string{"1", "2", "5"}, Public: true, Creator: "You"},
	}
	return New(tracks, albums, playlists)
}
