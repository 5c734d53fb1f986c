// Package playlist holds the ordered track-id lists the player traverses.
package playlist

import "slices"

// Playlist holds an ordered collection of track ids. Ids are references
// into the catalog; the same id may appear more than once.
type Playlist struct {
	ids []string
}

// NewPlaylist creates a new empty playlist.
func NewPlaylist() *Playlist {
	return &Playlist{
		ids: make([]string, 0),
	}
}

// Add appends ids to the playlist.
func (p *Playlist) Add(ids ...string) {
	p.ids = append(p.ids, ids...)
}

// Remove removes the entry at the given index.
// Returns false if index is out of bounds.
func (p *Playlist) Remove(index int) bool {
	if index < 0 || index >= len(p.ids) {
		return false
	}
	p.ids = slices.Delete(p.ids, index, index+1)
	return true
}

// RemoveID removes every entry with the given id and returns how many were removed.
func (p *Playlist) RemoveID(id string) int {
	before := len(p.ids)
	p.ids = slices.DeleteFunc(p.ids, func(s string) bool { return s == id })
	return before - len(p.ids)
}

// Clear removes all entries from the playlist.
func (p *Playlist) Clear() {
	p.ids = p.ids[:0]
}

// Replace swaps the contents for the given ids.
func (p *Playlist) Replace(ids ...string) {
	p.ids = append(p.ids[:0], ids...)
}

// IDs returns a copy of all ids.
func (p *Playlist) IDs() []string {
	return slices.Clone(p.ids)
}

// ID returns the id at the given index, or "" and false if out of bounds.
func (p *Playlist) ID(index int) (string, bool) {
	if index < 0 || index >= len(p.ids) {
		return "", false
	}
	return p.ids[index], true
}

// IndexOf returns the index of the first entry with the given id, or -1.
func (p *Playlist) IndexOf(id string) int {
	return slices.Index(p.ids, id)
}

// Len returns the number of entries.
func (p *Playlist) Len() int {
	return len(p.ids)
}

// Move moves the entry at fromIndex to toIndex.
// Returns false if either index is out of bounds.
func (p *Playlist) Move(fromIndex, toIndex int) bool {
	if fromIndex < 0 || fromIndex >= len(p.ids) {
		return false
	}
	if toIndex < 0 || toIndex >= len(p.ids) {
		return false
	}
	if fromIndex == toIndex {
		return true
	}

	id := p.ids[fromIndex]
	p.ids = slices.Delete(p.ids, fromIndex, fromIndex+1)
	p.ids = slices.Insert(p.ids, toIndex, id)
	return true
}
