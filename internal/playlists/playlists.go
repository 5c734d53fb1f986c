// Package playlists stores the playlists a user builds from catalog tracks.
package playlists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/llehouerou/cadence/internal/catalog"
	dbutil "github.com/llehouerou/cadence/internal/db"
)

// IDPrefix marks user playlist ids so they never collide with built-in ones.
const IDPrefix = "my-"

// Creator is shown as the owner of user playlists.
const Creator = "You"

var (
	// ErrNotFound is returned for ids that name no stored playlist.
	ErrNotFound = errors.New("playlist not found")
	// ErrEmptyName is returned when creating or renaming to a blank name.
	ErrEmptyName = errors.New("playlist name is empty")
)

// Playlist is a stored user playlist.
type Playlist struct {
	ID          string
	Name        string
	Description string
	TrackIDs    []string
	CreatedAt   int64
	LastUsedAt  int64
}

// Catalog converts the playlist to its catalog record.
func (p Playlist) Catalog() catalog.Playlist {
	return catalog.Playlist{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		TrackIDs:    p.TrackIDs,
		Creator:     Creator,
	}
}

// Playlists provides database operations for user playlists.
type Playlists struct {
	db *sql.DB
}

// New creates a Playlists over a database carrying the state schema.
func New(db *sql.DB) *Playlists {
	return &Playlists{db: db}
}

// FormatID returns the public id of the playlist row.
func FormatID(rowID int64) string {
	return IDPrefix + strconv.FormatInt(rowID, 10)
}

// parseID maps a public id back to its row id.
func parseID(id string) (int64, error) {
	rest, ok := strings.CutPrefix(id, IDPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	rowID, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return rowID, nil
}

// Create creates an empty playlist.
func (p *Playlists) Create(ctx context.Context, name, description string) (Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Playlist{}, ErrEmptyName
	}
	now := time.Now().Unix()
	result, err := p.db.ExecContext(ctx, `
		INSERT INTO playlists (name, description, created_at, last_used_at)
		VALUES (?, ?, ?, ?)
	`, name, dbutil.NullString(description), now, now)
	if err != nil {
		return Playlist{}, err
	}
	rowID, err := result.LastInsertId()
	if err != nil {
		return Playlist{}, err
	}
	return Playlist{
		ID:          FormatID(rowID),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		LastUsedAt:  now,
	}, nil
}

// Update sets the name and description of a playlist.
func (p *Playlists) Update(ctx context.Context, id, name, description string) error {
	rowID, err := parseID(id)
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	result, err := p.db.ExecContext(ctx,
		`UPDATE playlists SET name = ?, description = ? WHERE id = ?`,
		name, dbutil.NullString(description), rowID)
	if err != nil {
		return err
	}
	return requireRow(result, id)
}

// Delete deletes a playlist and all its tracks.
func (p *Playlists) Delete(ctx context.Context, id string) error {
	rowID, err := parseID(id)
	if err != nil {
		return err
	}
	return dbutil.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM playlist_tracks WHERE playlist_id = ?`, rowID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, rowID)
		if err != nil {
			return err
		}
		return requireRow(result, id)
	})
}

// List returns every playlist with its tracks, most recently used first.
func (p *Playlists) List(ctx context.Context) ([]Playlist, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, name, description, created_at, last_used_at
		FROM playlists
		ORDER BY last_used_at DESC, name COLLATE NOCASE
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []Playlist
	for rows.Next() {
		pl, err := scanPlaylist(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range lists {
		if lists[i].TrackIDs, err = p.trackIDs(ctx, lists[i].ID); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// Get returns a playlist with its tracks.
func (p *Playlists) Get(ctx context.Context, id string) (Playlist, error) {
	rowID, err := parseID(id)
	if err != nil {
		return Playlist{}, err
	}
	row := p.db.QueryRowContext(ctx, `
		SELECT id, name, description, created_at, last_used_at
		FROM playlists
		WHERE id = ?
	`, rowID)

	pl, err := scanPlaylist(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Playlist{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err != nil {
		return Playlist{}, err
	}
	pl.TrackIDs, err = p.trackIDs(ctx, pl.ID)
	return pl, err
}

// UpdateLastUsed marks the playlist as just used so it lists first.
func (p *Playlists) UpdateLastUsed(ctx context.Context, id string) error {
	rowID, err := parseID(id)
	if err != nil {
		return err
	}
	result, err := p.db.ExecContext(ctx,
		`UPDATE playlists SET last_used_at = ? WHERE id = ?`, time.Now().Unix(), rowID)
	if err != nil {
		return err
	}
	return requireRow(result, id)
}

// Catalog returns the stored playlists as a catalog to merge with others.
func (p *Playlists) Catalog(ctx context.Context) (*catalog.Catalog, error) {
	lists, err := p.List(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.New(nil, nil, lo.Map(lists, func(pl Playlist, _ int) catalog.Playlist {
		return pl.Catalog()
	})), nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPlaylist(s scanner) (Playlist, error) {
	var (
		pl    Playlist
		rowID int64
		desc  sql.NullString
	)
	if err := s.Scan(&rowID, &pl.Name, &desc, &pl.CreatedAt, &pl.LastUsedAt); err != nil {
		return Playlist{}, err
	}
	pl.ID = FormatID(rowID)
	pl.Description = dbutil.NullStringValue(desc)
	return pl, nil
}

func requireRow(result sql.Result, id string) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return nil
}
