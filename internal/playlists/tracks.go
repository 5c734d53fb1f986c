package playlists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	dbutil "github.com/llehouerou/cadence/internal/db"
)

// trackIDs returns the track ids of a playlist in position order.
func (p *Playlists) trackIDs(ctx context.Context, id string) ([]string, error) {
	rowID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	rows, err := p.db.QueryContext(ctx, `
		SELECT track_id FROM playlist_tracks
		WHERE playlist_id = ?
		ORDER BY position
	`, rowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var trackID string
		if err := rows.Scan(&trackID); err != nil {
			return nil, err
		}
		ids = append(ids, trackID)
	}
	return ids, rows.Err()
}

// AddTracks appends tracks to a playlist. Tracks already in the playlist are
// skipped. It returns how many tracks were added.
func (p *Playlists) AddTracks(ctx context.Context, id string, trackIDs ...string) (int, error) {
	rowID, err := parseID(id)
	if err != nil {
		return 0, err
	}

	added := 0
	err = dbutil.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM playlists WHERE id = ?`, rowID).Scan(&exists)
		if err != nil {
			return err
		}
		if exists == 0 {
			return fmt.Errorf("%w: %q", ErrNotFound, id)
		}

		var maxPos sql.NullInt64
		err = tx.QueryRowContext(ctx, `
			SELECT MAX(position) FROM playlist_tracks WHERE playlist_id = ?
		`, rowID).Scan(&maxPos)
		if err != nil {
			return err
		}
		nextPos := int64(0)
		if maxPos.Valid {
			nextPos = maxPos.Int64 + 1
		}

		present := make(map[string]bool)
		rows, err := tx.QueryContext(ctx, `SELECT track_id FROM playlist_tracks WHERE playlist_id = ?`, rowID)
		if err != nil {
			return err
		}
		for rows.Next() {
			var trackID string
			if err := rows.Scan(&trackID); err != nil {
				rows.Close()
				return err
			}
			present[trackID] = true
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO playlist_tracks (playlist_id, position, track_id)
			VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, trackID := range trackIDs {
			if trackID == "" || present[trackID] {
				continue
			}
			if _, err := stmt.ExecContext(ctx, rowID, nextPos, trackID); err != nil {
				return err
			}
			present[trackID] = true
			nextPos++
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveTrack removes a track from a playlist and closes the gap it leaves.
// It reports whether the track was in the playlist.
func (p *Playlists) RemoveTrack(ctx context.Context, id, trackID string) (bool, error) {
	rowID, err := parseID(id)
	if err != nil {
		return false, err
	}

	removed := false
	err = dbutil.WithTx(ctx, p.db, func(tx *sql.Tx) error {
		var pos int64
		err := tx.QueryRowContext(ctx, `
			SELECT position FROM playlist_tracks
			WHERE playlist_id = ? AND track_id = ?
		`, rowID, trackID).Scan(&pos)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			DELETE FROM playlist_tracks WHERE playlist_id = ? AND position = ?
		`, rowID, pos); err != nil {
			return err
		}

		// Shift through negatives so the primary key never collides mid-update.
		if _, err := tx.ExecContext(ctx, `
			UPDATE playlist_tracks SET position = -position
			WHERE playlist_id = ? AND position > ?
		`, rowID, pos); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `
			UPDATE playlist_tracks SET position = -position - 1
			WHERE playlist_id = ? AND position < 0
		`, rowID); err != nil {
			return err
		}
		removed = true
		return nil
	})
	return removed, err
}
