package state

import (
	"context"
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/cadence/internal/db"
)

func toggleLiked(ctx context.Context, sqlDB *sql.DB, id string) (bool, error) {
	var liked bool
	err := dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM liked_tracks WHERE track_id = ?`, id)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
		liked = true
		_, err = tx.ExecContext(ctx,
			`INSERT INTO liked_tracks (track_id, liked_at) VALUES (?, ?)`,
			id, time.Now().UnixNano())
		return err
	})
	return liked, err
}

func isLiked(ctx context.Context, db *sql.DB, id string) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM liked_tracks WHERE track_id = ?`, id).Scan(&n)
	return n > 0, err
}

func getLiked(ctx context.Context, db *sql.DB) ([]string, error) {
	return queryIDs(ctx, db, `SELECT track_id FROM liked_tracks ORDER BY liked_at DESC, track_id`)
}
