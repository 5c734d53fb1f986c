package state

import (
	"context"
	"database/sql"

	dbutil "github.com/llehouerou/cadence/internal/db"
)

func saveRecent(ctx context.Context, sqlDB *sql.DB, ids []string) error {
	return dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM recent_tracks`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO recent_tracks (position, track_id) VALUES (?, ?)
			ON CONFLICT(track_id) DO NOTHING
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, id := range ids {
			if _, err := stmt.ExecContext(ctx, i, id); err != nil {
				return err
			}
		}
		return nil
	})
}

func getRecent(ctx context.Context, db *sql.DB) ([]string, error) {
	return queryIDs(ctx, db, `SELECT track_id FROM recent_tracks ORDER BY position`)
}

func queryIDs(ctx context.Context, db *sql.DB, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
