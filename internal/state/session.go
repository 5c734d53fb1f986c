package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	dbutil "github.com/llehouerou/cadence/internal/db"
	"github.com/llehouerou/cadence/internal/playback"
)

func getSession(ctx context.Context, db *sql.DB) (*playback.Session, error) {
	var (
		currentID  sql.NullString
		positionMS int64
		sess       playback.Session
		repeat     int
	)
	row := db.QueryRowContext(ctx, `
		SELECT current_id, position_ms, volume, shuffle, repeat_mode
		FROM session_state WHERE id = 1
	`)
	err := row.Scan(&currentID, &positionMS, &sess.Volume, &sess.Shuffle, &repeat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sess.CurrentID = dbutil.NullStringValue(currentID)
	sess.Position = time.Duration(positionMS) * time.Millisecond
	sess.Repeat = playback.RepeatMode(repeat)

	rows, err := db.QueryContext(ctx, `SELECT track_id FROM session_queue ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		sess.Queue = append(sess.Queue, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &sess, nil
}

func saveSession(ctx context.Context, sqlDB *sql.DB, sessionID string, sess playback.Session) error {
	return dbutil.WithTx(ctx, sqlDB, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session_state (id, session_id, current_id, position_ms, volume, shuffle, repeat_mode, saved_at)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				session_id = excluded.session_id,
				current_id = excluded.current_id,
				position_ms = excluded.position_ms,
				volume = excluded.volume,
				shuffle = excluded.shuffle,
				repeat_mode = excluded.repeat_mode,
				saved_at = excluded.saved_at
		`, sessionID, dbutil.NullString(sess.CurrentID), sess.Position.Milliseconds(),
			sess.Volume, sess.Shuffle, int(sess.Repeat), time.Now().Unix())
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM session_queue`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO session_queue (position, track_id) VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i, id := range sess.Queue {
			if _, err := stmt.ExecContext(ctx, i, id); err != nil {
				return err
			}
		}
		return nil
	})
}
