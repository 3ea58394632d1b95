package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when a recording id is unknown.
var ErrNotFound = errors.New("recording not found")

// Recording loads one recording by id.
func (s *Store) Recording(ctx context.Context, id string) (Recording, error) {
	var (
		rec       Recording
		probe     sql.NullInt64
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, path, stream, sample_rate_hz, probe_type, channels, samples, created_at
		FROM recordings
		WHERE id = ?
	`, id).Scan(&rec.ID, &rec.Path, &rec.Stream, &rec.SampleRateHz, &probe, &rec.Channels, &rec.Samples, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Recording{}, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Recording{}, fmt.Errorf("read recording: %w", err)
	}

	if probe.Valid {
		p := int(probe.Int64)
		rec.ProbeType = &p
	}
	rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return Recording{}, fmt.Errorf("read recording: created_at: %w", err)
	}
	return rec, nil
}

// Channels returns the stored channel positions of a recording, by row.
func (s *Store) Channels(ctx context.Context, recordingID string) ([]Channel, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT row_index, x_um, y_um
		FROM channels
		WHERE recording_id = ?
		ORDER BY row_index
	`, recordingID)
	if err != nil {
		return nil, fmt.Errorf("read channels: %w", err)
	}
	defer rows.Close()

	var out []Channel
	for rows.Next() {
		var c Channel
		if err := rows.Scan(&c.Row, &c.X, &c.Y); err != nil {
			return nil, fmt.Errorf("read channels: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// EventTimes returns the stored times of one lane and kind, ascending.
func (s *Store) EventTimes(ctx context.Context, recordingID string, lane int, kind string) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t
		FROM sync_events
		WHERE recording_id = ? AND lane = ? AND kind = ?
		ORDER BY t
	`, recordingID, lane, kind)
	if err != nil {
		return nil, fmt.Errorf("read events: %w", err)
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var t float64
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("read events: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// CountEvents returns the number of stored onsets and offsets of a recording.
func (s *Store) CountEvents(ctx context.Context, recordingID string) (onsets, offsets int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(kind = 'onset'), 0),
			COALESCE(SUM(kind = 'offset'), 0)
		FROM sync_events
		WHERE recording_id = ?
	`, recordingID).Scan(&onsets, &offsets)
	if err != nil {
		return 0, 0, fmt.Errorf("count events: %w", err)
	}
	return onsets, offsets, nil
}

// Lanes returns the sync lanes with at least one stored event, ascending.
func (s *Store) Lanes(ctx context.Context, recordingID string) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT lane
		FROM sync_events
		WHERE recording_id = ?
		ORDER BY lane
	`, recordingID)
	if err != nil {
		return nil, fmt.Errorf("read lanes: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var lane int
		if err := rows.Scan(&lane); err != nil {
			return nil, fmt.Errorf("read lanes: %w", err)
		}
		out = append(out, lane)
	}
	return out, rows.Err()
}
