package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/simonhull/spikeglx/internal/syncword"
	"github.com/simonhull/spikeglx/internal/types"
)

// Recording describes one exported binary file.
type Recording struct {
	ID           string
	Path         string
	Stream       string
	SampleRateHz float64
	// ProbeType is nil for streams without a probe.
	ProbeType *int
	Channels  int
	Samples   int
	CreatedAt time.Time
}

// Channel is the position of one connected channel.
type Channel struct {
	Row int
	X   float64
	Y   float64
}

// Event kinds stored in sync_events.kind.
const (
	KindOnset  = "onset"
	KindOffset = "offset"
)

// WriteExport stores rec together with its channel positions and sync
// events in a single transaction and returns the recording id and the
// number of event rows. Nothing is stored when any insert fails.
//
// A new UUIDv7 is assigned when rec.ID is empty, and CreatedAt defaults to
// now. rows and coords are parallel, as in Metadata.ChannelIndex and
// Metadata.Coords; both are nil for recordings without geometry.
func (s *Store) WriteExport(ctx context.Context, rec Recording, rows []int, coords []types.Point, ev syncword.Events) (string, int, error) {
	if len(rows) != len(coords) {
		return "", 0, fmt.Errorf("write export: %d rows for %d coordinates", len(rows), len(coords))
	}
	if rec.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return "", 0, fmt.Errorf("write export: %w", err)
		}
		rec.ID = id.String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, fmt.Errorf("write export: %w", err)
	}
	defer tx.Rollback()

	if err := insertRecording(ctx, tx, rec); err != nil {
		return "", 0, err
	}
	if err := insertChannels(ctx, tx, rec.ID, rows, coords); err != nil {
		return "", 0, err
	}
	n, err := insertEvents(ctx, tx, rec.ID, ev)
	if err != nil {
		return "", 0, err
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("write export: %w", err)
	}
	return rec.ID, n, nil
}

func insertRecording(ctx context.Context, tx *sql.Tx, rec Recording) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO recordings
		(id, path, stream, sample_rate_hz, probe_type, channels, samples, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.Path,
		rec.Stream,
		rec.SampleRateHz,
		rec.ProbeType,
		rec.Channels,
		rec.Samples,
		rec.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write recording: %w", err)
	}
	return nil
}

func insertChannels(ctx context.Context, tx *sql.Tx, recordingID string, rows []int, coords []types.Point) error {
	if len(rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO channels (recording_id, row_index, x_um, y_um)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("write channels: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, recordingID, row, coords[i].X, coords[i].Y); err != nil {
			return fmt.Errorf("write channel %d: %w", row, err)
		}
	}
	return nil
}

// insertEvents stores every onset and offset of ev, lane by lane.
func insertEvents(ctx context.Context, tx *sql.Tx, recordingID string, ev syncword.Events) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sync_events (recording_id, lane, kind, t)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("write events: %w", err)
	}
	defer stmt.Close()

	n := 0
	for _, lane := range ev.ActiveLanes() {
		for _, group := range []struct {
			kind  string
			times []float64
		}{
			{KindOnset, ev.Onsets[lane]},
			{KindOffset, ev.Offsets[lane]},
		} {
			for _, t := range group.times {
				if _, err := stmt.ExecContext(ctx, recordingID, lane, group.kind, t); err != nil {
					return 0, fmt.Errorf("write lane %d %s: %w", lane, group.kind, err)
				}
				n++
			}
		}
	}
	return n, nil
}
