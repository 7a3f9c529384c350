package store

import (
	"context"
	"fmt"
)

// BloodMessage, Bloodstain, and Ghost rows share one shape (area/cell-scoped
// opaque payload, append+trim, newest-first scan — spec.md §4.9); the
// three exported method sets below delegate to these table-parameterized
// helpers rather than repeating the same four queries three times.

func (s *PostgresStore) createBlob(ctx context.Context, table string, rec BlobRecord) (uint32, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (area_id, cell_id, player_id, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, table)
	var id uint32
	if err := s.pool.QueryRow(ctx, query, rec.AreaID, rec.CellID, rec.PlayerID, rec.Payload).Scan(&id); err != nil {
		return 0, fmt.Errorf("creating %s row: %w", table, err)
	}
	return id, nil
}

func (s *PostgresStore) findBlobs(ctx context.Context, table string, areaID uint32, limit int) ([]BlobRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, area_id, cell_id, player_id, payload, created_at
		FROM %s
		WHERE area_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, table)
	rows, err := s.pool.Query(ctx, query, areaID, limit)
	if err != nil {
		return nil, fmt.Errorf("finding %s rows for area %d: %w", table, areaID, err)
	}
	defer rows.Close()

	var out []BlobRecord
	for rows.Next() {
		var rec BlobRecord
		if err := rows.Scan(&rec.ID, &rec.AreaID, &rec.CellID, &rec.PlayerID, &rec.Payload, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table, err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s rows: %w", table, err)
	}
	return out, nil
}

func (s *PostgresStore) trimBlobs(ctx context.Context, table string, areaID uint32, keep int) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE area_id = $1 AND id NOT IN (
			SELECT id FROM %s WHERE area_id = $1 ORDER BY created_at DESC LIMIT $2
		)
	`, table, table)
	_, err := s.pool.Exec(ctx, query, areaID, keep)
	if err != nil {
		return fmt.Errorf("trimming %s rows for area %d: %w", table, areaID, err)
	}
	return nil
}

func (s *PostgresStore) CreateBloodMessage(ctx context.Context, rec BlobRecord) (uint32, error) {
	return s.createBlob(ctx, "blood_messages", rec)
}

// FindBloodMessages is blood_messages' own query rather than a delegate to
// findBlobs: it alone among the three blob tables carries rating_good/
// rating_poor columns (spec.md §3 BloodMessage).
func (s *PostgresStore) FindBloodMessages(ctx context.Context, areaID uint32, limit int) ([]BlobRecord, error) {
	const query = `
		SELECT id, area_id, cell_id, player_id, payload, rating_good, rating_poor, created_at
		FROM blood_messages
		WHERE area_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := s.pool.Query(ctx, query, areaID, limit)
	if err != nil {
		return nil, fmt.Errorf("finding blood_messages rows for area %d: %w", areaID, err)
	}
	defer rows.Close()

	var out []BlobRecord
	for rows.Next() {
		var rec BlobRecord
		if err := rows.Scan(&rec.ID, &rec.AreaID, &rec.CellID, &rec.PlayerID, &rec.Payload, &rec.RatingGood, &rec.RatingPoor, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning blood_messages row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating blood_messages rows: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) TrimBloodMessages(ctx context.Context, areaID uint32, keep int) error {
	return s.trimBlobs(ctx, "blood_messages", areaID, keep)
}

// UpdateBloodMessageRating persists the good/poor counters after an
// evaluation (spec.md §4.5 "increment the appropriate counter; persist").
func (s *PostgresStore) UpdateBloodMessageRating(ctx context.Context, id uint32, good, poor uint32) error {
	const query = `UPDATE blood_messages SET rating_good = $2, rating_poor = $3 WHERE id = $1`
	_, err := s.pool.Exec(ctx, query, id, good, poor)
	if err != nil {
		return fmt.Errorf("updating blood message %d rating: %w", id, err)
	}
	return nil
}

// DeleteBloodMessage removes a row outright (spec.md §4.5 "removes from
// cache and store").
func (s *PostgresStore) DeleteBloodMessage(ctx context.Context, id uint32) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM blood_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting blood message %d: %w", id, err)
	}
	return nil
}

func (s *PostgresStore) CreateBloodstain(ctx context.Context, rec BlobRecord) (uint32, error) {
	return s.createBlob(ctx, "bloodstains", rec)
}

func (s *PostgresStore) FindBloodstains(ctx context.Context, areaID uint32, limit int) ([]BlobRecord, error) {
	return s.findBlobs(ctx, "bloodstains", areaID, limit)
}

func (s *PostgresStore) TrimBloodstains(ctx context.Context, areaID uint32, keep int) error {
	return s.trimBlobs(ctx, "bloodstains", areaID, keep)
}

func (s *PostgresStore) CreateGhost(ctx context.Context, rec BlobRecord) (uint32, error) {
	return s.createBlob(ctx, "ghosts", rec)
}

func (s *PostgresStore) FindGhosts(ctx context.Context, areaID uint32, limit int) ([]BlobRecord, error) {
	return s.findBlobs(ctx, "ghosts", areaID, limit)
}

func (s *PostgresStore) TrimGhosts(ctx context.Context, areaID uint32, keep int) error {
	return s.trimBlobs(ctx, "ghosts", areaID, keep)
}
