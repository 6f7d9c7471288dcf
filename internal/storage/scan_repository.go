package storage

import (
	"context"
	"fmt"

	"github.com/qr-tracker/internal/models"
)

// ScanRepository is the append-only event store for scan events. There is
// no update or delete path: scans are written exactly once per resolved
// hit and read back in insertion order.
type ScanRepository struct {
	db *PostgresDB
}

// NewScanRepository creates a new scan repository
func NewScanRepository(db *PostgresDB) *ScanRepository {
	return &ScanRepository{db: db}
}

// Append records one scan event. Id and timestamp are assigned inside the
// INSERT (bigserial + now()), so concurrent appends for the same QR code
// cannot collide on id or lose an event. now() is statement-start time,
// so a row with a higher id can carry a marginally earlier timestamp than
// a concurrent predecessor; readers order by id, not timestamp. The
// referenced QR code is not re-checked here; existence validation belongs
// to the resolution path.
func (r *ScanRepository) Append(ctx context.Context, qrID int64, device, location string) (*models.Scan, error) {
	query := `
		INSERT INTO scans (qr_id, device, location, timestamp)
		VALUES ($1, $2, $3, now())
		RETURNING id, timestamp
	`

	scan := &models.Scan{
		QRID:     qrID,
		Device:   device,
		Location: location,
	}

	err := r.db.Pool().QueryRow(ctx, query, qrID, device, location).Scan(
		&scan.ID,
		&scan.Timestamp,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to append scan: %w", err)
	}

	return scan, nil
}

// ListByQR retrieves all scan events for a QR code in insertion order
func (r *ScanRepository) ListByQR(ctx context.Context, qrID int64) ([]*models.Scan, error) {
	query := `
		SELECT id, qr_id, timestamp, device, location
		FROM scans
		WHERE qr_id = $1
		ORDER BY id
	`

	rows, err := r.db.Pool().Query(ctx, query, qrID)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var scans []*models.Scan
	for rows.Next() {
		var scan models.Scan
		err := rows.Scan(
			&scan.ID,
			&scan.QRID,
			&scan.Timestamp,
			&scan.Device,
			&scan.Location,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		scans = append(scans, &scan)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating scans: %w", err)
	}

	return scans, nil
}
