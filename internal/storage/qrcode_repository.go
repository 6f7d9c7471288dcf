package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/qr-tracker/internal/models"
)

// QRCodeRepository is the registry mapping QR code ids to their declared
// content and type. GetByID is the lookup the scan path depends on; it
// reads the same table the write path inserts into, so a code visible to
// its owner's list view is immediately resolvable here.
type QRCodeRepository struct {
	db *PostgresDB
}

// NewQRCodeRepository creates a new QR code repository
func NewQRCodeRepository(db *PostgresDB) *QRCodeRepository {
	return &QRCodeRepository{db: db}
}

// Create inserts a new QR code and assigns its id
func (r *QRCodeRepository) Create(ctx context.Context, qr *models.QRCode) error {
	now := time.Now()
	qr.CreatedAt = now
	qr.UpdatedAt = now

	query := `
		INSERT INTO qr_codes (content, type, logo, folder_id, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.Pool().QueryRow(ctx, query,
		qr.Content,
		qr.Type,
		qr.Logo,
		qr.FolderID,
		qr.UserID,
		qr.CreatedAt,
		qr.UpdatedAt,
	).Scan(&qr.ID)

	if err != nil {
		return fmt.Errorf("failed to create qr code: %w", err)
	}

	return nil
}

// GetByID retrieves a QR code by ID
func (r *QRCodeRepository) GetByID(ctx context.Context, id int64) (*models.QRCode, error) {
	query := `
		SELECT id, content, type, logo, folder_id, user_id, created_at, updated_at
		FROM qr_codes
		WHERE id = $1
	`

	var qr models.QRCode
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&qr.ID,
		&qr.Content,
		&qr.Type,
		&qr.Logo,
		&qr.FolderID,
		&qr.UserID,
		&qr.CreatedAt,
		&qr.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get qr code: %w", err)
	}

	return &qr, nil
}

// ListByUser retrieves all QR codes owned by a user
func (r *QRCodeRepository) ListByUser(ctx context.Context, userID int64) ([]*models.QRCode, error) {
	query := `
		SELECT id, content, type, logo, folder_id, user_id, created_at, updated_at
		FROM qr_codes
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	defer rows.Close()

	var codes []*models.QRCode
	for rows.Next() {
		var qr models.QRCode
		err := rows.Scan(
			&qr.ID,
			&qr.Content,
			&qr.Type,
			&qr.Logo,
			&qr.FolderID,
			&qr.UserID,
			&qr.CreatedAt,
			&qr.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan qr code: %w", err)
		}
		codes = append(codes, &qr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating qr codes: %w", err)
	}

	return codes, nil
}

// Update persists content, type, logo and folder assignment of a QR code
func (r *QRCodeRepository) Update(ctx context.Context, qr *models.QRCode) error {
	qr.UpdatedAt = time.Now()

	query := `
		UPDATE qr_codes
		SET content = $2, type = $3, logo = $4, folder_id = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Pool().Exec(ctx, query,
		qr.ID,
		qr.Content,
		qr.Type,
		qr.Logo,
		qr.FolderID,
		qr.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update qr code: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// UpdateFolder reassigns (or clears, with nil) the folder of a QR code
func (r *QRCodeRepository) UpdateFolder(ctx context.Context, id int64, folderID *int64) error {
	query := `
		UPDATE qr_codes
		SET folder_id = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := r.db.Pool().Exec(ctx, query, id, folderID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update qr code folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete removes a QR code. Scan history is deliberately left in place;
// there is no FK cascade from qr_codes to scans.
func (r *QRCodeRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM qr_codes WHERE id = $1`

	result, err := r.db.Pool().Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete qr code: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
