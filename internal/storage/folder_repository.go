package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/qr-tracker/internal/models"
)

// FolderRepository handles folder persistence
type FolderRepository struct {
	db *PostgresDB
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(db *PostgresDB) *FolderRepository {
	return &FolderRepository{db: db}
}

// Create inserts a new folder and assigns its id
func (r *FolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (name, user_id)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.Pool().QueryRow(ctx, query, folder.Name, folder.UserID).Scan(&folder.ID)
	if err != nil {
		return fmt.Errorf("failed to create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder by ID
func (r *FolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := `
		SELECT id, name, user_id
		FROM folders
		WHERE id = $1
	`

	var folder models.Folder
	err := r.db.Pool().QueryRow(ctx, query, id).Scan(
		&folder.ID,
		&folder.Name,
		&folder.UserID,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get folder: %w", err)
	}

	return &folder, nil
}

// ListByUser retrieves all folders owned by a user
func (r *FolderRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Folder, error) {
	query := `
		SELECT id, name, user_id
		FROM folders
		WHERE user_id = $1
		ORDER BY id
	`

	rows, err := r.db.Pool().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	defer rows.Close()

	var folders []*models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan folder: %w", err)
		}
		folders = append(folders, &folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating folders: %w", err)
	}

	return folders, nil
}
