// Package service implements the application logic of the QR tracker.
//
// Services depend on narrow store interfaces rather than concrete
// repositories, so the Postgres-backed and in-memory implementations in
// internal/storage are interchangeable without touching handler logic.
package service

import (
	"context"

	"github.com/qr-tracker/internal/models"
)

// UserStore is the persistence contract for user accounts
type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// FolderStore is the persistence contract for folders
type FolderStore interface {
	Create(ctx context.Context, folder *models.Folder) error
	GetByID(ctx context.Context, id int64) (*models.Folder, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Folder, error)
}

// QRCodeStore is the registry contract: GetByID is the lookup the scan
// resolution path depends on, the rest is the owner-facing write path.
type QRCodeStore interface {
	Create(ctx context.Context, qr *models.QRCode) error
	GetByID(ctx context.Context, id int64) (*models.QRCode, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.QRCode, error)
	Update(ctx context.Context, qr *models.QRCode) error
	UpdateFolder(ctx context.Context, id int64, folderID *int64) error
	Delete(ctx context.Context, id int64) error
}

// ScanStore is the append-only event store contract
type ScanStore interface {
	Append(ctx context.Context, qrID int64, device, location string) (*models.Scan, error)
	ListByQR(ctx context.Context, qrID int64) ([]*models.Scan, error)
}

// SessionStore is the contract for bearer session tokens
type SessionStore interface {
	Create(ctx context.Context, userID int64) (string, error)
	Get(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}
