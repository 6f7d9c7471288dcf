package service

import (
	"context"
	"fmt"

	"github.com/qr-tracker/internal/models"
	"github.com/qr-tracker/internal/types"
)

// FolderService handles folder creation and listing
type FolderService struct {
	folders FolderStore
}

// NewFolderService creates a new folder service
func NewFolderService(folders FolderStore) *FolderService {
	return &FolderService{folders: folders}
}

// Create creates a folder owned by the given user
func (s *FolderService) Create(ctx context.Context, userID int64, name string) (*models.Folder, error) {
	if name == "" {
		return nil, &types.ServiceError{
			Code:    "INVALID_PARAMETER",
			Message: "folder name is required",
		}
	}

	folder := &models.Folder{
		Name:   name,
		UserID: userID,
	}

	if err := s.folders.Create(ctx, folder); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	return folder, nil
}

// List returns the folders owned by the given user
func (s *FolderService) List(ctx context.Context, userID int64) ([]*models.Folder, error) {
	folders, err := s.folders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}
