package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/qr-tracker/internal/models"
	"github.com/qr-tracker/internal/storage"
	"github.com/qr-tracker/internal/types"
)

// QRCodeService handles QR code creation, listing, editing, folder
// assignment and deletion. Every operation that touches an existing code
// verifies ownership before acting.
type QRCodeService struct {
	codes   QRCodeStore
	folders FolderStore
	// baseURL is the public base of the scan endpoint, embedded into
	// tracking URLs.
	baseURL string
}

// NewQRCodeService creates a new QR code service
func NewQRCodeService(codes QRCodeStore, folders FolderStore, baseURL string) *QRCodeService {
	return &QRCodeService{codes: codes, folders: folders, baseURL: baseURL}
}

// CreateQRCodeInput represents input for creating a QR code
type CreateQRCodeInput struct {
	UserID   int64
	Content  string
	Type     types.ContentType
	Logo     *string
	FolderID *int64
}

// UpdateQRCodeInput represents a partial update. Nil fields are unchanged.
type UpdateQRCodeInput struct {
	Content  *string
	Type     *types.ContentType
	Logo     *string
	FolderID *int64
}

// Create validates and stores a new QR code for its owner
func (s *QRCodeService) Create(ctx context.Context, input *CreateQRCodeInput) (*models.QRCode, error) {
	if input.Content == "" {
		return nil, &types.ServiceError{
			Code:    "EMPTY_CONTENT",
			Message: "content must not be empty",
		}
	}
	if !input.Type.Valid() {
		return nil, &types.ServiceError{
			Code:    "INVALID_CONTENT_TYPE",
			Message: fmt.Sprintf("invalid content type: %s", input.Type),
			Details: map[string]interface{}{
				"allowed": types.AllContentTypes(),
			},
		}
	}

	if input.FolderID != nil {
		if err := s.checkFolderOwnership(ctx, *input.FolderID, input.UserID); err != nil {
			return nil, err
		}
	}

	qr := &models.QRCode{
		Content:  input.Content,
		Type:     input.Type,
		Logo:     input.Logo,
		FolderID: input.FolderID,
		UserID:   input.UserID,
	}

	if err := s.codes.Create(ctx, qr); err != nil {
		return nil, &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to create qr code",
		}
	}

	qr.TrackingURL = s.TrackingURL(qr)
	return qr, nil
}

// Get returns a QR code after verifying ownership
func (s *QRCodeService) Get(ctx context.Context, id, userID int64) (*models.QRCode, error) {
	qr, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	qr.TrackingURL = s.TrackingURL(qr)
	return qr, nil
}

// List returns all QR codes owned by the user
func (s *QRCodeService) List(ctx context.Context, userID int64) ([]*models.QRCode, error) {
	codes, err := s.codes.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list qr codes: %w", err)
	}
	for _, qr := range codes {
		qr.TrackingURL = s.TrackingURL(qr)
	}
	return codes, nil
}

// Update applies a partial edit to an owned QR code
func (s *QRCodeService) Update(ctx context.Context, id, userID int64, input *UpdateQRCodeInput) (*models.QRCode, error) {
	qr, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Content != nil {
		if *input.Content == "" {
			return nil, &types.ServiceError{
				Code:    "EMPTY_CONTENT",
				Message: "content must not be empty",
			}
		}
		qr.Content = *input.Content
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, &types.ServiceError{
				Code:    "INVALID_CONTENT_TYPE",
				Message: fmt.Sprintf("invalid content type: %s", *input.Type),
				Details: map[string]interface{}{
					"allowed": types.AllContentTypes(),
				},
			}
		}
		qr.Type = *input.Type
	}
	if input.Logo != nil {
		qr.Logo = input.Logo
	}
	if input.FolderID != nil {
		if err := s.checkFolderOwnership(ctx, *input.FolderID, userID); err != nil {
			return nil, err
		}
		qr.FolderID = input.FolderID
	}

	if err := s.codes.Update(ctx, qr); err != nil {
		return nil, &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to update qr code",
		}
	}

	qr.TrackingURL = s.TrackingURL(qr)
	return qr, nil
}

// MoveToFolder reassigns an owned QR code to a folder, or clears the
// assignment when folderID is nil. The target folder must belong to the
// same user.
func (s *QRCodeService) MoveToFolder(ctx context.Context, id, userID int64, folderID *int64) (*models.QRCode, error) {
	qr, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if folderID != nil {
		if err := s.checkFolderOwnership(ctx, *folderID, userID); err != nil {
			return nil, err
		}
	}

	if err := s.codes.UpdateFolder(ctx, qr.ID, folderID); err != nil {
		return nil, &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to move qr code",
		}
	}

	qr.FolderID = folderID
	qr.TrackingURL = s.TrackingURL(qr)
	return qr, nil
}

// Delete removes an owned QR code. Its scan history is retained.
func (s *QRCodeService) Delete(ctx context.Context, id, userID int64) error {
	qr, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.codes.Delete(ctx, qr.ID); err != nil {
		return &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to delete qr code",
		}
	}

	return nil
}

// TrackingURL derives the public scan URL for a QR code. The content is
// URL-encoded into the query string so the scan endpoint can decide the
// response without a second storage read.
func (s *QRCodeService) TrackingURL(qr *models.QRCode) string {
	return fmt.Sprintf("%s/api/qrcodes/%d/scan?content=%s", s.baseURL, qr.ID, url.QueryEscape(qr.Content))
}

// getOwned loads a QR code and verifies the requester owns it. Missing
// codes report not-found, codes owned by someone else report forbidden,
// matching the 404-then-403 order of the API.
func (s *QRCodeService) getOwned(ctx context.Context, id, userID int64) (*models.QRCode, error) {
	qr, err := s.codes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &types.ServiceError{
				Code:    "QR_NOT_FOUND",
				Message: fmt.Sprintf("qr code not found: %d", id),
			}
		}
		return nil, fmt.Errorf("failed to get qr code: %w", err)
	}

	if qr.UserID != userID {
		return nil, &types.ServiceError{
			Code:    "FORBIDDEN",
			Message: "qr code belongs to another user",
		}
	}

	return qr, nil
}

// checkFolderOwnership verifies a folder exists and belongs to the user
func (s *QRCodeService) checkFolderOwnership(ctx context.Context, folderID, userID int64) error {
	folder, err := s.folders.GetByID(ctx, folderID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &types.ServiceError{
				Code:    "FOLDER_NOT_FOUND",
				Message: fmt.Sprintf("folder not found: %d", folderID),
			}
		}
		return fmt.Errorf("failed to get folder: %w", err)
	}

	if folder.UserID != userID {
		return &types.ServiceError{
			Code:    "FORBIDDEN",
			Message: "folder belongs to another user",
		}
	}

	return nil
}
