package models

import (
	"time"

	"github.com/qr-tracker/internal/types"
)

// QRCode represents a generated code bound to user content.
//
// The code's visual symbol is rendered client-side from TrackingURL, which
// points at the public scan endpoint and carries the original content as a
// URL-encoded query parameter. Logo is an opaque image reference (a data
// URL in practice); the server never processes it.
type QRCode struct {
	ID        int64             `json:"id" db:"id"`
	Content   string            `json:"content" db:"content"`
	Type      types.ContentType `json:"type" db:"type"`
	Logo      *string           `json:"logo,omitempty" db:"logo"`
	FolderID  *int64            `json:"folderId,omitempty" db:"folder_id"`
	UserID    int64             `json:"userId" db:"user_id"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time         `json:"updatedAt" db:"updated_at"`

	// TrackingURL is derived from the server's public base URL, not stored.
	TrackingURL string `json:"trackingUrl,omitempty" db:"-"`
}
