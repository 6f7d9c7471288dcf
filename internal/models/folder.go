package models

// Folder groups QR codes for one owner. Membership is held on the QR code
// side (qr_codes.folder_id), so a code belongs to at most one folder.
type Folder struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	UserID int64  `json:"userId" db:"user_id"`
}
