package models

import "time"

// Scan is one resolution of a QR code's tracking URL. Scans are
// append-only: created exactly once per resolved hit, never mutated, and
// retained even after the referenced QR code is deleted.
//
// Device and Location are best-effort attribution captured from request
// headers. They are opaque strings; the handler substitutes defaults when
// the headers are absent, so stored values are always non-empty.
type Scan struct {
	ID        int64     `json:"id" db:"id"`
	QRID      int64     `json:"qrId" db:"qr_id"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
	Device    string    `json:"device" db:"device"`
	Location  string    `json:"location" db:"location"`
}
