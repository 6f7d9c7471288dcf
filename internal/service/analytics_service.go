package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qr-tracker/internal/models"
	"github.com/qr-tracker/internal/storage"
	"github.com/qr-tracker/internal/types"
)

// dateKeyFormat buckets scans per calendar day, matching the MM/DD keys
// the analytics charts plot.
const dateKeyFormat = "01/02"

// ScanSummary is the aggregate view of a QR code's scan history
type ScanSummary struct {
	ByDate   map[string]int `json:"byDate"`
	ByDevice map[string]int `json:"byDevice"`
	Total    int            `json:"total"`
	LastScan *time.Time     `json:"lastScan,omitempty"`
}

// AnalyticsService is the read side of scan tracking. It serves the raw
// ordered event list and an aggregate computed fresh on every read; there
// are no persisted rollups or caches that could go stale. Per-code event
// volume is expected to be small; recompute-per-read is the scaling limit
// to revisit if that changes.
type AnalyticsService struct {
	registry QRCodeStore
	scans    ScanStore
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(registry QRCodeStore, scans ScanStore) *AnalyticsService {
	return &AnalyticsService{registry: registry, scans: scans}
}

// GetScans returns the ordered scan history of a QR code. The requester
// must own the code: non-owners are rejected without leaking any events.
func (s *AnalyticsService) GetScans(ctx context.Context, qrID, userID int64) ([]*models.Scan, error) {
	if err := s.checkOwnership(ctx, qrID, userID); err != nil {
		return nil, err
	}

	scans, err := s.scans.ListByQR(ctx, qrID)
	if err != nil {
		return nil, &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to list scans",
		}
	}

	return scans, nil
}

// GetSummary returns the aggregate view of an owned QR code's history
func (s *AnalyticsService) GetSummary(ctx context.Context, qrID, userID int64) (*ScanSummary, error) {
	scans, err := s.GetScans(ctx, qrID, userID)
	if err != nil {
		return nil, err
	}
	return Summarize(scans), nil
}

// Summarize computes time-bucketed counts, device distribution, total and
// last-scan time from an ordered event sequence. Pure function: no
// storage access, deterministic for a given input.
func Summarize(scans []*models.Scan) *ScanSummary {
	summary := &ScanSummary{
		ByDate:   make(map[string]int),
		ByDevice: make(map[string]int),
		Total:    len(scans),
	}

	for _, scan := range scans {
		summary.ByDate[scan.Timestamp.Format(dateKeyFormat)]++
		summary.ByDevice[scan.Device]++

		if summary.LastScan == nil || scan.Timestamp.After(*summary.LastScan) {
			ts := scan.Timestamp
			summary.LastScan = &ts
		}
	}

	return summary
}

// checkOwnership verifies the QR code exists and belongs to the user
func (s *AnalyticsService) checkOwnership(ctx context.Context, qrID, userID int64) error {
	qr, err := s.registry.GetByID(ctx, qrID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return &types.ServiceError{
				Code:    "QR_NOT_FOUND",
				Message: fmt.Sprintf("qr code not found: %d", qrID),
			}
		}
		return fmt.Errorf("failed to get qr code: %w", err)
	}

	if qr.UserID != userID {
		return &types.ServiceError{
			Code:    "FORBIDDEN",
			Message: "qr code belongs to another user",
		}
	}

	return nil
}
