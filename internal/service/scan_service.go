package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/qr-tracker/internal/models"
	"github.com/qr-tracker/internal/storage"
	"github.com/qr-tracker/internal/types"
)

// Attribution defaults used when the scanning device sends no usable
// headers. Stored as-is; analytics groups on the literal strings.
const (
	UnknownDevice   = "Unknown Device"
	UnknownLocation = "Unknown Location"
)

// ScanService resolves public scan hits: it validates the target QR code,
// records exactly one scan event, and decides between redirect and inline
// rendering. It is stateless; all state lives in the injected stores.
type ScanService struct {
	registry QRCodeStore
	scans    ScanStore
}

// NewScanService creates a new scan resolution service
func NewScanService(registry QRCodeStore, scans ScanStore) *ScanService {
	return &ScanService{registry: registry, scans: scans}
}

// ResolveInput carries one scan hit: the target id from the path, the
// original content from the query string, and attribution extracted from
// transport headers by the HTTP layer.
type ResolveInput struct {
	QRID     int64
	Content  string
	Device   string
	Location string
}

// Resolution is the decided response for a scan hit
type Resolution struct {
	// Scan is the event recorded for this hit
	Scan *models.Scan
	// Redirect is true when the scanner should be redirected to
	// RedirectURL; otherwise Content is rendered inline (escaped by the
	// HTTP layer).
	Redirect    bool
	RedirectURL string
	Content     string
}

// Resolve processes one scan hit.
//
// Order matters: the registry lookup runs first so scans of nonexistent
// codes record nothing, and the content check runs before the append so a
// BadRequest leaves no event behind. Once both pass, the event is
// recorded unconditionally, before the redirect-vs-render decision; an
// append failure fails the whole request rather than silently redirecting
// with the hit uncounted.
func (s *ScanService) Resolve(ctx context.Context, input *ResolveInput) (*Resolution, error) {
	qr, err := s.registry.GetByID(ctx, input.QRID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, &types.ServiceError{
				Code:    "QR_NOT_FOUND",
				Message: fmt.Sprintf("qr code not found: %d", input.QRID),
			}
		}
		return nil, &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to resolve qr code",
		}
	}

	if input.Content == "" {
		return nil, &types.ServiceError{
			Code:    "MISSING_CONTENT",
			Message: "content query parameter is required",
		}
	}

	device := input.Device
	if device == "" {
		device = UnknownDevice
	}
	location := input.Location
	if location == "" {
		location = UnknownLocation
	}

	// A committed scan event is final: detach the append from request
	// cancellation so a client abort mid-flight cannot roll it back.
	scan, err := s.scans.Append(context.WithoutCancel(ctx), qr.ID, device, location)
	if err != nil {
		return nil, &types.ServiceError{
			Code:    "STORAGE_ERROR",
			Message: "failed to record scan event",
		}
	}

	res := &Resolution{
		Scan:    scan,
		Content: input.Content,
	}

	if qr.Type == types.ContentURL && isHTTPURL(input.Content) {
		res.Redirect = true
		res.RedirectURL = input.Content
	}

	return res, nil
}

// isHTTPURL reports whether content is syntactically an http(s) URL.
// Anything else is rendered inline instead of redirected, so a code whose
// declared type is url but whose content is not a URL never produces an
// open redirect to a garbage Location.
func isHTTPURL(content string) bool {
	if !strings.HasPrefix(content, "http") {
		return false
	}
	u, err := url.Parse(content)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
