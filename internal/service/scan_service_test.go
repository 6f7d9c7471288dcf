package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/qr-tracker/internal/models"
	"github.com/qr-tracker/internal/storage"
	"github.com/qr-tracker/internal/types"
)

// brokenScanStore fails every append, simulating a lost event store
type brokenScanStore struct{}

func (b *brokenScanStore) Append(context.Context, int64, string, string) (*models.Scan, error) {
	return nil, errors.New("connection reset by peer")
}

func (b *brokenScanStore) ListByQR(context.Context, int64) ([]*models.Scan, error) {
	return nil, errors.New("connection reset by peer")
}

func newScanFixture(t *testing.T, contentType types.ContentType, content string) (*ScanService, *storage.MemoryScanStore, int64) {
	t.Helper()

	codes := storage.NewMemoryQRCodeStore()
	scans := storage.NewMemoryScanStore()

	qr := &models.QRCode{Content: content, Type: contentType, UserID: 1}
	if err := codes.Create(context.Background(), qr); err != nil {
		t.Fatal(err)
	}

	return NewScanService(codes, scans), scans, qr.ID
}

func TestResolveRedirectsURLType(t *testing.T) {
	svc, scans, id := newScanFixture(t, types.ContentURL, "https://example.com/page")

	res, err := svc.Resolve(context.Background(), &ResolveInput{
		QRID:    id,
		Content: "https://example.com/page",
	})
	if err != nil {
		t.Fatal(err)
	}

	if !res.Redirect {
		t.Error("expected redirect for url type with http content")
	}
	if res.RedirectURL != "https://example.com/page" {
		t.Errorf("RedirectURL = %q", res.RedirectURL)
	}
	if res.Scan == nil || res.Scan.ID == 0 {
		t.Error("no scan event recorded")
	}

	stored, _ := scans.ListByQR(context.Background(), id)
	if len(stored) != 1 {
		t.Fatalf("stored %d events, want 1", len(stored))
	}
}

func TestResolveRendersInline(t *testing.T) {
	cases := []struct {
		name        string
		contentType types.ContentType
		content     string
	}{
		{"text type", types.ContentText, "hello world"},
		{"email type", types.ContentEmail, "a@example.com"},
		{"phone type", types.ContentPhone, "+1-555-0100"},
		{"url type with plain text", types.ContentURL, "not a url"},
		{"url type with bare scheme", types.ContentURL, "http://"},
		{"text type with url content", types.ContentText, "https://example.com"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, scans, id := newScanFixture(t, tc.contentType, tc.content)

			res, err := svc.Resolve(context.Background(), &ResolveInput{
				QRID:    id,
				Content: tc.content,
			})
			if err != nil {
				t.Fatal(err)
			}

			if res.Redirect {
				t.Errorf("unexpected redirect to %q", res.RedirectURL)
			}
			if res.Content != tc.content {
				t.Errorf("Content = %q, want %q", res.Content, tc.content)
			}

			stored, _ := scans.ListByQR(context.Background(), id)
			if len(stored) != 1 {
				t.Fatalf("stored %d events, want 1", len(stored))
			}
		})
	}
}

func TestResolveUnknownCode(t *testing.T) {
	svc, scans, _ := newScanFixture(t, types.ContentText, "hello")

	_, err := svc.Resolve(context.Background(), &ResolveInput{QRID: 999, Content: "x"})
	assertServiceErrorCode(t, err, "QR_NOT_FOUND")

	stored, _ := scans.ListByQR(context.Background(), 999)
	if len(stored) != 0 {
		t.Fatalf("unknown code recorded %d events", len(stored))
	}
}

func TestResolveMissingContent(t *testing.T) {
	svc, scans, id := newScanFixture(t, types.ContentText, "hello")

	_, err := svc.Resolve(context.Background(), &ResolveInput{QRID: id})
	assertServiceErrorCode(t, err, "MISSING_CONTENT")

	stored, _ := scans.ListByQR(context.Background(), id)
	if len(stored) != 0 {
		t.Fatalf("rejected hit recorded %d events", len(stored))
	}
}

func TestResolveFailedAppendNeverRedirects(t *testing.T) {
	codes := storage.NewMemoryQRCodeStore()
	qr := &models.QRCode{Content: "https://example.com", Type: types.ContentURL, UserID: 1}
	if err := codes.Create(context.Background(), qr); err != nil {
		t.Fatal(err)
	}

	svc := NewScanService(codes, &brokenScanStore{})

	// The content would qualify for a redirect, but the event could not
	// be recorded, so the whole resolution must fail instead.
	res, err := svc.Resolve(context.Background(), &ResolveInput{
		QRID:    qr.ID,
		Content: "https://example.com",
	})
	assertServiceErrorCode(t, err, "STORAGE_ERROR")
	if res != nil {
		t.Fatalf("resolution returned despite failed append: %+v", res)
	}
}

func TestResolveAttributionDefaults(t *testing.T) {
	svc, scans, id := newScanFixture(t, types.ContentText, "hello")

	_, err := svc.Resolve(context.Background(), &ResolveInput{QRID: id, Content: "hello"})
	if err != nil {
		t.Fatal(err)
	}

	stored, _ := scans.ListByQR(context.Background(), id)
	if stored[0].Device != UnknownDevice {
		t.Errorf("Device = %q, want %q", stored[0].Device, UnknownDevice)
	}
	if stored[0].Location != UnknownLocation {
		t.Errorf("Location = %q, want %q", stored[0].Location, UnknownLocation)
	}
}

func TestResolveSurvivesCancelledContext(t *testing.T) {
	svc, scans, id := newScanFixture(t, types.ContentText, "hello")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// The memory store ignores context, so this exercises the service
	// path: a cancelled request context must not prevent the append.
	_, err := svc.Resolve(ctx, &ResolveInput{QRID: id, Content: "hello"})
	if err != nil {
		t.Fatal(err)
	}

	stored, _ := scans.ListByQR(context.Background(), id)
	if len(stored) != 1 {
		t.Fatalf("stored %d events, want 1", len(stored))
	}
}

func TestResolveConcurrentHits(t *testing.T) {
	svc, scans, id := newScanFixture(t, types.ContentText, "hello")

	const n = 100
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if _, err := svc.Resolve(context.Background(), &ResolveInput{QRID: id, Content: "hello"}); err != nil {
				t.Errorf("concurrent resolve failed: %v", err)
			}
		}()
	}
	wg.Wait()

	stored, _ := scans.ListByQR(context.Background(), id)
	if len(stored) != n {
		t.Fatalf("stored %d events, want %d", len(stored), n)
	}

	seen := make(map[int64]bool, n)
	for i, scan := range stored {
		if seen[scan.ID] {
			t.Fatalf("duplicate id %d", scan.ID)
		}
		seen[scan.ID] = true
		if i > 0 && scan.Timestamp.Before(stored[i-1].Timestamp) {
			t.Fatal("timestamps decreased in insertion order")
		}
	}
}

func TestIsHTTPURL(t *testing.T) {
	valid := []string{
		"http://example.com",
		"https://example.com",
		"https://example.com/path?q=1#frag",
		"http://localhost:8080",
	}
	invalid := []string{
		"",
		"example.com",
		"ftp://example.com",
		"javascript:alert(1)",
		"http://",
		"https://",
		"httpsnotaurl",
		"mailto:a@example.com",
	}

	for _, u := range valid {
		if !isHTTPURL(u) {
			t.Errorf("isHTTPURL(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if isHTTPURL(u) {
			t.Errorf("isHTTPURL(%q) = true, want false", u)
		}
	}
}
