package service

import (
	"context"
	"net/url"
	"strings"
	"testing"

	"github.com/qr-tracker/internal/storage"
	"github.com/qr-tracker/internal/types"
)

func newQRFixture() (*QRCodeService, *storage.MemoryQRCodeStore, *storage.MemoryFolderStore) {
	codes := storage.NewMemoryQRCodeStore()
	folders := storage.NewMemoryFolderStore()
	return NewQRCodeService(codes, folders, "http://localhost:8080"), codes, folders
}

func TestCreateValidatesContentAndType(t *testing.T) {
	svc, _, _ := newQRFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateQRCodeInput{UserID: 1, Content: "", Type: types.ContentURL})
	assertServiceErrorCode(t, err, "EMPTY_CONTENT")

	_, err = svc.Create(ctx, &CreateQRCodeInput{UserID: 1, Content: "x", Type: "wifi"})
	assertServiceErrorCode(t, err, "INVALID_CONTENT_TYPE")

	qr, err := svc.Create(ctx, &CreateQRCodeInput{UserID: 1, Content: "x", Type: types.ContentText})
	if err != nil {
		t.Fatal(err)
	}
	if qr.ID == 0 {
		t.Error("id not assigned")
	}
}

func TestTrackingURLEncodesContent(t *testing.T) {
	svc, _, _ := newQRFixture()
	ctx := context.Background()

	content := "https://example.com/path?a=1&b=two words"
	qr, err := svc.Create(ctx, &CreateQRCodeInput{UserID: 1, Content: content, Type: types.ContentURL})
	if err != nil {
		t.Fatal(err)
	}

	if !strings.HasPrefix(qr.TrackingURL, "http://localhost:8080/api/qrcodes/") {
		t.Fatalf("TrackingURL = %q", qr.TrackingURL)
	}

	parsed, err := url.Parse(qr.TrackingURL)
	if err != nil {
		t.Fatal(err)
	}
	if got := parsed.Query().Get("content"); got != content {
		t.Errorf("decoded content = %q, want %q", got, content)
	}
}

func TestUpdateOwnershipAndValidation(t *testing.T) {
	svc, _, _ := newQRFixture()
	ctx := context.Background()

	qr, err := svc.Create(ctx, &CreateQRCodeInput{UserID: 1, Content: "x", Type: types.ContentText})
	if err != nil {
		t.Fatal(err)
	}

	newContent := "updated"
	if _, err := svc.Update(ctx, qr.ID, 2, &UpdateQRCodeInput{Content: &newContent}); err == nil {
		t.Fatal("non-owner update succeeded")
	} else {
		assertServiceErrorCode(t, err, "FORBIDDEN")
	}

	empty := ""
	_, err = svc.Update(ctx, qr.ID, 1, &UpdateQRCodeInput{Content: &empty})
	assertServiceErrorCode(t, err, "EMPTY_CONTENT")

	updated, err := svc.Update(ctx, qr.ID, 1, &UpdateQRCodeInput{Content: &newContent})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Content != newContent {
		t.Errorf("Content = %q", updated.Content)
	}
	if updated.Type != types.ContentText {
		t.Errorf("Type changed to %q on partial update", updated.Type)
	}
}

func TestCreateInForeignFolderRejected(t *testing.T) {
	svc, _, folders := newQRFixture()
	ctx := context.Background()

	bobFolder := newFolder(t, folders, 2, "Bob's")

	_, err := svc.Create(ctx, &CreateQRCodeInput{
		UserID:   1,
		Content:  "x",
		Type:     types.ContentText,
		FolderID: &bobFolder,
	})
	assertServiceErrorCode(t, err, "FORBIDDEN")

	missing := int64(999)
	_, err = svc.Create(ctx, &CreateQRCodeInput{
		UserID:   1,
		Content:  "x",
		Type:     types.ContentText,
		FolderID: &missing,
	})
	assertServiceErrorCode(t, err, "FOLDER_NOT_FOUND")
}

func TestMoveToFolderAndClear(t *testing.T) {
	svc, _, folders := newQRFixture()
	ctx := context.Background()

	qr, err := svc.Create(ctx, &CreateQRCodeInput{UserID: 1, Content: "x", Type: types.ContentText})
	if err != nil {
		t.Fatal(err)
	}
	folderID := newFolder(t, folders, 1, "Work")

	moved, err := svc.MoveToFolder(ctx, qr.ID, 1, &folderID)
	if err != nil {
		t.Fatal(err)
	}
	if moved.FolderID == nil || *moved.FolderID != folderID {
		t.Fatalf("FolderID = %v", moved.FolderID)
	}

	cleared, err := svc.MoveToFolder(ctx, qr.ID, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if cleared.FolderID != nil {
		t.Fatalf("FolderID = %v after clear", *cleared.FolderID)
	}
}

func TestDeleteOrder404Before403(t *testing.T) {
	svc, _, _ := newQRFixture()
	ctx := context.Background()

	qr, err := svc.Create(ctx, &CreateQRCodeInput{UserID: 1, Content: "x", Type: types.ContentText})
	if err != nil {
		t.Fatal(err)
	}

	err = svc.Delete(ctx, 999, 1)
	assertServiceErrorCode(t, err, "QR_NOT_FOUND")

	err = svc.Delete(ctx, qr.ID, 2)
	assertServiceErrorCode(t, err, "FORBIDDEN")

	if err := svc.Delete(ctx, qr.ID, 1); err != nil {
		t.Fatal(err)
	}

	err = svc.Delete(ctx, qr.ID, 1)
	assertServiceErrorCode(t, err, "QR_NOT_FOUND")
}

// newFolder seeds a folder directly in the store and returns its id
func newFolder(t *testing.T, folders *storage.MemoryFolderStore, userID int64, name string) int64 {
	t.Helper()
	svc := NewFolderService(folders)
	folder, err := svc.Create(context.Background(), userID, name)
	if err != nil {
		t.Fatal(err)
	}
	return folder.ID
}
