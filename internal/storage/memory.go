package storage

import (
	"context"
	"sync"
	"time"

	"github.com/qr-tracker/internal/models"
)

// In-memory store implementations. They satisfy the same contracts as the
// Postgres repositories and back tests and local development without a
// database. All of them are safe for concurrent use.

// MemoryUserStore is an in-memory user store
type MemoryUserStore struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

// NewMemoryUserStore creates an empty in-memory user store
func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: make(map[int64]*models.User), nextID: 1}
}

// Create inserts a user and assigns its id
func (m *MemoryUserStore) Create(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()

	stored := *user
	m.users[user.ID] = &stored
	return nil
}

// GetByID retrieves a user by id
func (m *MemoryUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByUsername retrieves a user by username
func (m *MemoryUserStore) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

// ExistsByUsername checks if a username is taken
func (m *MemoryUserStore) ExistsByUsername(_ context.Context, username string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, user := range m.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// MemoryFolderStore is an in-memory folder store
type MemoryFolderStore struct {
	mu      sync.Mutex
	folders map[int64]*models.Folder
	nextID  int64
}

// NewMemoryFolderStore creates an empty in-memory folder store
func NewMemoryFolderStore() *MemoryFolderStore {
	return &MemoryFolderStore{folders: make(map[int64]*models.Folder), nextID: 1}
}

// Create inserts a folder and assigns its id
func (m *MemoryFolderStore) Create(_ context.Context, folder *models.Folder) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	folder.ID = m.nextID
	m.nextID++

	stored := *folder
	m.folders[folder.ID] = &stored
	return nil
}

// GetByID retrieves a folder by id
func (m *MemoryFolderStore) GetByID(_ context.Context, id int64) (*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	folder, ok := m.folders[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *folder
	return &copied, nil
}

// ListByUser retrieves folders owned by a user in id order
func (m *MemoryFolderStore) ListByUser(_ context.Context, userID int64) ([]*models.Folder, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var folders []*models.Folder
	for id := int64(1); id < m.nextID; id++ {
		if folder, ok := m.folders[id]; ok && folder.UserID == userID {
			copied := *folder
			folders = append(folders, &copied)
		}
	}
	return folders, nil
}

// MemoryQRCodeStore is an in-memory QR code registry
type MemoryQRCodeStore struct {
	mu     sync.Mutex
	codes  map[int64]*models.QRCode
	nextID int64
}

// NewMemoryQRCodeStore creates an empty in-memory QR code store
func NewMemoryQRCodeStore() *MemoryQRCodeStore {
	return &MemoryQRCodeStore{codes: make(map[int64]*models.QRCode), nextID: 1}
}

// Create inserts a QR code and assigns its id
func (m *MemoryQRCodeStore) Create(_ context.Context, qr *models.QRCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	qr.ID = m.nextID
	m.nextID++
	now := time.Now()
	qr.CreatedAt = now
	qr.UpdatedAt = now

	stored := *qr
	m.codes[qr.ID] = &stored
	return nil
}

// GetByID retrieves a QR code by id
func (m *MemoryQRCodeStore) GetByID(_ context.Context, id int64) (*models.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	qr, ok := m.codes[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *qr
	return &copied, nil
}

// ListByUser retrieves QR codes owned by a user in id order
func (m *MemoryQRCodeStore) ListByUser(_ context.Context, userID int64) ([]*models.QRCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var codes []*models.QRCode
	for id := int64(1); id < m.nextID; id++ {
		if qr, ok := m.codes[id]; ok && qr.UserID == userID {
			copied := *qr
			codes = append(codes, &copied)
		}
	}
	return codes, nil
}

// Update persists content, type, logo and folder assignment
func (m *MemoryQRCodeStore) Update(_ context.Context, qr *models.QRCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.codes[qr.ID]
	if !ok {
		return ErrNotFound
	}

	qr.UpdatedAt = time.Now()
	stored.Content = qr.Content
	stored.Type = qr.Type
	stored.Logo = qr.Logo
	stored.FolderID = qr.FolderID
	stored.UpdatedAt = qr.UpdatedAt
	return nil
}

// UpdateFolder reassigns (or clears, with nil) the folder of a QR code
func (m *MemoryQRCodeStore) UpdateFolder(_ context.Context, id int64, folderID *int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.codes[id]
	if !ok {
		return ErrNotFound
	}
	stored.FolderID = folderID
	stored.UpdatedAt = time.Now()
	return nil
}

// Delete removes a QR code. Scans recorded against it are untouched.
func (m *MemoryQRCodeStore) Delete(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.codes[id]; !ok {
		return ErrNotFound
	}
	delete(m.codes, id)
	return nil
}

// MemoryScanStore is an in-memory append-only scan event store
type MemoryScanStore struct {
	mu     sync.Mutex
	scans  []*models.Scan
	nextID int64
	lastTS time.Time
}

// NewMemoryScanStore creates an empty in-memory scan store
func NewMemoryScanStore() *MemoryScanStore {
	return &MemoryScanStore{nextID: 1}
}

// Append records one scan event with a unique id and a timestamp that
// never decreases in insertion order.
func (m *MemoryScanStore) Append(_ context.Context, qrID int64, device, location string) (*models.Scan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ts := time.Now()
	if ts.Before(m.lastTS) {
		ts = m.lastTS
	}
	m.lastTS = ts

	scan := &models.Scan{
		ID:        m.nextID,
		QRID:      qrID,
		Timestamp: ts,
		Device:    device,
		Location:  location,
	}
	m.nextID++
	m.scans = append(m.scans, scan)

	copied := *scan
	return &copied, nil
}

// ListByQR retrieves scan events for a QR code in insertion order
func (m *MemoryScanStore) ListByQR(_ context.Context, qrID int64) ([]*models.Scan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var scans []*models.Scan
	for _, scan := range m.scans {
		if scan.QRID == qrID {
			copied := *scan
			scans = append(scans, &copied)
		}
	}
	return scans, nil
}
