package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/qr-tracker/internal/storage"
)

// fakeSessions is a map-backed SessionStore for service tests
type fakeSessions struct {
	mu       sync.Mutex
	sessions map[string]int64
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{sessions: make(map[string]int64)}
}

func (f *fakeSessions) Create(_ context.Context, userID int64) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := uuid.NewString()
	f.sessions[token] = userID
	return token, nil
}

func (f *fakeSessions) Get(_ context.Context, token string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	userID, ok := f.sessions[token]
	if !ok {
		return 0, storage.ErrNotFound
	}
	return userID, nil
}

func (f *fakeSessions) Delete(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, token)
	return nil
}

func newAuthFixture() *AuthService {
	return NewAuthService(storage.NewMemoryUserStore(), newFakeSessions())
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := newAuthFixture()

	user, err := svc.Register(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID == 0 {
		t.Error("user id not assigned")
	}
	if user.PasswordHash == "s3cret" || user.PasswordHash == "" {
		t.Error("password stored without hashing")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	_, err := svc.Register(ctx, "", "pw")
	assertServiceErrorCode(t, err, "INVALID_PARAMETER")

	_, err = svc.Register(ctx, "alice", "")
	assertServiceErrorCode(t, err, "INVALID_PARAMETER")

	if _, err := svc.Register(ctx, "alice", "pw"); err != nil {
		t.Fatal(err)
	}
	_, err = svc.Register(ctx, "alice", "other")
	assertServiceErrorCode(t, err, "USERNAME_TAKEN")
}

func TestLoginRoundTrip(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatal(err)
	}

	token, user, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty session token")
	}
	if user.ID != registered.ID {
		t.Errorf("user id = %d, want %d", user.ID, registered.ID)
	}

	userID, err := svc.Authenticate(ctx, token)
	if err != nil {
		t.Fatal(err)
	}
	if userID != registered.ID {
		t.Errorf("authenticated id = %d, want %d", userID, registered.ID)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatal(err)
	}

	_, _, err := svc.Login(ctx, "alice", "wrong")
	assertServiceErrorCode(t, err, "INVALID_CREDENTIALS")

	_, _, err = svc.Login(ctx, "nobody", "s3cret")
	assertServiceErrorCode(t, err, "INVALID_CREDENTIALS")
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newAuthFixture()
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatal(err)
	}
	token, _, err := svc.Login(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatal(err)
	}

	_, err = svc.Authenticate(ctx, token)
	assertServiceErrorCode(t, err, "UNAUTHORIZED")
}
