package service

import (
	"errors"
	"testing"

	"github.com/qr-tracker/internal/types"
)

// assertServiceErrorCode fails the test unless err is a ServiceError with
// the given code.
func assertServiceErrorCode(t *testing.T, err error, code string) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}

	var serviceErr *types.ServiceError
	if !errors.As(err, &serviceErr) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if serviceErr.Code != code {
		t.Fatalf("error code = %s, want %s", serviceErr.Code, code)
	}
}
