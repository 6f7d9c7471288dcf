package api

import (
	"net/http"
	"testing"

	"github.com/qr-tracker/internal/models"
)

func TestCreateAndListFolders(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "alice")

	for _, name := range []string{"Work", "Personal"} {
		rec := env.do(t, "POST", "/api/folders", token, map[string]string{"name": name})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create folder %q returned %d", name, rec.Code)
		}
	}

	rec := env.do(t, "GET", "/api/folders", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d", rec.Code)
	}

	var folders []models.Folder
	decode(t, rec, &folders)
	if len(folders) != 2 {
		t.Fatalf("got %d folders, want 2", len(folders))
	}
	if folders[0].Name != "Work" || folders[1].Name != "Personal" {
		t.Errorf("unexpected folder order: %+v", folders)
	}
}

func TestCreateFolderRequiresName(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "alice")

	rec := env.do(t, "POST", "/api/folders", token, map[string]string{"name": ""})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("empty name returned %d, want 400", rec.Code)
	}
}

func TestFoldersScopedToOwner(t *testing.T) {
	env := newTestEnv(t)
	alice := env.registerAndLogin(t, "alice")
	bob := env.registerAndLogin(t, "bob")

	env.do(t, "POST", "/api/folders", alice, map[string]string{"name": "Alice's"})

	rec := env.do(t, "GET", "/api/folders", bob, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list returned %d", rec.Code)
	}

	var folders []models.Folder
	decode(t, rec, &folders)
	if len(folders) != 0 {
		t.Fatalf("bob sees %d folders, want 0", len(folders))
	}
}
