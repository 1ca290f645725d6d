package apiclient

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := &FileTokenStore{Path: path}

	token, err := store.Token()
	if err != nil {
		t.Fatalf("Token on missing file failed: %v", err)
	}
	if token != "" {
		t.Errorf("missing file should read as logged out, got %q", token)
	}

	if err := store.Save("jwt-abc"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	token, err = store.Token()
	if err != nil {
		t.Fatalf("Token failed: %v", err)
	}
	if token != "jwt-abc" {
		t.Errorf("Token = %q, want jwt-abc", token)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("token file mode = %v, want 0600", info.Mode().Perm())
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	token, err = store.Token()
	if err != nil {
		t.Fatalf("Token after clear failed: %v", err)
	}
	if token != "" {
		t.Errorf("Token after clear = %q, want empty", token)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}
