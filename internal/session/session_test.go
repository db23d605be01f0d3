package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.toml"))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := tempStore(t)
	want := Session{
		Token:     "sess_abc123",
		ExpiresAt: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := store.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Token != want.Token || !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestSessionFilePermissions(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(Session{Token: "sess_abc123"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	info, err := os.Stat(store.path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("session file mode = %o, want 600", perm)
	}
}

func TestMissingFileReadsAsAnonymous(t *testing.T) {
	store := tempStore(t)
	sess, err := store.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sess.Token != "" {
		t.Errorf("missing file yielded token %q", sess.Token)
	}
	if _, ok := store.Token(); ok {
		t.Error("missing session reported a token")
	}
}

func TestExpiredSessionReadsAsAnonymous(t *testing.T) {
	store := tempStore(t)
	err := store.Save(Session{
		Token:     "sess_stale",
		ExpiresAt: time.Now().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok := store.Token(); ok {
		t.Error("expired session still served a token")
	}
}

func TestZeroExpiryNeverExpires(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(Session{Token: "sess_forever"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	tok, ok := store.Token()
	if !ok || tok != "sess_forever" {
		t.Errorf("Token = %q, %v", tok, ok)
	}
}

func TestEnvTokenWins(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(Session{Token: "sess_file"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	t.Setenv("VUZO_SESSION_TOKEN", "sess_env")

	tok, ok := store.Token()
	if !ok || tok != "sess_env" {
		t.Errorf("Token = %q, %v, want env override", tok, ok)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	store := tempStore(t)
	if err := store.Save(Session{Token: "sess_abc"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := store.Clear(); err != nil {
			t.Fatalf("Clear #%d: %v", i+1, err)
		}
	}
	if _, ok := store.Token(); ok {
		t.Error("cleared session still served a token")
	}
}
