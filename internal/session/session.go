// Package session stores the dashboard's bearer session on disk and serves
// it to the gateway client. The session is owned by the auth flow (login /
// logout); the data layer only reads it.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const envToken = "VUZO_SESSION_TOKEN"

// Session is an opaque bearer credential with an expiry.
type Session struct {
	Token     string    `toml:"token"`
	ExpiresAt time.Time `toml:"expires_at"`
}

// Expired reports whether the session is past its expiry. A zero expiry
// means the server never told us, so we keep sending the token.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store reads and writes the session file and implements
// gateway.SessionProvider. An absent or expired session reads as anonymous.
type Store struct {
	path string
}

// NewStore returns a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Token implements gateway.SessionProvider. The VUZO_SESSION_TOKEN env var
// wins over the stored session; tokens are re-read on every call so a fresh
// login takes effect without restarting anything.
func (s *Store) Token() (string, bool) {
	if tok := os.Getenv(envToken); tok != "" {
		return tok, true
	}
	sess, err := s.Load()
	if err != nil || sess.Token == "" || sess.Expired(time.Now()) {
		return "", false
	}
	return sess.Token, true
}

// Load reads the session file. A missing file is not an error — it returns
// an empty session.
func (s *Store) Load() (Session, error) {
	var sess Session
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return sess, nil
		}
		return sess, fmt.Errorf("reading session: %w", err)
	}
	if err := toml.Unmarshal(data, &sess); err != nil {
		return sess, fmt.Errorf("parsing session: %w", err)
	}
	return sess, nil
}

// Save writes the session with owner-only permissions.
func (s *Store) Save(sess Session) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(sess)
}

// Clear removes the stored session. Clearing an absent session is a no-op.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session: %w", err)
	}
	return nil
}
