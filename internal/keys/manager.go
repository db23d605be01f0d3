// Package keys manages the API key lifecycle: list, create, revoke. The
// full secret of a freshly created key is visible exactly once, as the
// direct return value of Create, and is never held anywhere else.
package keys

import (
	"context"
	"strings"

	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/model"
)

// DefaultName labels keys created without a name. Creation never fails
// purely because the user left the name blank.
const DefaultName = "Default"

// Manager wraps the gateway's key endpoints with the lifecycle contract.
type Manager struct {
	client *gateway.Client
}

// NewManager creates a key manager over the given client.
func NewManager(client *gateway.Client) *Manager {
	return &Manager{client: client}
}

// List returns every key on the account, active and revoked. Ordering is
// whatever the server returned.
func (m *Manager) List(ctx context.Context) ([]model.APIKey, error) {
	return m.client.ListKeys(ctx)
}

// Create mints a new key and returns the one-time reveal. The manager keeps
// no reference to the secret after returning; if the caller drops it without
// the user copying it, it is gone for good — the server stores only a hash
// and the prefix.
func (m *Manager) Create(ctx context.Context, name string) (*model.CreatedKey, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultName
	}

	created, err := m.client.CreateKey(ctx, name)
	if err != nil {
		return nil, err
	}

	// The prefix is the display-safe fragment of the secret. A response
	// where it isn't literally a prefix of the key means the server handed
	// us inconsistent credential material.
	if !strings.HasPrefix(created.Key, created.KeyPrefix) || created.KeyPrefix == "" {
		return nil, &model.Anomaly{
			Field:  "created key " + created.ID,
			Detail: "key_prefix is not a prefix of the returned secret",
		}
	}

	return created, nil
}

// Revoke deactivates a key permanently. There is no un-revoke; revoking an
// already-inactive key is idempotent on the server and returns no error.
// Callers are expected to gate this behind explicit confirmation.
func (m *Manager) Revoke(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &gateway.ValidationError{Field: "key id", Reason: "must not be empty"}
	}
	return m.client.RevokeKey(ctx, id)
}
