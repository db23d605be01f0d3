package keys

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vuzo-ai/vzdash/internal/gateway"
	"github.com/vuzo-ai/vzdash/internal/model"
)

func createHandler(t *testing.T, key, prefix string, gotName *string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api-keys" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decoding body: %v", err)
		}
		*gotName = body.Name

		resp := map[string]string{
			"id":         "k1",
			"name":       body.Name,
			"key":        key,
			"key_prefix": prefix,
			"created_at": "2025-06-15T10:00:00Z",
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func TestCreateBlankNameDefaults(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(createHandler(t,
		"vz-sk_0a1b2c3d4e5f67890a1b2c3d4e5f67890a1b2c3d4e5f6789", "vz-sk_0a", &gotName))
	defer srv.Close()

	m := NewManager(gateway.NewClient(srv.URL, nil))
	for _, name := range []string{"", "   "} {
		created, err := m.Create(context.Background(), name)
		if err != nil {
			t.Fatalf("Create(%q): %v", name, err)
		}
		if gotName != DefaultName {
			t.Errorf("Create(%q) sent name %q, want %q", name, gotName, DefaultName)
		}
		if created.Key == "" {
			t.Error("secret missing from reveal")
		}
	}
}

func TestCreateKeepsExplicitName(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(createHandler(t,
		"vz-sk_0a1b2c3d4e5f67890a1b2c3d4e5f67890a1b2c3d4e5f6789", "vz-sk_0a", &gotName))
	defer srv.Close()

	m := NewManager(gateway.NewClient(srv.URL, nil))
	if _, err := m.Create(context.Background(), "  ci runner  "); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if gotName != "ci runner" {
		t.Errorf("sent name %q, want trimmed %q", gotName, "ci runner")
	}
}

func TestCreateRejectsInconsistentPrefix(t *testing.T) {
	var gotName string
	srv := httptest.NewServer(createHandler(t,
		"vz-sk_0a1b2c3d4e5f67890a1b2c3d4e5f67890a1b2c3d4e5f6789", "vz-sk_ff", &gotName))
	defer srv.Close()

	m := NewManager(gateway.NewClient(srv.URL, nil))
	_, err := m.Create(context.Background(), "bad")
	var anomaly *model.Anomaly
	if !errors.As(err, &anomaly) {
		t.Fatalf("error = %v, want Anomaly", err)
	}
}

func TestRevokeEmptyID(t *testing.T) {
	m := NewManager(gateway.NewClient("http://localhost:0", nil))
	err := m.Revoke(context.Background(), "  ")
	var verr *gateway.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api-keys/k1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	m := NewManager(gateway.NewClient(srv.URL, nil))
	for i := 0; i < 2; i++ {
		if err := m.Revoke(context.Background(), "k1"); err != nil {
			t.Fatalf("Revoke #%d: %v", i+1, err)
		}
	}
}

func TestListPassesThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api-keys" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[
			{"id":"k1","name":"Default","key_prefix":"vz-sk_0a","is_active":true,
			 "rate_limit_rpm":60,"created_at":"2025-06-15T10:00:00Z","last_used_at":null},
			{"id":"k2","name":"old","key_prefix":"vz-sk_ff","is_active":false,
			 "rate_limit_rpm":60,"created_at":"2025-05-01T10:00:00Z","last_used_at":"2025-05-20T08:00:00Z"}
		]`))
	}))
	defer srv.Close()

	m := NewManager(gateway.NewClient(srv.URL, nil))
	list, err := m.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("keys = %d, want 2", len(list))
	}
	if list[0].LastUsedAt != nil {
		t.Error("unused key has non-nil LastUsedAt")
	}
	if list[1].IsActive {
		t.Error("revoked key reported active")
	}
}
