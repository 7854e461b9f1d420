package nextcloud

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFromEnvMissingVariables(t *testing.T) {
	t.Setenv(EnvHost, "")
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvPassword, "")

	if _, err := FromEnv(); err == nil {
		t.Fatal("Expected configuration error when environment is empty")
	}

	t.Setenv(EnvHost, "https://cloud.example.com")
	if _, err := FromEnv(); err == nil {
		t.Fatal("Expected configuration error when credentials are missing")
	}
}

func TestFromEnvInvalidHostURL(t *testing.T) {
	t.Setenv(EnvHost, "cloud.example.com")
	t.Setenv(EnvUsername, "alice")
	t.Setenv(EnvPassword, "secret")

	if _, err := FromEnv(); err == nil {
		t.Fatal("Expected configuration error for host URL without scheme")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvHost, "https://cloud.example.com/")
	t.Setenv(EnvUsername, "alice")
	t.Setenv(EnvPassword, "secret")

	client, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv returned error: %v", err)
	}
	defer client.Close()

	if client.Host() != "https://cloud.example.com" {
		t.Errorf("Expected trailing slash to be trimmed, got %q", client.Host())
	}

	username, err := client.Username(context.Background())
	if err != nil {
		t.Fatalf("Username returned error: %v", err)
	}
	if username != "alice" {
		t.Errorf("Expected username alice, got %q", username)
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New("https://cloud.example.com", "", "secret"); err == nil {
		t.Error("Expected error for empty username")
	}
	if _, err := New("https://cloud.example.com", "alice", ""); err == nil {
		t.Error("Expected error for empty password")
	}
	if _, err := NewWithToken("https://cloud.example.com", ""); err == nil {
		t.Error("Expected error for empty token")
	}
}

func TestCapabilities(t *testing.T) {
	var gotAuth, gotOCSHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ocs/v2.php/cloud/capabilities" {
			t.Errorf("Unexpected path %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotOCSHeader = r.Header.Get("OCS-APIRequest")

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ocs": map[string]any{
				"meta": map[string]any{"status": "ok", "statuscode": 200},
				"data": map[string]any{
					"version": map[string]any{
						"major": 30, "minor": 0, "micro": 1, "string": "30.0.1",
					},
					"capabilities": map[string]any{
						"notes": map[string]any{"api_version": []string{"1.3"}},
					},
				},
			},
		})
	}))
	defer srv.Close()

	client, err := New(srv.URL, "alice", "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer client.Close()

	caps, err := client.Capabilities(context.Background())
	if err != nil {
		t.Fatalf("Capabilities returned error: %v", err)
	}

	if caps.Version.String != "30.0.1" {
		t.Errorf("Expected version 30.0.1, got %q", caps.Version.String)
	}
	if _, ok := caps.Capabilities["notes"]; !ok {
		t.Error("Expected notes capability fragment")
	}
	if gotAuth == "" {
		t.Error("Expected basic auth header on the request")
	}
	if gotOCSHeader != "true" {
		t.Errorf("Expected OCS-APIRequest header, got %q", gotOCSHeader)
	}
}

func TestBearerTokenAuthentication(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("Expected bearer token header, got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ocs": map[string]any{
				"meta": map[string]any{"status": "ok"},
				"data": map[string]any{"id": "alice"},
			},
		})
	}))
	defer srv.Close()

	client, err := NewWithToken(srv.URL, "test-token")
	if err != nil {
		t.Fatalf("NewWithToken returned error: %v", err)
	}
	defer client.Close()

	username, err := client.Username(context.Background())
	if err != nil {
		t.Fatalf("Username returned error: %v", err)
	}
	if username != "alice" {
		t.Errorf("Expected resolved username alice, got %q", username)
	}

	// Second call must use the cached name, not another request
	username, err = client.Username(context.Background())
	if err != nil {
		t.Fatalf("Username (cached) returned error: %v", err)
	}
	if username != "alice" {
		t.Errorf("Expected cached username alice, got %q", username)
	}
}

func TestAPIErrorFromStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := New(srv.URL, "alice", "secret")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer client.Close()

	_, err = client.GetNote(context.Background(), 42)
	if err == nil {
		t.Fatal("Expected error for 404 response")
	}
	if !IsNotFound(err) {
		t.Errorf("Expected IsNotFound to match, got %v", err)
	}
}
