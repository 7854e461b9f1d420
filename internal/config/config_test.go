package config

import (
	"testing"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("NEXTCLOUD_HOST", "")
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")

	s, err := loadFromEnv()
	if err != nil {
		t.Fatalf("loadFromEnv returned error: %v", err)
	}

	if s.ListenHost != "0.0.0.0" {
		t.Errorf("Expected default listen host 0.0.0.0, got %q", s.ListenHost)
	}
	if s.ListenPort != 8081 {
		t.Errorf("Expected default port 8081, got %d", s.ListenPort)
	}
	if s.EnableTokenExchange {
		t.Error("Expected token exchange to be disabled by default")
	}
	if s.ListenAddr() != "0.0.0.0:8081" {
		t.Errorf("Expected listen addr 0.0.0.0:8081, got %q", s.ListenAddr())
	}
}

func TestLoadFromEnvStaticCredentials(t *testing.T) {
	t.Setenv("NEXTCLOUD_HOST", "https://cloud.example.com")
	t.Setenv("NEXTCLOUD_USERNAME", "alice")
	t.Setenv("NEXTCLOUD_PASSWORD", "secret")
	t.Setenv("ENABLE_TOKEN_EXCHANGE", "true")
	t.Setenv("PORT", "9000")

	s, err := loadFromEnv()
	if err != nil {
		t.Fatalf("loadFromEnv returned error: %v", err)
	}

	if s.NextcloudHost != "https://cloud.example.com" {
		t.Errorf("Unexpected host: %q", s.NextcloudHost)
	}
	if s.NextcloudUsername != "alice" || s.NextcloudPassword != "secret" {
		t.Errorf("Unexpected credentials: %q / %q", s.NextcloudUsername, s.NextcloudPassword)
	}
	if !s.EnableTokenExchange {
		t.Error("Expected token exchange to be enabled")
	}
	if s.ListenPort != 9000 {
		t.Errorf("Expected port 9000, got %d", s.ListenPort)
	}
}

func TestLoadFromEnvInvalidHost(t *testing.T) {
	t.Setenv("NEXTCLOUD_HOST", "cloud.example.com")

	if _, err := loadFromEnv(); err == nil {
		t.Error("Expected error for host URL without scheme")
	}
}

func TestValidateHostURL(t *testing.T) {
	tests := []struct {
		name    string
		host    string
		wantErr bool
	}{
		{name: "https URL", host: "https://cloud.example.com", wantErr: false},
		{name: "http URL", host: "http://localhost:8080", wantErr: false},
		{name: "missing scheme", host: "cloud.example.com", wantErr: true},
		{name: "unsupported scheme", host: "ftp://cloud.example.com", wantErr: true},
		{name: "scheme only", host: "https://", wantErr: true},
		{name: "empty", host: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHostURL(tt.host)
			if tt.wantErr && err == nil {
				t.Errorf("ValidateHostURL(%q) = nil, want error", tt.host)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateHostURL(%q) = %v, want nil", tt.host, err)
			}
		})
	}
}

func TestValidateListenPort(t *testing.T) {
	s := &Settings{ListenHost: "0.0.0.0", ListenPort: 0}
	if err := s.Validate(); err == nil {
		t.Error("Expected error for port 0")
	}

	s.ListenPort = 70000
	if err := s.Validate(); err == nil {
		t.Error("Expected error for port above 65535")
	}
}
