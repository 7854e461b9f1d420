package logging

import (
	"strings"
	"testing"
)

func TestAnonymizeUser(t *testing.T) {
	if AnonymizeUser("") != "" {
		t.Error("Expected empty string for empty username")
	}

	hash := AnonymizeUser("alice")
	if !strings.HasPrefix(hash, "user:") {
		t.Errorf("Expected user: prefix, got %q", hash)
	}
	if strings.Contains(hash, "alice") {
		t.Error("Anonymized user must not contain the raw username")
	}

	// Stable across calls for correlation
	if AnonymizeUser("alice") != hash {
		t.Error("Expected stable hash for the same username")
	}

	// Distinct users produce distinct hashes
	if AnonymizeUser("bob") == hash {
		t.Error("Expected different hashes for different usernames")
	}
}

func TestSanitizeToken(t *testing.T) {
	if SanitizeToken("") != "<empty>" {
		t.Errorf("Expected <empty> for empty token, got %q", SanitizeToken(""))
	}

	sanitized := SanitizeToken("eyJhbGciOiJSUzI1NiJ9.payload.sig")
	if strings.Contains(sanitized, "eyJ") {
		t.Error("Sanitized token must not contain token content")
	}
	if !strings.Contains(sanitized, "chars") {
		t.Errorf("Expected length indicator, got %q", sanitized)
	}
}

func TestSanitizeCredential(t *testing.T) {
	if SanitizeCredential("") != "<empty>" {
		t.Errorf("Expected <empty> for empty credential")
	}
	if SanitizeCredential("hunter2") != "<redacted>" {
		t.Errorf("Expected <redacted>, got %q", SanitizeCredential("hunter2"))
	}
}

func TestErrWithNil(t *testing.T) {
	attr := Err(nil)
	// Empty group is omitted by slog; the key must be empty
	if attr.Key != "" {
		t.Errorf("Expected empty key for nil error, got %q", attr.Key)
	}
}
