package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/nextcloud-mcp/internal/config"
)

func newExchangeSettings(tokenURL string) *config.Settings {
	return &config.Settings{
		TokenExchangeURL:          tokenURL,
		TokenExchangeClientID:     "mcp-server",
		TokenExchangeClientSecret: "client-secret",
		TokenExchangeAudience:     "nextcloud",
	}
}

func TestNewExchangerRequiresConfiguration(t *testing.T) {
	_, err := NewExchanger(&config.Settings{})
	require.ErrorContains(t, err, "TOKEN_EXCHANGE_URL")

	_, err = NewExchanger(&config.Settings{TokenExchangeURL: "https://idp.example.com/token"})
	require.ErrorContains(t, err, "TOKEN_EXCHANGE_CLIENT_ID")
}

func TestExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())

		assert.Equal(t, grantTypeTokenExchange, r.PostForm.Get("grant_type"))
		assert.Equal(t, "inbound-token", r.PostForm.Get("subject_token"))
		assert.Equal(t, accessTokenType, r.PostForm.Get("subject_token_type"))
		assert.Equal(t, "nextcloud", r.PostForm.Get("audience"))

		clientID, clientSecret, ok := r.BasicAuth()
		assert.True(t, ok, "expected client_secret_basic authentication")
		assert.Equal(t, "mcp-server", clientID)
		assert.Equal(t, "client-secret", clientSecret)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token":      "nextcloud-token",
			"issued_token_type": accessTokenType,
			"token_type":        "Bearer",
			"expires_in":        3600,
		})
	}))
	defer srv.Close()

	exchanger, err := NewExchanger(newExchangeSettings(srv.URL))
	require.NoError(t, err)

	token, err := exchanger.Exchange(context.Background(), "inbound-token")
	require.NoError(t, err)
	assert.Equal(t, "nextcloud-token", token)
}

func TestExpiryFromJWT(t *testing.T) {
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"exp": exp.Unix(),
	}).SignedString([]byte("test-key"))
	require.NoError(t, err)

	assert.True(t, expiryFromJWT(signed).Equal(exp))
}

func TestExpiryFromJWTOpaqueToken(t *testing.T) {
	assert.True(t, expiryFromJWT("opaque-token").IsZero())
}

func TestExchangeRejectsEmptySubjectToken(t *testing.T) {
	exchanger, err := NewExchanger(newExchangeSettings("https://idp.example.com/token"))
	require.NoError(t, err)

	_, err = exchanger.Exchange(context.Background(), "")
	require.ErrorContains(t, err, "subject token")
}

func TestExchangeProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	exchanger, err := NewExchanger(newExchangeSettings(srv.URL))
	require.NoError(t, err)

	_, err = exchanger.Exchange(context.Background(), "expired-token")
	require.ErrorContains(t, err, "status 400")
	assert.ErrorContains(t, err, "invalid_grant")
}

func TestExchangeEmptyAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"token_type": "Bearer"})
	}))
	defer srv.Close()

	exchanger, err := NewExchanger(newExchangeSettings(srv.URL))
	require.NoError(t, err)

	_, err = exchanger.Exchange(context.Background(), "inbound-token")
	require.ErrorContains(t, err, "no access token")
}
