package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/teemow/nextcloud-mcp/internal/config"
)

// grantTypeTokenExchange is the RFC 8693 token exchange grant type.
const grantTypeTokenExchange = "urn:ietf:params:oauth:grant-type:token-exchange"

// accessTokenType identifies the subject token as an access token.
const accessTokenType = "urn:ietf:params:oauth:token-type:access_token"

// Exchanger performs RFC 8693 token exchange against an identity
// provider's token endpoint. The inbound MCP-audience token is traded for
// one scoped to the Nextcloud audience, so the upstream token never
// reaches Nextcloud directly.
type Exchanger struct {
	tokenURL     string
	clientID     string
	clientSecret string
	audience     string
	httpc        *http.Client
}

// NewExchanger creates an exchanger from the process settings. It fails
// when the exchange endpoint or client credentials are missing.
func NewExchanger(settings *config.Settings) (*Exchanger, error) {
	if settings.TokenExchangeURL == "" {
		return nil, fmt.Errorf("token exchange requires TOKEN_EXCHANGE_URL")
	}
	if settings.TokenExchangeClientID == "" || settings.TokenExchangeClientSecret == "" {
		return nil, fmt.Errorf("token exchange requires TOKEN_EXCHANGE_CLIENT_ID and TOKEN_EXCHANGE_CLIENT_SECRET")
	}
	return &Exchanger{
		tokenURL:     settings.TokenExchangeURL,
		clientID:     settings.TokenExchangeClientID,
		clientSecret: settings.TokenExchangeClientSecret,
		audience:     settings.TokenExchangeAudience,
		httpc:        &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// Exchange trades subjectToken for a Nextcloud-audience access token and
// returns the new token string. It implements TokenExchanger.
func (e *Exchanger) Exchange(ctx context.Context, subjectToken string) (string, error) {
	token, err := e.exchange(ctx, subjectToken)
	if err != nil {
		return "", err
	}
	return token.AccessToken, nil
}

func (e *Exchanger) exchange(ctx context.Context, subjectToken string) (*oauth2.Token, error) {
	if subjectToken == "" {
		return nil, fmt.Errorf("token exchange requires a subject token")
	}

	form := url.Values{}
	form.Set("grant_type", grantTypeTokenExchange)
	form.Set("subject_token", subjectToken)
	form.Set("subject_token_type", accessTokenType)
	form.Set("audience", e.audience)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token exchange request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(e.clientID, e.clientSecret)

	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("token exchange rejected with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload struct {
		AccessToken     string `json:"access_token"`
		IssuedTokenType string `json:"issued_token_type"`
		TokenType       string `json:"token_type"`
		ExpiresIn       int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode token exchange response: %w", err)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("token exchange response contains no access token")
	}

	token := &oauth2.Token{
		AccessToken: payload.AccessToken,
		TokenType:   payload.TokenType,
	}
	if payload.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	} else {
		token.Expiry = expiryFromJWT(payload.AccessToken)
	}
	return token, nil
}

// expiryFromJWT recovers the expiry from the token's exp claim when the
// token endpoint omits expires_in. The token was just issued by the trusted
// exchange endpoint, so signature verification is not repeated here. Returns
// the zero time for opaque tokens.
func expiryFromJWT(accessToken string) time.Time {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
