package nextcloud

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/studio-b12/gowebdav"

	"github.com/teemow/nextcloud-mcp/internal/config"
)

// Environment variables for static-credential client construction.
const (
	EnvHost     = "NEXTCLOUD_HOST"
	EnvUsername = "NEXTCLOUD_USERNAME"
	EnvPassword = "NEXTCLOUD_PASSWORD"
)

const davRoot = "remote.php/dav"

// Client is a Nextcloud API client bound to a host URL and a credential.
// It speaks the OCS and app REST APIs directly and delegates WebDAV
// (files, CalDAV, CardDAV collections) to gowebdav.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client
	dav     *gowebdav.Client

	mu       sync.Mutex
	username string // resolved lazily for token-authenticated clients
}

// New creates a client authenticated with username and password
// (typically a Nextcloud app password).
func New(host, username, password string) (*Client, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("nextcloud: username and password are required")
	}

	base, err := parseHost(host)
	if err != nil {
		return nil, err
	}

	dav := gowebdav.NewClient(base.JoinPath(davRoot).String(), username, password)

	return &Client{
		baseURL: base,
		httpc: &http.Client{
			Transport: &basicAuthTransport{username: username, password: password},
			Timeout:   30 * time.Second,
		},
		dav:      dav,
		username: username,
	}, nil
}

// NewWithToken creates a client authenticated with an OAuth bearer token.
// The username is resolved lazily from the server when a DAV path needs it.
func NewWithToken(host, token string) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("nextcloud: bearer token is required")
	}

	base, err := parseHost(host)
	if err != nil {
		return nil, err
	}

	dav := gowebdav.NewClient(base.JoinPath(davRoot).String(), "", "")
	dav.SetHeader("Authorization", "Bearer "+token)

	return &Client{
		baseURL: base,
		httpc: &http.Client{
			Transport: &bearerTransport{token: token},
			Timeout:   30 * time.Second,
		},
		dav: dav,
	}, nil
}

// FromEnv creates a client from the NEXTCLOUD_HOST, NEXTCLOUD_USERNAME and
// NEXTCLOUD_PASSWORD environment variables. It fails with a configuration
// error if any of them is absent or the host URL is malformed.
func FromEnv() (*Client, error) {
	host := os.Getenv(EnvHost)
	username := os.Getenv(EnvUsername)
	password := os.Getenv(EnvPassword)

	var missing []string
	if host == "" {
		missing = append(missing, EnvHost)
	}
	if username == "" {
		missing = append(missing, EnvUsername)
	}
	if password == "" {
		missing = append(missing, EnvPassword)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("nextcloud: missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return New(host, username, password)
}

func parseHost(host string) (*url.URL, error) {
	if err := config.ValidateHostURL(host); err != nil {
		return nil, fmt.Errorf("nextcloud: invalid host URL %q: %w", host, err)
	}
	base, err := url.Parse(strings.TrimRight(host, "/"))
	if err != nil {
		return nil, fmt.Errorf("nextcloud: invalid host URL %q: %w", host, err)
	}
	return base, nil
}

// Host returns the base URL the client is bound to.
func (c *Client) Host() string {
	return c.baseURL.String()
}

// Close releases transport resources held by the client. It must be called
// when a per-request client is no longer needed.
func (c *Client) Close() {
	c.httpc.CloseIdleConnections()
}

// Username returns the account name the client acts as. For token
// authenticated clients the name is fetched from the server on first use.
func (c *Client) Username(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.username != "" {
		return c.username, nil
	}

	var data struct {
		ID string `json:"id"`
	}
	if err := c.ocsGet(ctx, "ocs/v2.php/cloud/user", nil, &data); err != nil {
		return "", fmt.Errorf("failed to resolve account name: %w", err)
	}
	if data.ID == "" {
		return "", fmt.Errorf("server returned an empty account name")
	}

	c.username = data.ID
	return c.username, nil
}

// basicAuthTransport adds HTTP basic authentication to every request.
type basicAuthTransport struct {
	username string
	password string
	next     http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.SetBasicAuth(t.username, t.password)
	return t.transport().RoundTrip(req)
}

func (t *basicAuthTransport) transport() http.RoundTripper {
	if t.next != nil {
		return t.next
	}
	return http.DefaultTransport
}

// bearerTransport adds a bearer token to every request.
type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.transport().RoundTrip(req)
}

func (t *bearerTransport) transport() http.RoundTripper {
	if t.next != nil {
		return t.next
	}
	return http.DefaultTransport
}

// do issues a request against a path relative to the client's base URL.
func (c *Client) do(ctx context.Context, method, relPath string, query url.Values, body io.Reader, header http.Header) (*http.Response, error) {
	u := *c.baseURL
	u.Path = path.Join(u.Path, relPath)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nextcloud request failed: %w", err)
	}
	return resp, nil
}

// doJSON issues a request and decodes a JSON response body into out.
// Non-2xx responses are turned into *APIError.
func (c *Client) doJSON(ctx context.Context, method, relPath string, query url.Values, reqBody, out any) error {
	var body io.Reader
	header := http.Header{}
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = strings.NewReader(string(data))
		header.Set("Content-Type", "application/json")
	}

	resp, err := c.do(ctx, method, relPath, query, body, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// ocsEnvelope is the standard wrapper of OCS API responses.
type ocsEnvelope struct {
	OCS struct {
		Meta struct {
			Status     string `json:"status"`
			StatusCode int    `json:"statuscode"`
			Message    string `json:"message"`
		} `json:"meta"`
		Data json.RawMessage `json:"data"`
	} `json:"ocs"`
}

// ocsGet issues a GET against an OCS endpoint and decodes the data payload.
func (c *Client) ocsGet(ctx context.Context, relPath string, query url.Values, out any) error {
	return c.ocsDo(ctx, http.MethodGet, relPath, query, nil, out)
}

// ocsDo issues a request against an OCS endpoint. OCS requires the
// OCS-APIRequest header; format=json selects the JSON envelope.
func (c *Client) ocsDo(ctx context.Context, method, relPath string, query url.Values, form url.Values, out any) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("format", "json")

	header := http.Header{}
	header.Set("OCS-APIRequest", "true")

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
		header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.do(ctx, method, relPath, query, body, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp)
	}

	var envelope ocsEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("failed to decode OCS response: %w", err)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(envelope.OCS.Data, out); err != nil {
		return fmt.Errorf("failed to decode OCS data: %w", err)
	}
	return nil
}

// Capabilities fetches the capability document of the Nextcloud host.
func (c *Client) Capabilities(ctx context.Context) (*Capabilities, error) {
	var caps Capabilities
	if err := c.ocsGet(ctx, "ocs/v2.php/cloud/capabilities", nil, &caps); err != nil {
		return nil, fmt.Errorf("failed to fetch capabilities: %w", err)
	}
	return &caps, nil
}
