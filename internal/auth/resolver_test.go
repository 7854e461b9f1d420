package auth

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teemow/nextcloud-mcp/internal/config"
	"github.com/teemow/nextcloud-mcp/internal/nextcloud"
)

// countingExchanger records exchange calls and returns a derived token.
type countingExchanger struct {
	calls atomic.Int64
	err   error
}

func (e *countingExchanger) Exchange(_ context.Context, subjectToken string) (string, error) {
	e.calls.Add(1)
	if e.err != nil {
		return "", e.err
	}
	return "exchanged-" + subjectToken, nil
}

func snapshotEnviron() []string {
	env := os.Environ()
	sort.Strings(env)
	return env
}

func TestResolveStaticReturnsSharedInstance(t *testing.T) {
	shared, err := nextcloud.New("https://cloud.example.com", "service", "app-password")
	require.NoError(t, err)
	defer shared.Close()

	resolver := NewResolver(&config.Settings{}, nil, nil)
	lifespan := StaticLifespan(shared)

	for i := 0; i < 3; i++ {
		client, release, err := resolver.Resolve(context.Background(), lifespan, nil)
		require.NoError(t, err)
		assert.Same(t, shared, client, "static mode must hand out the shared instance unchanged")
		release()
	}
}

func TestResolveStaticWithoutClientIsMalformed(t *testing.T) {
	resolver := NewResolver(&config.Settings{}, nil, nil)

	_, _, err := resolver.Resolve(context.Background(), StaticLifespan(nil), nil)
	require.ErrorIs(t, err, ErrMalformedContext)
}

func TestResolveSessionBuildsPerRequestClient(t *testing.T) {
	resolver := NewResolver(&config.Settings{}, nil, nil)
	lifespan := SessionLifespan()

	session := &SessionConfig{
		Host:     "https://cloud.example.com",
		Username: "alice",
		Password: "alice-password",
	}

	client, release, err := resolver.Resolve(context.Background(), lifespan, session)
	require.NoError(t, err)
	defer release()

	assert.Equal(t, "https://cloud.example.com", client.Host())

	username, err := client.Username(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "alice", username)

	second, release2, err := resolver.Resolve(context.Background(), lifespan, session)
	require.NoError(t, err)
	defer release2()
	assert.NotSame(t, client, second, "session mode must build a fresh client per request")
}

func TestResolveSessionFromRequestContext(t *testing.T) {
	resolver := NewResolver(&config.Settings{}, nil, nil)

	ctx := WithSessionConfig(context.Background(), &SessionConfig{
		Host:     "https://cloud.example.com",
		Username: "bob",
		Password: "bob-password",
	})

	client, release, err := resolver.Resolve(ctx, SessionLifespan(), nil)
	require.NoError(t, err)
	defer release()

	username, err := client.Username(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "bob", username)
}

func TestResolveSessionMissingConfig(t *testing.T) {
	resolver := NewResolver(&config.Settings{}, nil, nil)

	_, _, err := resolver.Resolve(context.Background(), SessionLifespan(), nil)
	require.ErrorIs(t, err, ErrMissingSessionConfig)
}

func TestResolveSessionRejectsIncompleteConfig(t *testing.T) {
	resolver := NewResolver(&config.Settings{}, nil, nil)

	tests := []struct {
		name    string
		session *SessionConfig
	}{
		{"missing host", &SessionConfig{Username: "alice", Password: "pw"}},
		{"missing username", &SessionConfig{Host: "https://cloud.example.com", Password: "pw"}},
		{"missing password", &SessionConfig{Host: "https://cloud.example.com", Username: "alice"}},
		{"host without scheme", &SessionConfig{Host: "cloud.example.com", Username: "alice", Password: "pw"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := resolver.Resolve(context.Background(), SessionLifespan(), tc.session)
			require.Error(t, err)
		})
	}
}

func TestResolveOAuthWithoutExchange(t *testing.T) {
	exchanger := &countingExchanger{}
	resolver := NewResolver(&config.Settings{EnableTokenExchange: false}, exchanger, nil)
	lifespan := OAuthLifespan("https://cloud.example.com")

	ctx := WithToken(context.Background(), "inbound-token")

	client, release, err := resolver.Resolve(ctx, lifespan, nil)
	require.NoError(t, err)
	defer release()

	assert.Equal(t, "https://cloud.example.com", client.Host())
	assert.Zero(t, exchanger.calls.Load(), "exchange must never run when disabled")
}

func TestResolveOAuthWithExchange(t *testing.T) {
	exchanger := &countingExchanger{}
	resolver := NewResolver(&config.Settings{EnableTokenExchange: true}, exchanger, nil)
	lifespan := OAuthLifespan("https://cloud.example.com")

	ctx := WithToken(context.Background(), "inbound-token")

	_, release, err := resolver.Resolve(ctx, lifespan, nil)
	require.NoError(t, err)
	defer release()

	assert.Equal(t, int64(1), exchanger.calls.Load(), "exchange must run exactly once per resolve")
}

func TestResolveOAuthExchangeFailure(t *testing.T) {
	exchanger := &countingExchanger{err: fmt.Errorf("idp unavailable")}
	resolver := NewResolver(&config.Settings{EnableTokenExchange: true}, exchanger, nil)

	ctx := WithToken(context.Background(), "inbound-token")

	_, _, err := resolver.Resolve(ctx, OAuthLifespan("https://cloud.example.com"), nil)
	require.ErrorContains(t, err, "token exchange failed")
}

func TestResolveOAuthExchangeEnabledWithoutExchanger(t *testing.T) {
	resolver := NewResolver(&config.Settings{EnableTokenExchange: true}, nil, nil)

	ctx := WithToken(context.Background(), "inbound-token")

	_, _, err := resolver.Resolve(ctx, OAuthLifespan("https://cloud.example.com"), nil)
	require.ErrorContains(t, err, "no exchanger")
}

func TestResolveOAuthMissingToken(t *testing.T) {
	resolver := NewResolver(&config.Settings{}, nil, nil)

	_, _, err := resolver.Resolve(context.Background(), OAuthLifespan("https://cloud.example.com"), nil)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestResolveUnknownModeIsMalformed(t *testing.T) {
	resolver := NewResolver(&config.Settings{}, nil, nil)

	_, _, err := resolver.Resolve(context.Background(), nil, nil)
	require.ErrorIs(t, err, ErrMalformedContext)

	_, _, err = resolver.Resolve(context.Background(), &Lifespan{}, nil)
	require.ErrorIs(t, err, ErrMalformedContext)
}

// Concurrent sessions must resolve to their own credentials and must not
// touch the process environment at any point.
func TestConcurrentSessionIsolation(t *testing.T) {
	resolver := NewResolver(&config.Settings{}, nil, nil)
	lifespan := SessionLifespan()

	envBefore := snapshotEnviron()

	const sessions = 32
	var wg sync.WaitGroup
	errs := make(chan error, sessions)

	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			user := fmt.Sprintf("user-%d", i)
			ctx := WithSessionConfig(context.Background(), &SessionConfig{
				Host:     fmt.Sprintf("https://cloud-%d.example.com", i),
				Username: user,
				Password: fmt.Sprintf("password-%d", i),
			})

			client, release, err := resolver.Resolve(ctx, lifespan, nil)
			if err != nil {
				errs <- err
				return
			}
			defer release()

			if got := client.Host(); got != fmt.Sprintf("https://cloud-%d.example.com", i) {
				errs <- fmt.Errorf("session %d resolved to foreign host %s", i, got)
				return
			}
			username, err := client.Username(context.Background())
			if err != nil {
				errs <- err
				return
			}
			if username != user {
				errs <- fmt.Errorf("session %d resolved to foreign user %s", i, username)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}

	assert.Equal(t, envBefore, snapshotEnviron(), "resolver must never mutate the process environment")
}
