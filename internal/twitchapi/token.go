package twitchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// Tokens are refreshed this long before their reported expiry so a token
// fetched here does not expire in flight.
const tokenExpirySkew = 60 * time.Second

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// RefreshRecorder counts token exchange calls.
type RefreshRecorder interface {
	RecordTokenRefresh()
}

type noopRefreshRecorder struct{}

func (noopRefreshRecorder) RecordTokenRefresh() {}

// TokenManager owns the app access token for the Twitch API. It lazily
// performs the client-credentials exchange on first use and transparently
// refreshes once the held token expires. Safe for concurrent use; concurrent
// refreshers collapse to a single exchange call.
type TokenManager struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	recorder     RefreshRecorder

	mu     sync.Mutex
	token  string
	expiry time.Time
}

// NewTokenManager creates a TokenManager for the given client credentials.
// tokenURL is the OAuth token endpoint, normally https://id.twitch.tv/oauth2/token.
// A nil recorder disables refresh counting.
func NewTokenManager(clientID, clientSecret, tokenURL string, recorder RefreshRecorder) *TokenManager {
	if recorder == nil {
		recorder = noopRefreshRecorder{}
	}
	return &TokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		recorder:     recorder,
	}
}

// Token returns a valid access token, performing at most one exchange call.
// If the exchange fails the previously held token is kept, so a concurrent
// caller that raced ahead is not invalidated retroactively.
func (m *TokenManager) Token(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Add(tokenExpirySkew).Before(m.expiry) {
		return m.token, nil
	}

	token, expiry, err := m.exchange(ctx)
	if err != nil {
		return "", err
	}

	m.token = token
	m.expiry = expiry
	return m.token, nil
}

// Invalidate discards the held token if it still equals old. A token already
// replaced by a concurrent refresh is left alone.
func (m *TokenManager) Invalidate(old string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token == old {
		m.token = ""
		m.expiry = time.Time{}
	}
}

func (m *TokenManager) exchange(ctx context.Context) (string, time.Time, error) {
	m.recorder.RecordTokenRefresh()

	data := url.Values{}
	data.Set("client_id", m.clientID)
	data.Set("client_secret", m.clientSecret)
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: create request: %v", ErrAuthUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", ErrAuthUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", time.Time{}, fmt.Errorf("%w: status %d: %s", ErrAuthUnavailable, resp.StatusCode, string(body))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: decode response: %v", ErrAuthUnavailable, err)
	}

	return tr.AccessToken, time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second), nil
}
