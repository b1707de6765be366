package twitchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// Result pages are requested at the Helix maximum to keep the number of
// round trips while draining pagination low.
const pageSize = "100"

// CallRecorder receives a measurement for every completed Twitch API request.
type CallRecorder interface {
	RecordTwitchCall(endpoint string, statusCode int, duration time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) RecordTwitchCall(string, int, time.Duration) {}

// HelixClient talks to the Twitch Helix API. Every call obtains a token from
// the TokenManager, and a 401 response triggers exactly one forced refresh
// and retry before the failure is surfaced. Paginated endpoints are fully
// drained before returning.
type HelixClient struct {
	apiURL     string
	clientID   string
	tokens     *TokenManager
	httpClient *http.Client
	logger     zerolog.Logger
	recorder   CallRecorder
}

// NewHelixClient creates a Twitch API client. apiURL is the Helix base URL,
// normally https://api.twitch.tv/helix. A nil recorder disables measurements.
func NewHelixClient(clientID, apiURL string, tokens *TokenManager, logger zerolog.Logger, recorder CallRecorder) *HelixClient {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &HelixClient{
		apiURL:     apiURL,
		clientID:   clientID,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
		recorder:   recorder,
	}
}

// SearchGames finds games matching the given name exactly.
func (c *HelixClient) SearchGames(ctx context.Context, name string) ([]Game, error) {
	params := url.Values{}
	params.Set("name", name)
	return fetchAll[Game](ctx, c, "games", params)
}

// TopGames lists the currently most-watched games.
func (c *HelixClient) TopGames(ctx context.Context) ([]Game, error) {
	return fetchAll[Game](ctx, c, "games/top", url.Values{})
}

// ListVideos lists published videos for a game.
func (c *HelixClient) ListVideos(ctx context.Context, gameID string) ([]Video, error) {
	params := url.Values{}
	params.Set("game_id", gameID)
	return fetchAll[Video](ctx, c, "videos", params)
}

// ListStreams lists live streams for a game.
func (c *HelixClient) ListStreams(ctx context.Context, gameID string) ([]Stream, error) {
	params := url.Values{}
	params.Set("game_id", gameID)
	return fetchAll[Stream](ctx, c, "streams", params)
}

type page[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		Cursor string `json:"cursor"`
	} `json:"pagination"`
}

// fetchAll drains a paginated Helix endpoint by following the after cursor
// until the API stops returning one.
func fetchAll[T any](ctx context.Context, c *HelixClient, path string, params url.Values) ([]T, error) {
	params.Set("first", pageSize)

	var all []T
	cursor := ""
	for {
		if cursor != "" {
			params.Set("after", cursor)
		}

		body, err := c.getPage(ctx, path, params)
		if err != nil {
			return nil, err
		}

		var p page[T]
		if err := json.Unmarshal(body, &p); err != nil {
			return nil, &UpstreamError{StatusCode: http.StatusOK, Body: fmt.Sprintf("malformed payload: %v", err)}
		}

		all = append(all, p.Data...)
		if p.Pagination.Cursor == "" || len(p.Data) == 0 {
			return all, nil
		}
		cursor = p.Pagination.Cursor
	}
}

// getPage performs one authorized GET. On a 401 the held token is invalidated
// and the request retried once with a fresh token; this covers a token
// expiring between fetch and use.
func (c *HelixClient) getPage(ctx context.Context, path string, params url.Values) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	body, status, err := c.attempt(ctx, path, params, token)
	if err != nil {
		return nil, err
	}

	if status == http.StatusUnauthorized {
		c.logger.Debug().Str("path", path).Msg("twitch token rejected, refreshing")
		c.tokens.Invalidate(token)

		token, err = c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		body, status, err = c.attempt(ctx, path, params, token)
		if err != nil {
			return nil, err
		}
	}

	if status != http.StatusOK {
		return nil, &UpstreamError{StatusCode: status, Body: string(body)}
	}

	return body, nil
}

func (c *HelixClient) attempt(ctx context.Context, path string, params url.Values, token string) ([]byte, int, error) {
	apiURL := c.apiURL + "/" + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Client-Id", c.clientID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.recorder.RecordTwitchCall(path, 0, time.Since(start))
		return nil, 0, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	c.recorder.RecordTwitchCall(path, resp.StatusCode, time.Since(start))
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}

	return body, resp.StatusCode, nil
}

func classifyTransportError(err error) error {
	var nerr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &nerr) && nerr.Timeout()) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return fmt.Errorf("twitch request failed: %w", err)
}
