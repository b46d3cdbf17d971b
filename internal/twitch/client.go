package twitch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"streamwatch/internal/domain"
)

const (
	defaultBaseURL = "https://api.twitch.tv/helix"
	defaultAuthURL = "https://id.twitch.tv/oauth2/token"

	// tokenSlack refreshes the app token this long before it actually expires.
	tokenSlack = 30 * time.Second

	// lowWatermark is the remaining-request budget at which calls start
	// deferring until the rate limit window resets.
	lowWatermark = 5

	// maxBudgetWait caps a single deferral sleep; the budget is re-read after
	// each wait so a reset observed mid-sleep shortens the total.
	maxBudgetWait = 60 * time.Second

	maxAttempts    = 5
	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second

	pageSize  = 100
	chunkSize = 100
)

// APIError is returned for non-2xx responses that survive the retry loop.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("twitch api: unexpected status %d", e.StatusCode)
}

// Config holds Twitch Helix client configuration.
type Config struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	AuthURL      string
	Timeout      time.Duration
}

type appToken struct {
	accessToken string
	expiresAt   time.Time
}

// Client talks to the Twitch Helix API with app-token auth, shared
// rate-limit accounting, and bounded retries.
type Client struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	baseURL      string
	authURL      string
	logger       *slog.Logger

	// mu guards the cached token and the rate-limit snapshot below.
	mu          sync.Mutex
	token       *appToken
	rlRemaining int // -1 until the first response reports a budget
	rlResetAt   time.Time
}

// New creates a new Helix client.
func New(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	authURL := cfg.AuthURL
	if authURL == "" {
		authURL = defaultAuthURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		authURL:      authURL,
		logger:       logger.With("component", "twitch"),
		rlRemaining:  -1,
	}
}

// SearchGames looks up game categories by name. first is clamped to 1..100.
func (c *Client) SearchGames(ctx context.Context, query string, first int) ([]domain.Game, error) {
	if first < 1 {
		first = 1
	}
	if first > pageSize {
		first = pageSize
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("first", strconv.Itoa(first))

	var resp gamesResponse
	if err := c.do(ctx, http.MethodGet, "/search/categories", params, maxAttempts, &resp); err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}

	return toGames(resp.Data), nil
}

// GetGames resolves game metadata by id, chunking large id sets.
func (c *Client) GetGames(ctx context.Context, ids []string) ([]domain.Game, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	var out []domain.Game
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{"id": ids[start:end]}

		var resp gamesResponse
		if err := c.do(ctx, http.MethodGet, "/games", params, maxAttempts, &resp); err != nil {
			return nil, fmt.Errorf("get games: %w", err)
		}
		out = append(out, toGames(resp.Data)...)
	}

	return out, nil
}

// StreamsForGame pages through the live streams of one game, one pass per
// requested language (a single unfiltered pass when languages is empty),
// collecting at most maxStreams entries before de-duplication.
func (c *Client) StreamsForGame(ctx context.Context, gameID string, maxStreams int, languages []string) ([]domain.Stream, error) {
	langs := languages
	if len(langs) == 0 {
		langs = []string{""}
	}

	var collected []domain.Stream
	for _, lang := range langs {
		after := ""
		for len(collected) < maxStreams {
			page, cursor, err := c.streamsPage(ctx, gameID, lang, after)
			if err != nil {
				return nil, err
			}
			for _, s := range page {
				collected = append(collected, s)
				if len(collected) >= maxStreams {
					break
				}
			}
			if cursor == "" || len(page) == 0 {
				break
			}
			after = cursor
		}
	}

	// Language passes may overlap. Keep the first-seen position of each
	// stream id and the most recently fetched data for it.
	index := make(map[string]int, len(collected))
	out := make([]domain.Stream, 0, len(collected))
	for _, s := range collected {
		if i, ok := index[s.ID]; ok {
			out[i] = s
			continue
		}
		index[s.ID] = len(out)
		out = append(out, s)
	}

	return out, nil
}

func (c *Client) streamsPage(ctx context.Context, gameID, language, after string) ([]domain.Stream, string, error) {
	params := url.Values{}
	params.Set("game_id", gameID)
	params.Set("first", strconv.Itoa(pageSize))
	if after != "" {
		params.Set("after", after)
	}
	if language != "" {
		params.Set("language", language)
	}

	var resp streamsResponse
	if err := c.do(ctx, http.MethodGet, "/streams", params, maxAttempts, &resp); err != nil {
		return nil, "", fmt.Errorf("fetch streams page: %w", err)
	}

	streams := make([]domain.Stream, 0, len(resp.Data))
	for _, s := range resp.Data {
		startedAt, err := time.Parse(time.RFC3339, s.StartedAt)
		if err != nil {
			c.logger.Warn("failed to parse stream start time",
				"stream_id", s.ID,
				"started_at", s.StartedAt,
			)
		}
		streams = append(streams, domain.Stream{
			ID:           s.ID,
			GameID:       gameID,
			UserID:       s.UserID,
			UserName:     s.UserName,
			Title:        s.Title,
			ViewerCount:  s.ViewerCount,
			StartedAt:    startedAt,
			Language:     s.Language,
			ThumbnailURL: s.ThumbnailURL,
			IsLive:       true,
		})
	}

	return streams, resp.Pagination.Cursor, nil
}

// GetUsers resolves streamer profiles (display name and broadcaster tier) by
// user id, chunking large id sets. Follower fields are left unset.
func (c *Client) GetUsers(ctx context.Context, ids []string) ([]domain.StreamerProfile, error) {
	ids = compactIDs(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	var out []domain.StreamerProfile
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{"id": ids[start:end]}

		var resp usersResponse
		if err := c.do(ctx, http.MethodGet, "/users", params, maxAttempts, &resp); err != nil {
			return nil, fmt.Errorf("get users: %w", err)
		}
		for _, u := range resp.Data {
			profile := domain.StreamerProfile{UserID: u.ID}
			if u.DisplayName != "" {
				name := u.DisplayName
				profile.DisplayName = &name
			}
			// "partner", "affiliate", or "" for everyone else.
			tier := u.BroadcasterType
			profile.BroadcasterType = &tier
			out = append(out, profile)
		}
	}

	return out, nil
}

// FollowerCount returns the broadcaster's follower total, or nil when the
// remote service refuses the lookup (auth or not-found classes). Access rules
// for follower data shift over time, so those refusals are treated as
// "temporarily unknown" rather than errors.
func (c *Client) FollowerCount(ctx context.Context, broadcasterID string) (*int64, error) {
	params := url.Values{}
	params.Set("broadcaster_id", broadcasterID)
	params.Set("first", "1")

	var resp followersResponse
	err := c.do(ctx, http.MethodGet, "/channels/followers", params, 3, &resp)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			switch apiErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
				return nil, nil
			}
		}
		return nil, fmt.Errorf("get follower count: %w", err)
	}

	total := resp.Total
	return &total, nil
}

// do issues one Helix request with auth, rate-limit deferral, and retries.
// The first 401 forces a token refresh and an immediate retry; a second 401
// fails the call. 429s wait for the advertised reset (or an exponential
// backoff when the header is unusable) up to attempts tries.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, attempts int, v any) error {
	backoff := initialBackoff

	for attempt := 1; ; attempt++ {
		if err := c.waitForBudget(ctx); err != nil {
			return err
		}

		token, err := c.getToken(ctx)
		if err != nil {
			return err
		}

		reqURL := c.baseURL + path
		if len(params) > 0 {
			reqURL += "?" + params.Encode()
		}

		req, err := http.NewRequestWithContext(ctx, method, reqURL, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Client-Id", c.clientID)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("execute request: %w", err)
		}
		c.updateRateLimit(resp.Header)

		if resp.StatusCode == http.StatusUnauthorized && attempt == 1 {
			resp.Body.Close()
			c.logger.Debug("token rejected, forcing refresh", "path", path)
			c.invalidateToken()
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests && attempt < attempts {
			wait, ok := untilReset(resp.Header)
			if !ok {
				wait = backoff
				backoff *= 2
				if backoff > maxBackoff {
					backoff = maxBackoff
				}
			}
			resp.Body.Close()
			c.logger.Warn("rate limited, retrying",
				"wait", wait,
				"attempt", attempt,
				"max_attempts", attempts,
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			resp.Body.Close()
			return &APIError{StatusCode: resp.StatusCode}
		}

		err = json.NewDecoder(resp.Body).Decode(v)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}
}

func (c *Client) getToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.token != nil && c.token.expiresAt.Add(-tokenSlack).After(now) {
		return c.token.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request app token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request app token: %w", &APIError{StatusCode: resp.StatusCode})
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}

	expiresIn := tok.ExpiresIn
	if expiresIn == 0 {
		expiresIn = 3600
	}
	c.token = &appToken{
		accessToken: tok.AccessToken,
		expiresAt:   now.Add(time.Duration(expiresIn) * time.Second),
	}

	c.logger.Debug("acquired app token", "expires_in", expiresIn)
	return c.token.accessToken, nil
}

func (c *Client) invalidateToken() {
	c.mu.Lock()
	c.token = nil
	c.mu.Unlock()
}

func (c *Client) updateRateLimit(h http.Header) {
	remaining := h.Get("Ratelimit-Remaining")
	reset := h.Get("Ratelimit-Reset")

	c.mu.Lock()
	defer c.mu.Unlock()
	if remaining != "" {
		if n, err := strconv.Atoi(remaining); err == nil {
			c.rlRemaining = n
		}
	}
	if reset != "" {
		if sec, err := strconv.ParseInt(reset, 10, 64); err == nil {
			c.rlResetAt = time.Unix(sec, 0)
		}
	}
}

// waitForBudget defers while the remaining request budget is at or below the
// low watermark and the reset time is still ahead. Each sleep is capped and
// the snapshot re-read, so responses observed by other calls shorten the wait.
func (c *Client) waitForBudget(ctx context.Context) error {
	for {
		c.mu.Lock()
		remaining := c.rlRemaining
		resetAt := c.rlResetAt
		c.mu.Unlock()

		if remaining < 0 || remaining > lowWatermark {
			return nil
		}

		wait := time.Until(resetAt)
		if wait <= 0 {
			return nil
		}
		if wait > maxBudgetWait {
			wait = maxBudgetWait
		}

		c.logger.Info("rate limit budget low, deferring",
			"remaining", remaining,
			"wait", wait,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

// untilReset reads the rate-limit reset header as a unix timestamp and
// returns the non-negative wait until then.
func untilReset(h http.Header) (time.Duration, bool) {
	reset := h.Get("Ratelimit-Reset")
	if reset == "" {
		return 0, false
	}
	sec, err := strconv.ParseInt(reset, 10, 64)
	if err != nil {
		return 0, false
	}
	wait := time.Until(time.Unix(sec, 0))
	if wait < 0 {
		wait = 0
	}
	return wait, true
}

func toGames(payloads []gamePayload) []domain.Game {
	games := make([]domain.Game, 0, len(payloads))
	for _, g := range payloads {
		game := domain.Game{
			ID:   g.ID,
			Name: g.Name,
		}
		if g.BoxArtURL != "" {
			art := g.BoxArtURL
			game.BoxArtURL = &art
		}
		games = append(games, game)
	}
	return games
}

func compactIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
