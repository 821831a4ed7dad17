// Package provider wraps the upstream screening vendor: one client for the
// wire calls and one adapter per check, each with its own failure boundary.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"rently/internal/platform/config"
	"rently/internal/screening/identity"
)

// WatchlistItem is one public-safety search result.
type WatchlistItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// WatchlistResult is the public-safety watchlist response.
type WatchlistResult struct {
	Total int             `json:"total"`
	Items []WatchlistItem `json:"items"`
}

// Client is the boundary to the upstream screening vendor. The sandbox check
// bodies are deliberately typed as any: their shape is not contractually fixed
// and is mined by the extract package.
type Client interface {
	// Login exchanges configured credentials for a bearer token and its TTL.
	Login(ctx context.Context) (token string, ttl time.Duration, err error)

	// RunCheck performs one sandbox check against a pre-registered profile and
	// returns the decoded response body plus the provider's request reference.
	RunCheck(ctx context.Context, token string, check identity.CheckType, profile identity.Profile) (body any, requestID string, err error)

	// SearchWatchlist queries the public-safety watchlist by real name.
	SearchWatchlist(ctx context.Context, name string, pageSize int) (WatchlistResult, error)
}

// HTTPClient implements Client against the vendor's REST API with an
// independent timeout per call, so one stalled provider cannot hang the rest
// of the pipeline.
type HTTPClient struct {
	cfg  config.ScreeningConfig
	http *http.Client
}

// NewHTTPClient builds the vendor client from screening configuration.
func NewHTTPClient(cfg config.ScreeningConfig) *HTTPClient {
	return &HTTPClient{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.CallTimeout},
	}
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"`
}

func (c *HTTPClient) Login(ctx context.Context) (string, time.Duration, error) {
	payload, err := json.Marshal(map[string]string{
		"username": c.cfg.Username,
		"password": c.cfg.Password,
	})
	if err != nil {
		return "", 0, fmt.Errorf("encode login payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/v1/login", bytes.NewReader(payload))
	if err != nil {
		return "", 0, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("login call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", 0, fmt.Errorf("login returned status %d", resp.StatusCode)
	}

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, fmt.Errorf("decode login response: %w", err)
	}
	if out.Token == "" {
		return "", 0, fmt.Errorf("login response missing token")
	}
	return out.Token, time.Duration(out.ExpiresIn) * time.Second, nil
}

// checkPaths maps each sandbox check to its vendor endpoint.
var checkPaths = map[identity.CheckType]string{
	identity.CheckFraud:    "/v1/checks/fraud",
	identity.CheckIdentity: "/v1/checks/identity",
	identity.CheckCredit:   "/v1/checks/credit",
	identity.CheckCriminal: "/v1/checks/criminal",
	identity.CheckEviction: "/v1/checks/eviction",
}

func (c *HTTPClient) RunCheck(ctx context.Context, token string, check identity.CheckType, profile identity.Profile) (any, string, error) {
	path, ok := checkPaths[check]
	if !ok {
		return nil, "", fmt.Errorf("unknown check %q", check)
	}

	payload, err := json.Marshal(map[string]string{
		"first_name": profile.FirstName,
		"last_name":  profile.LastName,
		"ssn":        profile.SSN,
		"birth_date": profile.BirthDate,
	})
	if err != nil {
		return nil, "", fmt.Errorf("encode %s payload: %w", check, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, "", fmt.Errorf("build %s request: %w", check, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s call: %w", check, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%s returned status %d", check, resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read %s response: %w", check, err)
	}
	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, "", fmt.Errorf("decode %s response: %w", check, err)
	}
	return body, resp.Header.Get("X-Request-ID"), nil
}

func (c *HTTPClient) SearchWatchlist(ctx context.Context, name string, pageSize int) (WatchlistResult, error) {
	base := c.cfg.WatchlistURL
	if base == "" {
		base = c.cfg.BaseURL + "/v1/watchlist"
	}

	q := url.Values{}
	q.Set("name", name)
	q.Set("page_size", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return WatchlistResult{}, fmt.Errorf("build watchlist request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return WatchlistResult{}, fmt.Errorf("watchlist call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return WatchlistResult{}, fmt.Errorf("watchlist returned status %d", resp.StatusCode)
	}

	var out WatchlistResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return WatchlistResult{}, fmt.Errorf("decode watchlist response: %w", err)
	}
	return out, nil
}
