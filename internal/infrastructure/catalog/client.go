// Package catalog implements the HTTP client for the external game-catalog
// service (a RAWG-compatible API). Only the search surface the application
// needs is wrapped.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/playlog/playlog-api/internal/core/domain"
)

const defaultTimeout = 10 * time.Second

// Config captures the settings for the catalog client.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
	}
}

// searchResponse mirrors the slice of the upstream payload we consume.
type searchResponse struct {
	Results []struct {
		ID              int    `json:"id"`
		Name            string `json:"name"`
		Released        string `json:"released"`
		BackgroundImage string `json:"background_image"`
		Platforms       []struct {
			Platform struct {
				Name string `json:"name"`
			} `json:"platform"`
		} `json:"platforms"`
	} `json:"results"`
}

// Search queries the upstream catalog for titles matching q.
func (c *Client) Search(ctx context.Context, q string) ([]domain.CatalogGame, error) {
	u, err := url.Parse(c.baseURL + "/games")
	if err != nil {
		return nil, fmt.Errorf("catalog url: %w", err)
	}
	params := url.Values{}
	params.Set("search", q)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog search: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog search: unexpected status %d", resp.StatusCode)
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("catalog decode: %w", err)
	}

	games := make([]domain.CatalogGame, 0, len(payload.Results))
	for _, r := range payload.Results {
		g := domain.CatalogGame{
			ExternalID: fmt.Sprintf("%d", r.ID),
			Title:      r.Name,
			CoverURL:   r.BackgroundImage,
		}
		if len(r.Released) >= 4 {
			// released is YYYY-MM-DD; only the year matters here
			if t, err := time.Parse("2006-01-02", r.Released); err == nil {
				g.ReleaseYear = t.Year()
			}
		}
		for _, p := range r.Platforms {
			g.Platforms = append(g.Platforms, p.Platform.Name)
		}
		games = append(games, g)
	}
	return games, nil
}
