// Package resy implements the upstream search, calendar, slot and venue
// transports over the reservation platform's HTTP API.
package resy

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	config "github.com/tablescout/tablescout/configs"
	"github.com/tablescout/tablescout/internal/core/ports"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client talks to the upstream reservation platform. Every call observes the
// configured per-request timeout and reports non-success statuses as
// ports.ErrUpstreamUnavailable.
type Client struct {
	cfg    *config.ResyConfig
	http   *http.Client
	logger *logrus.Logger
}

// NewClient creates an upstream client.
func NewClient(cfg *config.ResyConfig, logger *logrus.Logger) *Client {
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// PageSize is the upstream's fixed search page size.
func (c *Client) PageSize() int { return c.cfg.PageSize }

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", fmt.Sprintf("ResyAPI api_key=%q", c.cfg.APIKey))
	req.Header.Set("X-Resy-Auth-Token", c.cfg.AuthToken)
	req.Header.Set("X-Resy-Universal-Auth", c.cfg.AuthToken)
	req.Header.Set("Origin", "https://resy.com")
	req.Header.Set("X-origin", "https://resy.com")
	req.Header.Set("Referer", "https://resy.com/")
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/json")
}

// doJSON issues the request and decodes the JSON body into out. Transport
// errors and non-2xx statuses are wrapped in ports.ErrUpstreamUnavailable.
func (c *Client) doJSON(req *http.Request, out any) error {
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ports.ErrUpstreamUnavailable, req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		if c.logger != nil {
			c.logger.WithFields(logrus.Fields{
				"path":   req.URL.Path,
				"status": resp.StatusCode,
			}).Warn("upstream returned non-success status")
		}
		return fmt.Errorf("%w: %s returned status %d: %s", ports.ErrUpstreamUnavailable, req.URL.Path, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding %s response: %v", ports.ErrUpstreamUnavailable, req.URL.Path, err)
	}
	return nil
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	u := c.cfg.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", ports.ErrUpstreamUnavailable, err)
	}
	return c.doJSON(req, out)
}
