// Package moviedb is a thin client for the external movie catalog (TMDB v3).
package moviedb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// DefaultBaseURL is the TMDB v3 API root.
const DefaultBaseURL = "https://api.themoviedb.org/3"

// maxBodyBytes caps how much of an upstream body is read.
const maxBodyBytes = 8 << 20

// Client forwards search queries to the catalog. It does not retry or cache.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewClient(apiKey, baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    &http.Client{},
		log:     log.With(zap.String("client", "moviedb")),
	}
}

// maxLoggedBody caps how much of an error body goes into the log.
const maxLoggedBody = 512

// StatusError is returned for a non-2xx upstream response. Body is the
// upstream error payload, logged but not sent to clients.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("movie catalog responded with status %d", e.StatusCode)
}

func (e *StatusError) truncatedBody() string {
	if len(e.Body) <= maxLoggedBody {
		return e.Body
	}
	return e.Body[:maxLoggedBody] + "..."
}

// SearchURL builds the search/movie request URL. The query is URL-encoded.
func (c *Client) SearchURL(query string) string {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	return c.baseURL + "/search/movie?" + params.Encode()
}

// SearchMovies returns the catalog's JSON body for query, unmodified.
func (c *Client) SearchMovies(ctx context.Context, query string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.SearchURL(query), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("Searching movie catalog", zap.String("query", query))

	resp, err := c.http.Do(req)
	if err != nil {
		// the request URL carries the api key
		if uerr, ok := err.(*url.Error); ok {
			err = uerr.Err
		}
		return nil, fmt.Errorf("movie catalog request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read movie catalog response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
		c.log.Warn("Movie catalog returned error status",
			zap.Int("status", statusErr.StatusCode),
			zap.String("query", query),
			zap.String("body", statusErr.truncatedBody()),
		)
		return nil, statusErr
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("movie catalog returned invalid JSON")
	}

	return body, nil
}
