package devto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://dev.to/api/articles"
	maxAttempts    = 3
)

var ErrFetch = errors.New("dev.to fetch failed")

type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	sleep      func(ctx context.Context, d time.Duration) error
}

func NewClient(httpClient *http.Client, baseURL, userAgent string) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		sleep:      sleepContext,
	}
}

// FetchArticles walks the listing pages until a page comes back empty or short.
func (c *Client) FetchArticles(ctx context.Context, q Query) ([]Article, error) {
	var all []Article
	for page := 1; page <= q.MaxPages; page++ {
		articles, err := c.fetchPage(ctx, q, page)
		if err != nil {
			return nil, err
		}
		if len(articles) == 0 {
			break
		}
		all = append(all, articles...)
		if len(articles) < q.PerPage {
			break
		}
	}

	slog.Debug("Articles fetched", "count", len(all), "top", q.Top)
	return all, nil
}

func (c *Client) fetchPage(ctx context.Context, q Query, page int) ([]Article, error) {
	pageURL := c.pageURL(q, page)

	for attempt := 1; ; attempt++ {
		articles, status, err := c.doFetch(ctx, pageURL)
		if err == nil {
			return articles, nil
		}

		retryable := status == 0 || shouldRetry(status)
		if ctx.Err() != nil || !retryable || attempt >= maxAttempts {
			return nil, fmt.Errorf("%w: url=%s attempt=%d: %w", ErrFetch, pageURL, attempt, err)
		}

		backoff := backoffDuration(attempt)
		slog.Warn("API retry", "url", pageURL, "status", status, "attempt", attempt, "backoff", backoff.String(), "error", err)
		if err := c.sleep(ctx, backoff); err != nil {
			return nil, fmt.Errorf("%w: url=%s: %w", ErrFetch, pageURL, err)
		}
	}
}

// doFetch returns the HTTP status alongside any error; status is 0 when no
// response was received.
func (c *Client) doFetch(ctx context.Context, pageURL string) ([]Article, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, resp.StatusCode, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	var articles []Article
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		// a malformed body is not worth retrying
		return nil, resp.StatusCode, fmt.Errorf("failed to decode API response: %w", err)
	}
	return articles, resp.StatusCode, nil
}

// FetchHTML downloads an article page for content extraction. It does not retry.
func (c *Client) FetchHTML(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, fmt.Errorf("content type is not HTML: %s", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

func (c *Client) pageURL(q Query, page int) string {
	params := url.Values{}
	params.Set("top", strconv.Itoa(q.Top))
	params.Set("per_page", strconv.Itoa(q.PerPage))
	params.Set("page", strconv.Itoa(page))
	return c.baseURL + "?" + params.Encode()
}

func shouldRetry(status int) bool {
	return status >= 500 || status == http.StatusTooManyRequests
}

func backoffDuration(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt-1)) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
