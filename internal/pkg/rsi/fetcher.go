package rsi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/versecrew/versecrew-backend-go/internal/config"
)

// maxBodySize caps how much of a profile page is read. Sentinel codes sit in
// the bio/history section well inside the first megabyte.
const maxBodySize = 2 << 20

// PageFetcher retrieves public RSI pages as raw text. Verification only does
// substring containment on the result, never markup parsing, so the body is
// returned untouched.
type PageFetcher interface {
	CitizenPage(ctx context.Context, handle string) (string, error)
	OrganizationPage(ctx context.Context, sid string) (string, error)
}

// Fetcher is the live implementation against robertsspaceindustries.com.
type Fetcher struct {
	client    *http.Client
	baseURL   string
	userAgent string
}

func NewFetcher(cfg config.RSIConfig) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: cfg.FetchTimeout},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
	}
}

func (f *Fetcher) CitizenPage(ctx context.Context, handle string) (string, error) {
	return f.fetch(ctx, fmt.Sprintf("%s/citizens/%s", f.baseURL, handle))
}

func (f *Fetcher) OrganizationPage(ctx context.Context, sid string) (string, error) {
	return f.fetch(ctx, fmt.Sprintf("%s/orgs/%s", f.baseURL, sid))
}

func (f *Fetcher) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("page not found: %s", url)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	return string(body), nil
}
