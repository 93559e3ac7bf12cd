package ipo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ipo-notifier/model"
	"ipo-notifier/retry"
)

const (
	MaxFetchAttempts = 3
	FetchRetryDelay  = 2000 * time.Millisecond
)

type Fetcher struct {
	URL    string
	Client *http.Client
	Policy retry.Policy
}

type FetchResult struct {
	Items    []model.IPO
	Attempts int
	Retries  int
}

func NewFetcher(url string, timeout time.Duration) *Fetcher {
	return &Fetcher{
		URL:    url,
		Client: &http.Client{Timeout: timeout},
		Policy: retry.Policy{
			MaxAttempts: MaxFetchAttempts,
			Delay:       FetchRetryDelay,
		},
	}
}

// Fetch downloads and decodes the listing. Transport errors and non-2xx
// answers are retried; a body that fails to parse is not.
func (f *Fetcher) Fetch(ctx context.Context) (*FetchResult, error) {
	policy := f.Policy
	policy.Retryable = func(err error) bool {
		var parseErr *ParseError
		return !errors.As(err, &parseErr)
	}
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		slog.Warn("fetch attempt failed, retrying",
			slog.Int("attempt", attempt),
			slog.Duration("delay", delay),
			slog.String("error", err.Error()))
	}

	var items []model.IPO
	attempts, err := policy.Do(ctx, func(ctx context.Context) error {
		var err error
		items, err = f.fetchOnce(ctx)
		return err
	})
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) || ctx.Err() != nil {
			return nil, err
		}
		return nil, &FetchExhaustedError{Attempts: attempts, Err: err}
	}

	slog.Info("fetched IPO list", slog.Int("size", len(items)), slog.Int("attempts", attempts))
	return &FetchResult{Items: items, Attempts: attempts, Retries: attempts - 1}, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context) ([]model.IPO, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build IPO list request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request IPO list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read IPO list: %w", err)
	}
	return ParseListing(body)
}

// ParseListing decodes a provider body of the form {"data": {"items": [...]}}.
func ParseListing(body []byte) ([]model.IPO, error) {
	var listing model.Listing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, &ParseError{Reason: "invalid JSON", Err: err}
	}
	if listing.Data == nil {
		return nil, &ParseError{Reason: `missing "data" field`}
	}
	if listing.Data.Items == nil {
		return nil, &ParseError{Reason: `missing "data.items" field`}
	}
	return listing.Data.Items, nil
}
