package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"token-swap/pkg/types"
)

const (
	// DefaultPricesURL is the public price feed the form reads from
	DefaultPricesURL = "https://interview.switcheo.com/prices.json"
)

// ErrEmptyFeed is returned when the feed answers with an empty array
var ErrEmptyFeed = errors.New("price feed returned no entries")

// FeedError wraps a failure at one step of the price fetch
type FeedError struct {
	Op  string // "request", "read", "status" or "decode"
	Err error
}

func (e *FeedError) Error() string {
	return "price feed " + e.Op + ": " + e.Err.Error()
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// PriceClient fetches token prices from the JSON feed
type PriceClient struct {
	url        string
	httpClient *http.Client
}

// NewPriceClient creates a new price feed client. A zero timeout disables it.
func NewPriceClient(url string, timeout time.Duration) *PriceClient {
	if url == "" {
		url = DefaultPricesURL
	}

	return &PriceClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// URL returns the feed address
func (c *PriceClient) URL() string {
	return c.url
}

// FetchPrices performs a single GET of the feed. No retry.
func (c *PriceClient) FetchPrices(ctx context.Context) ([]types.PriceEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &FeedError{Op: "request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FeedError{Op: "request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FeedError{Op: "status", Err: fmt.Errorf("unexpected status code %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FeedError{Op: "read", Err: err}
	}

	var entries []types.PriceEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, &FeedError{Op: "decode", Err: err}
	}

	if len(entries) == 0 {
		return nil, &FeedError{Op: "decode", Err: ErrEmptyFeed}
	}

	return entries, nil
}
