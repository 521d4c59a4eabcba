package forex

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"time"
)

// RESTClient fetches spot exchange rates from a Frankfurter-style API.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewRESTClient(baseURL string, timeout time.Duration) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *RESTClient) HTTPClient() *http.Client {
	return c.httpClient
}

// GetRate fetches the current rate for one pair, e.g. USD/EUR -> 0.9134.
func (c *RESTClient) GetRate(ctx context.Context, pair Pair) (float64, error) {
	endpoint := fmt.Sprintf("%s/latest?base=%s&symbols=%s",
		c.baseURL,
		url.QueryEscape(pair.Base),
		url.QueryEscape(pair.Quote),
	)

	// Construct the GET request with context for timeout/cancel support
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}

	// Execute the HTTP request
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	// Check HTTP status code
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed LatestResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return 0, fmt.Errorf("decode response (%v): %w", err, ErrBadRate)
	}

	rate, ok := parsed.Rates[pair.Quote]
	if !ok {
		return 0, fmt.Errorf("no rate for %s in response: %w", pair.Quote, ErrBadRate)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, fmt.Errorf("rate %v for %s: %w", rate, pair, ErrBadRate)
	}

	return rate, nil
}
