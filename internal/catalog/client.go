// Package catalog is the client for the Rebrickable set catalog.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"
)

// SearchField selects which catalog field a search term matches against.
type SearchField string

const (
	// FieldName searches by set name.
	FieldName SearchField = "name"
	// FieldSetNum looks a set up by its exact set number.
	FieldSetNum SearchField = "set_num"
)

// ErrUnknownField is returned for a search field other than name or set_num.
var ErrUnknownField = errors.New("unknown search field")

// Set is one catalog entry as returned by the Rebrickable API.
type Set struct {
	SetNum    string `json:"set_num"`
	Name      string `json:"name"`
	Year      int    `json:"year"`
	ThemeID   int    `json:"theme_id"`
	NumParts  int    `json:"num_parts"`
	SetImgURL string `json:"set_img_url"`
	SetURL    string `json:"set_url"`
}

// searchResponse is the paginated envelope of the sets endpoint.
type searchResponse struct {
	Count   int   `json:"count"`
	Results []Set `json:"results"`
}

// Client calls the Rebrickable API. Transient failures (429 and 5xx) are
// retried with exponential backoff, and a circuit breaker keeps a flapping
// catalog from stalling every search request.
type Client struct {
	baseURL string
	apiKey  string
	hc      *http.Client
	breaker *gobreaker.CircuitBreaker
}

// NewClient creates a catalog client for the given base URL and API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		hc:      &http.Client{Timeout: 10 * time.Second},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "rebrickable",
			Timeout: 30 * time.Second,
		}),
	}
}

// Search returns catalog sets matching the term. FieldName runs a full-text
// search; FieldSetNum fetches the single set with that exact number.
func (c *Client) Search(ctx context.Context, term string, field SearchField) ([]Set, error) {
	switch field {
	case FieldName:
		return c.searchByName(ctx, term)
	case FieldSetNum:
		set, err := c.setByNumber(ctx, term)
		if err != nil {
			return nil, err
		}
		if set == nil {
			return nil, nil
		}
		return []Set{*set}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func (c *Client) searchByName(ctx context.Context, term string) ([]Set, error) {
	u := fmt.Sprintf("%s/api/v3/lego/sets/?search=%s", c.baseURL, url.QueryEscape(term))

	var out searchResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out.Results, nil
}

// setByNumber returns nil without error when the catalog has no such set.
func (c *Client) setByNumber(ctx context.Context, setNum string) (*Set, error) {
	u := fmt.Sprintf("%s/api/v3/lego/sets/%s/", c.baseURL, url.PathEscape(setNum))

	var out Set
	if err := c.getJSON(ctx, u, &out); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

var errNotFound = errors.New("catalog: not found")

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	op := func() error {
		_, err := c.breaker.Execute(func() (interface{}, error) {
			return nil, c.doOnce(ctx, url, out)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return backoff.Permanent(err)
		}
		return err
	}

	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(op, bo)
}

func (c *Client) doOnce(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "key "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return backoff.Permanent(errNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return fmt.Errorf("catalog: unexpected status code: %d", resp.StatusCode)
	default:
		return backoff.Permanent(fmt.Errorf("catalog: unexpected status code: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return backoff.Permanent(fmt.Errorf("catalog: decode response: %w", err))
	}
	return nil
}
