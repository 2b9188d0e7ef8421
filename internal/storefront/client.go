package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"theatre-box-office/internal/models"
)

// Catalog is the result of one catalog fetch
type Catalog struct {
	Plays   []models.Play
	Tickets []models.Ticket
}

// APIError is a non-2xx response from the box office API
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s %s: %d", e.Method, e.Path, e.StatusCode)
}

// Client talks to the box office API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the API at baseURL
func NewClient(baseURL string, timeout time.Duration) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{Timeout: timeout})
}

// NewClientWithHTTP creates a client using the given http.Client
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// FetchError reports which catalog lists could not be retrieved
type FetchError struct {
	Plays   error
	Tickets error
}

func (e *FetchError) Error() string {
	return errors.Join(e.Plays, e.Tickets).Error()
}

func (e *FetchError) Unwrap() []error {
	var errs []error
	for _, err := range []error{e.Plays, e.Tickets} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Partial reports whether one of the two lists was still retrieved
func (e *FetchError) Partial() bool {
	return e.Plays == nil || e.Tickets == nil
}

// FetchCatalog requests plays and tickets concurrently. A null list becomes empty,
// and so does a list whose request failed; the other list is kept and the
// failure is returned as a *FetchError.
func (c *Client) FetchCatalog(ctx context.Context) (Catalog, error) {
	var (
		wg       sync.WaitGroup
		catalog  Catalog
		fetchErr FetchError
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		fetchErr.Plays = c.getJSON(ctx, "/api/plays", &catalog.Plays)
	}()
	go func() {
		defer wg.Done()
		fetchErr.Tickets = c.getJSON(ctx, "/api/tickets", &catalog.Tickets)
	}()
	wg.Wait()

	if catalog.Plays == nil || fetchErr.Plays != nil {
		catalog.Plays = []models.Play{}
	}
	if catalog.Tickets == nil || fetchErr.Tickets != nil {
		catalog.Tickets = []models.Ticket{}
	}

	if fetchErr.Plays != nil || fetchErr.Tickets != nil {
		return catalog, &fetchErr
	}
	return catalog, nil
}

// CreateCheckoutSession posts the checkout lines and returns the provider session
func (c *Client) CreateCheckoutSession(ctx context.Context, items []models.CheckoutItem) (*models.CheckoutSession, error) {
	if items == nil {
		items = []models.CheckoutItem{}
	}

	body, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode checkout: %w", err)
	}

	var session models.CheckoutSession
	if err := c.do(ctx, http.MethodPost, "/api/checkout", bytes.NewReader(body), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, dst)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return fmt.Errorf("%s %s: failed to read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Method: method, Path: path, StatusCode: resp.StatusCode}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &payload) == nil {
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return nil
}
