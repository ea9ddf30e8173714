// internal/adapters/out/storeapi/client.go
package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront/internal/domain/catalog"
	"storefront/internal/domain/order"
	"storefront/internal/domain/session"
)

var (
	ErrNotFound = errors.New("storeapi: not found")
)

// APIError carries the status and server-supplied message of a failed
// call, so the views can show the server's wording in the alert banner.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("storeapi: status=%d message=%q", e.Status, e.Message)
}

// Client talks to the external product/order/auth service. The service
// owns all server state; this client only shuttles JSON.
type Client struct {
	base string
	http *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		base: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// ProductsByCategory fetches the full catalog for a category. The service
// does not promise a stable order; callers sort client-side.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]catalog.Product, error) {
	u := c.base + "/products?category=" + url.QueryEscape(strings.TrimSpace(category))

	var products []catalog.Product
	if err := c.getJSON(ctx, u, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ProductByID resolves a single product; an unknown id is ErrNotFound.
func (c *Client) ProductByID(ctx context.Context, id string) (catalog.Product, error) {
	u := c.base + "/products/" + url.PathEscape(strings.TrimSpace(id))

	var p catalog.Product
	if err := c.getJSON(ctx, u, "", &p); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return catalog.Product{}, ErrNotFound
		}
		return catalog.Product{}, err
	}
	return p, nil
}

// Login exchanges credentials for a bearer token. The token is opaque
// here; only the session gate peeks inside it.
func (c *Client) Login(ctx context.Context, creds session.Credentials) (string, error) {
	body, err := json.Marshal(creds)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("storeapi: login: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return "", readAPIError(res)
	}

	// Older deployments returned {accessToken}, newer ones {token}.
	var payload struct {
		AccessToken string `json:"accessToken"`
		Token       string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("storeapi: login decode: %w", err)
	}
	if payload.AccessToken != "" {
		return payload.AccessToken, nil
	}
	if payload.Token != "" {
		return payload.Token, nil
	}
	return "", &APIError{Status: res.StatusCode, Message: "login response had no token"}
}

// Orders lists the authenticated user's orders.
func (c *Client) Orders(ctx context.Context, token string) ([]order.Order, error) {
	var orders []order.Order
	if err := c.getJSON(ctx, c.base+"/orders", token, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SubmitOrder posts a checkout order and returns the confirmed order as
// the server recorded it.
func (c *Client) SubmitOrder(ctx context.Context, o order.Order) (order.Order, error) {
	body, err := json.Marshal(o)
	if err != nil {
		return order.Order{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/checkout", bytes.NewReader(body))
	if err != nil {
		return order.Order{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return order.Order{}, fmt.Errorf("storeapi: checkout: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return order.Order{}, readAPIError(res)
	}

	var confirmed order.Order
	if err := json.NewDecoder(res.Body).Decode(&confirmed); err != nil {
		return order.Order{}, fmt.Errorf("storeapi: checkout decode: %w", err)
	}
	return confirmed, nil
}

// ----------------------------
// helpers
// ----------------------------

func (c *Client) getJSON(ctx context.Context, u, bearer string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("storeapi: get %s: %w", u, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return readAPIError(res)
	}
	if err := json.NewDecoder(res.Body).Decode(v); err != nil {
		return fmt.Errorf("storeapi: decode %s: %w", u, err)
	}
	return nil
}

func readAPIError(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))

	// Try the common {message} / {error} envelopes, fall back to the body.
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			msg = envelope.Message
		} else if envelope.Error != "" {
			msg = envelope.Error
		}
	}
	if msg == "" {
		msg = res.Status
	}
	return &APIError{Status: res.StatusCode, Message: msg}
}
