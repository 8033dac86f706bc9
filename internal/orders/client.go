package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/amontes/storefront-backend/pkg/config"
	pkgerrors "github.com/amontes/storefront-backend/pkg/errors"
	"github.com/google/uuid"
)

const userIDHeader = "X-User-ID"

// Client talks to the external order service over HTTP.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// NewClient builds an order service client from configuration.
func NewClient(cfg config.OrderServiceConfig) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid order service url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("order service url %q must be absolute", cfg.BaseURL)
	}
	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Create submits a new order on behalf of the given user.
func (c *Client) Create(ctx context.Context, userID uuid.UUID, input CreateOrderInput) (*OrderDTO, error) {
	var order OrderDTO
	if err := c.do(ctx, http.MethodPost, "orders", userID, input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListMine returns the user's order history, newest first.
func (c *Client) ListMine(ctx context.Context, userID uuid.UUID) ([]OrderDTO, error) {
	var out []OrderDTO
	if err := c.do(ctx, http.MethodGet, "orders/my-orders", userID, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads a single order belonging to the user.
func (c *Client) GetByID(ctx context.Context, userID uuid.UUID, orderID string) (*OrderDTO, error) {
	var order OrderDTO
	if err := c.do(ctx, http.MethodGet, "orders/"+url.PathEscape(orderID), userID, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// do joins path onto the base URL so a base like http://host/api keeps its
// prefix, then performs the request on behalf of the user.
func (c *Client) do(ctx context.Context, method, path string, userID uuid.UUID, body, out any) error {
	endpoint := c.baseURL.JoinPath(path)

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode order payload")
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build order request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(userIDHeader, userID.String())
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromStatus(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode order response")
	}
	return nil
}

type remoteError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func errorFromStatus(resp *http.Response) error {
	var remote remoteError
	_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&remote)
	message := remote.Message
	if message == "" {
		message = remote.Error
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		if message == "" {
			message = "order not found"
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, message)
	case resp.StatusCode == http.StatusUnprocessableEntity || resp.StatusCode == http.StatusBadRequest:
		if message == "" {
			message = "order rejected"
		}
		return pkgerrors.New(pkgerrors.CodeValidation, message)
	default:
		if message == "" {
			message = fmt.Sprintf("order service returned status %d", resp.StatusCode)
		}
		return pkgerrors.New(pkgerrors.CodeDependency, message)
	}
}
