// Package apiclient talks to the users API over HTTP.
package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/patric-chuzhbe/userdir/internal/models"
)

const usersPath = "/api/users"

// ForwardedForHeader carries the browser address to the API, which reads it
// back through middleware.RealIP.
const ForwardedForHeader = "X-Forwarded-For"

type clientIPKey struct{}

// WithClientIP returns a copy of ctx that makes the client forward ip to the
// API, so per-address limits apply to the browser rather than to this process.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIP returns the address stored by WithClientIP, or "".
func ClientIP(ctx context.Context) string {
	ip, _ := ctx.Value(clientIPKey{}).(string)
	return ip
}

// APIError is a non-2xx reply. Message carries the server's "error" text
// when there is one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("users API replied %d: %s", e.Status, e.Message)
}

type Client struct {
	http *resty.Client
}

// New returns a client for the API served at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetHeader("Accept", "application/json"),
	}
}

func (c *Client) request(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	if ip := ClientIP(ctx); ip != "" {
		req.SetHeader(ForwardedForHeader, ip)
	}

	return req
}

func toAPIError(resp *resty.Response) error {
	message := http.StatusText(resp.StatusCode())
	if body, ok := resp.Error().(*models.ErrorResponse); ok && body.Error != "" {
		message = body.Error
	}

	return &APIError{
		Status:  resp.StatusCode(),
		Message: message,
	}
}

// ListUsers fetches the whole collection.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	users := []models.User{}

	resp, err := c.request(ctx).
		SetResult(&users).
		SetError(&models.ErrorResponse{}).
		Get(usersPath)
	if err != nil {
		return nil, fmt.Errorf("in internal/apiclient/apiclient.go/ListUsers(): error while `resty.Get()` calling: %w", err)
	}
	if resp.IsError() {
		return nil, toAPIError(resp)
	}

	return users, nil
}

// CreateUser posts the payload and returns the stored record.
func (c *Client) CreateUser(ctx context.Context, payload models.NewUser) (models.User, error) {
	var created models.User

	resp, err := c.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		SetResult(&created).
		SetError(&models.ErrorResponse{}).
		Post(usersPath)
	if err != nil {
		return models.User{}, fmt.Errorf("in internal/apiclient/apiclient.go/CreateUser(): error while `resty.Post()` calling: %w", err)
	}
	if resp.IsError() {
		return models.User{}, toAPIError(resp)
	}

	return created, nil
}
