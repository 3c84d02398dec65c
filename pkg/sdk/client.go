package sdk

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to one service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithToken returns a Session presenting token to this client's service.
func (c *Client) WithToken(token string) *Session {
	return &Session{client: c, token: token}
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready. A degraded service answers
// 503, which is returned as an *APIError.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}

// Register creates a student account on the identity service.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/register", "", req)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for a bearer token on the identity service.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/login", "", req)
	if err != nil {
		return nil, err
	}

	var login LoginResponse
	if err := decodeJSON(resp, &login, http.StatusOK); err != nil {
		return nil, err
	}
	return &login, nil
}

// ListCourses returns the public catalog, newest first.
func (c *Client) ListCourses(ctx context.Context) ([]CourseResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/courses", "", nil)
	if err != nil {
		return nil, err
	}

	var courses []CourseResponse
	if err := decodeJSON(resp, &courses, http.StatusOK); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) GetCourse(ctx context.Context, id string) (*CourseResponse, error) {
	resp, err := c.do(ctx, http.MethodGet, "/courses/"+url.PathEscape(id), "", nil)
	if err != nil {
		return nil, err
	}

	var course CourseResponse
	if err := decodeJSON(resp, &course, http.StatusOK); err != nil {
		return nil, err
	}
	return &course, nil
}
