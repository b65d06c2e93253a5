// Package directory is the HTTP client for the remote Directory API.
package directory

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

	"github.com/rs/zerolog"

	"github.com/empdir/portal/internal/core/domain"
	"github.com/empdir/portal/internal/metrics"
)

const maxBodyBytes = 1 << 20

// Config controls how the client reaches the Directory API.
type Config struct {
	BaseURL string
	// Timeout bounds a single call. Zero leaves it to the request context.
	Timeout time.Duration
}

// Client implements ports.DirectoryClient over net/http.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Timeout},
		log:     log,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*domain.LoginResult, error) {
	var out domain.LoginResult
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/login", "", loginRequest{Username: username, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &domain.RequestError{Kind: domain.KindServer, Status: http.StatusOK, Message: "login response carried no token"}
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, token string, p domain.EmployeePayload) (*domain.Employee, error) {
	var out domain.Employee
	if err := c.do(ctx, "create", http.MethodPost, "/api/employees", token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchOne(ctx context.Context, token string, id domain.EmployeeID) (*domain.Employee, error) {
	var out *domain.Employee
	if err := c.do(ctx, "fetch_one", http.MethodGet, employeePath(id), token, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, &domain.RequestError{Kind: domain.KindServer, Status: http.StatusOK, Message: "Employee not found"}
	}
	return out, nil
}

func (c *Client) FetchAll(ctx context.Context, token string) ([]domain.Employee, error) {
	var out []domain.Employee
	if err := c.do(ctx, "fetch_all", http.MethodGet, "/api/employees", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, token string, id domain.EmployeeID, p domain.EmployeePayload) (*domain.Employee, error) {
	var out domain.Employee
	if err := c.do(ctx, "update", http.MethodPut, employeePath(id), token, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, token string, id domain.EmployeeID) error {
	return c.do(ctx, "delete", http.MethodDelete, employeePath(id), token, nil, nil)
}

func (c *Client) UpdateCredentials(ctx context.Context, token string, id domain.EmployeeID, cred domain.CredentialsUpdate) error {
	return c.do(ctx, "update_credentials", http.MethodPut, employeePath(id)+"/update-credentials", token, cred, nil)
}

// Ping reports whether the Directory API answers at all. Any HTTP response,
// including an authorization rejection, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/employees", nil)
	if err != nil {
		return fmt.Errorf("directory ping: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("directory ping: %w", err)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
	return nil
}

func employeePath(id domain.EmployeeID) string {
	return "/api/employees/" + url.PathEscape(id.String())
}

// do sends one request and decodes a 2xx body into out. Every failure comes
// back as a *domain.RequestError.
func (c *Client) do(ctx context.Context, op, method, path, token string, body, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if re, ok := domain.AsRequestError(err); ok {
			outcome = re.Kind.String()
		}
		metrics.DirectoryRequestsTotal.WithLabelValues(op, outcome).Inc()
		metrics.DirectoryRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		buf, mErr := json.Marshal(body)
		if mErr != nil {
			return &domain.RequestError{Kind: domain.KindTransport, Message: "could not encode request", Err: mErr}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.RequestError{Kind: domain.KindTransport, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("op", op).Msg("directory request failed")
		return &domain.RequestError{Kind: domain.KindTransport, Message: transportMessage(err), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &domain.RequestError{Kind: domain.KindTransport, Status: resp.StatusCode, Message: transportMessage(err), Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		re := classifyFailure(resp.StatusCode, raw)
		c.log.Debug().Str("op", op).Int("status", resp.StatusCode).Str("kind", re.Kind.String()).Msg("directory rejected request")
		return re
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &domain.RequestError{Kind: domain.KindServer, Status: resp.StatusCode, Message: "unexpected response from the directory", Err: err}
	}
	return nil
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, context.Canceled):
		return "request was cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	default:
		return "Network Error"
	}
}
