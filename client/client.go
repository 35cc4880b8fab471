// Package client talks to the news API over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/SergeyParamoshkin/news/internal/model"
)

type Client struct {
	http.Client
	Addr  string
	Token string
}

// Error is a non-2xx answer from the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("news api: %d %s", e.StatusCode, e.Message)
}

// User is the public part of an account.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Status is the answer of the auth status route.
type Status struct {
	IsAuthenticated bool  `json:"isAuthenticated"`
	User            *User `json:"user,omitempty"`
}

// NewsFields are the writable fields of a news article. Nil fields are
// left out of the request.
type NewsFields struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

func (c *Client) Ping(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Addr+"/ping", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), err
}

// Login exchanges credentials for a token and keeps it on the client.
func (c *Client) Login(ctx context.Context, username, password string) (User, error) {
	var out struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}
	err := c.call(ctx, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	if err != nil {
		return User{}, err
	}
	c.Token = out.Token

	return out.User, nil
}

func (c *Client) Register(ctx context.Context, username, password string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	err := c.call(ctx, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
	}, &out)

	return out.User, err
}

func (c *Client) AuthStatus(ctx context.Context) (Status, error) {
	var out Status
	err := c.call(ctx, http.MethodGet, "/api/auth/status", nil, &out)

	return out, err
}

func (c *Client) ListNews(ctx context.Context) ([]model.Article, error) {
	var out []model.Article
	err := c.call(ctx, http.MethodGet, "/api/news", nil, &out)

	return out, err
}

func (c *Client) GetNews(ctx context.Context, id int64) (model.Article, error) {
	var out model.Article
	err := c.call(ctx, http.MethodGet, fmt.Sprintf("/api/news/%d", id), nil, &out)

	return out, err
}

func (c *Client) CreateNews(ctx context.Context, fields NewsFields) (model.Article, error) {
	var out model.Article
	err := c.call(ctx, http.MethodPost, "/api/admin/news", fields, &out)

	return out, err
}

func (c *Client) UpdateNews(ctx context.Context, id int64, fields NewsFields) (model.Article, error) {
	var out model.Article
	err := c.call(ctx, http.MethodPut, fmt.Sprintf("/api/admin/news/%d", id), fields, &out)

	return out, err
}

func (c *Client) DeleteNews(ctx context.Context, id int64) error {
	return c.call(ctx, http.MethodDelete, fmt.Sprintf("/api/admin/news/%d", id), nil, nil)
}

func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.Addr+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &Error{StatusCode: resp.StatusCode}
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
		}

		return apiErr
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
