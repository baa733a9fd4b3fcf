// Package api is a thin HTTP client for the Passport server. It speaks the
// server's JSON envelope and surfaces the server's message on failure.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// User is the public user view returned by the server.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthData is the payload of a successful register or login call.
type AuthData struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Register(ctx context.Context, username, email, fullName, password string) (*AuthData, error) {
	body := map[string]string{
		"username":  username,
		"email":     email,
		"password":  password,
		"full_name": fullName,
	}

	data := &AuthData{}
	if err := c.do(ctx, http.MethodPost, "/auth/register", "", body, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthData, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	data := &AuthData{}
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", body, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	data := &struct {
		User User `json:"user"`
	}{}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, data); err != nil {
		return nil, err
	}
	return &data.User, nil
}

// do sends one request and decodes the envelope. A non-success envelope
// becomes an error carrying the server's message.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody *bytes.Buffer = &bytes.Buffer{}
	if body != nil {
		if err := json.NewEncoder(reqBody).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("unexpected response (%d): %w", resp.StatusCode, err)
	}

	if !env.Success {
		return fmt.Errorf("server: %s", env.Message)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return err
		}
	}

	return nil
}
