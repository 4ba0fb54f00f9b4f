// Package cli implements the interactive command-line client for the user
// accounts service. It talks to the REST API and keeps the session token
// obtained at login for subsequent protected calls.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/useraccounts/internal/common"
)

// User mirrors the API's public user representation.
type User struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type apiError struct {
	Error string `json:"error"`
}

// Client is a thin HTTP wrapper around the user accounts API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Register creates a new account. The password buffers are not retained.
func (c *Client) Register(ctx context.Context, firstName, lastName, email string, password, repeatPassword []byte) (*User, error) {

	body := map[string]string{
		"firstName":      firstName,
		"lastName":       lastName,
		"email":          email,
		"password":       string(password),
		"repeatPassword": string(repeatPassword),
	}

	resp, err := c.postJSON(ctx, "/users", body, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	user := &User{}
	if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return user, nil
}

// Login authenticates and returns the session token and public user id from
// the response headers.
func (c *Client) Login(ctx context.Context, email string, password []byte) (token, userID string, err error) {

	body := map[string]string{
		"email":    email,
		"password": string(password),
	}

	resp, err := c.postJSON(ctx, "/users/login", body, "")
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", decodeError(resp)
	}

	header := resp.Header.Get(common.AuthorizationHeaderName)
	token, ok := strings.CutPrefix(header, common.BearerPrefix)
	if !ok || token == "" {
		return "", "", fmt.Errorf("no token in login response")
	}

	userID = resp.Header.Get(common.UserIDHeaderName)

	return token, userID, nil
}

// ListUsers fetches all accounts; requires a session token.
func (c *Client) ListUsers(ctx context.Context, token string) ([]User, error) {

	resp, err := c.get(ctx, "/users", token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	var result []User
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return result, nil
}

// GetUser fetches a single account by its public id; requires a session token.
func (c *Client) GetUser(ctx context.Context, token, userID string) (*User, error) {

	resp, err := c.get(ctx, "/users/"+userID, token)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}

	user := &User{}
	if err := json.NewDecoder(resp.Body).Decode(user); err != nil {
		return nil, fmt.Errorf("error decoding response: %w", err)
	}

	return user, nil
}

// Ping checks server availability.
func (c *Client) Ping(ctx context.Context) error {

	resp, err := c.get(ctx, "/ping", "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, token string) (*http.Response, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	return c.http.Do(req)
}

func (c *Client) get(ctx context.Context, path, token string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	return c.http.Do(req)
}

func decodeError(resp *http.Response) error {
	b, _ := io.ReadAll(resp.Body)

	e := &apiError{}
	if err := json.Unmarshal(b, e); err == nil && e.Error != "" {
		return fmt.Errorf("server error (%d): %s", resp.StatusCode, e.Error)
	}

	return fmt.Errorf("server error (%d)", resp.StatusCode)
}
