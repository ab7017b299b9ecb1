// Package client calls the tally REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rpggio/tally/internal/calendar"
	"github.com/rpggio/tally/internal/domain/count"
	"github.com/rpggio/tally/internal/domain/habit"
	"github.com/rpggio/tally/internal/domain/user"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote returned %d", e.Status)
	}
	return fmt.Sprintf("remote returned %d: %s", e.Status, e.Message)
}

// Is lets a 404 match habit.ErrHabitNotFound.
func (e *APIError) Is(target error) bool {
	return e.Status == http.StatusNotFound && target == habit.ErrHabitNotFound
}

// Client is a REST client bound to one server and bearer token.
type Client struct {
	baseURL string
	token   string
	userID  string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithUserID sends userId on requests, for servers running without auth.
func WithUserID(id string) Option {
	return func(c *Client) { c.userID = id }
}

// New creates a client for baseURL. token may be empty when the server has
// auth disabled.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListHabits returns the active habits of the current user.
func (c *Client) ListHabits(ctx context.Context) ([]habit.Habit, error) {
	q := url.Values{}
	if c.userID != "" {
		q.Set("userId", c.userID)
	}
	var out struct {
		Habits []habit.Habit `json:"habits"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/habits", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Habits, nil
}

// CreateHabit creates a remote habit.
func (c *Client) CreateHabit(ctx context.Context, req habit.CreateRequest) (*habit.Habit, error) {
	body := map[string]any{
		"name":      req.Name,
		"color":     req.Color,
		"dailyGoal": req.DailyGoal,
	}
	if c.userID != "" {
		body["userId"] = c.userID
	}
	var out struct {
		Habit *habit.Habit `json:"habit"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/habits", nil, body, &out); err != nil {
		return nil, err
	}
	if out.Habit == nil {
		return nil, errors.New("create habit: empty response")
	}
	return out.Habit, nil
}

// UpsertCount overwrites a remote day count.
func (c *Client) UpsertCount(ctx context.Context, habitID string, date calendar.Date, value int) (*count.Count, error) {
	body := map[string]any{
		"countDate":  date.String(),
		"countValue": value,
	}
	var out struct {
		Count *count.Count `json:"count"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/habits/"+url.PathEscape(habitID)+"/counts", nil, body, &out); err != nil {
		return nil, err
	}
	if out.Count == nil {
		return nil, errors.New("upsert count: empty response")
	}
	return out.Count, nil
}

// ListCounts returns stored counts of the last days days, newest first.
func (c *Client) ListCounts(ctx context.Context, habitID string, days int) ([]count.Count, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}
	var out struct {
		Counts []count.Count `json:"counts"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/habits/"+url.PathEscape(habitID)+"/counts", q, nil, &out); err != nil {
		return nil, err
	}
	return out.Counts, nil
}

// Me returns the user the token belongs to.
func (c *Client) Me(ctx context.Context) (*user.User, error) {
	var out struct {
		User *user.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return out.User, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&payload)
		return &APIError{Status: resp.StatusCode, Message: payload.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
