// Package gasapi is the client for the thin REST facade in front of the
// spreadsheet. The facade speaks a {data, count} list envelope and, being a
// script runtime, may report failures inside a 200 response body.
package gasapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Gigang-ST/gigang-website/internal/models"
)

// Tables the backend reads or writes through the facade. The facade itself
// exposes more (member, competition, comp_application); those stay on the
// CSV export path here.
const (
	TableActivityLog  = "activity_log"
	TablePersonalBest = "personal_best"
	TableMemberUtmb   = "member_utmb"
)

var ErrNotConfigured = errors.New("GAS_API_URL environment variable is not configured")

type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{http: httpClient, baseURL: baseURL}
}

// listEnvelope is the facade's list response. The error field rides along in
// 2xx bodies when the script fails mid-request.
type listEnvelope[T any] struct {
	Data  []T    `json:"data"`
	Count int    `json:"count"`
	Error string `json:"error"`
}

type itemEnvelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// list fetches all rows of table, with optional query filters.
func list[T any](ctx context.Context, c *Client, table string, params url.Values) ([]T, error) {
	body, err := c.do(ctx, http.MethodGet, table, params, nil)
	if err != nil {
		return nil, err
	}

	var env listEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", table, err)
	}
	if env.Error != "" {
		return nil, errors.New(env.Error)
	}
	return env.Data, nil
}

// create posts one row to table and returns the stored entity, ids and
// timestamps filled in by the facade.
func create[T any](ctx context.Context, c *Client, table string, payload interface{}) (T, error) {
	var zero T

	body, err := c.do(ctx, http.MethodPost, table, nil, payload)
	if err != nil {
		return zero, err
	}

	var env itemEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return zero, fmt.Errorf("decode %s create: %w", table, err)
	}
	if env.Error != "" {
		return zero, errors.New(env.Error)
	}
	return env.Data, nil
}

func (c *Client) do(ctx context.Context, method, table string, params url.Values, payload interface{}) ([]byte, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("table", table)
	for key, vals := range params {
		for _, v := range vals {
			q.Set(key, v)
		}
	}
	u.RawQuery = q.Encode()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = strings.NewReader(string(raw))
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var parsed struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
			return nil, errors.New(parsed.Error)
		}
		snippet := string(body)
		if len(snippet) > 200 {
			snippet = snippet[:200]
		}
		return nil, fmt.Errorf("api error: %d: %s", resp.StatusCode, snippet)
	}
	return body, nil
}

func (c *Client) ActivityLogs(ctx context.Context) ([]models.ActivityLog, error) {
	return list[models.ActivityLog](ctx, c, TableActivityLog, nil)
}

func (c *Client) PersonalBests(ctx context.Context) ([]models.PersonalBest, error) {
	return list[models.PersonalBest](ctx, c, TablePersonalBest, nil)
}

func (c *Client) MemberUtmbs(ctx context.Context) ([]models.MemberUtmb, error) {
	return list[models.MemberUtmb](ctx, c, TableMemberUtmb, nil)
}

func (c *Client) CreateActivityLog(ctx context.Context, l models.ActivityLog) (models.ActivityLog, error) {
	return create[models.ActivityLog](ctx, c, TableActivityLog, l)
}

func (c *Client) CreateMemberUtmb(ctx context.Context, mu models.MemberUtmb) (models.MemberUtmb, error) {
	return create[models.MemberUtmb](ctx, c, TableMemberUtmb, mu)
}
