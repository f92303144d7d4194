package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/morelia/expodesk/pkg/log"
	"github.com/pkg/errors"
)

// Client talks to the platform API. All entity data lives there; the
// dashboard only keeps operational state locally.
type Client struct {
	baseURL string
	http    *retryablehttp.Client
}

func NewClient(baseURL string, opts Options) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = opts.RetryMax
	retryClient.RetryWaitMin = opts.RetryWaitMin
	retryClient.RetryWaitMax = opts.RetryWaitMax
	retryClient.HTTPClient.Timeout = opts.Timeout
	retryClient.Logger = nil

	slog.Debug("platform api client configured", log.ScrubbedURL("url", baseURL))

	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    retryClient,
	}
}

type envelope struct {
	Message string          `json:"message"`
	Items   json.RawMessage `json:"items"`
	Item    json.RawMessage `json:"item"`

	HasMore     bool `json:"hasMore"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
}

// Page is the paginated list envelope returned by every entity listing
// endpoint of the platform API.
type Page[T any] struct {
	Items       []T
	HasMore     bool
	CurrentPage int
	TotalPages  int
}

func (c *Client) do(ctx context.Context, method, path, token string, query url.Values, body any) (*envelope, error) {
	var payload io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		payload = bytes.NewReader(encoded)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrUnavailable, err.Error())
	}

	defer res.Body.Close()

	if err := statusError(res.StatusCode, token != ""); err != nil {
		return nil, errors.WithStack(err)
	}

	env := &envelope{}
	if err := json.NewDecoder(res.Body).Decode(env); err != nil {
		return nil, errors.WithStack(err)
	}

	return env, nil
}

// statusError maps a non-2xx status to one of the failure kinds. A 401
// means bad credentials when no token was sent and a rejected token
// otherwise; a 403 on an authenticated call is a permission denial and
// must not invalidate the session.
func statusError(status int, authed bool) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		if authed {
			return errors.WithStack(ErrSessionExpired)
		}

		return errors.WithStack(ErrAuthenticationFailed)
	case status == http.StatusForbidden:
		if authed {
			return errors.WithStack(ErrForbidden)
		}

		return errors.WithStack(ErrAuthenticationFailed)
	case status == http.StatusNotFound:
		return errors.WithStack(ErrNotFound)
	case status >= 500:
		return errors.Wrapf(ErrUnavailable, "unexpected status %d", status)
	default:
		return errors.Errorf("unexpected status %d", status)
	}
}

func list[T any](ctx context.Context, c *Client, token, path string, page int) (*Page[T], error) {
	query := url.Values{}
	query.Set("page", fmt.Sprintf("%d", page))

	env, err := c.do(ctx, http.MethodGet, path, token, query, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	items := make([]T, 0)
	if len(env.Items) > 0 {
		if err := json.Unmarshal(env.Items, &items); err != nil {
			return nil, errors.WithStack(err)
		}
	}

	return &Page[T]{
		Items:       items,
		HasMore:     env.HasMore,
		CurrentPage: env.CurrentPage,
		TotalPages:  env.TotalPages,
	}, nil
}

func get[T any](ctx context.Context, c *Client, token, path string) (*T, error) {
	env, err := c.do(ctx, http.MethodGet, path, token, nil, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return decodeItem[T](env)
}

func create[T any](ctx context.Context, c *Client, token, path string, body any) (*T, error) {
	env, err := c.do(ctx, http.MethodPost, path, token, nil, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return decodeItem[T](env)
}

func update[T any](ctx context.Context, c *Client, token, path string, body any) (*T, error) {
	env, err := c.do(ctx, http.MethodPut, path, token, nil, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return decodeItem[T](env)
}

func decodeItem[T any](env *envelope) (*T, error) {
	item := new(T)
	if len(env.Item) == 0 {
		return nil, errors.Wrap(ErrNotFound, "empty item payload")
	}

	if err := json.Unmarshal(env.Item, item); err != nil {
		return nil, errors.WithStack(err)
	}

	return item, nil
}
