// Package apiclient is a Go client for the travelguide REST API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travelguide/internal/adapters/observability"
	"travelguide/internal/domain"
)

var (
	ErrNotFound     = errors.New("apiclient: not found")
	ErrUnauthorized = errors.New("apiclient: unauthorized")
)

const (
	defaultRPS         = 5
	defaultMaxAttempts = 4
	baseBackoff        = 200 * time.Millisecond
	userAgent          = "travelguide-client/1.0"
)

type Client struct {
	base        string
	hc          *http.Client
	rl          *rate.Limiter
	maxAttempts int
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.hc = hc } }

// WithMaxAttempts bounds how many times one call is sent, first try included.
func WithMaxAttempts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxAttempts = n
		}
	}
}

// New builds a client for base (scheme and host required). rps caps the
// request rate across all calls; zero or less picks a default.
func New(base string, rps int, opts ...Option) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", base)
	}
	if rps <= 0 {
		rps = defaultRPS
	}
	c := &Client{
		base:        strings.TrimRight(base, "/"),
		hc:          &http.Client{Timeout: 20 * time.Second},
		rl:          rate.NewLimiter(rate.Limit(rps), rps),
		maxAttempts: defaultMaxAttempts,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

func (c *Client) ListDestinations(ctx context.Context, name string) ([]domain.Destination, error) {
	q := url.Values{}
	if name != "" {
		q.Set("name", name)
	}
	out := []domain.Destination{}
	return out, c.call(ctx, http.MethodGet, "/api/destinations", q, nil, &out)
}

func (c *Client) GetDestination(ctx context.Context, id int64) (domain.Destination, error) {
	var out domain.Destination
	return out, c.call(ctx, http.MethodGet, "/api/destination/"+strconv.FormatInt(id, 10), nil, nil, &out)
}

// CreateDestination posts d without its id; the server assigns one.
func (c *Client) CreateDestination(ctx context.Context, d domain.Destination) (domain.Destination, error) {
	in := domain.DestinationPatch{Name: d.Name, Description: d.Description, Image: d.Image}
	var out domain.Destination
	return out, c.call(ctx, http.MethodPost, "/api/destination", nil, in, &out)
}

func (c *Client) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	in := domain.UserPatch{Username: u.Username, Email: u.Email}
	var out domain.User
	return out, c.call(ctx, http.MethodPost, "/api/user", nil, in, &out)
}

func (c *Client) CreateComment(ctx context.Context, cm domain.Comment) (domain.Comment, error) {
	in := struct {
		DestinationID *int64  `json:"destinationId,omitempty"`
		UserID        *int64  `json:"userId,omitempty"`
		Text          *string `json:"text,omitempty"`
	}{cm.DestinationID, cm.UserID, cm.Text}
	var out domain.Comment
	return out, c.call(ctx, http.MethodPost, "/api/comment", nil, in, &out)
}

// outcome of a single send. retry is set for failures worth another try;
// wait is a server-requested delay (Retry-After), zero when none was given.
type outcome struct {
	err   error
	retry bool
	wait  time.Duration
}

// call sends one logical request: rate limited, retried while the server
// cannot have acted on it, with the JSON response decoded into out. A create
// that failed mid-flight or with a 5xx may already be stored, so only
// idempotent methods are retried on those; every method is retried on 429.
func (c *Client) call(ctx context.Context, method, path string, q url.Values, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}
	target := c.base + path
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	var payload []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		payload = b
	}

	var last outcome
	for i := 0; i < c.maxAttempts; i++ {
		last = c.send(ctx, method, target, path, payload, out)
		if !last.retry || i == c.maxAttempts-1 {
			break
		}
		wait := last.wait
		if wait == 0 {
			wait = backoff(i)
		}
		if !sleepCtx(ctx, wait) {
			return ctx.Err()
		}
	}
	return last.err
}

func (c *Client) send(ctx context.Context, method, target, endpoint string, payload []byte, out any) outcome {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return outcome{err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("travelguide", endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return outcome{err: ctx.Err()}
		}
		return outcome{err: err, retry: idempotent(method)}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("travelguide", endpoint, resp.StatusCode, time.Since(start))

	switch code := resp.StatusCode; {
	case code == http.StatusNoContent:
		return outcome{}
	case code == http.StatusOK || code == http.StatusCreated:
		return outcome{err: json.NewDecoder(resp.Body).Decode(out)}
	case code == http.StatusNotFound:
		return outcome{err: ErrNotFound}
	case code == http.StatusUnauthorized:
		return outcome{err: ErrUnauthorized}
	case code == http.StatusTooManyRequests:
		return outcome{err: fmt.Errorf("remote %d", code), retry: true, wait: retryAfter(resp)}
	case transient(code):
		return outcome{err: fmt.Errorf("remote %d", code), retry: idempotent(method), wait: retryAfter(resp)}
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return outcome{err: fmt.Errorf("bad status %d: %s", code, strings.TrimSpace(string(b)))}
	}
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodPut, http.MethodDelete:
		return true
	}
	return false
}

func transient(code int) bool {
	switch code {
	case http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// sleepCtx waits for d and reports false if ctx ended first.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter reads Retry-After as seconds or an HTTP date; 0 if unusable.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from baseBackoff per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	d := baseBackoff << i
	return d + time.Duration(rand.Int63n(int64(d)/2+1))
}
