package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iliyamo/cinema-admin-console/internal/utils"
)

// maxErrorBody caps how much of an error body is kept on APIError.
const maxErrorBody = 512

// dependents lists resources whose cached answers embed another resource.
// Deleting a movie or room can drop its showtimes on the backend side.
var dependents = map[string][]string{
	"movies": {"showtimes"},
	"rooms":  {"showtimes"},
}

// Client sends JSON requests to the cinema backend.  Every request carries
// Content-Type: application/json and a correlation id; a body is only sent
// when the caller passes one.  A 204 answer is a success with no result and
// any other 2xx body is decoded as JSON.
type Client struct {
	baseURL string
	http    *http.Client
	cache   Cache
}

// NewClient builds a Client for baseURL (e.g. http://localhost:8000).  cache
// may be nil.
func NewClient(baseURL string, timeout time.Duration, cache Cache) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
	}
}

type bypassCacheKey struct{}

// Fresh marks ctx so GET requests made with it skip cached answers and go to
// the backend.  The fresh answer still refreshes the cache.
func Fresh(ctx context.Context) context.Context {
	return context.WithValue(ctx, bypassCacheKey{}, true)
}

// IsFresh reports whether ctx was marked by Fresh.
func IsFresh(ctx context.Context) bool {
	v, _ := ctx.Value(bypassCacheKey{}).(bool)
	return v
}

// do performs one request.  out may be nil when the caller ignores the result.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path
	resource := resourceOf(path)

	if method == http.MethodGet && c.cache != nil && !IsFresh(ctx) {
		if cached, ok := c.cache.Get(ctx, resource, url); ok {
			return decode(method, path, cached, out)
		}
	}

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s: %w", method, path, err)
		}
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	cid := utils.CorrelationID(ctx)
	if cid == "" {
		cid = utils.NewCorrelationID()
	}
	req.Header.Set(utils.HeaderCorrelationID, cid)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading %s %s: %w", method, path, err)
	}
	logrus.WithFields(logrus.Fields{
		"correlation_id": cid,
		"method":         method,
		"path":           path,
		"status":         resp.StatusCode,
		"duration":       time.Since(start),
	}).Debug("backend request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Method: method, Path: path, Status: resp.StatusCode, Body: truncate(string(data), maxErrorBody)}
	}
	if method != http.MethodGet {
		c.invalidate(ctx, resource)
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if method == http.MethodGet && c.cache != nil {
		c.cache.Put(ctx, resource, url, data)
	}
	return decode(method, path, data, out)
}

func (c *Client) invalidate(ctx context.Context, resource string) {
	if c.cache == nil {
		return
	}
	c.cache.Invalidate(ctx, append([]string{resource}, dependents[resource]...)...)
}

func decode(method, path string, data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

// resourceOf returns the first path segment: "/rooms/3/seats" -> "rooms".
func resourceOf(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		return p[:i]
	}
	return p
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Ping checks that the backend answers below 500.  It bypasses the cache.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/movies/", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 500 {
		return &APIError{Method: http.MethodGet, Path: "/movies/", Status: resp.StatusCode}
	}
	return nil
}
