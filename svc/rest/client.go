package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"hibp/cfg"
	"hibp/metrics"
	"hibp/pkg/domain"
	"hibp/svc/util"
)

const (
	apiKeyHeader  = "hibp-api-key"
	maxBodyBytes  = 16 << 20
	maxErrorBytes = 8 << 10
)

// Client is the single point of HTTP access and status-to-error
// translation. Configuration is fixed at construction; a Client is safe
// for concurrent use.
type Client struct {
	base    string
	pwBase  string
	key     cfg.Secret
	ua      string
	http    *http.Client
	limiter *rate.Limiter
}

func New(c *cfg.Cfg) *Client {
	cl := &Client{
		base:   strings.TrimRight(c.BaseURL, "/"),
		pwBase: strings.TrimRight(c.PasswordsURL, "/"),
		key:    cfg.NewSecret(c.APIKey.Value()),
		ua:     c.UserAgent,
		http:   &http.Client{Timeout: c.Timeout},
	}
	if c.RequestsPerMinute > 0 {
		cl.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(c.RequestsPerMinute)), 1)
	}
	return cl
}

// HasAPIKey reports whether an API key was configured. Endpoints that
// require one fail fast without it.
func (c *Client) HasAPIKey() bool {
	return !c.key.Empty()
}

// Get performs one GET against the main API. A nil body with a nil
// error means the server answered with no content (200 empty or 204).
// 404 surfaces as domain.ErrNotFound; callers decide whether that means
// "empty result" for their endpoint.
func (c *Client) Get(ctx context.Context, path string, q url.Values, auth bool) ([]byte, error) {
	return c.do(ctx, c.base, path, q, nil, auth)
}

// GetPasswords performs one GET against the password range API. No API
// key is attached; the endpoint does not use one.
func (c *Client) GetPasswords(ctx context.Context, path string, q url.Values, hdr http.Header) ([]byte, error) {
	return c.do(ctx, c.pwBase, path, q, hdr, false)
}

// GetJSON decodes a main-API response into out. The bool reports
// whether a body was present: collection endpoints treat false as an
// empty result.
func (c *Client) GetJSON(ctx context.Context, path string, q url.Values, auth bool, out any) (bool, error) {
	body, err := c.Get(ctx, path, q, auth)
	if err != nil {
		return false, err
	}
	if body == nil {
		return false, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return false, domain.ErrAPI.WithMsg("malformed response body: " + err.Error()).WithBody(truncate(string(body)))
	}
	return true, nil
}

func (c *Client) do(ctx context.Context, base, path string, q url.Values, hdr http.Header, auth bool) ([]byte, error) {
	if auth && c.key.Empty() {
		return nil, domain.ErrMissingAPIKey
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, domain.ErrTimeout.WithMsg("cancelled while pacing request: " + err.Error())
		}
	}
	u := base + "/" + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, domain.ErrInvalidRequest.WithMsg("building request: " + err.Error())
	}
	req.Header.Set("User-Agent", c.ua)
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if auth {
		req.Header.Set(apiKeyHeader, c.key.Value())
	}

	reqID := util.NewRequestID()
	endpoint := endpointLabel(path)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		util.Warn().
			Err(err).
			Str("url", u).
			Str("request_id", reqID).
			Msg("request failed")
		metrics.RequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, wrapNetErr(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(endpoint, "error").Inc()
		return nil, domain.ErrAPI.WithMsg("reading response body: " + err.Error())
	}

	dur := time.Since(start)
	status := strconv.Itoa(resp.StatusCode)
	metrics.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	metrics.RequestDuration.WithLabelValues(endpoint, status).Observe(dur.Seconds())
	util.Debug().
		Str("method", http.MethodGet).
		Str("url", u).
		Int("status", resp.StatusCode).
		Dur("duration", dur).
		Str("request_id", reqID).
		Msg("api request")

	return c.handle(resp, body, endpoint)
}

func (c *Client) handle(resp *http.Response, body []byte, endpoint string) ([]byte, error) {
	code := resp.StatusCode
	switch {
	case code == http.StatusNoContent:
		return nil, nil
	case code >= 200 && code < 300:
		if len(body) == 0 {
			return nil, nil
		}
		return body, nil
	}

	text := truncate(strings.TrimSpace(string(body)))
	switch code {
	case http.StatusBadRequest:
		return nil, domain.ErrBadRequest.WithMsg(orDefault(text, "invalid request format")).WithBody(text)
	case http.StatusUnauthorized:
		return nil, domain.ErrUnauthorized.WithMsg(orDefault(text, "invalid API key")).WithBody(text)
	case http.StatusForbidden:
		return nil, domain.ErrForbidden.WithMsg(orDefault(text, "missing or invalid user agent")).WithBody(text)
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	case http.StatusTooManyRequests:
		metrics.RateLimitHits.WithLabelValues(endpoint).Inc()
		retryAfter := 0
		if ra := resp.Header.Get("Retry-After"); ra != "" {
			if n, err := strconv.Atoi(ra); err == nil {
				retryAfter = n
			}
		}
		msg := fmt.Sprintf("rate limit exceeded, retry after %d seconds", retryAfter)
		return nil, domain.ErrRateLimited.WithMsg(msg).WithRetryAfter(retryAfter).WithBody(text)
	case http.StatusServiceUnavailable:
		return nil, domain.ErrServiceUnavailable.WithMsg(orDefault(text, "try again later")).WithBody(text)
	default:
		e := domain.NewErr(domain.ErrAPI.Code, fmt.Sprintf("unexpected status code %d", code), code)
		return nil, e.WithBody(text)
	}
}

// wrapNetErr normalizes transport failures (DNS, refused connections,
// TLS, timeouts) into the domain taxonomy so no net/http error types
// leak to callers.
func wrapNetErr(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return domain.ErrTimeout.WithMsg("request timed out: " + err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrTimeout.WithMsg("request timed out: " + err.Error())
	}
	return domain.ErrAPI.WithMsg("request failed: " + err.Error())
}

// Escape percent-encodes a caller-supplied path segment. Unlike
// url.PathEscape it encodes every reserved character, including '@',
// which account identifiers routinely contain.
func Escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '/'); i > 0 {
		return path[:i]
	}
	return path
}

func truncate(s string) string {
	if len(s) > maxErrorBytes {
		return s[:maxErrorBytes]
	}
	return s
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
