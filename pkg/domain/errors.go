package domain

import (
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrBadRequest         = NewErr("BAD_REQUEST", "bad request", http.StatusBadRequest)
	ErrUnauthorized       = NewErr("UNAUTHORIZED", "invalid API key", http.StatusUnauthorized)
	ErrForbidden          = NewErr("FORBIDDEN", "missing or invalid user agent", http.StatusForbidden)
	ErrNotFound           = NewErr("NOT_FOUND", "resource not found", http.StatusNotFound)
	ErrRateLimited        = NewErr("RATE_LIMITED", "rate limit exceeded", http.StatusTooManyRequests)
	ErrServiceUnavailable = NewErr("SERVICE_UNAVAILABLE", "service unavailable", http.StatusServiceUnavailable)
	ErrTimeout            = NewErr("TIMEOUT", "request timed out", 0)
	ErrMissingAPIKey      = NewErr("MISSING_API_KEY", "API key required but not configured", 0)
	ErrInvalidRequest     = NewErr("INVALID_REQUEST", "invalid request", 0)
	ErrAPI                = NewErr("API_ERROR", "unexpected API error", 0)
)

// Err is the single error type surfaced by the client. Status is the
// HTTP status that produced it (0 for errors raised before any network
// call). RetryAfter carries seconds from a 429 Retry-After header; 0
// means the header was absent.
type Err struct {
	Code       string `json:"code"`
	Msg        string `json:"message"`
	Status     int    `json:"-"`
	RetryAfter int    `json:"retry_after,omitempty"`
	Body       string `json:"-"`
}

func (e *Err) Error() string { return e.Msg }

// Is matches on Code so errors.Is(err, ErrRateLimited) works against
// per-response instances carrying their own message and payload.
func (e *Err) Is(target error) bool {
	t, ok := target.(*Err)
	return ok && t.Code == e.Code
}

func NewErr(code, msg string, status int) *Err {
	return &Err{Code: code, Msg: msg, Status: status}
}

// WithMsg derives an instance carrying a server-provided message while
// keeping the sentinel's code and status for matching.
func (e *Err) WithMsg(msg string) *Err {
	d := *e
	if msg != "" {
		d.Msg = msg
	}
	return &d
}

func (e *Err) WithBody(body string) *Err {
	d := *e
	d.Body = body
	return &d
}

func (e *Err) WithRetryAfter(seconds int) *Err {
	d := *e
	d.RetryAfter = seconds
	return &d
}

// RetryAfter extracts the retry-after seconds from a rate-limit error,
// unwrapping as needed. Returns 0, false for anything else.
func RetryAfter(err error) (int, bool) {
	if e, ok := err.(*Err); ok && e.Code == ErrRateLimited.Code {
		return e.RetryAfter, true
	}
	if e, ok := errors.Cause(err).(*Err); ok && e.Code == ErrRateLimited.Code {
		return e.RetryAfter, true
	}
	return 0, false
}

func Status(err error) int {
	if e, ok := err.(*Err); ok {
		return e.Status
	}
	if e, ok := errors.Cause(err).(*Err); ok {
		return e.Status
	}
	return 0
}
