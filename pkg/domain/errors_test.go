package domain

import (
	"errors"
	"net/http"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func TestErrIsMatchesOnCode(t *testing.T) {
	derived := ErrRateLimited.WithMsg("rate limit exceeded, retry after 120 seconds").WithRetryAfter(120)
	if !errors.Is(derived, ErrRateLimited) {
		t.Error("derived rate-limit error does not match sentinel")
	}
	if errors.Is(derived, ErrUnauthorized) {
		t.Error("rate-limit error matched the wrong sentinel")
	}
}

func TestWithMsgKeepsCodeAndStatus(t *testing.T) {
	e := ErrBadRequest.WithMsg("missing parameter")
	if e.Code != ErrBadRequest.Code {
		t.Errorf("Code = %q", e.Code)
	}
	if e.Status != http.StatusBadRequest {
		t.Errorf("Status = %d", e.Status)
	}
	if e.Error() != "missing parameter" {
		t.Errorf("Error() = %q", e.Error())
	}
	if ErrBadRequest.Msg != "bad request" {
		t.Errorf("sentinel mutated: %q", ErrBadRequest.Msg)
	}
}

func TestWithMsgEmptyKeepsDefault(t *testing.T) {
	e := ErrForbidden.WithMsg("")
	if e.Error() != ErrForbidden.Msg {
		t.Errorf("Error() = %q, want sentinel default", e.Error())
	}
}

func TestRetryAfterExtraction(t *testing.T) {
	e := ErrRateLimited.WithRetryAfter(120)
	ra, ok := RetryAfter(e)
	if !ok || ra != 120 {
		t.Errorf("RetryAfter = %d, %v; want 120, true", ra, ok)
	}

	wrapped := pkgerrors.Wrap(e, "calling breachedaccount")
	ra, ok = RetryAfter(wrapped)
	if !ok || ra != 120 {
		t.Errorf("RetryAfter through wrap = %d, %v; want 120, true", ra, ok)
	}

	if _, ok := RetryAfter(ErrNotFound); ok {
		t.Error("RetryAfter matched a non-rate-limit error")
	}
}

func TestStatusUnwraps(t *testing.T) {
	wrapped := pkgerrors.Wrap(ErrServiceUnavailable, "fetching status")
	if got := Status(wrapped); got != http.StatusServiceUnavailable {
		t.Errorf("Status = %d, want 503", got)
	}
	if got := Status(errors.New("plain")); got != 0 {
		t.Errorf("Status of foreign error = %d, want 0", got)
	}
}
