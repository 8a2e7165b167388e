package stealer

import (
	"context"

	"github.com/pkg/errors"

	"hibp/pkg/domain"
	"hibp/svc/rest"
)

// StealerLogs wraps the stealer-log endpoints. All three require an API
// key with stealer-log entitlement, and all three treat 404 as "no
// entries".
type StealerLogs struct {
	rest *rest.Client
}

func New(c *rest.Client) *StealerLogs {
	return &StealerLogs{rest: c}
}

// ByEmail lists website domains where the email address was captured by
// an info stealer.
func (s *StealerLogs) ByEmail(ctx context.Context, email string) ([]string, error) {
	return s.stringList(ctx, "stealerlogsbyemail/"+rest.Escape(email))
}

// ByWebsiteDomain lists email addresses captured when users signed in
// to the given website.
func (s *StealerLogs) ByWebsiteDomain(ctx context.Context, domainName string) ([]string, error) {
	return s.stringList(ctx, "stealerlogsbywebsitedomain/"+rest.Escape(domainName))
}

// ByEmailDomain maps email aliases on the domain to the websites where
// they were captured.
func (s *StealerLogs) ByEmailDomain(ctx context.Context, domainName string) (map[string][]string, error) {
	var out map[string][]string
	found, err := s.rest.GetJSON(ctx, "stealerlogsbyemaildomain/"+rest.Escape(domainName), nil, true, &out)
	if errors.Is(err, domain.ErrNotFound) {
		return map[string][]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return map[string][]string{}, nil
	}
	return out, nil
}

func (s *StealerLogs) stringList(ctx context.Context, path string) ([]string, error) {
	var out []string
	found, err := s.rest.GetJSON(ctx, path, nil, true, &out)
	if errors.Is(err, domain.ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}
	return out, nil
}
