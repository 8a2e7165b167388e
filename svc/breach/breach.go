package breach

import (
	"context"
	"net/url"

	"github.com/pkg/errors"

	"hibp/pkg/domain"
	"hibp/svc/rest"
)

// Breaches wraps the breach catalogue endpoints, including domain
// search and subscribed-domain listing.
type Breaches struct {
	rest *rest.Client
}

func New(c *rest.Client) *Breaches {
	return &Breaches{rest: c}
}

// AccountParams narrows an account breach lookup. The zero value is not
// the default; use DefaultAccountParams.
type AccountParams struct {
	// TruncateResponse returns breach names only when true.
	TruncateResponse bool
	// Domain filters results to breaches of one site.
	Domain string
	// IncludeUnverified keeps unverified breaches in the results.
	IncludeUnverified bool
}

func DefaultAccountParams() AccountParams {
	return AccountParams{TruncateResponse: true, IncludeUnverified: true}
}

// ForAccount lists every breach the account appears in. A 404 from the
// API means the account is clean and yields an empty slice. Requires an
// API key.
func (b *Breaches) ForAccount(ctx context.Context, account string, params AccountParams) ([]domain.Breach, error) {
	q := url.Values{}
	if !params.TruncateResponse {
		q.Set("truncateResponse", "false")
	}
	if params.Domain != "" {
		q.Set("domain", params.Domain)
	}
	if !params.IncludeUnverified {
		q.Set("includeUnverified", "false")
	}

	var out []domain.Breach
	found, err := b.rest.GetJSON(ctx, "breachedaccount/"+rest.Escape(account), q, true, &out)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Breach{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Breach{}, nil
	}
	return out, nil
}

// All lists the full breach catalogue. Unauthenticated. isSpamList is
// tri-state: nil applies no filter.
func (b *Breaches) All(ctx context.Context, domainFilter string, isSpamList *bool) ([]domain.Breach, error) {
	q := url.Values{}
	if domainFilter != "" {
		q.Set("domain", domainFilter)
	}
	if isSpamList != nil {
		if *isSpamList {
			q.Set("isSpamList", "true")
		} else {
			q.Set("isSpamList", "false")
		}
	}

	var out []domain.Breach
	found, err := b.rest.GetJSON(ctx, "breaches", q, false, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Breach{}, nil
	}
	return out, nil
}

// Get fetches a single breach by name. Unknown names surface as
// domain.ErrNotFound; a missing catalogue entry is an error here, not
// an empty result. Unauthenticated.
func (b *Breaches) Get(ctx context.Context, name string) (*domain.Breach, error) {
	var out domain.Breach
	found, err := b.rest.GetJSON(ctx, "breach/"+rest.Escape(name), nil, false, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &out, nil
}

// Latest fetches the most recently added breach. Unauthenticated.
func (b *Breaches) Latest(ctx context.Context) (*domain.Breach, error) {
	var out domain.Breach
	found, err := b.rest.GetJSON(ctx, "latestbreach", nil, false, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &out, nil
}

// DataClasses lists every data class label in the system.
// Unauthenticated.
func (b *Breaches) DataClasses(ctx context.Context) ([]string, error) {
	var out []string
	found, err := b.rest.GetJSON(ctx, "dataclasses", nil, false, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return []string{}, nil
	}
	return out, nil
}

// BreachedDomain maps email aliases on a verified domain to the breach
// names they appear in. 404 means no breached accounts. Requires an API
// key and a verified domain.
func (b *Breaches) BreachedDomain(ctx context.Context, domainName string) (map[string][]string, error) {
	var out map[string][]string
	found, err := b.rest.GetJSON(ctx, "breacheddomain/"+rest.Escape(domainName), nil, true, &out)
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

// SubscribedDomains lists the domains enrolled for domain search.
// Requires an API key.
func (b *Breaches) SubscribedDomains(ctx context.Context) ([]domain.SubscribedDomain, error) {
	var out []domain.SubscribedDomain
	found, err := b.rest.GetJSON(ctx, "subscribeddomains", nil, true, &out)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.SubscribedDomain{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.SubscribedDomain{}, nil
	}
	return out, nil
}
