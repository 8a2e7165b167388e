// Package hibp is a client for the Have I Been Pwned REST API: breach,
// paste and stealer-log lookups, subscription status, and k-Anonymity
// password exposure checks.
//
// One Client shares a single transport (API key, user agent, timeout)
// across every endpoint group. Password checks work without an API key;
// everything account-scoped requires one and fails fast if it is
// missing.
package hibp

import (
	"context"

	"hibp/cfg"
	"hibp/pkg/domain"
	"hibp/svc/breach"
	"hibp/svc/cache"
	"hibp/svc/paste"
	"hibp/svc/pw"
	"hibp/svc/rest"
	"hibp/svc/stealer"
	"hibp/svc/sub"
)

// Client composes every endpoint group over one shared transport. The
// groups are exported for callers that prefer the narrow surfaces; the
// methods below are 1:1 conveniences over them.
type Client struct {
	Breaches     *breach.Breaches
	Pastes       *paste.Pastes
	StealerLogs  *stealer.StealerLogs
	Subscription *sub.Subscription
	Passwords    *pw.Passwords
}

// New builds a client from the given configuration; nil means
// cfg.Default(). The configuration is validated and then treated as
// read-only, which makes the client safe to share across goroutines.
func New(c *cfg.Cfg) (*Client, error) {
	if c == nil {
		c = cfg.Default()
	}
	if err := cfg.Validate(c); err != nil {
		return nil, err
	}
	transport := rest.New(c)

	var rangeCache *cache.RangeLRU
	if c.RangeCacheSize > 0 {
		var err error
		rangeCache, err = cache.NewRangeLRU(c.RangeCacheSize, c.RangeCacheTTL)
		if err != nil {
			return nil, err
		}
	}

	return &Client{
		Breaches:     breach.New(transport),
		Pastes:       paste.New(transport),
		StealerLogs:  stealer.New(transport),
		Subscription: sub.New(transport),
		Passwords:    pw.New(transport, rangeCache),
	}, nil
}

// GetAccountBreaches lists breaches for an email address, username or
// phone number.
func (c *Client) GetAccountBreaches(ctx context.Context, account string, params breach.AccountParams) ([]domain.Breach, error) {
	return c.Breaches.ForAccount(ctx, account, params)
}

// GetAllBreaches lists the whole breach catalogue.
func (c *Client) GetAllBreaches(ctx context.Context, domainFilter string, isSpamList *bool) ([]domain.Breach, error) {
	return c.Breaches.All(ctx, domainFilter, isSpamList)
}

// GetBreach fetches a single breach by name.
func (c *Client) GetBreach(ctx context.Context, name string) (*domain.Breach, error) {
	return c.Breaches.Get(ctx, name)
}

// GetLatestBreach fetches the most recently added breach.
func (c *Client) GetLatestBreach(ctx context.Context) (*domain.Breach, error) {
	return c.Breaches.Latest(ctx)
}

// GetDataClasses lists every data class label.
func (c *Client) GetDataClasses(ctx context.Context) ([]string, error) {
	return c.Breaches.DataClasses(ctx)
}

// GetDomainBreaches maps email aliases on a verified domain to breach
// names.
func (c *Client) GetDomainBreaches(ctx context.Context, domainName string) (map[string][]string, error) {
	return c.Breaches.BreachedDomain(ctx, domainName)
}

// GetSubscribedDomains lists domains enrolled for domain search.
func (c *Client) GetSubscribedDomains(ctx context.Context) ([]domain.SubscribedDomain, error) {
	return c.Breaches.SubscribedDomains(ctx)
}

// GetStealerLogsByEmail lists website domains where the email was
// captured.
func (c *Client) GetStealerLogsByEmail(ctx context.Context, email string) ([]string, error) {
	return c.StealerLogs.ByEmail(ctx, email)
}

// GetStealerLogsByWebsite lists captured email addresses for a website
// domain.
func (c *Client) GetStealerLogsByWebsite(ctx context.Context, domainName string) ([]string, error) {
	return c.StealerLogs.ByWebsiteDomain(ctx, domainName)
}

// GetStealerLogsByEmailDomain maps aliases on an email domain to the
// websites where they were captured.
func (c *Client) GetStealerLogsByEmailDomain(ctx context.Context, domainName string) (map[string][]string, error) {
	return c.StealerLogs.ByEmailDomain(ctx, domainName)
}

// GetAccountPastes lists pastes containing the email address.
func (c *Client) GetAccountPastes(ctx context.Context, account string) ([]domain.Paste, error) {
	return c.Pastes.ForAccount(ctx, account)
}

// GetSubscriptionStatus returns the plan attached to the API key.
func (c *Client) GetSubscriptionStatus(ctx context.Context) (*domain.Subscription, error) {
	return c.Subscription.Status(ctx)
}

// IsPasswordPwned reports how many times a password appears in the
// corpus, 0 if never.
func (c *Client) IsPasswordPwned(ctx context.Context, password string, useNTLM, addPadding bool) (int, error) {
	return c.Passwords.Check(ctx, password, useNTLM, addPadding)
}

// SearchPasswordHashes returns every digest suffix sharing the given
// 5-hex-character prefix, mapped to its exposure count.
func (c *Client) SearchPasswordHashes(ctx context.Context, prefix string, useNTLM, addPadding bool) (map[string]int, error) {
	return c.Passwords.SearchRange(ctx, prefix, useNTLM, addPadding)
}
