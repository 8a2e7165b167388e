package sub

import (
	"context"

	"hibp/pkg/domain"
	"hibp/svc/rest"
)

// Subscription wraps the subscription status endpoint.
type Subscription struct {
	rest *rest.Client
}

func New(c *rest.Client) *Subscription {
	return &Subscription{rest: c}
}

// Status returns the plan attached to the configured API key. A 404
// here is a real error: every valid key has a status.
func (s *Subscription) Status(ctx context.Context) (*domain.Subscription, error) {
	var out domain.Subscription
	found, err := s.rest.GetJSON(ctx, "subscription/status", nil, true, &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	return &out, nil
}
