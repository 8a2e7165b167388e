package paste

import (
	"context"

	"github.com/pkg/errors"

	"hibp/pkg/domain"
	"hibp/svc/rest"
)

// Pastes wraps the paste lookup endpoint.
type Pastes struct {
	rest *rest.Client
}

func New(c *rest.Client) *Pastes {
	return &Pastes{rest: c}
}

// ForAccount lists every paste the email address appears in. A 404
// means no pastes and yields an empty slice. Requires an API key.
func (p *Pastes) ForAccount(ctx context.Context, account string) ([]domain.Paste, error) {
	var out []domain.Paste
	found, err := p.rest.GetJSON(ctx, "pasteaccount/"+rest.Escape(account), nil, true, &out)
	if errors.Is(err, domain.ErrNotFound) {
		return []domain.Paste{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !found {
		return []domain.Paste{}, nil
	}
	return out, nil
}
