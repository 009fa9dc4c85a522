package out

import (
	"context"

	"crux/internal/modules/identity/domain"
)

// KeyValueStore persists the identity keys between runs.
type KeyValueStore interface {
	Load(ctx context.Context, keys []string) (map[string]string, error)
	Save(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys []string) error
}

// Authenticator exchanges a Google ID token for a backend account.
type Authenticator interface {
	ExchangeGoogleToken(ctx context.Context, idToken string) (domain.Account, error)
}
