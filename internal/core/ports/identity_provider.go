package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// TokenVerifier resolves a bearer token to the id of the authenticated user.
// Invalid or expired tokens are reported as UnauthorizedError.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (kernel.UUID, error)
}

// IdentityProvider manages login identities held outside the profile store.
type IdentityProvider interface {
	// CreateIdentity registers a login for email and returns its user id.
	CreateIdentity(ctx context.Context, email, password string) (kernel.UUID, error)

	// DeleteIdentity removes a login. Used to compensate a failed provisioning.
	DeleteIdentity(ctx context.Context, id kernel.UUID) error
}
