package auth

import (
	"context"

	"github.com/giftcircle/giftcircle/internal/models"
)

// Authenticator abstracts how accounts are created and verified, so the
// handler layer does not care whether credentials are passwords, OAuth
// tokens, or something else.
type Authenticator interface {
	// Register creates a new account. The credential format depends on
	// the implementation (a password for PasswordAuthenticator).
	Register(ctx context.Context, email, username, credential string) (*models.User, error)

	// Authenticate verifies credentials and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the
	// implementation's requirements (length, format, ...).
	ValidateCredential(credential string) error
}
