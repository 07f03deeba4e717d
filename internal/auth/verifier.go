package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/spec-kit/storefront-service/internal/domain"
)

// ErrInvalidCredentials is the single externally visible login failure.
var ErrInvalidCredentials = errors.New("invalid credentials")

var (
	ErrIdentityNotFound   = fmt.Errorf("identity not found: %w", ErrInvalidCredentials)
	ErrCredentialMismatch = fmt.Errorf("credential mismatch: %w", ErrInvalidCredentials)
)

// Credentials is the transient login payload. It is never persisted.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserFinder is the lookup the verifier needs from persistence.
type UserFinder interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// CredentialVerifier checks a claimed identity against its stored bcrypt hash.
type CredentialVerifier struct {
	users     UserFinder
	dummyHash string
}

// NewCredentialVerifier builds a verifier. The dummy hash is compared against on
// unknown usernames so both failure paths pay the bcrypt cost.
func NewCredentialVerifier(users UserFinder, bcryptCost int) *CredentialVerifier {
	dummy, err := HashPassword("storefront-unknown-identity", bcryptCost)
	if err != nil {
		dummy = ""
	}
	return &CredentialVerifier{users: users, dummyHash: dummy}
}

// Verify returns the verified username, or an error wrapping ErrInvalidCredentials.
func (v *CredentialVerifier) Verify(ctx context.Context, creds Credentials) (string, error) {
	user, err := v.users.GetByUsername(ctx, creds.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			if v.dummyHash != "" {
				_ = ComparePassword(v.dummyHash, creds.Password)
			}
			return "", ErrIdentityNotFound
		}
		return "", err
	}

	if err := ComparePassword(user.PasswordHash, creds.Password); err != nil {
		return "", ErrCredentialMismatch
	}
	return user.Username, nil
}
