package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
)

const defaultTokenHeader = "Authorization"

// ErrTokenInvalid covers malformed, unsigned, foreign-key and expired tokens alike.
var ErrTokenInvalid = errors.New("token invalid")

// TokenManager issues and validates HS512 bearer tokens. It holds only
// immutable state and is safe for concurrent use.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	header string
	prefix string
	clock  func() time.Time
}

// TokenOption customizes a TokenManager.
type TokenOption func(*TokenManager)

// WithClock overrides the time source used for iat/exp and for validation.
func WithClock(clock func() time.Time) TokenOption {
	return func(tm *TokenManager) {
		if clock != nil {
			tm.clock = clock
		}
	}
}

// NewTokenManager builds a new manager from the auth configuration.
func NewTokenManager(cfg config.AuthConfig, opts ...TokenOption) *TokenManager {
	ttl := cfg.AccessTokenTTL()
	if ttl <= 0 {
		ttl = 10 * time.Hour
	}
	header := cfg.TokenHeader
	if header == "" {
		header = defaultTokenHeader
	}
	tm := &TokenManager{
		secret: []byte(cfg.JWTSecret),
		ttl:    ttl,
		header: header,
		prefix: cfg.TokenPrefix,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(tm)
	}
	return tm
}

// GenerateToken builds and signs a JWT for the subject.
func (tm *TokenManager) GenerateToken(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("token subject required")
	}

	issuedAt := tm.clock()
	expiresAt := issuedAt.Add(tm.ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseToken validates signature, algorithm and lifetime and returns the token metadata.
func (tm *TokenManager) ParseToken(tokenStr string) (domain.Token, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(token *jwt.Token) (interface{}, error) {
			return tm.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(tm.clock),
	)
	if err != nil {
		return domain.Token{}, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !parsed.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return domain.Token{}, fmt.Errorf("%w: incomplete claims", ErrTokenInvalid)
	}

	return domain.Token{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Header is the request/response header that carries the token.
func (tm *TokenManager) Header() string {
	return tm.header
}

// HeaderValue wraps a token with the configured prefix.
func (tm *TokenManager) HeaderValue(token string) string {
	return tm.prefix + token
}

// ExtractToken strips the configured prefix from a header value.
func (tm *TokenManager) ExtractToken(headerValue string) (string, error) {
	prefix := tm.prefix
	if len(headerValue) < len(prefix) || !strings.EqualFold(headerValue[:len(prefix)], prefix) {
		return "", fmt.Errorf("%w: missing %q prefix", ErrTokenInvalid, strings.TrimSpace(prefix))
	}
	token := strings.TrimSpace(headerValue[len(prefix):])
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrTokenInvalid)
	}
	return token, nil
}
