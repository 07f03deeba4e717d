package auth

import (
	"bytes"
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller for the lifetime of one request.
type Principal struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Verifier checks login credentials.
type Verifier interface {
	Verify(ctx context.Context, creds Credentials) (string, error)
}

// Gate authenticates requests. Login exchanges credentials for a token header;
// Handle admits requests that carry a valid token.
type Gate struct {
	verifier Verifier
	tokens   *TokenManager
	logger   *zap.Logger
}

// NewGate constructs the gate around its injected capabilities.
func NewGate(verifier Verifier, tokens *TokenManager, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{verifier: verifier, tokens: tokens, logger: logger}
}

// Login handles POST /login. Rejected credentials are a bare 401; a failing
// user store is a bare 503.
func (g *Gate) Login(c *fiber.Ctx) error {
	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		g.logger.Warn("login rejected: empty payload", zap.String("ip", c.IP()))
		return reject(c)
	}

	var creds Credentials
	if err := c.App().Config().JSONDecoder(body, &creds); err != nil {
		g.logger.Warn("login rejected: unreadable payload", zap.String("ip", c.IP()), zap.Error(err))
		return reject(c)
	}
	if creds.Username == "" || creds.Password == "" {
		g.logger.Warn("login rejected: incomplete payload", zap.String("username", creds.Username))
		return reject(c)
	}

	username, err := g.verifier.Verify(c.UserContext(), creds)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			g.logger.Warn("login rejected", zap.String("username", creds.Username), zap.String("reason", err.Error()))
			return reject(c)
		}
		g.logger.Error("login failed", zap.String("username", creds.Username), zap.Error(err))
		c.Status(fiber.StatusServiceUnavailable)
		return nil
	}

	token, expiresAt, err := g.tokens.GenerateToken(username)
	if err != nil {
		g.logger.Error("token issuance failed", zap.String("username", username), zap.Error(err))
		return reject(c)
	}

	g.logger.Info("login succeeded", zap.String("username", username), zap.Time("expires_at", expiresAt))
	c.Set(g.tokens.Header(), g.tokens.HeaderValue(token))
	c.Status(fiber.StatusOK)
	return nil
}

// Handle enforces authentication for protected routes.
func (g *Gate) Handle(c *fiber.Ctx) error {
	headerValue := c.Get(g.tokens.Header())
	if headerValue == "" {
		g.logger.Debug("missing authorization header", zap.String("path", c.Path()))
		return reject(c)
	}

	raw, err := g.tokens.ExtractToken(headerValue)
	if err != nil {
		g.logger.Debug("invalid authorization header", zap.String("path", c.Path()), zap.Error(err))
		return reject(c)
	}

	token, err := g.tokens.ParseToken(raw)
	if err != nil {
		g.logger.Debug("invalid token", zap.String("path", c.Path()), zap.Error(err))
		return reject(c)
	}

	c.Locals(principalKey, &Principal{
		Username:  token.Subject,
		IssuedAt:  token.IssuedAt,
		ExpiresAt: token.ExpiresAt,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}

// reject ends the request with 401 and no body.
func reject(c *fiber.Ctx) error {
	c.Status(fiber.StatusUnauthorized)
	return nil
}
