package auth

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type gateFixture struct {
	app    *fiber.App
	tokens *TokenManager
	logs   *observer.ObservedLogs
}

func newGateFixture(t *testing.T) gateFixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	tokens := NewTokenManager(testAuthConfig())
	gate := NewGate(NewCredentialVerifier(newFinderWith(t, "alice", "s3cretpw"), 4), tokens, zap.New(core))

	app := fiber.New()
	app.Post("/login", gate.Login)
	app.Get("/api/whoami", gate.Handle, RequirePrincipal(), func(c *fiber.Ctx) error {
		p, _ := PrincipalFromContext(c)
		return c.SendString(p.Username)
	})
	return gateFixture{app: app, tokens: tokens, logs: logs}
}

func (f gateFixture) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func loginRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginSuccessSetsBearerHeader(t *testing.T) {
	f := newGateFixture(t)

	resp, body := f.do(t, loginRequest(`{"username":"alice","password":"s3cretpw"}`))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body)

	header := resp.Header.Get("Authorization")
	require.True(t, strings.HasPrefix(header, "Bearer "))

	token, err := f.tokens.ParseToken(strings.TrimPrefix(header, "Bearer "))
	require.NoError(t, err)
	assert.Equal(t, "alice", token.Subject)
	assert.WithinDuration(t, token.IssuedAt.Add(10*time.Hour), token.ExpiresAt, time.Second)
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	cases := map[string]string{
		"wrong password":   `{"username":"alice","password":"nope"}`,
		"unknown user":     `{"username":"ghost","password":"s3cretpw"}`,
		"empty body":       ``,
		"malformed json":   `{"username":`,
		"missing password": `{"username":"alice"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			f := newGateFixture(t)
			resp, body := f.do(t, loginRequest(payload))
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Empty(t, body)
			assert.Empty(t, resp.Header.Get("Authorization"))
		})
	}
}

func TestLoginStoreFailureIsUnavailable(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	finder := &fakeUserFinder{err: errors.New("connection refused")}
	gate := NewGate(NewCredentialVerifier(finder, 4), NewTokenManager(testAuthConfig()), zap.New(core))
	app := fiber.New()
	app.Post("/login", gate.Login)
	f := gateFixture{app: app, logs: logs}

	resp, body := f.do(t, loginRequest(`{"username":"alice","password":"s3cretpw"}`))
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Empty(t, body)
	assert.Empty(t, resp.Header.Get("Authorization"))
	assert.Equal(t, 1, logs.FilterMessage("login failed").Len())
}

func TestLoginNeverLogsPassword(t *testing.T) {
	f := newGateFixture(t)
	f.do(t, loginRequest(`{"username":"alice","password":"s3cretpw"}`))
	f.do(t, loginRequest(`{"username":"alice","password":"hunter2-guess"}`))

	require.NotZero(t, f.logs.Len())
	for _, entry := range f.logs.All() {
		assert.NotContains(t, entry.Message, "s3cretpw")
		assert.NotContains(t, entry.Message, "hunter2-guess")
		for _, field := range entry.Context {
			assert.NotContains(t, field.String, "s3cretpw")
			assert.NotContains(t, field.String, "hunter2-guess")
		}
	}
}

func TestHandleAdmitsValidToken(t *testing.T) {
	f := newGateFixture(t)
	raw, _, err := f.tokens.GenerateToken("alice")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", f.tokens.HeaderValue(raw))
	resp, body := f.do(t, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body)
}

func TestHandleRejects(t *testing.T) {
	expiredCfg := testAuthConfig()
	expired, _, err := NewTokenManager(expiredCfg, WithClock(fixedClock(time.Now().Add(-11*time.Hour)))).GenerateToken("alice")
	require.NoError(t, err)

	foreignCfg := testAuthConfig()
	foreignCfg.JWTSecret = "someone-else"
	foreign, _, err := NewTokenManager(foreignCfg).GenerateToken("alice")
	require.NoError(t, err)

	cases := map[string]string{
		"missing header": "",
		"no prefix":      foreign,
		"garbage":        "Bearer not-a-token",
		"foreign secret": "Bearer " + foreign,
		"expired":        "Bearer " + expired,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			f := newGateFixture(t)
			req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			resp, body := f.do(t, req)
			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.Empty(t, body)
		})
	}
}

func TestLoginThenAccessProtectedRoute(t *testing.T) {
	f := newGateFixture(t)
	resp, _ := f.do(t, loginRequest(`{"username":"alice","password":"s3cretpw"}`))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", resp.Header.Get("Authorization"))
	resp, body := f.do(t, req)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "alice", body)
}
