package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, 10*time.Hour, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, "Authorization", cfg.Auth.TokenHeader)
	assert.Equal(t, "Bearer ", cfg.Auth.TokenPrefix)
	assert.Equal(t, 7, cfg.Auth.PasswordMinLength)
	assert.Equal(t, 100, cfg.Cart.MaxQuantity)
	assert.Equal(t, "0.0.0.0:8080", cfg.App.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "s3cr3t")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "90")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("CART_LOCK_WAIT_MILLIS", "250")
	t.Setenv("REDIS_ENABLED", "false")
	t.Setenv("CART_MAX_QUANTITY", "1000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "s3cr3t", cfg.Auth.JWTSecret)
	assert.Equal(t, 90*time.Minute, cfg.Auth.AccessTokenTTL())
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 250*time.Millisecond, cfg.Cart.LockWait())
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 1000, cfg.Cart.MaxQuantity)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("invalid redis db", func(t *testing.T) {
		t.Setenv("REDIS_DB", "zero")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("cart quantity above ceiling", func(t *testing.T) {
		t.Setenv("CART_MAX_QUANTITY", "1001")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("zero cart quantity", func(t *testing.T) {
		t.Setenv("CART_MAX_QUANTITY", "0")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "-5")
		_, err := Load()
		require.Error(t, err)
	})
}

func TestDurationFallbacks(t *testing.T) {
	assert.Equal(t, 5*time.Second, CartConfig{}.LockTTL())
	assert.Equal(t, 2*time.Second, CartConfig{}.LockWait())
	assert.Zero(t, CatalogConfig{}.CacheTTL())
	assert.Zero(t, AppConfig{}.RequestTimeout())
}
