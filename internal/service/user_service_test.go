package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
)

func TestCreateUserStoresHashAndCart(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "  alice ")
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "s3cretpw", user.PasswordHash)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, "s3cretpw"))

	found, err := env.users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	byID, err := env.users.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	cart, err := env.carts.GetCart(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.CartID, cart.ID)
	assert.Empty(t, cart.Items)

	created := env.recorder.ofType(events.EventUserCreated)
	require.Len(t, created, 1)
	assert.Equal(t, "alice", created[0].Username)
	assert.NotEmpty(t, created[0].ID)
}

func TestCreateUserValidation(t *testing.T) {
	cases := []struct {
		name  string
		in    CreateUserInput
		field string
	}{
		{"short password", CreateUserInput{Username: "kian", Password: "654321", ConfirmPassword: "654321"}, "password"},
		{"mismatched confirmation", CreateUserInput{Username: "kian", Password: "87654321", ConfirmPassword: "987654321"}, "confirmPassword"},
		{"missing username", CreateUserInput{Username: "   ", Password: "s3cretpw", ConfirmPassword: "s3cretpw"}, "username"},
		{"missing password", CreateUserInput{Username: "kian", ConfirmPassword: "s3cretpw"}, "password"},
		{"missing confirmation", CreateUserInput{Username: "kian", Password: "s3cretpw"}, "confirmPassword"},
		{"password over bcrypt limit", CreateUserInput{Username: "kian", Password: strings.Repeat("p", 73), ConfirmPassword: strings.Repeat("p", 73)}, "password"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			_, err := env.users.CreateUser(context.Background(), tc.in)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)

			_, err = env.users.GetByUsername(context.Background(), "kian")
			assert.ErrorIs(t, err, domain.ErrUserNotFound)
			assert.Empty(t, env.recorder.ofType(events.EventUserCreated))
		})
	}
}

func TestCreateUserAcceptsLongestPassword(t *testing.T) {
	env := newTestEnv(t)
	pw := strings.Repeat("p", auth.MaxPasswordBytes)

	user, err := env.users.CreateUser(context.Background(), CreateUserInput{Username: "kian", Password: pw, ConfirmPassword: pw})
	require.NoError(t, err)
	assert.NoError(t, auth.ComparePassword(user.PasswordHash, pw))
}

func TestCreateUserDuplicate(t *testing.T) {
	env := newTestEnv(t)
	first := env.createUser(t, "alice")

	_, err := env.users.CreateUser(context.Background(), CreateUserInput{
		Username:        "alice",
		Password:        "another-pw",
		ConfirmPassword: "another-pw",
	})
	assert.True(t, domain.IsValidationError(err))

	still, err := env.users.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, first.ID, still.ID)
	assert.Equal(t, first.PasswordHash, still.PasswordHash)
}

func TestGetUserNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.users.GetByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	_, err = env.users.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestItemServiceListByName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	items, err := env.items.ListByName(ctx, "Round Widget")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "2.99", items[0].Price.StringFixed(2))

	_, err = env.items.ListByName(ctx, "Nothing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	all, err := env.items.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = env.items.GetByID(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
