package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskhaven/taskhaven-go/internal/crypto"
	"github.com/taskhaven/taskhaven-go/internal/model"
	"github.com/taskhaven/taskhaven-go/internal/store/memory"
)

func newTestAuthService() (*AuthService, *memory.Store) {
	st := memory.NewStore()
	return NewAuthService(st, "test-secret", time.Hour), st
}

func TestRegister(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.Register(context.Background(), model.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
		Name:     "Ann",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.ID)
	assert.Equal(t, "a@x.com", resp.User.Email)
	assert.Equal(t, "Ann", resp.User.Name)

	claims, err := crypto.ValidateToken(resp.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.RegisterRequest
		want error
	}{
		{"missing email", model.RegisterRequest{Password: "password1", Name: "Ann"}, ErrInvalidEmail},
		{"bad email", model.RegisterRequest{Email: "not-an-email", Password: "password1", Name: "Ann"}, ErrInvalidEmail},
		{"short password", model.RegisterRequest{Email: "a@x.com", Password: "short", Name: "Ann"}, ErrPasswordTooShort},
		{"long password", model.RegisterRequest{Email: "a@x.com", Password: strings.Repeat("p", 80), Name: "Ann"}, ErrPasswordTooLong},
		{"short name", model.RegisterRequest{Email: "a@x.com", Password: "password1", Name: "A"}, ErrNameTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRegisterMaxLengthPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	// 72 bytes is the longest password bcrypt keys from in full.
	password := strings.Repeat("p", 72)
	resp, err := svc.Register(ctx, model.RegisterRequest{
		Email:    "a@x.com",
		Password: password,
		Name:     "Ann",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: password})
	assert.NoError(t, err)
}

func TestLoginOverlongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
		Name:     "Ann",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{
		Email:    "a@x.com",
		Password: strings.Repeat("p", 80),
	})
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	req := model.RegisterRequest{Email: "a@x.com", Password: "password1", Name: "Ann"}
	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, model.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
		Name:     "Ann",
	})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "password1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, registered.User.ID, resp.User.ID)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), model.LoginRequest{
		Email:    "nobody@x.com",
		Password: "password1",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, model.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
		Name:     "Ann",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, model.LoginRequest{Email: "a@x.com", Password: "password2"})
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestGetUser(t *testing.T) {
	svc, st := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, model.RegisterRequest{
		Email:    "a@x.com",
		Password: "password1",
		Name:     "Ann",
	})
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, registered.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)

	// A token can outlive its account; lookups must fail cleanly.
	st.DeleteUser(ctx, registered.User.ID)
	_, err = svc.GetUser(ctx, registered.User.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
