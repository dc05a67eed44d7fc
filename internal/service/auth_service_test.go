package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"sweet-shop-api/internal/core/auth"
	"sweet-shop-api/internal/domain"
	"sweet-shop-api/pkg/utils"
)

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "sweet-shop-test", TTL: time.Hour}
}

func TestAuthService_Register(t *testing.T) {
	accounts := newFakeAccountRepo()
	jwter := testJWTer()
	svc := NewAuthService(accounts, newFakeProfileRepo(), jwter, zap.NewNop())

	a, tok, err := svc.Register(context.Background(), " Alice@Example.com ", "s3cret-pw", "Alice")
	require.NoError(t, err)
	require.NotNil(t, a)
	require.NotEmpty(t, tok)

	assert.Equal(t, "alice@example.com", a.Email, "email normalized")
	assert.True(t, utils.CheckPassword("s3cret-pw", a.PasswordHash))
	assert.NotEqual(t, "s3cret-pw", a.PasswordHash)

	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, a.ID, claims.UID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), newFakeProfileRepo(), testJWTer(), zap.NewNop())

	_, _, err := svc.Register(context.Background(), "alice@example.com", "pw-123456", "")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "alice@example.com", "other-pw1", "")
	require.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	svc := NewAuthService(newFakeAccountRepo(), newFakeProfileRepo(), testJWTer(), zap.NewNop())
	_, _, err := svc.Register(context.Background(), "alice@example.com", "pw-123456", "Alice")
	require.NoError(t, err)

	a, tok, err := svc.Login(context.Background(), "alice@example.com", "pw-123456")
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, "alice@example.com", a.Email)

	_, _, err = svc.Login(context.Background(), "alice@example.com", "wrong")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "ghost@example.com", "pw-123456")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_TokenCarriesProfileRole(t *testing.T) {
	accounts := newFakeAccountRepo()
	profiles := newFakeProfileRepo()
	jwter := testJWTer()
	svc := NewAuthService(accounts, profiles, jwter, zap.NewNop())

	a, _, err := svc.Register(context.Background(), "root@example.com", "pw-123456", "Root")
	require.NoError(t, err)
	require.NoError(t, profiles.Create(context.Background(), &domain.Profile{
		ID: a.ID, Email: a.Email, Role: domain.RoleAdmin,
	}))

	_, tok, err := svc.Login(context.Background(), "root@example.com", "pw-123456")
	require.NoError(t, err)
	claims, err := jwter.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}
