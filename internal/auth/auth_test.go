package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildcast/wildcast/internal/model"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestSignerRoundTrip(t *testing.T) {
	signer, err := NewSigner("test-secret", time.Hour)
	require.NoError(t, err)

	token, err := signer.Sign(&model.User{
		ID:    "u-1",
		Email: "host@example.com",
		Role:  model.RoleAdmin,
		Plan:  model.PlanPro,
	})
	require.NoError(t, err)

	claims, err := signer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "host@example.com", claims.Email)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, model.PlanPro, claims.Plan)
}

func TestSignerRejectsWrongSecret(t *testing.T) {
	signer, err := NewSigner("secret-a", time.Hour)
	require.NoError(t, err)
	other, err := NewSigner("secret-b", time.Hour)
	require.NoError(t, err)

	token, err := signer.Sign(&model.User{ID: "u-1"})
	require.NoError(t, err)

	_, err = other.Parse(token)
	assert.Error(t, err)
}

func TestSignerRejectsGarbage(t *testing.T) {
	signer, err := NewSigner("test-secret", time.Hour)
	require.NoError(t, err)

	_, err = signer.Parse("not.a.token")
	assert.Error(t, err)
}

func TestNewSignerRequiresSecret(t *testing.T) {
	_, err := NewSigner("", time.Hour)
	assert.Error(t, err)
}
