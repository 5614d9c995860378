package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	v := NewVerifier([]byte("test-secret"))

	token, err := v.Sign(User{ID: "user-1", DisplayName: "Jane Doe", Role: RoleAdmin}, time.Hour)
	require.NoError(t, err)

	user, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "Jane Doe", user.DisplayName)
	assert.Equal(t, RoleAdmin, user.Role)
	assert.True(t, user.IsAdmin())
}

func TestUnknownRoleDefaultsToCustomer(t *testing.T) {
	v := NewVerifier([]byte("test-secret"))

	token, err := v.Sign(User{ID: "user-1", Role: Role("superuser")}, time.Hour)
	require.NoError(t, err)

	user, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, RoleCustomer, user.Role)
	assert.False(t, user.IsAdmin())
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	token, err := NewVerifier([]byte("right-secret")).Sign(User{ID: "user-1"}, time.Hour)
	require.NoError(t, err)

	_, err = NewVerifier([]byte("wrong-secret")).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewVerifier([]byte("test-secret"))

	token, err := v.Sign(User{ID: "user-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = v.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := NewVerifier([]byte("test-secret")).Verify("not.a.token")
	assert.Error(t, err)
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(User{ID: "a", Role: RoleAdmin}))
	assert.ErrorIs(t, RequireAdmin(User{ID: "b", Role: RoleCustomer}), ErrForbidden)
}
