package scope_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kb-integration/pkg/scope"
)

func TestManager_RoundTrip(t *testing.T) {
	m, err := scope.New("top-secret")
	require.NoError(t, err)

	token, err := m.CreateToken(scope.Payload{UserID: "user-1", Role: "admin"}, time.Minute)
	require.NoError(t, err)

	got, err := m.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "admin", got.Role)
}

func TestManager_RejectsForeignSecret(t *testing.T) {
	issuer, _ := scope.New("secret-a")
	verifier, _ := scope.New("secret-b")

	token, err := issuer.CreateToken(scope.Payload{UserID: "user-1"}, time.Minute)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.True(t, errors.Is(err, scope.ErrInvalidToken))
}

func TestManager_RejectsExpired(t *testing.T) {
	m, _ := scope.New("top-secret")
	token, err := m.CreateToken(scope.Payload{UserID: "user-1"}, -time.Minute)
	require.NoError(t, err)

	_, err = m.Verify(token)
	assert.ErrorIs(t, err, scope.ErrInvalidToken)
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := scope.New("")
	assert.ErrorIs(t, err, scope.ErrMissingSecret)
}
