package jwt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/PZavyalov/bank-account-service/internal/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := jwt.BuildString("user-1", "secret", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(token, "Bearer "))

	userID, err := jwt.GetUserID(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestWrongSecret(t *testing.T) {
	token, err := jwt.BuildString("user-1", "secret", time.Hour)
	require.NoError(t, err)

	_, err = jwt.GetUserID(token, "other")
	assert.Error(t, err)
}

func TestExpiredToken(t *testing.T) {
	token, err := jwt.BuildString("user-1", "secret", -time.Minute)
	require.NoError(t, err)

	_, err = jwt.GetUserID(token, "secret")
	assert.Error(t, err)
}
