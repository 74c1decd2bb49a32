package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("an@example.com", "test-secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "an@example.com", claims.Email)
}

func TestValidateTokenRejectsBadInput(t *testing.T) {
	_, err := ValidateToken("", "test-secret")
	assert.Error(t, err)

	_, err = ValidateToken("not-a-token", "test-secret")
	assert.Error(t, err)

	token, err := GenerateToken("an@example.com", "test-secret")
	require.NoError(t, err)
	_, err = ValidateToken(token, "different-secret")
	assert.Error(t, err)
}
