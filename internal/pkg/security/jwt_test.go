package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	token, err := GenerateToken(42, []string{"ADMIN"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, []string{"ADMIN"}, claims.Roles)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestExtractSignature(t *testing.T) {
	token, err := GenerateToken(1, nil)
	require.NoError(t, err)

	sig, err := ExtractSignature(token)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	_, err = ExtractSignature("malformed")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.NoError(t, CheckPasswordHash("secret123", hash))
	assert.Error(t, CheckPasswordHash("wrong", hash))
}
