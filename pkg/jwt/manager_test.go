package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	m := NewManager("test-secret", 3600)

	token, err := m.GenerateToken("user-1", "철수")
	require.NoError(t, err)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "철수", claims.Nickname)
}

func TestVerifyToken_Expired(t *testing.T) {
	m := NewManager("test-secret", -60)

	token, err := m.GenerateToken("user-1", "")
	require.NoError(t, err)

	_, err = m.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	token, err := NewManager("a", 3600).GenerateToken("user-1", "")
	require.NoError(t, err)

	_, err = NewManager("b", 3600).VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	_, err := NewManager("a", 3600).VerifyToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
