package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookapi/pkg/errors"
)

func TestManager_GenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	token, err := m.GenerateToken("test")
	require.NoError(t, err)
	assert.NotEmpty(t, token.AccessToken)
	assert.Equal(t, int64(3600), token.ExpiresIn)

	claims, err := m.ParseToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "test", claims.Username)
	assert.Equal(t, "test", claims.Subject)
	assert.Equal(t, Issuer, claims.Issuer)
	assert.NotEmpty(t, claims.ID)

	// 同一秒内签发的Token也互不相同，登出一个不影响另一个
	again, err := m.GenerateToken("test")
	require.NoError(t, err)
	assert.NotEqual(t, token.AccessToken, again.AccessToken)
}

func TestManager_ParseToken(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	t.Run("过期Token", func(t *testing.T) {
		past := NewManager("test-secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.GenerateToken("test")
		require.NoError(t, err)

		_, err = m.ParseToken(token.AccessToken)
		assert.True(t, errors.Is(err, apperrors.ErrTokenExpired))
	})

	t.Run("签名密钥不一致", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour)
		token, err := other.GenerateToken("test")
		require.NoError(t, err)

		_, err = m.ParseToken(token.AccessToken)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})

	t.Run("格式错误", func(t *testing.T) {
		_, err := m.ParseToken("not-a-jwt")
		assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
	})
}
