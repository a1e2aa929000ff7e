package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/unibookshop/unibookshop/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager("test-secret", time.Hour, 24*time.Hour)
}

// TestGenerateAndParse 测试Token生成和解析
func TestGenerateAndParse(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "ada@unibookshop.edu.ng", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, int64(3600), pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ada@unibookshop.edu.ng", claims.Email)
	assert.Equal(t, "admin", claims.Role, "角色要进Claims，鉴权不回查数据库")
}

// TestParseInvalidToken 测试非法Token
func TestParseInvalidToken(t *testing.T) {
	m := newTestManager()

	t.Run("乱码", func(t *testing.T) {
		_, err := m.ParseToken("not.a.token")
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})

	t.Run("密钥不匹配", func(t *testing.T) {
		other := NewManager("other-secret", time.Hour, 24*time.Hour)
		pair, err := other.GenerateToken(1, "a@b.com", "student")
		require.NoError(t, err)

		_, err = m.ParseToken(pair.AccessToken)
		assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}

// TestParseExpiredToken 测试过期Token
func TestParseExpiredToken(t *testing.T) {
	m := NewManager("test-secret", -time.Minute, 24*time.Hour)

	pair, err := m.GenerateToken(1, "a@b.com", "student")
	require.NoError(t, err)

	_, err = m.ParseToken(pair.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

// TestRefreshAccessToken 测试刷新Access Token
func TestRefreshAccessToken(t *testing.T) {
	m := newTestManager()

	pair, err := m.GenerateToken(42, "ada@unibookshop.edu.ng", "student")
	require.NoError(t, err)

	newAccess, err := m.RefreshAccessToken(pair.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, newAccess)

	claims, err := m.ParseToken(newAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)

	t.Run("不能用乱码刷新", func(t *testing.T) {
		_, err := m.RefreshAccessToken("garbage")
		assert.Error(t, err)
	})
}
