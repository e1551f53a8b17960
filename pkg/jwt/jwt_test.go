package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "chat_backend/pkg/errors"
)

func TestAccessToken(t *testing.T) {
	const secret = "test-secret"

	t.Run("should round-trip claims", func(t *testing.T) {
		req := require.New(t)

		token, err := GenerateAccessToken(42, "alice", secret, "chat-backend", time.Hour)
		req.NoError(err)
		req.NotEmpty(token)

		claims, err := ValidateAccessToken(token, secret)
		req.NoError(err)
		req.Equal(42, claims.UserID)
		req.Equal("alice", claims.Username)
		req.Equal("chat-backend", claims.Issuer)
	})

	t.Run("should reject an expired token", func(t *testing.T) {
		req := require.New(t)

		token, err := GenerateAccessToken(42, "alice", secret, "chat-backend", -time.Minute)
		req.NoError(err)

		_, err = ValidateAccessToken(token, secret)
		req.ErrorIs(err, apperrors.ErrTokenExpired)
	})

	t.Run("should reject a token signed with another secret", func(t *testing.T) {
		req := require.New(t)

		token, err := GenerateAccessToken(42, "alice", "other-secret", "chat-backend", time.Hour)
		req.NoError(err)

		_, err = ValidateAccessToken(token, secret)
		req.ErrorIs(err, apperrors.ErrInvalidToken)
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		_, err := ValidateAccessToken("definitely.not.a.jwt", secret)
		require.ErrorIs(t, err, apperrors.ErrInvalidToken)
	})
}
