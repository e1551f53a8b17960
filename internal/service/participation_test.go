package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"chat_backend/internal/domain"
	apperrors "chat_backend/pkg/errors"
	"chat_backend/pkg/logger"
)

func TestParticipationService_EnsureParticipant(t *testing.T) {
	ctx := context.Background()
	chatRepo := newFakeChatRepo()
	svc := NewParticipationService(chatRepo, logger.New("error"))

	chat := &domain.Chat{Name: "Team"}
	require.NoError(t, chatRepo.Create(ctx, chat, 1))

	t.Run("should pass for a participant", func(t *testing.T) {
		require.NoError(t, svc.EnsureParticipant(ctx, chat.ID, 1))
	})

	t.Run("should fail with forbidden for a non-participant", func(t *testing.T) {
		err := svc.EnsureParticipant(ctx, chat.ID, 2)
		require.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("should fail with forbidden for an unknown chat", func(t *testing.T) {
		err := svc.EnsureParticipant(ctx, 999, 1)
		require.ErrorIs(t, err, apperrors.ErrForbidden)
	})
}
