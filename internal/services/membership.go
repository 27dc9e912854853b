package services

import (
	"context"
	"errors"

	"github.com/delirium95/meduzzen/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// MembershipService is the single view over the two membership
// representations: explicit chat_members rows and the implicit membership a
// chat's creator/recipient hold by identity. The explicit rows were added
// after chats already existed in production, so the service also carries the
// healing logic that backfills them. Healing never deletes or demotes rows.
type MembershipService struct {
	db  *gorm.DB
	log zerolog.Logger
}

func NewMembershipService(db *gorm.DB, log zerolog.Logger) *MembershipService {
	return &MembershipService{
		db:  db,
		log: log.With().Str("component", "membership").Logger(),
	}
}

// EnsureActive inserts an ACTIVE participant row for (chat, user) unless one
// already exists. Idempotent; safe to call on every read path that needs a
// membership guarantee.
func (s *MembershipService) EnsureActive(ctx context.Context, chatID, userID string) error {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ? AND status = ?", chatID, userID, models.MemberStatusActive).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	member := models.ChatMember{
		UserID: userID,
		ChatID: chatID,
		Role:   models.RoleParticipant,
		Status: models.MemberStatusActive,
	}
	return s.db.WithContext(ctx).Create(&member).Error
}

// Repair is the best-effort form of EnsureActive used on read paths: a failed
// repair is logged and swallowed, because its purpose is self-healing, not
// mandatory work.
func (s *MembershipService) Repair(ctx context.Context, chatID, userID string) {
	if err := s.EnsureActive(ctx, chatID, userID); err != nil {
		s.log.Error().Err(err).
			Str("chat_id", chatID).
			Str("user_id", userID).
			Msg("Membership repair failed")
	}
}

// IsMember reports whether the user is a member of the chat: either an ACTIVE
// row exists, or the user is the chat's creator/recipient. An implicit-only
// hit triggers a best-effort repair so future checks take the fast path.
func (s *MembershipService) IsMember(ctx context.Context, chatID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ? AND status = ?", chatID, userID, models.MemberStatusActive).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	var chat models.Chat
	if err := s.db.WithContext(ctx).First(&chat, "id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}

	if chat.CreatorID == userID || chat.RecipientID == userID {
		s.Repair(ctx, chatID, userID)
		return true, nil
	}

	return false, nil
}

// HealAllChats backfills membership rows for every chat's creator and
// recipient. Run once at process startup; per-chat failures are logged and do
// not stop the sweep.
func (s *MembershipService) HealAllChats(ctx context.Context) error {
	var chats []models.Chat
	if err := s.db.WithContext(ctx).Find(&chats).Error; err != nil {
		return err
	}

	healed := 0
	for _, chat := range chats {
		s.Repair(ctx, chat.ID, chat.CreatorID)
		s.Repair(ctx, chat.ID, chat.RecipientID)
		healed++
	}

	s.log.Info().Int("chats", healed).Msg("Membership sweep complete")
	return nil
}
