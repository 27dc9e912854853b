package services

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/delirium95/meduzzen/pkg/errors"

	"github.com/delirium95/meduzzen/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ChatService owns the private-chat directory: one PRIVATE chat per unordered
// user pair, with both participants guaranteed an active membership row.
type ChatService struct {
	db      *gorm.DB
	log     zerolog.Logger
	members *MembershipService
}

func NewChatService(db *gorm.DB, log zerolog.Logger, members *MembershipService) *ChatService {
	return &ChatService{
		db:      db,
		log:     log.With().Str("component", "chat").Logger(),
		members: members,
	}
}

// GetOrCreatePrivateChat resolves the single private chat between two users,
// creating it (with both membership rows, in one transaction) if it does not
// exist yet. Lookup is symmetric in its arguments.
func (s *ChatService) GetOrCreatePrivateChat(ctx context.Context, userID, otherUserID string) (*models.Chat, error) {
	if userID == otherUserID {
		return nil, apperrors.BadRequest("Cannot create chat with yourself")
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN ?", []string{userID, otherUserID}).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count != 2 {
		return nil, apperrors.NotFound("User not found")
	}

	chat, err := s.findPrivateChat(ctx, userID, otherUserID)
	if err == nil {
		// Self-healing for chats created before membership rows existed
		s.members.Repair(ctx, chat.ID, chat.CreatorID)
		s.members.Repair(ctx, chat.ID, chat.RecipientID)
		return chat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newChat := models.Chat{
		ChatType:    models.ChatTypePrivate,
		CreatorID:   userID,
		RecipientID: otherUserID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newChat).Error; err != nil {
			return err
		}
		members := []models.ChatMember{
			{UserID: userID, ChatID: newChat.ID, Role: models.RoleParticipant, Status: models.MemberStatusActive},
			{UserID: otherUserID, ChatID: newChat.ID, Role: models.RoleParticipant, Status: models.MemberStatusActive},
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a creation race on the pair key; the winner's chat is the chat
			s.log.Info().
				Str("creator_id", userID).
				Str("recipient_id", otherUserID).
				Msg("Chat creation raced, re-resolving")
			chat, ferr := s.findPrivateChat(ctx, userID, otherUserID)
			if ferr != nil {
				return nil, ferr
			}
			s.members.Repair(ctx, chat.ID, chat.CreatorID)
			s.members.Repair(ctx, chat.ID, chat.RecipientID)
			return chat, nil
		}
		return nil, err
	}

	s.log.Info().
		Str("chat_id", newChat.ID).
		Str("creator_id", userID).
		Str("recipient_id", otherUserID).
		Msg("Private chat created")

	return &newChat, nil
}

// findPrivateChat matches either creator/recipient ordering; which side
// created the chat carries no meaning. Legacy rows predate the pair key, so
// the lookup cannot rely on it.
func (s *ChatService) findPrivateChat(ctx context.Context, userA, userB string) (*models.Chat, error) {
	var chat models.Chat
	err := s.db.WithContext(ctx).
		Where("((creator_id = ? AND recipient_id = ?) OR (creator_id = ? AND recipient_id = ?)) AND chat_type = ?",
			userA, userB, userB, userA, models.ChatTypePrivate).
		First(&chat).Error
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

// ListUserChats returns the union of chats reachable via explicit membership
// rows and via implicit creator/recipient identity, deduplicated, newest
// first. Implicit-only chats are repaired along the way.
func (s *ChatService) ListUserChats(ctx context.Context, userID string) ([]models.Chat, error) {
	var memberChatIDs []string
	err := s.db.WithContext(ctx).Model(&models.ChatMember{}).
		Where("user_id = ? AND status = ?", userID, models.MemberStatusActive).
		Pluck("chat_id", &memberChatIDs).Error
	if err != nil {
		return nil, err
	}

	var implicitChats []models.Chat
	err = s.db.WithContext(ctx).
		Where("creator_id = ? OR recipient_id = ?", userID, userID).
		Find(&implicitChats).Error
	if err != nil {
		return nil, err
	}

	idSet := make(map[string]bool)
	for _, id := range memberChatIDs {
		idSet[id] = true
	}
	for _, chat := range implicitChats {
		idSet[chat.ID] = true
		s.members.Repair(ctx, chat.ID, chat.CreatorID)
		s.members.Repair(ctx, chat.ID, chat.RecipientID)
	}

	if len(idSet) == 0 {
		return []models.Chat{}, nil
	}

	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var chats []models.Chat
	err = s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order("created_at DESC").
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// ListParticipants returns the users holding ACTIVE membership in the chat,
// after healing the chat's implicit parties.
func (s *ChatService) ListParticipants(ctx context.Context, chatID string) ([]models.User, error) {
	var chat models.Chat
	if err := s.db.WithContext(ctx).First(&chat, "id = ?", chatID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Chat not found")
		}
		return nil, err
	}

	s.members.Repair(ctx, chat.ID, chat.CreatorID)
	s.members.Repair(ctx, chat.ID, chat.RecipientID)

	var userIDs []string
	err := s.db.WithContext(ctx).Model(&models.ChatMember{}).
		Where("chat_id = ? AND status = ?", chatID, models.MemberStatusActive).
		Distinct("user_id").
		Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, err
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", userIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// isUniqueViolation detects duplicate-key failures from both postgres and the
// sqlite driver used in tests. gorm only translates these when the dialector
// error translator is enabled, so match the raw message too.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
