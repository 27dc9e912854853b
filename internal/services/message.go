package services

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/delirium95/meduzzen/pkg/errors"

	"github.com/delirium95/meduzzen/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const defaultMessagePageSize = 50

// MessageService records message lifecycle events, deriving every
// authorization decision from the membership view.
type MessageService struct {
	db      *gorm.DB
	log     zerolog.Logger
	members *MembershipService
}

func NewMessageService(db *gorm.DB, log zerolog.Logger, members *MembershipService) *MessageService {
	return &MessageService{
		db:      db,
		log:     log.With().Str("component", "message").Logger(),
		members: members,
	}
}

// Send posts a message to a chat. The author must be a member (explicit or
// implicit) at send time.
func (s *MessageService) Send(ctx context.Context, chatID, authorID, content string, messageType models.MessageType) (*models.Message, error) {
	if content == "" {
		return nil, apperrors.BadRequest("Message content cannot be empty")
	}
	if messageType == "" {
		messageType = models.MessageTypeText
	}

	member, err := s.members.IsMember(ctx, chatID, authorID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.Forbidden("You are not a member of this chat")
	}

	message := models.Message{
		Content:     content,
		MessageType: messageType,
		AuthorID:    authorID,
		ChatID:      chatID,
		State:       models.MessageStateActive,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, err
	}

	s.log.Info().
		Str("message_id", message.ID).
		Str("chat_id", chatID).
		Str("author_id", authorID).
		Msg("Message sent")

	return &message, nil
}

// Edit updates a message's content. Only the author may edit, and a deleted
// message is immutable.
func (s *MessageService) Edit(ctx context.Context, messageID, editorID, newContent string) (*models.Message, error) {
	var message models.Message
	if err := s.db.WithContext(ctx).First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Message not found")
		}
		return nil, err
	}

	if message.AuthorID != editorID {
		return nil, apperrors.Forbidden("You can only edit your own messages")
	}
	if message.Deleted() {
		return nil, apperrors.InvalidState("Cannot edit a deleted message")
	}

	now := time.Now()
	message.Content = newContent
	message.UpdatedAt = &now
	if err := s.db.WithContext(ctx).Model(&message).
		Updates(map[string]interface{}{"content": newContent, "updated_at": now}).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// SoftDelete marks a message deleted. Only the author may delete. Deleting an
// already-deleted message is a no-op success.
func (s *MessageService) SoftDelete(ctx context.Context, messageID, requesterID string) error {
	var message models.Message
	if err := s.db.WithContext(ctx).First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("Message not found")
		}
		return err
	}

	if message.AuthorID != requesterID {
		return apperrors.Forbidden("You can only delete your own messages")
	}
	if message.Deleted() {
		return nil
	}

	err := s.db.WithContext(ctx).Model(&message).
		Update("state", models.MessageStateDeleted).Error
	if err != nil {
		return err
	}

	s.log.Info().
		Str("message_id", messageID).
		Str("requester_id", requesterID).
		Msg("Message soft-deleted")

	return nil
}

// ListMessages returns non-deleted messages for a chat, newest first.
// Restartable via offset; limit defaults to 50 when unset.
func (s *MessageService) ListMessages(ctx context.Context, chatID string, offset, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultMessagePageSize
	}
	if offset < 0 {
		offset = 0
	}

	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("chat_id = ? AND state = ?", chatID, models.MessageStateActive).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
