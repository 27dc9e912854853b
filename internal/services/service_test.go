package services

import (
	"errors"
	"testing"

	apperrors "github.com/delirium95/meduzzen/pkg/errors"

	"github.com/delirium95/meduzzen/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB initializes a fresh in-memory SQLite DB for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Message{},
		&models.FileAttachment{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestServices(t *testing.T) (*gorm.DB, *MembershipService, *ChatService, *MessageService) {
	t.Helper()
	db := setupTestDB(t)
	log := zerolog.Nop()
	members := NewMembershipService(db, log)
	chats := NewChatService(db, log, members)
	messages := NewMessageService(db, log, members)
	return db, members, chats, messages
}

func createTestUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: username + "@example.com", Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

// createLegacyChat inserts a chat row directly, bypassing the chat service,
// simulating data created before membership rows existed
func createLegacyChat(t *testing.T, db *gorm.DB, creatorID, recipientID string) models.Chat {
	t.Helper()
	chat := models.Chat{
		ChatType:    models.ChatTypePrivate,
		CreatorID:   creatorID,
		RecipientID: recipientID,
	}
	if err := db.Create(&chat).Error; err != nil {
		t.Fatalf("failed to create legacy chat: %v", err)
	}
	return chat
}

func assertAppError(t *testing.T, err error, code int) {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	assert.Equal(t, code, appErr.Code)
}

func countActiveMembers(t *testing.T, db *gorm.DB, chatID, userID string) int64 {
	t.Helper()
	var count int64
	err := db.Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ? AND status = ?", chatID, userID, models.MemberStatusActive).
		Count(&count).Error
	if err != nil {
		t.Fatalf("failed to count members: %v", err)
	}
	return count
}
