package services

import (
	"context"
	"testing"

	"github.com/delirium95/meduzzen/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestEnsureActiveIsIdempotent(t *testing.T) {
	db, members, _, _ := newTestServices(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createLegacyChat(t, db, alice.ID, bob.ID)

	for i := 0; i < 5; i++ {
		assert.NoError(t, members.EnsureActive(ctx, chat.ID, alice.ID))
	}

	assert.Equal(t, int64(1), countActiveMembers(t, db, chat.ID, alice.ID))
}

func TestEnsureActiveDoesNotTouchOtherStatuses(t *testing.T) {
	db, members, _, _ := newTestServices(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createLegacyChat(t, db, alice.ID, bob.ID)

	// Historical LEFT row must survive and not block a new ACTIVE row
	left := models.ChatMember{UserID: alice.ID, ChatID: chat.ID, Role: models.RoleParticipant, Status: models.MemberStatusLeft}
	assert.NoError(t, db.Create(&left).Error)

	assert.NoError(t, members.EnsureActive(ctx, chat.ID, alice.ID))

	assert.Equal(t, int64(1), countActiveMembers(t, db, chat.ID, alice.ID))

	var total int64
	db.Model(&models.ChatMember{}).Where("chat_id = ? AND user_id = ?", chat.ID, alice.ID).Count(&total)
	assert.Equal(t, int64(2), total)
}

func TestIsMemberExplicitRow(t *testing.T) {
	db, members, _, _ := newTestServices(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createLegacyChat(t, db, alice.ID, bob.ID)

	assert.NoError(t, members.EnsureActive(ctx, chat.ID, alice.ID))

	ok, err := members.IsMember(ctx, chat.ID, alice.ID)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestIsMemberImplicitFallbackHeals(t *testing.T) {
	db, members, _, _ := newTestServices(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	chat := createLegacyChat(t, db, alice.ID, bob.ID)

	// No membership rows exist, but creator and recipient are still members
	for _, userID := range []string{alice.ID, bob.ID} {
		ok, err := members.IsMember(ctx, chat.ID, userID)
		assert.NoError(t, err)
		assert.True(t, ok)
		// The implicit hit backfills an explicit ACTIVE row
		assert.Equal(t, int64(1), countActiveMembers(t, db, chat.ID, userID))
	}
}

func TestIsMemberStranger(t *testing.T) {
	db, members, _, _ := newTestServices(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	eve := createTestUser(t, db, "eve")
	chat := createLegacyChat(t, db, alice.ID, bob.ID)

	ok, err := members.IsMember(ctx, chat.ID, eve.ID)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, int64(0), countActiveMembers(t, db, chat.ID, eve.ID))
}

func TestIsMemberUnknownChat(t *testing.T) {
	db, members, _, _ := newTestServices(t)

	alice := createTestUser(t, db, "alice")

	ok, err := members.IsMember(context.Background(), "missing-chat", alice.ID)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestHealAllChats(t *testing.T) {
	db, members, _, _ := newTestServices(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	chat1 := createLegacyChat(t, db, alice.ID, bob.ID)
	chat2 := createLegacyChat(t, db, alice.ID, carol.ID)

	assert.NoError(t, members.HealAllChats(ctx))

	assert.Equal(t, int64(1), countActiveMembers(t, db, chat1.ID, alice.ID))
	assert.Equal(t, int64(1), countActiveMembers(t, db, chat1.ID, bob.ID))
	assert.Equal(t, int64(1), countActiveMembers(t, db, chat2.ID, alice.ID))
	assert.Equal(t, int64(1), countActiveMembers(t, db, chat2.ID, carol.ID))

	// Re-running stays idempotent
	assert.NoError(t, members.HealAllChats(ctx))
	assert.Equal(t, int64(1), countActiveMembers(t, db, chat1.ID, alice.ID))
}
