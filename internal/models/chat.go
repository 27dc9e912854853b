package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatType string

const (
	// Only one-to-one chats are modeled for now
	ChatTypePrivate ChatType = "PRIVATE"
)

type MemberRole string

const (
	RoleParticipant MemberRole = "PARTICIPANT"
)

type MemberStatus string

const (
	MemberStatusActive  MemberStatus = "ACTIVE"
	MemberStatusBlocked MemberStatus = "BLOCKED"
	MemberStatusLeft    MemberStatus = "LEFT"
)

// Chat is a private conversation between exactly two users. The creator and
// recipient are implicit members even when no ChatMember row exists yet; the
// membership service keeps the explicit rows in line with them.
type Chat struct {
	ID          string   `gorm:"primaryKey;type:text" json:"id"`
	Name        *string  `gorm:"type:text" json:"name"`
	Description *string  `gorm:"type:text" json:"description"`
	ChatType    ChatType `gorm:"type:text;default:'PRIVATE';not null" json:"chatType"`

	CreatorID   string `gorm:"index;type:text;not null" json:"creatorId"`
	RecipientID string `gorm:"index;type:text;not null" json:"recipientId"`

	// PairKey is the sorted participant pair ("low:high"). The unique index on
	// it is what guarantees at most one PRIVATE chat per unordered pair, even
	// when two creations race.
	PairKey string `gorm:"uniqueIndex;type:text" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
}

func (c *Chat) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.PairKey == "" {
		c.PairKey = ChatPairKey(c.CreatorID, c.RecipientID)
	}
	return
}

func (Chat) TableName() string {
	return "chats"
}

// ChatPairKey normalizes the unordered participant pair; which user created
// the chat is an artifact of creation order, not a semantic distinction.
func ChatPairKey(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}

// ChatMember is the explicit join record linking a user to a chat. At most one
// ACTIVE row should exist per (chat, user); historical non-ACTIVE duplicates
// are tolerated, so there is deliberately no unique index here.
type ChatMember struct {
	ID     string `gorm:"primaryKey;type:text" json:"id"`
	UserID string `gorm:"index:idx_chat_members_chat_user;type:text;not null" json:"userId"`
	ChatID string `gorm:"index:idx_chat_members_chat_user,priority:1;type:text;not null" json:"chatId"`

	Role   MemberRole   `gorm:"type:text;default:'PARTICIPANT'" json:"role"`
	Status MemberStatus `gorm:"type:text;default:'ACTIVE'" json:"status"`

	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (m *ChatMember) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (ChatMember) TableName() string {
	return "chat_members"
}
