package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MessageType string

const (
	MessageTypeText   MessageType = "TEXT"
	MessageTypeFile   MessageType = "FILE"
	MessageTypeSystem MessageType = "SYSTEM"
)

// MessageState is the message lifecycle. Deleted is terminal for mutation:
// a deleted message can never be edited or un-deleted.
type MessageState string

const (
	MessageStateActive  MessageState = "ACTIVE"
	MessageStateDeleted MessageState = "DELETED"
)

type Message struct {
	ID          string      `gorm:"primaryKey;type:text" json:"id"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	MessageType MessageType `gorm:"type:text;default:'TEXT';not null" json:"messageType"`

	AuthorID string `gorm:"index;type:text;not null" json:"authorId"`
	ChatID   string `gorm:"index;type:text;not null" json:"chatId"`

	CreatedAt time.Time `json:"createdAt"`
	// Null until the first edit
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`

	State MessageState `gorm:"type:text;default:'ACTIVE';not null" json:"state"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

func (m *Message) Deleted() bool {
	return m.State == MessageStateDeleted
}

func (Message) TableName() string {
	return "messages"
}
