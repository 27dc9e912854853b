package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FileAttachment records the metadata of an uploaded artifact. The bytes
// themselves live in the blob store; StorageKey is the locator it returned.
type FileAttachment struct {
	ID         string `gorm:"primaryKey;type:text" json:"id"`
	Filename   string `gorm:"type:text;not null" json:"filename"`
	StorageKey string `gorm:"type:text;not null" json:"storageKey"`
	FileSize   int64  `gorm:"not null" json:"fileSize"`
	MimeType   string `gorm:"type:text;not null" json:"mimeType"`

	MessageID string `gorm:"index;type:text;not null" json:"messageId"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}

func (a *FileAttachment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

func (FileAttachment) TableName() string {
	return "file_attachments"
}
