package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	apperrors "github.com/delirium95/meduzzen/pkg/errors"

	"github.com/delirium95/meduzzen/internal/models"
	"github.com/delirium95/meduzzen/internal/storage"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var allowedExtensions = map[string]bool{
	".txt":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Upload is the narrow view of an incoming file the service needs; the
// transport layer owns multipart parsing.
type Upload struct {
	Filename    string
	Size        int64
	ContentType string
	Body        io.Reader
}

// AttachmentService validates uploads and associates their metadata with a
// message. Byte persistence is delegated to the blob store.
type AttachmentService struct {
	db          *gorm.DB
	log         zerolog.Logger
	members     *MembershipService
	store       storage.BlobStore
	maxFileSize int64
	folder      string
}

func NewAttachmentService(db *gorm.DB, log zerolog.Logger, members *MembershipService, store storage.BlobStore, maxFileSize int64, folder string) *AttachmentService {
	return &AttachmentService{
		db:          db,
		log:         log.With().Str("component", "attachment").Logger(),
		members:     members,
		store:       store,
		maxFileSize: maxFileSize,
		folder:      folder,
	}
}

// Attach accepts an upload for an existing message. The uploader must be a
// member of the message's chat.
func (s *AttachmentService) Attach(ctx context.Context, messageID, uploaderID string, up Upload) (*models.FileAttachment, error) {
	if up.Size > s.maxFileSize {
		return nil, apperrors.BadRequest("File size exceeds maximum allowed size")
	}

	ext := strings.ToLower(filepath.Ext(up.Filename))
	if !allowedExtensions[ext] {
		return nil, apperrors.BadRequest("File type not allowed")
	}

	var message models.Message
	if err := s.db.WithContext(ctx).First(&message, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Message not found")
		}
		return nil, err
	}

	member, err := s.members.IsMember(ctx, message.ChatID, uploaderID)
	if err != nil {
		return nil, err
	}
	if !member {
		return nil, apperrors.Forbidden("You are not a member of this chat")
	}

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := fmt.Sprintf("%s/%s_%s", s.folder, time.Now().UTC().Format("20060102_150405.000000000"), up.Filename)
	locator, err := s.store.Save(ctx, key, up.Body, up.Size, contentType)
	if err != nil {
		return nil, err
	}

	attachment := models.FileAttachment{
		Filename:   up.Filename,
		StorageKey: locator,
		FileSize:   up.Size,
		MimeType:   contentType,
		MessageID:  messageID,
	}
	if err := s.db.WithContext(ctx).Create(&attachment).Error; err != nil {
		return nil, err
	}

	s.log.Info().
		Str("attachment_id", attachment.ID).
		Str("message_id", messageID).
		Int64("size", up.Size).
		Msg("Attachment stored")

	return &attachment, nil
}
