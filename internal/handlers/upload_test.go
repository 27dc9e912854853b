package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delirium95/meduzzen/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performUpload(t *testing.T, messageID, userID, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	mw.Close()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("/api/messages/%s/files", messageID), &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	c.Request = req
	c.Params = gin.Params{{Key: "messageId", Value: messageID}}
	c.Set("userId", userID)

	UploadAttachment(c)
	return w
}

func TestUploadAttachmentToOwnMessage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupTestDB()

	alice := registerTestUser(t, "up_alice")
	bob := registerTestUser(t, "up_bob")

	w := performJSON(t, CreateChat, http.MethodPost, "/api/chats", gin.H{
		"recipientId": bob,
	}, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var chatResp struct {
		Chat models.Chat `json:"chat"`
	}
	decodeBody(t, w, &chatResp)

	chatParams := gin.Params{{Key: "chatId", Value: chatResp.Chat.ID}}
	w = performJSON(t, SendMessage, http.MethodPost, "/api/chats/x/messages", gin.H{
		"content":     "see attached",
		"messageType": "FILE",
	}, alice, chatParams)
	assert.Equal(t, http.StatusCreated, w.Code)

	var msgResp struct {
		Message models.Message `json:"message"`
	}
	decodeBody(t, w, &msgResp)

	w = performUpload(t, msgResp.Message.ID, alice, "notes.txt", "hello world")
	assert.Equal(t, http.StatusCreated, w.Code)

	var upResp struct {
		Attachment models.FileAttachment `json:"attachment"`
	}
	decodeBody(t, w, &upResp)
	assert.Equal(t, "notes.txt", upResp.Attachment.Filename)
	assert.Equal(t, msgResp.Message.ID, upResp.Attachment.MessageID)
	assert.Equal(t, int64(len("hello world")), upResp.Attachment.FileSize)
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupTestDB()

	alice := registerTestUser(t, "ext_alice")
	bob := registerTestUser(t, "ext_bob")

	w := performJSON(t, CreateChat, http.MethodPost, "/api/chats", gin.H{
		"recipientId": bob,
	}, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var chatResp struct {
		Chat models.Chat `json:"chat"`
	}
	decodeBody(t, w, &chatResp)

	chatParams := gin.Params{{Key: "chatId", Value: chatResp.Chat.ID}}
	w = performJSON(t, SendMessage, http.MethodPost, "/api/chats/x/messages", gin.H{
		"content": "payload",
	}, alice, chatParams)
	assert.Equal(t, http.StatusCreated, w.Code)

	var msgResp struct {
		Message models.Message `json:"message"`
	}
	decodeBody(t, w, &msgResp)

	w = performUpload(t, msgResp.Message.ID, alice, "malware.exe", "MZ")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File type not allowed")
}

func TestUploadMissingFileField(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupTestDB()

	alice := registerTestUser(t, "nofile_alice")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/api/messages/x/files", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "messageId", Value: "x"}}
	c.Set("userId", alice)

	UploadAttachment(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
