package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/delirium95/meduzzen/internal/config"
	"github.com/delirium95/meduzzen/internal/database"
	"github.com/delirium95/meduzzen/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// discardStore satisfies storage.BlobStore without touching any real bucket
type discardStore struct{}

func (discardStore) Save(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	return "test://" + key, nil
}

// SetupTestDB initializes an in-memory SQLite DB for testing
func SetupTestDB() {
	db, _ := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	database.DB = db
	database.DB.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Message{},
		&models.FileAttachment{},
	)

	config.AppConfig = &config.Config{
		JWTSecret:   "test-secret",
		MaxFileSize: 10 * 1024 * 1024,
	}

	Init(db, discardStore{}, config.AppConfig.MaxFileSize, "uploads")
}

// performJSON invokes a handler directly with an authenticated test context
func performJSON(t *testing.T, handler gin.HandlerFunc, method, path string, body interface{}, userId string, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, path, reader)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.Request = req
	c.Params = params
	if userId != "" {
		c.Set("userId", userId)
	}

	handler(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dest); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}
