package handlers

import (
	"net/http"
	"testing"

	"github.com/delirium95/meduzzen/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetUsersExcludesCaller(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupTestDB()

	alice := registerTestUser(t, "dir_alice")
	registerTestUser(t, "dir_bob")
	registerTestUser(t, "dir_carol")

	w := performJSON(t, GetUsers, http.MethodGet, "/api/users", nil, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Users []models.User `json:"users"`
	}
	decodeBody(t, w, &resp)

	for _, u := range resp.Users {
		assert.NotEqual(t, alice, u.ID)
		assert.Empty(t, u.Password)
	}
}

func TestGetMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	SetupTestDB()

	alice := registerTestUser(t, "me_alice")

	w := performJSON(t, GetMe, http.MethodGet, "/api/users/me", nil, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		User models.User `json:"user"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, alice, resp.User.ID)
	assert.Equal(t, "me_alice", resp.User.Username)
}
