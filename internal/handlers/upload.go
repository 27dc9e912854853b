package handlers

import (
	"net/http"

	"github.com/delirium95/meduzzen/internal/services"
	"github.com/gin-gonic/gin"
)

// UploadAttachment accepts a multipart file and attaches it to a message
func UploadAttachment(c *gin.Context) {
	userId := c.MustGet("userId").(string)
	messageId := c.Param("messageId")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No valid file field found"})
		return
	}
	defer file.Close()

	attachment, err := Attachments.Attach(c.Request.Context(), messageId, userId, services.Upload{
		Filename:    header.Filename,
		Size:        header.Size,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"attachment": attachment})
}
