package main

import (
	"context"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/delirium95/meduzzen/internal/config"
	"github.com/delirium95/meduzzen/internal/database"
	"github.com/delirium95/meduzzen/internal/models"
	"github.com/delirium95/meduzzen/internal/services"
	"github.com/delirium95/meduzzen/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// Seeds demo users and a few conversations between them. Intended for local
// development only.
func main() {
	config.LoadConfig()
	logger.Init("development")
	database.Connect()

	if err := database.DB.AutoMigrate(
		&models.User{},
		&models.Chat{},
		&models.ChatMember{},
		&models.Message{},
		&models.FileAttachment{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	gofakeit.Seed(42)

	users := make([]models.User, 0, 8)
	for i := 0; i < 8; i++ {
		user := models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    gofakeit.Email(),
			Password: string(hashed),
		}
		if err := database.DB.Create(&user).Error; err != nil {
			log.Fatalf("Failed to seed user: %v", err)
		}
		users = append(users, user)
	}

	members := services.NewMembershipService(database.DB, logger.Log)
	chats := services.NewChatService(database.DB, logger.Log, members)
	messages := services.NewMessageService(database.DB, logger.Log, members)

	ctx := context.Background()
	for i := 1; i < len(users); i++ {
		chat, err := chats.GetOrCreatePrivateChat(ctx, users[0].ID, users[i].ID)
		if err != nil {
			log.Fatalf("Failed to seed chat: %v", err)
		}
		for j := 0; j < 5; j++ {
			author := users[0].ID
			if j%2 == 1 {
				author = users[i].ID
			}
			if _, err := messages.Send(ctx, chat.ID, author, gofakeit.Sentence(8), models.MessageTypeText); err != nil {
				log.Fatalf("Failed to seed message: %v", err)
			}
		}
	}

	log.Printf("Seeded %d users and %d chats (password: Password123!)", len(users), len(users)-1)
}
