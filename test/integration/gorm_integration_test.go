package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"travelmate-be/internal/constant"
	"travelmate-be/internal/entity"
	"travelmate-be/internal/repository/unitofwork"
	"travelmate-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.ConversationRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Check OTP Repository", func(t *testing.T) {
		count, err := uow.OtpRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("OTP count: %d", count)
	})

	t.Run("Check Transactional Conversation Save", func(t *testing.T) {
		userId := uuid.New()
		user := &entity.User{
			Id:       userId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test User",
			IsActive: true,
		}

		err := uow.UserRepository().Create(context.Background(), user)
		assert.NoError(t, err)

		ctx := context.Background()
		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		convId := uuid.New()
		conv := &entity.Conversation{
			Id:        convId,
			UserId:    userId,
			Title:     "Integration Conversation",
			IsSaved:   true,
			CreatedAt: time.Now(),
		}
		err = uow.ConversationRepository().Create(ctx, conv)
		assert.NoError(t, err)

		messages := []*entity.ChatMessage{
			{
				Id:             uuid.New(),
				ConversationId: convId,
				Role:           constant.ChatMessageRoleUser,
				Content:        "Where should I go in June?",
				Timestamp:      time.Now(),
			},
			{
				Id:             uuid.New(),
				ConversationId: convId,
				Role:           constant.ChatMessageRoleBot,
				Content:        "June is a great month for Ladakh.",
				Timestamp:      time.Now(),
			},
		}
		err = uow.ChatMessageRepository().CreateBulk(ctx, messages)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Conversation with Messages in Transaction")
	})
}
