package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"ai-minutes-be/internal/constant"
	"ai-minutes-be/internal/entity"
	"ai-minutes-be/internal/repository/specification"
	"ai-minutes-be/internal/repository/unitofwork"
	"ai-minutes-be/pkg/database"

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

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.MeetingRepository())
	assert.NotNil(t, uow.DocumentEmbeddingRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	t.Run("Check Meeting Repository", func(t *testing.T) {
		count, err := uow.MeetingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Meeting count: %d", count)
	})

	t.Run("Check Document Embedding Repository", func(t *testing.T) {
		// Count implies the table and vector column exist
		count, err := uow.DocumentEmbeddingRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("DocumentEmbedding count: %d", count)
	})

	t.Run("Check Transactional Meeting Persistence", func(t *testing.T) {
		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		meetingId := uuid.New()
		meeting := &entity.Meeting{
			Id:         meetingId,
			Topic:      "Integration Test Meeting",
			SourceFile: "integration.wav",
			AudioPath:  "/tmp/integration.wav",
			Status:     constant.MeetingStatusUploaded,
			Keywords:   []string{"integration", "gorm"},
			CreatedAt:  time.Now(),
		}
		err = uow.MeetingRepository().Create(ctx, meeting)
		assert.NoError(t, err)

		segments := []*entity.TranscriptSegment{
			{
				Id:            uuid.New(),
				MeetingId:     meetingId,
				SegmentIndex:  0,
				Speaker:       "SPEAKER_00",
				StartSec:      0.0,
				EndSec:        4.2,
				OriginalText:  "hello everyone",
				CorrectedText: "Hello, everyone.",
				CreatedAt:     time.Now(),
			},
		}
		err = uow.TranscriptSegmentRepository().CreateBulk(ctx, segments)
		assert.NoError(t, err)

		found, err := uow.MeetingRepository().FindOne(ctx, specification.ByID{ID: meetingId})
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.Equal(t, "Integration Test Meeting", found.Topic)
			assert.Equal(t, []string{"integration", "gorm"}, found.Keywords)
		}

		// Rollback via defer keeps the database clean
	})
}
