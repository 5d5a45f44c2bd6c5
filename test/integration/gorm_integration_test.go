package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"ordermypdf-be/internal/model"
	"ordermypdf-be/internal/repository/implementation"
	"ordermypdf-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
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

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	require.NoError(t, sqlDB.Ping())

	require.NoError(t, gormDB.AutoMigrate(&model.ResolutionLog{}))

	repo := implementation.NewResolutionLogRepository(gormDB)
	ctx := context.Background()
	sessionId := "it-" + uuid.New().String()

	t.Run("Create and read back a resolution log", func(t *testing.T) {
		entry := &model.ResolutionLog{
			SessionId:   sessionId,
			InputText:   "compress to 2mb",
			OutcomeType: "plan",
			Stage:       1,
			Confidence:  0.8875,
			Plan:        datatypes.JSON([]byte(`[{"operation_type":"compress_to_target"}]`)),
		}
		require.NoError(t, repo.Create(ctx, entry))

		logs, err := repo.FindRecentBySession(ctx, sessionId, 10)
		require.NoError(t, err)
		require.Len(t, logs, 1)
		assert.Equal(t, "plan", logs[0].OutcomeType)
		assert.Equal(t, "compress to 2mb", logs[0].InputText)
	})

	t.Run("Recent logs honor the limit", func(t *testing.T) {
		for _, text := range []string{"split this", "keep pages 1-2"} {
			require.NoError(t, repo.Create(ctx, &model.ResolutionLog{
				SessionId:   sessionId,
				InputText:   text,
				OutcomeType: "question",
				Stage:       3,
			}))
		}

		logs, err := repo.FindRecentBySession(ctx, sessionId, 2)
		require.NoError(t, err)
		assert.Len(t, logs, 2)
	})
}
