package processor

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"mercato/server/config"
	"mercato/server/internal/database"
	"mercato/server/internal/models"
	"mercato/server/internal/queue"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.NewTestDB()
	require.NoError(t, err)

	err = database.MigrateSchema(db)
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Ingest.WorkerCount = 2
	cfg.Ingest.MaxRetries = 3
	cfg.Ingest.RetryDelay = 1
	cfg.Ingest.QueueSize = 100
	return cfg
}

func TestNewBatchProcessor(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	logger := logrus.New()
	ingestQueue := queue.NewListingQueue(cfg.Ingest.QueueSize, logger)

	p := NewBatchProcessor(db, ingestQueue, cfg, logger)

	assert.NotNil(t, p)
	assert.Equal(t, db, p.db)
	assert.Equal(t, ingestQueue, p.queue)
	assert.Equal(t, cfg, p.config)
	assert.Equal(t, logger, p.logger)
}

func TestBatchProcessor_ProcessBatch(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	logger := logrus.New()
	ingestQueue := queue.NewListingQueue(cfg.Ingest.QueueSize, logger)

	p := NewBatchProcessor(db, ingestQueue, cfg, logger)

	batch := []*models.Listing{
		{Title: "Bike", Price: 120, IsActive: true},
		{Title: "Couch", Price: 300, IsActive: true},
	}

	err := p.processBatch(batch)
	assert.NoError(t, err)

	var total int64
	require.NoError(t, db.Model(&models.Listing{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestBatchProcessingIntegration(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	logger := logrus.New()

	ingestQueue := queue.NewListingQueue(cfg.Ingest.QueueSize, logger)
	p := NewBatchProcessor(db, ingestQueue, cfg, logger)

	p.Start()
	defer p.Stop()
	ingestQueue.Start()
	defer ingestQueue.Close()

	batch := []*models.Listing{
		{Title: "Camera", Price: 250, Category: "electronics", IsActive: true},
		{Title: "Tripod", Price: 40, Category: "electronics", IsActive: true},
	}
	require.NoError(t, ingestQueue.Push(batch))

	assert.Eventually(t, func() bool {
		var total int64
		if err := db.Model(&models.Listing{}).Count(&total).Error; err != nil {
			return false
		}
		return total == 2
	}, 2*time.Second, 50*time.Millisecond)

	var stored models.Listing
	require.NoError(t, db.Where("title = ?", "Camera").First(&stored).Error)
	assert.Equal(t, 250.0, stored.Price)
}

func TestBatchProcessor_StartStop(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	logger := logrus.New()
	ingestQueue := queue.NewListingQueue(cfg.Ingest.QueueSize, logger)

	p := NewBatchProcessor(db, ingestQueue, cfg, logger)

	p.Start()
	p.Stop()

	ingestQueue.Close()
	assert.True(t, ingestQueue.IsClosed())
}
