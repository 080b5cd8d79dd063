package database

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mercato/server/internal/models"
)

// UpsertListings inserts a batch of listings, replacing existing rows on ID
// conflict. Runs inside the caller's transaction.
func UpsertListings(tx *gorm.DB, batch []*models.Listing) error {
	if len(batch) == 0 {
		return nil
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&batch).Error
	if err != nil {
		return fmt.Errorf("failed to upsert listings: %w", err)
	}

	return nil
}
