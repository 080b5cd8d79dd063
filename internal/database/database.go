package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mercato/server/internal/models"
	"mercato/server/internal/search"
)

type Database struct {
	db *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		return nil, err
	}

	return &Database{db: db}, nil
}

// NewFromGorm wraps an existing gorm connection, used by tests.
func NewFromGorm(db *gorm.DB) *Database {
	return &Database{db: db}
}

// MigrateSchema creates or updates the search subsystem's tables.
func MigrateSchema(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Seller{},
		&models.Listing{},
		&models.ListingImage{},
		&models.Favorite{},
	)
}

func (d *Database) RunMigrations() error {
	return MigrateSchema(d.db)
}

// scopeFilters applies the eligibility rule and every store-level predicate.
// Distance and viewport constraints are handled downstream, after retrieval.
func scopeFilters(db *gorm.DB, f search.Filters) *gorm.DB {
	q := db.Model(&models.Listing{}).
		Where("is_active = ? AND is_sold = ?", true, false)

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Condition != "" {
		q = q.Where("condition = ?", f.Condition)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	if f.Query != "" {
		pattern := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	return q
}

// orderClause maps a sort mode to the store-level ORDER BY. Distance sorting
// happens in memory after retrieval, so it falls back to newest-first here to
// keep pages deterministic.
func orderClause(sortBy string) string {
	switch sortBy {
	case search.SortPriceAsc:
		return "price ASC"
	case search.SortPriceDesc:
		return "price DESC"
	case search.SortDateAsc:
		return "created_at ASC"
	default:
		return "created_at DESC"
	}
}

// SearchListings retrieves one page of eligible listings matching the filter
// set, with seller and images attached.
func (d *Database) SearchListings(f search.Filters) ([]models.Listing, error) {
	var listings []models.Listing
	err := scopeFilters(d.db, f).
		Preload("Seller").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(orderClause(f.SortBy)).
		Offset(f.Offset()).
		Limit(f.Limit).
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search listings: %w", err)
	}
	return listings, nil
}

// MapListings retrieves the full filtered set without pagination, for the
// map view. The caller applies radius and viewport filtering afterwards.
func (d *Database) MapListings(f search.Filters) ([]models.Listing, error) {
	var listings []models.Listing
	err := scopeFilters(d.db, f).
		Preload("Seller").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order(orderClause(f.SortBy)).
		Find(&listings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load map listings: %w", err)
	}
	return listings, nil
}

// CountListings counts listings matching the same predicates as
// SearchListings, ignoring pagination.
func (d *Database) CountListings(f search.Filters) (int64, error) {
	var total int64
	if err := scopeFilters(d.db, f).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return total, nil
}

// FavoritesCount returns the number of favorites per listing for the given
// IDs. Listings nobody favorited are absent from the map.
func (d *Database) FavoritesCount(listingIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(listingIDs))
	if len(listingIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ListingID uint
		Total     int64
	}
	var rows []row
	err := d.db.Model(&models.Favorite{}).
		Select("listing_id, COUNT(*) as total").
		Where("listing_id IN ?", listingIDs).
		Group("listing_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count favorites: %w", err)
	}

	for _, r := range rows {
		counts[r.ListingID] = r.Total
	}
	return counts, nil
}

func (d *Database) GetDB() *gorm.DB {
	return d.db
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
