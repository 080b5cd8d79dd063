package models

import "time"

// Listing is a product offered for sale by a seller. Latitude and longitude
// are set together or not at all; a listing without coordinates is still
// searchable but never carries a distance.
type Listing struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"index" json:"title"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Category    string         `gorm:"index" json:"category"`
	Condition   string         `json:"condition"`
	Location    string         `json:"location"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	IsActive    bool           `json:"isActive"`
	IsSold      bool           `json:"isSold"`
	CreatedAt   time.Time      `json:"createdAt"`
	SellerID    uint           `json:"sellerId"`
	Seller      Seller         `json:"seller"`
	Images      []ListingImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`
}

// ListingImage is one photo of a listing. Position preserves insertion order;
// at most one image per listing should be flagged primary, but the data is not
// trusted to guarantee that.
type ListingImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ListingID uint   `gorm:"index" json:"-"`
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
	Position  int    `json:"position"`
}

// Seller is the public projection of a user as seen in search results.
// The user-management service owns the full record.
type Seller struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Verified  bool   `json:"verified"`
}

// Favorite marks a listing as saved by a user. Search only aggregates counts.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index:idx_favorites_user_listing,unique" json:"userId"`
	ListingID uint      `gorm:"index:idx_favorites_user_listing,unique;index" json:"listingId"`
	CreatedAt time.Time `json:"createdAt"`
}

// HasCoordinates reports whether the listing carries a usable position.
func (l *Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
