package api

import (
	"time"

	"mercato/server/internal/models"
	"mercato/server/internal/search"
)

// SellerResponse is the public seller projection attached to each result.
type SellerResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Verified  bool   `json:"verified"`
}

// ImageResponse is one listing photo as exposed to clients.
type ImageResponse struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"isPrimary"`
}

// ListingResponse is the external shape of a search result item.
type ListingResponse struct {
	ID             uint            `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Price          float64         `json:"price"`
	Category       string          `json:"category"`
	Condition      string          `json:"condition"`
	Location       string          `json:"location"`
	Latitude       *float64        `json:"latitude"`
	Longitude      *float64        `json:"longitude"`
	PrimaryImage   string          `json:"primaryImage"`
	Images         []ImageResponse `json:"images"`
	Seller         SellerResponse  `json:"seller"`
	FavoritesCount int64           `json:"favoritesCount"`
	Distance       *float64        `json:"distance,omitempty"`
	CreatedAt      string          `json:"createdAt"`
}

// MapListingResponse is the map view shape. Coordinates are always present
// as a [lat, lng] pair; listings without a position fall back to [0, 0].
type MapListingResponse struct {
	ID             uint           `json:"id"`
	Title          string         `json:"title"`
	Price          float64        `json:"price"`
	Category       string         `json:"category"`
	Condition      string         `json:"condition"`
	Location       string         `json:"location"`
	Coordinates    [2]float64     `json:"coordinates"`
	PrimaryImage   string         `json:"primaryImage"`
	Seller         SellerResponse `json:"seller"`
	FavoritesCount int64          `json:"favoritesCount"`
	Distance       *float64       `json:"distance,omitempty"`
	CreatedAt      string         `json:"createdAt"`
}

// Pagination describes the page window of a search response.
type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int   `json:"pages"`
}

// SearchResponse is the paginated search payload.
type SearchResponse struct {
	Products   []ListingResponse `json:"products"`
	Pagination Pagination        `json:"pagination"`
}

// primaryImageURL resolves the representative thumbnail: the first image
// flagged primary wins; when none is flagged, the first image by insertion
// order stands in.
func primaryImageURL(images []models.ListingImage) string {
	for _, img := range images {
		if img.IsPrimary {
			return img.URL
		}
	}
	if len(images) > 0 {
		return images[0].URL
	}
	return ""
}

func formatSeller(s models.Seller) SellerResponse {
	return SellerResponse{
		ID:        s.ID,
		Name:      s.Name,
		AvatarURL: s.AvatarURL,
		Verified:  s.Verified,
	}
}

func formatListing(r search.Result, favorites map[uint]int64) ListingResponse {
	listing := r.Listing
	images := make([]ImageResponse, len(listing.Images))
	for i, img := range listing.Images {
		images[i] = ImageResponse{URL: img.URL, IsPrimary: img.IsPrimary}
	}

	return ListingResponse{
		ID:             listing.ID,
		Title:          listing.Title,
		Description:    listing.Description,
		Price:          listing.Price,
		Category:       listing.Category,
		Condition:      listing.Condition,
		Location:       listing.Location,
		Latitude:       listing.Latitude,
		Longitude:      listing.Longitude,
		PrimaryImage:   primaryImageURL(listing.Images),
		Images:         images,
		Seller:         formatSeller(listing.Seller),
		FavoritesCount: favorites[listing.ID],
		Distance:       r.Distance,
		CreatedAt:      listing.CreatedAt.Format(time.RFC3339),
	}
}

func formatMapListing(r search.Result, favorites map[uint]int64) MapListingResponse {
	listing := r.Listing

	coordinates := [2]float64{0, 0}
	if listing.HasCoordinates() {
		coordinates = [2]float64{*listing.Latitude, *listing.Longitude}
	}

	return MapListingResponse{
		ID:             listing.ID,
		Title:          listing.Title,
		Price:          listing.Price,
		Category:       listing.Category,
		Condition:      listing.Condition,
		Location:       listing.Location,
		Coordinates:    coordinates,
		PrimaryImage:   primaryImageURL(listing.Images),
		Seller:         formatSeller(listing.Seller),
		FavoritesCount: favorites[listing.ID],
		Distance:       r.Distance,
		CreatedAt:      listing.CreatedAt.Format(time.RFC3339),
	}
}
