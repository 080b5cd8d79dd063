package api

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mercato/server/internal/cache"
	"mercato/server/internal/database"
	"mercato/server/internal/models"
	"mercato/server/internal/queue"
	"mercato/server/internal/search"
)

type Handler struct {
	db       *database.Database
	logger   *logrus.Logger
	mapCache *cache.Cache
	ingest   *queue.ListingQueue
}

func NewHandler(db *database.Database, logger *logrus.Logger, mapCache *cache.Cache, ingest *queue.ListingQueue) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:       db,
		logger:   logger,
		mapCache: mapCache,
		ingest:   ingest,
	}
}

// SearchListings handles the paginated marketplace search. The radius filter
// is intentionally not applied here; only the map endpoint trims by radius.
// Totals therefore always reflect the pre-radius count.
func (h *Handler) SearchListings(c *gin.Context) {
	filters := search.ParseFilters(c.Request.URL.Query())

	listings, err := h.db.SearchListings(filters)
	if err != nil {
		h.logger.WithError(err).Error("Failed to search listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}

	total, err := h.db.CountListings(filters)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}

	favorites, err := h.db.FavoritesCount(listingIDs(listings))
	if err != nil {
		h.logger.WithError(err).Error("Failed to count favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search listings"})
		return
	}

	results := search.BuildResults(listings)
	search.AnnotateDistance(results, filters.ViewerLat, filters.ViewerLon)
	if filters.SortBy == search.SortDistance && filters.HasViewer() {
		search.SortByDistance(results)
	}

	products := make([]ListingResponse, len(results))
	for i, r := range results {
		products[i] = formatListing(r, favorites)
	}

	c.JSON(http.StatusOK, SearchResponse{
		Products: products,
		Pagination: Pagination{
			Total: total,
			Page:  filters.Page,
			Limit: filters.Limit,
			Pages: totalPages(total, filters.Limit),
		},
	})
}

// MapListings handles the unpaginated map view. Radius and viewport filters
// shrink the returned list; there is no total to keep consistent.
func (h *Handler) MapListings(c *gin.Context) {
	cacheKey := "map:" + c.Request.URL.RawQuery
	if payload := h.mapCache.Get(c.Request.Context(), cacheKey); payload != nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
		return
	}

	filters := search.ParseFilters(c.Request.URL.Query())

	listings, err := h.db.MapListings(filters)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load map listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load map listings"})
		return
	}

	results := search.BuildResults(listings)
	search.AnnotateDistance(results, filters.ViewerLat, filters.ViewerLon)
	if filters.SortBy == search.SortDistance && filters.HasViewer() {
		search.SortByDistance(results)
	}
	if filters.RadiusKm != nil && filters.HasViewer() {
		results = search.FilterByRadius(results, *filters.RadiusKm)
	}
	if filters.Bounds != nil {
		results = search.FilterByBounds(results, *filters.Bounds)
	}

	remaining := make([]models.Listing, len(results))
	for i, r := range results {
		remaining[i] = r.Listing
	}
	favorites, err := h.db.FavoritesCount(listingIDs(remaining))
	if err != nil {
		h.logger.WithError(err).Error("Failed to count favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load map listings"})
		return
	}

	items := make([]MapListingResponse, len(results))
	for i, r := range results {
		items[i] = formatMapListing(r, favorites)
	}

	payload, err := json.Marshal(items)
	if err != nil {
		h.logger.WithError(err).Error("Failed to encode map listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load map listings"})
		return
	}

	h.mapCache.Set(c.Request.Context(), cacheKey, payload)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// ImportListings accepts a batch of listings and hands it to the ingest
// queue. Processing happens asynchronously.
func (h *Handler) ImportListings(c *gin.Context) {
	var batch []*models.Listing
	if err := c.ShouldBindJSON(&batch); err != nil {
		h.logger.WithError(err).Error("Failed to parse import batch")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid import payload"})
		return
	}

	if len(batch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty import batch"})
		return
	}

	if err := h.ingest.Push(batch); err != nil {
		h.logger.WithError(err).Error("Failed to enqueue import batch")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Import queue unavailable"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"status": "accepted",
		"queued": len(batch),
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func listingIDs(listings []models.Listing) []uint {
	ids := make([]uint, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
	}
	return ids
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
