package api

import (
	"github.com/gin-gonic/gin"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api")
	{
		api.GET("/health", handler.Health)
		api.GET("/listings/search", handler.SearchListings)
		api.GET("/listings/map", handler.MapListings)
		api.POST("/listings/import", handler.ImportListings)
	}
}
