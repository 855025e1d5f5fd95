package api

import "github.com/gin-gonic/gin"

// SetupRoutes registers all endpoints on the router.
func SetupRoutes(router *gin.Engine, handlers *Handlers) {
	router.GET("/health", handlers.Health.Check)
	router.GET("/counterparties", handlers.Counterparties.List)
	router.GET("/counterparties/:name", handlers.Counterparties.Get)

	router.POST("/cva", handlers.Analysis.Analyze)
}
