package api

import (
	"github.com/gin-gonic/gin"

	"github.com/robert-bryson/rsmb.tv/config"
	"github.com/robert-bryson/rsmb.tv/flightdata"
	"github.com/robert-bryson/rsmb.tv/pkg/cache"
	"github.com/robert-bryson/rsmb.tv/pkg/health"
	"github.com/robert-bryson/rsmb.tv/pkg/middleware"
	"github.com/robert-bryson/rsmb.tv/sheetsync"
)

// RegisterRoutes registers all API routes. cacheManager and syncService
// may be nil when those features are disabled.
func RegisterRoutes(router *gin.Engine, store *flightdata.Store, cacheManager *cache.CacheManager, syncService *sheetsync.Service, healthService *health.Service, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	router.GET("/health", GetHealth(healthService))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/airports", GetAirports(store))
		v1.GET("/airports/visited", GetVisitedAirports(store))
		v1.GET("/flights", GetFlights(store))
		v1.GET("/flights/stats", GetStats(store, cacheManager, cfg.RedisConfig.StatsTTL))
		v1.GET("/flights/globe", GetGlobe(store, cacheManager, cfg.RedisConfig.StatsTTL))
		v1.GET("/routes", GetRoutes(store))
		v1.GET("/years", GetYears(store))

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.AdminAuthConfig))
		{
			admin.POST("/refresh", RefreshData(syncService))
		}
	}
}
