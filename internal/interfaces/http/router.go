// Package http wires the gin router and HTTP server for the dealbridge API.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/logging"
	"github.com/dealbridge/dealbridge/internal/infrastructure/monitoring/prometheus"
	"github.com/dealbridge/dealbridge/internal/interfaces/http/handlers"
	"github.com/dealbridge/dealbridge/internal/interfaces/http/middleware"
)

// RouterConfig collects everything the router mounts.  Handlers may be nil
// when a deployment does not expose that surface; their routes are skipped.
type RouterConfig struct {
	Mode string // gin mode: "debug" | "release" | "test"

	Logger    logging.Logger
	Metrics   *prometheus.AppMetrics
	Collector prometheus.MetricsCollector

	Matches    *handlers.MatchHandler
	Valuations *handlers.ValuationHandler
	Industries *handlers.IndustryHandler
	Listings   *handlers.ListingHandler
	Buyers     *handlers.BuyerHandler
	Health     *handlers.HealthHandler
}

// NewRouter builds the gin engine with middleware, probes, metrics and the
// versioned API routes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Mode != "" {
		gin.SetMode(cfg.Mode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger, cfg.Metrics))

	if cfg.Health != nil {
		r.GET("/healthz", cfg.Health.Live)
		r.GET("/readyz", cfg.Health.Ready)
	}
	if cfg.Collector != nil {
		r.GET("/metrics", gin.WrapH(cfg.Collector.Handler()))
	}

	api := r.Group("/api/v1")

	if cfg.Matches != nil {
		matches := api.Group("/matches")
		matches.POST("/score", cfg.Matches.Score)
		matches.POST("/batch", cfg.Matches.ScoreBatch)
		matches.POST("/enrich", cfg.Matches.Enrich)
	}

	if cfg.Valuations != nil {
		valuations := api.Group("/valuations")
		valuations.POST("", cfg.Valuations.Calculate)
		valuations.GET("/:id", cfg.Valuations.Get)
		api.GET("/users/:id/valuations", cfg.Valuations.ListForUser)
	}

	if cfg.Industries != nil {
		industries := api.Group("/industries")
		industries.GET("", cfg.Industries.ListByCategory)
		industries.GET("/categories", cfg.Industries.Categories)
		industries.GET("/:key", cfg.Industries.Get)
	}

	if cfg.Listings != nil {
		listings := api.Group("/listings")
		listings.POST("", cfg.Listings.Create)
		listings.GET("", cfg.Listings.List)
		listings.GET("/:id", cfg.Listings.Get)
		listings.PUT("/:id", cfg.Listings.Update)
		listings.PATCH("/:id/status", cfg.Listings.UpdateStatus)
		listings.DELETE("/:id", cfg.Listings.Delete)
		if cfg.Valuations != nil {
			listings.GET("/:id/valuations", cfg.Valuations.ListForListing)
		}
	}

	if cfg.Buyers != nil {
		buyers := api.Group("/buyers")
		buyers.POST("", cfg.Buyers.Create)
		buyers.GET("/:id", cfg.Buyers.Get)
		buyers.PUT("/:id", cfg.Buyers.Update)
		buyers.DELETE("/:id", cfg.Buyers.Delete)
		api.GET("/users/:id/buyer-profile", cfg.Buyers.GetByUser)
		if cfg.Matches != nil {
			buyers.GET("/:id/matches", cfg.Matches.ListForBuyer)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "COMMON_005", "message": "route not found"})
	})

	return r
}
