package router

import (
	"linkpulse/config"
	"linkpulse/internal/handler"
	"linkpulse/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func Router(log *zap.Logger, cfg *config.Config, redirectHandler *handler.RedirectHandler, linkHandler *handler.LinkHandler, analyticsHandler *handler.AnalyticsHandler, adminHandler *handler.AdminHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.GET("/r/:code", redirectHandler.Redirect)

	api := r.Group("/api", middleware.JWTAuth(&cfg.JWT))
	{
		api.GET("/analytics", analyticsHandler.Dashboard)
		api.GET("/clicks", analyticsHandler.LinkClicks)

		api.POST("/links", linkHandler.Create)
		api.GET("/links", linkHandler.List)
		api.DELETE("/links/:id", linkHandler.Delete)

		admin := api.Group("/admin", middleware.AdminOnly(cfg.AdminIDs))
		{
			admin.GET("/links/:id/report", adminHandler.LinkReport)
			admin.GET("/analytics/top-links", adminHandler.TopLinks)
			admin.POST("/moderation", adminHandler.Moderation)
		}
	}

	return r
}
