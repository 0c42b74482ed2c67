package routes

import (
	"github.com/agapechurch/chms-backend/internal/config"
	"github.com/agapechurch/chms-backend/internal/handler"
	"github.com/agapechurch/chms-backend/internal/middleware"
	"github.com/agapechurch/chms-backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	announcementHandler *handler.AnnouncementHandler,
	devotionalHandler *handler.DevotionalHandler,
	workflowHandler *handler.WorkflowHandler,
	versionHandler *handler.VersionHandler,
	schedulerHandler *handler.SchedulerHandler,
	jwtManager *jwt.Manager,
	cfg *config.Config,
) {
	api := router.Group("/api/v1")

	// Announcements
	announcements := api.Group("/announcements")
	{
		announcements.GET("", announcementHandler.List)
		announcements.GET("/mine", middleware.JWTAuth(jwtManager), announcementHandler.Mine)
		announcements.GET("/:id", announcementHandler.Get)
		announcements.POST("", middleware.JWTAuth(jwtManager), announcementHandler.Create)
		announcements.PUT("/:id", middleware.JWTAuth(jwtManager), announcementHandler.Update)
		announcements.DELETE("/:id", middleware.JWTAuth(jwtManager), announcementHandler.Delete)
	}

	// Devotionals
	devotionals := api.Group("/devotionals")
	{
		devotionals.GET("", devotionalHandler.List)
		devotionals.GET("/mine", middleware.JWTAuth(jwtManager), devotionalHandler.Mine)
		devotionals.GET("/:id", devotionalHandler.Get)
		devotionals.POST("", middleware.JWTAuth(jwtManager), devotionalHandler.Create)
		devotionals.PUT("/:id", middleware.JWTAuth(jwtManager), devotionalHandler.Update)
		devotionals.DELETE("/:id", middleware.JWTAuth(jwtManager), devotionalHandler.Delete)
	}

	// Review workflow
	content := api.Group("/content", middleware.JWTAuth(jwtManager))
	{
		content.POST("/review/:type/:id", workflowHandler.SubmitForReview)
		content.POST("/approve/:type/:id", middleware.RequireReviewer(), workflowHandler.Approve)
		content.POST("/reject/:type/:id", middleware.RequireReviewer(), workflowHandler.Reject)

		// Version history
		content.POST("/versions", versionHandler.Snapshot)
		content.GET("/versions", versionHandler.History)
		content.PUT("/versions", versionHandler.Restore)
	}

	// Scheduler endpoint, authenticated with a shared API key for cron callers
	api.GET("/scheduler/run", middleware.SchedulerAuth(cfg.Scheduler.APIKey), schedulerHandler.Run)
}
