package main

import (
	"github.com/gin-gonic/gin"

	"github.com/fitforge/fitforge/internal/handlers"
	"github.com/fitforge/fitforge/internal/middleware"
	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Rate limiter for generation routes. LLM calls are the expensive path.
	generateLimiter := middleware.NewRateLimiter(2, 5)

	// Health check
	healthHandler := handlers.NewHealthHandler()
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", svc.authHandler.Login)
			auth.POST("/register", svc.authHandler.Register)
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired())
		{
			// Auth
			protected.GET("/auth/me", svc.authHandler.GetCurrentUser)
			protected.POST("/auth/change-password", svc.authHandler.ChangePassword)

			// Dashboard
			dashboardHandler := handlers.NewDashboardHandler(models.GetDB())
			protected.GET("/dashboard/stats", dashboardHandler.GetStats)

			// Brand profile
			profileHandler := handlers.NewBrandProfileHandler(models.GetDB())
			protected.GET("/brand-profile", profileHandler.Get)
			protected.PUT("/brand-profile", profileHandler.Upsert)
			protected.DELETE("/brand-profile", profileHandler.Delete)

			// Campaigns and pattern snapshots
			campaignHandler := handlers.NewCampaignHandler(models.GetDB())
			protected.GET("/campaigns", campaignHandler.List)
			protected.GET("/campaigns/suggestions", campaignHandler.Suggestions)
			protected.GET("/campaigns/patterns", campaignHandler.ListSnapshots)
			protected.GET("/campaigns/:slug", campaignHandler.GetBySlug)
			protected.GET("/campaigns/:slug/patterns", campaignHandler.GetSnapshot)

			// Historical ads
			adHandler := handlers.NewHistoricalAdHandler(models.GetDB())
			protected.GET("/ads", adHandler.List)
			protected.POST("/ads/import", adHandler.Import)

			// Generation pipeline
			generationHandler := handlers.NewGenerationHandler(models.GetDB(), svc.cfg)
			generate := protected.Group("", generateLimiter.Middleware())
			{
				generate.POST("/generate", generationHandler.Generate)
				generate.POST("/generate/async", generationHandler.GenerateAsync)
			}
			protected.GET("/generate/:request_id", generationHandler.GetByRequestID)

			// Generated content
			contentHandler := handlers.NewGeneratedContentHandler(models.GetDB())
			protected.GET("/content", contentHandler.List)
			protected.GET("/content/:id", contentHandler.GetByID)
			protected.PUT("/content/:id/text", contentHandler.UpdateText)
			protected.POST("/content/:id/adopt-fix", contentHandler.AdoptFix)

			// Compliance
			complianceHandler := handlers.NewComplianceHandler(models.GetDB(), svc.cfg)
			compliance := protected.Group("", generateLimiter.Middleware())
			{
				compliance.POST("/compliance/check", complianceHandler.Check)
			}
			protected.GET("/compliance/checks", complianceHandler.ListChecks)

			// Rules (read for all users)
			rulesHandler := handlers.NewRulesConfigHandler(models.GetDB())
			protected.GET("/rules/active", rulesHandler.GetActive)
			protected.GET("/rules", rulesHandler.List)
		}

		// Admin only routes
		admin := api.Group("")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			// Campaigns (write operations)
			campaignHandler := handlers.NewCampaignHandler(models.GetDB())
			admin.POST("/campaigns", campaignHandler.Create)
			admin.POST("/campaigns/patterns/refresh", campaignHandler.RefreshSnapshots)

			// Rules (publish)
			rulesHandler := handlers.NewRulesConfigHandler(models.GetDB())
			admin.POST("/rules", rulesHandler.Publish)

			// LLM Configs
			llmConfigHandler := handlers.NewLLMConfigHandler(models.GetDB())
			admin.GET("/llm-configs", llmConfigHandler.List)
			admin.GET("/llm-configs/active", llmConfigHandler.GetActive)
			admin.GET("/llm-configs/:id", llmConfigHandler.GetByID)
			admin.POST("/llm-configs", llmConfigHandler.Create)
			admin.PUT("/llm-configs/:id", llmConfigHandler.Update)
			admin.DELETE("/llm-configs/:id", llmConfigHandler.Delete)

			// System logs
			systemLogHandler := handlers.NewSystemLogHandler(models.GetDB())
			admin.GET("/system-logs", systemLogHandler.List)
			admin.GET("/system-logs/modules", systemLogHandler.GetModules)
			admin.GET("/system-logs/retention", systemLogHandler.GetRetention)
			admin.PUT("/system-logs/retention", systemLogHandler.SetRetention)

			// System config
			systemConfigHandler := handlers.NewSystemConfigHandler(models.GetDB())
			admin.GET("/system-config/:group", systemConfigHandler.GetByGroup)
			admin.PUT("/system-config", systemConfigHandler.Set)
		}
	}
}
