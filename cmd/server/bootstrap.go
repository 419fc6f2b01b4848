package main

import (
	"github.com/fitforge/fitforge/internal/config"
	"github.com/fitforge/fitforge/internal/handlers"
	"github.com/fitforge/fitforge/internal/models"
	"github.com/fitforge/fitforge/internal/services"
	"github.com/fitforge/fitforge/internal/utils"
	"github.com/fitforge/fitforge/pkg/logger"
)

// appServices holds the initialized services and handlers shared across routes.
type appServices struct {
	cfg               *config.Config
	generationService *services.GenerationService
	taskQueue         services.TaskQueue
	worker            *services.Worker
	scheduler         *services.Scheduler
	authHandler       *handlers.AuthHandler
}

// bootstrap initializes all application dependencies: database, services, schedulers.
func bootstrap(cfg *config.Config) *appServices {
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Seed default data
	if err := models.SeedDefaultData(); err != nil {
		logger.Warn().Err(err).Msg("Failed to seed default data")
	}

	// Initialize system logger
	services.InitSystemLogger(models.GetDB())

	// Generation pipeline, shared by the HTTP handlers and the task queue
	generationService := handlers.BuildGenerationService(models.GetDB(), cfg)

	// Initialize task queue (uses Redis if enabled, otherwise sync mode)
	taskQueue := services.InitTaskQueue(cfg)
	if syncQueue, ok := taskQueue.(*services.SyncQueue); ok {
		syncQueue.SetProcessor(generationService.ProcessTask)
	}

	// Start async worker if Redis is enabled
	var worker *services.Worker
	if cfg.Redis.Enabled {
		worker = services.InitWorker(&cfg.Redis)
		if worker != nil {
			worker.SetProcessor(generationService.ProcessTask)
			if err := worker.Start(); err != nil {
				logger.Warn().Err(err).Msg("Failed to start async worker")
			}
		}
	}

	// Nightly pattern snapshot refresh and log cleanup
	adService := services.NewHistoricalAdService(models.GetDB())
	scheduler := services.NewScheduler(models.GetDB(), services.NewPatternSnapshotService(models.GetDB(), adService))
	scheduler.Start()

	// Create default admin user
	authHandler := handlers.NewAuthHandler(models.GetDB(), cfg)
	authService := services.NewAuthService(models.GetDB(), &cfg.JWT)
	if err := authService.CreateAdminIfNotExists(); err != nil {
		logger.Warn().Err(err).Msg("Failed to create admin user")
	}

	return &appServices{
		cfg:               cfg,
		generationService: generationService,
		taskQueue:         taskQueue,
		worker:            worker,
		scheduler:         scheduler,
		authHandler:       authHandler,
	}
}

// shutdown gracefully stops all background services.
func (s *appServices) shutdown() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.taskQueue != nil {
		s.taskQueue.Close()
	}
	logger.Info().Msg("All background services stopped")
}
