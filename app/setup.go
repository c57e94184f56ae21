package app

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/edugenai/paper-analyzer/api"
	"github.com/edugenai/paper-analyzer/config"
	"github.com/edugenai/paper-analyzer/database"
	"github.com/edugenai/paper-analyzer/router"
	"github.com/edugenai/paper-analyzer/services/cron"
)

func SetupAndRunServer() error {

	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether the Postgres is running or not\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Wire the service layer; threshold misconfiguration fails startup here
	svcs, err := router.BuildServices(store)
	if err != nil {
		return fmt.Errorf("service initialization failed: %w", err)
	}

	// Initialize Cron Manager (only if enabled via environment variable)
	var cronManager *cron.CronManager
	if os.Getenv("CRON_ENABLED") != "false" { // Default to enabled
		cronManager = cron.NewCronManager(store.GetDB(), svcs.Frequency)
		if err := cronManager.Start(); err != nil {
			print("Warning: Failed to start cron jobs\n")
			print("Error: ", err.Error(), "\n")
			// Don't fail the app, just log the warning
		}
	}

	// Defer closing DB, cache and stopping cron jobs
	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		if svcs.Cache != nil {
			svcs.Cache.Close()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Attach Middleware
	app.Use(logger.New())
	app.Use(recover.New())

	// Setup Routes
	router.SetupRoutes(app, store, svcs)

	// Start the Server
	return server.Run()
}
