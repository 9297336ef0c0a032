package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"relwatch/internal/config"
	"relwatch/internal/database"
	"relwatch/internal/github"
	"relwatch/internal/handler"
	"relwatch/internal/logging"
	"relwatch/internal/middleware"
	"relwatch/internal/repository"
	"relwatch/internal/scheduler"
	"relwatch/internal/secret"
	"relwatch/internal/service"
)

// main is the single entry-point for the REST API.
func main() {
	cfg := config.Load()
	logging.Init()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("Invalid TIMEZONE %q: %v", cfg.Timezone, err)
	}
	time.Local = loc

	// Connect to MongoDB
	client, ctx, cancel, err := database.NewMongo(cfg.MongoURI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer cancel()
	defer client.Disconnect(ctx)
	db := client.Database(cfg.DBName)
	logging.Logger.Infof("Connected to MongoDB, database %s", cfg.DBName)

	// Storage layer
	repoStore := repository.NewRepoMongo(db)
	settingsStore := repository.NewSettingsMongo(db)
	notificationStore := repository.NewNotificationMongo(db)
	userStore := repository.NewUserMongo(db)

	settings, err := settingsStore.Get(ctx)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	// The sealing salt is generated once per install and persisted with the
	// settings, so sealed API keys survive restarts.
	if settings.Salt == "" {
		settings.Salt, err = secret.RandomSalt(16)
		if err != nil {
			log.Fatalf("Failed to generate salt: %v", err)
		}
		if err := settingsStore.Save(ctx, settings); err != nil {
			log.Fatalf("Failed to persist salt: %v", err)
		}
	}
	box := secret.NewBox(cfg.JWTSecret, settings.Salt)

	// Services
	gh := github.NewClient()
	settingsSvc := service.NewSettingsService(settingsStore, box, gh)
	trackerSvc := service.NewTrackerService(repoStore, settingsStore, gh, settingsSvc.Token)
	notifier := service.NewWebhookNotifier(notificationStore)
	monitor := service.NewMonitor(repoStore, settingsStore, gh, notifier, settingsSvc.Token)
	authSvc := service.NewAuthService(userStore, cfg.JWTSecret)

	// Scheduled scans follow the stored cron expression.
	sched, err := scheduler.Start(monitor, settings.CronSchedule, loc)
	if err != nil {
		log.Fatalf("Failed to schedule scan job: %v", err)
	}
	defer sched.Stop()

	// HTTP server
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
	app.Use(middleware.Logging())

	handler.NewHealthHandler(client).Register(app)
	handler.RegisterRoutes(app, handler.Deps{
		Tracker:       trackerSvc,
		Monitor:       monitor,
		Settings:      settingsSvc,
		SettingsStore: settingsStore,
		Notifications: notificationStore,
		Notifier:      notifier,
		Auth:          authSvc,
		Validator:     gh,
		Scheduler:     sched,
		JWTSecret:     cfg.JWTSecret,
	})

	logging.Logger.Infof("Server starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
