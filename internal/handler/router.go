package handler

import (
	"github.com/gofiber/fiber/v2"

	"relwatch/internal/middleware"
	"relwatch/internal/service"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Tracker       service.TrackerService
	Monitor       *service.Monitor
	Settings      *service.SettingsService
	SettingsStore service.SettingsStore
	Notifications service.NotificationStore
	Notifier      service.Notifier
	Auth          *service.AuthService
	Validator     service.TokenValidator
	Scheduler     Rescheduler
	JWTSecret     string
}

// RegisterRoutes mounts the public auth routes and the protected API behind
// the bearer-token middleware. GET /settings stays open so the dashboard can
// read the theme before login.
func RegisterRoutes(app *fiber.App, d Deps) {
	NewAuthHandler(d.Auth).Register(app)

	protected := app.Group("", middleware.Auth(middleware.AuthConfig{
		Secret: d.JWTSecret,
		Skip: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodGet && c.Path() == "/settings"
		},
	}))

	NewRepoHandler(d.Tracker).Register(protected)
	NewScanHandler(d.Monitor, d.SettingsStore).Register(protected)
	NewSettingsHandler(d.Settings, d.Validator, d.Scheduler).Register(protected)
	NewNotificationHandler(d.Notifications, d.Notifier).Register(protected)
}
