package handler

import (
	"github.com/gofiber/fiber/v2"

	"relwatch/internal/service"
)

// Rescheduler swaps the scheduled scan job when the cron expression changes.
type Rescheduler interface {
	Reschedule(cronExpr string) error
}

// SettingsHandler serves the singleton settings and GitHub key validation.
type SettingsHandler struct {
	svc       *service.SettingsService
	validator service.TokenValidator
	scheduler Rescheduler
}

func NewSettingsHandler(svc *service.SettingsService, validator service.TokenValidator, scheduler Rescheduler) *SettingsHandler {
	return &SettingsHandler{svc: svc, validator: validator, scheduler: scheduler}
}

func (h *SettingsHandler) Register(r fiber.Router) {
	r.Get("/settings", h.get)
	r.Post("/settings", h.save)
	r.Post("/validate-key", h.validateKey)
}

func (h *SettingsHandler) get(c *fiber.Ctx) error {
	settings, err := h.svc.Get(c.UserContext())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(settings)
}

func (h *SettingsHandler) save(c *fiber.Ctx) error {
	var input service.SaveInput
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}

	cronChanged, err := h.svc.Save(c.UserContext(), input)
	if err != nil {
		return httpError(err)
	}
	if cronChanged && h.scheduler != nil {
		if err := h.scheduler.Reschedule(input.CronSchedule); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to schedule the new cron job")
		}
	}

	settings, err := h.svc.Get(c.UserContext())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(settings)
}

func (h *SettingsHandler) validateKey(c *fiber.Ctx) error {
	var payload struct {
		APIKey string `json:"apiKey"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}
	if err := h.validator.ValidateToken(c.UserContext(), payload.APIKey); err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	return c.JSON(fiber.Map{"message": "GitHub API key is valid"})
}
