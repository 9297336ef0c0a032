package handler

import (
	"github.com/gofiber/fiber/v2"

	"relwatch/internal/models"
	"relwatch/internal/service"
	"relwatch/internal/validate"
)

// NotificationHandler serves the webhook configuration and the test send.
type NotificationHandler struct {
	store    service.NotificationStore
	notifier service.Notifier
}

func NewNotificationHandler(store service.NotificationStore, notifier service.Notifier) *NotificationHandler {
	return &NotificationHandler{store: store, notifier: notifier}
}

func (h *NotificationHandler) Register(r fiber.Router) {
	r.Get("/notifications", h.get)
	r.Post("/notifications", h.save)
	r.Post("/notifications/test", h.test)
}

func (h *NotificationHandler) get(c *fiber.Ctx) error {
	settings, err := h.store.Get(c.UserContext())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(settings)
}

func (h *NotificationHandler) save(c *fiber.Ctx) error {
	var input models.NotificationSettings
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}
	if err := validate.NotificationSettings(input); err != nil {
		return httpError(err)
	}
	if err := h.store.Save(c.UserContext(), input); err != nil {
		return httpError(err)
	}
	return c.JSON(input)
}

func (h *NotificationHandler) test(c *fiber.Ctx) error {
	if err := h.notifier.SendTest(c.UserContext()); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(fiber.Map{"message": "Test notification sent"})
}
