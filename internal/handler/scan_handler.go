package handler

import (
	"github.com/gofiber/fiber/v2"

	"relwatch/internal/service"
)

// ScanHandler exposes manual scans and the scan-status labels.
type ScanHandler struct {
	monitor  *service.Monitor
	settings service.SettingsStore
}

func NewScanHandler(monitor *service.Monitor, settings service.SettingsStore) *ScanHandler {
	return &ScanHandler{monitor: monitor, settings: settings}
}

func (h *ScanHandler) Register(r fiber.Router) {
	r.Post("/scan-updates", h.trigger)
	r.Get("/scan-status", h.status)
}

func (h *ScanHandler) trigger(c *fiber.Ctx) error {
	if err := h.monitor.Scan(c.UserContext(), service.ScanManual); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "scan failed")
	}
	return c.JSON(fiber.Map{"message": "Scan completed"})
}

func (h *ScanHandler) status(c *fiber.Ctx) error {
	st, err := service.ScanStatus(c.UserContext(), h.settings)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(st)
}
