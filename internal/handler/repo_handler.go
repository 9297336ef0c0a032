package handler

import (
	"github.com/gofiber/fiber/v2"

	"relwatch/internal/service"
)

// RepoHandler wires HTTP → TrackerService.
type RepoHandler struct {
	svc service.TrackerService
}

func NewRepoHandler(svc service.TrackerService) *RepoHandler {
	return &RepoHandler{svc: svc}
}

// Register mounts the repository routes on the supplied router group.
func (h *RepoHandler) Register(r fiber.Router) {
	r.Get("/repositories", h.list)
	r.Post("/repositories", h.add)
	r.Delete("/repositories/:id", h.remove)
	r.Patch("/repositories/:id", h.updateVersion)
	r.Post("/repositories/:id/mark-updated", h.markUpdated)
	r.Get("/repositories/:id/changelog", h.changelog)
}

func (h *RepoHandler) list(c *fiber.Ctx) error {
	recs, err := h.svc.List(c.UserContext())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(recs)
}

func (h *RepoHandler) add(c *fiber.Ctx) error {
	var payload struct {
		URL     string `json:"url"`
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}

	rec, err := h.svc.Add(c.UserContext(), payload.URL, payload.Name, payload.Version)
	if err != nil {
		return httpError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(rec)
}

func (h *RepoHandler) remove(c *fiber.Ctx) error {
	if err := h.svc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{"message": "Repository deleted"})
}

func (h *RepoHandler) updateVersion(c *fiber.Ctx) error {
	var payload struct {
		CurrentVersion string `json:"currentVersion"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}

	rec, err := h.svc.UpdateVersion(c.UserContext(), c.Params("id"), payload.CurrentVersion)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(rec)
}

func (h *RepoHandler) markUpdated(c *fiber.Ctx) error {
	rec, err := h.svc.MarkUpdated(c.UserContext(), c.Params("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(rec)
}

func (h *RepoHandler) changelog(c *fiber.Ctx) error {
	content, err := h.svc.Changelog(c.UserContext(), c.Params("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{"content": content})
}
