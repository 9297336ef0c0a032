package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"relwatch/internal/service"
)

// AuthHandler serves registration and login; these routes are never behind
// the bearer-token middleware.
type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Register(r fiber.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Get("/auth/exists", h.exists)
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var input credentials
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}
	if err := h.svc.Register(c.UserContext(), input.Username, input.Password); err != nil {
		return httpError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User registered successfully"})
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var input credentials
	if err := c.BodyParser(&input); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request payload")
	}

	token, err := h.svc.Login(c.UserContext(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, service.ErrBadCredentials) {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return httpError(err)
	}
	return c.JSON(fiber.Map{"token": token, "message": "Login successful."})
}

func (h *AuthHandler) exists(c *fiber.Ctx) error {
	exists, err := h.svc.AnyUserExists(c.UserContext())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(fiber.Map{"exists": exists})
}
