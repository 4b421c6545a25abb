package handler

import (
	"errors"

	"go-stock-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{service: s}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	user, err := h.service.Register(req.Username, req.Email, req.Password)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user.ToResponse(),
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "All fields are required"})
	}

	resp, err := h.service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"token":   resp.Token,
		"user":    resp.User,
	})
}

// Logout rotates the caller's token version so outstanding tokens stop
// validating, the bearer-token equivalent of destroying the session.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	userID, err := parseUUID(actorID(c))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	if err := h.service.Logout(userID); err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "Logged out successfully"})
}

// Me reports the authenticated identity, for session checks on the client.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"isAuthenticated": true,
		"user": fiber.Map{
			"id":       c.Locals("user_id"),
			"username": c.Locals("username"),
			"email":    c.Locals("user_email"),
			"role":     c.Locals("user_role"),
		},
	})
}
