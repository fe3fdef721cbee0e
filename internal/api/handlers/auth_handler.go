package handlers

import (
	"time"

	config "github.com/SireeshaRagipati24/instagen-scheduler/configs"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/service"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/transfer"
	"github.com/SireeshaRagipati24/instagen-scheduler/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	s   service.SessionService
	cfg config.Config
}

func NewAuthHandler(cfg config.Config, service service.SessionService) *AuthHandler {
	return &AuthHandler{s: service, cfg: cfg}
}

// Login performs the backend login handshake and, on success, issues the
// agent's own session cookie.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req transfer.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}
	if req.Username == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Username and password are required",
		})
	}

	if err := h.s.Login(c.Context(), req.Username, req.Password); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	token, err := utils.GenerateToken(h.cfg.SecretKey, req.Username, 24*time.Hour)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Secure:   false,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successful!",
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.s.Logout(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to log out",
		})
	}

	c.Cookie(&fiber.Cookie{
		Name:   h.cfg.CookieName,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	})

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}
