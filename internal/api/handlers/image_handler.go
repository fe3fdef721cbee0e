package handlers

import (
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/service"
	"github.com/gofiber/fiber/v2"
)

type ImageHandler struct {
	s service.ImageService
}

func NewImageHandler(s service.ImageService) *ImageHandler {
	return &ImageHandler{s: s}
}

func (h *ImageHandler) GetImage(c *fiber.Ctx) error {
	filename := c.Query("filename")
	if filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Filename required",
		})
	}

	data, mime, err := h.s.Preview(c.Context(), filename)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set(fiber.HeaderContentType, mime)
	return c.Send(data)
}
