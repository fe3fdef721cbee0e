package handlers

import (
	"errors"
	"log/slog"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/registry"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/scheduler"
	"github.com/gofiber/fiber/v2"
)

type PostHandler struct {
	reg  *registry.Registry
	ctrl *scheduler.Controller
}

func NewPostHandler(reg *registry.Registry, ctrl *scheduler.Controller) *PostHandler {
	return &PostHandler{reg: reg, ctrl: ctrl}
}

// ListPosts serves the cached active-post list. ?refresh=1 forces a
// synchronous re-fetch first (the "Refresh" button).
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	if c.QueryBool("refresh") {
		if err := h.reg.Refresh(c.Context()); err != nil {
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"success": false,
				"error":   err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"posts":   h.reg.Posts(),
		"loading": h.reg.Loading(),
	})
}

// SchedulePost submits the current draft.
func (h *PostHandler) SchedulePost(c *fiber.Ctx) error {
	err := h.ctrl.Submit(c.Context())
	if err == nil {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success": true,
			"message": "Post scheduled successfully",
		})
	}

	status := fiber.StatusBadGateway
	switch {
	case errors.Is(err, models.ErrMissingCaption),
		errors.Is(err, models.ErrMissingTime),
		errors.Is(err, models.ErrTimeInPast):
		status = fiber.StatusBadRequest
	case errors.Is(err, scheduler.ErrSubmitInFlight):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil || postID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid post id",
		})
	}

	slog.Info("delete requested", "user", GetUsername(c), "post_id", postID)
	if err := h.ctrl.Delete(c.Context(), int64(postID)); err != nil {
		status := fiber.StatusBadGateway
		if errors.Is(err, scheduler.ErrDeleteInFlight) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Scheduled post deleted",
	})
}
