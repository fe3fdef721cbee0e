package handlers

import (
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/notify"
	"github.com/gofiber/fiber/v2"
)

type NotificationHandler struct {
	buf *notify.Buffer
}

func NewNotificationHandler(buf *notify.Buffer) *NotificationHandler {
	return &NotificationHandler{buf: buf}
}

// ListNotifications drains the pending toast backlog for the front-end.
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": h.buf.Drain(),
	})
}
