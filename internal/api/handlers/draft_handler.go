package handlers

import (
	"time"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/service"
	"github.com/gofiber/fiber/v2"
)

type DraftHandler struct {
	s service.DraftService
}

func NewDraftHandler(s service.DraftService) *DraftHandler {
	return &DraftHandler{s: s}
}

type draftBody struct {
	Caption       string `json:"caption"`
	Filename      string `json:"filename"`
	Platform      string `json:"platform"`
	ScheduledTime string `json:"scheduled_time"`
}

func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	draft := h.s.Get()

	scheduledTime := ""
	if !draft.ScheduledAt.IsZero() {
		scheduledTime = draft.ScheduledAt.Format(models.ScheduledTimeLayout)
	}

	return c.Status(fiber.StatusOK).JSON(draftBody{
		Caption:       draft.Caption,
		Filename:      draft.ImageFilename,
		Platform:      draft.Platform,
		ScheduledTime: scheduledTime,
	})
}

// UpdateDraft replaces the draft with the submitted fields; every edit is
// autosaved.
func (h *DraftHandler) UpdateDraft(c *fiber.Ctx) error {
	var body draftBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	draft := models.PostDraft{
		Caption:       body.Caption,
		ImageFilename: body.Filename,
		Platform:      body.Platform,
	}
	if body.ScheduledTime != "" {
		t, err := time.ParseInLocation(models.ScheduledTimeLayout, body.ScheduledTime, time.Local)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid datetime format",
			})
		}
		draft.ScheduledAt = t
	}

	if err := h.s.Update(c.Context(), draft); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to save draft",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
