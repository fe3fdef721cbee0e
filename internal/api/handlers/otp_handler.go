package handlers

import (
	"errors"

	"github.com/SireeshaRagipati24/instagen-scheduler/internal/models"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/otp"
	"github.com/SireeshaRagipati24/instagen-scheduler/internal/registry"
	"github.com/gofiber/fiber/v2"
)

type OtpHandler struct {
	h   *otp.Handler
	reg *registry.Registry
}

func NewOtpHandler(h *otp.Handler, reg *registry.Registry) *OtpHandler {
	return &OtpHandler{h: h, reg: reg}
}

type otpOpenBody struct {
	PostID int64 `json:"post_id"`
}

type otpSubmitBody struct {
	Otp string `json:"otp"`
}

func (h *OtpHandler) Challenge(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(h.h.Snapshot())
}

// Open starts a challenge for a post the registry currently reports as
// awaiting OTP.
func (h *OtpHandler) Open(c *fiber.Ctx) error {
	var body otpOpenBody
	if err := c.BodyParser(&body); err != nil || body.PostID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "post_id is required",
		})
	}

	post, ok := h.reg.Get(body.PostID)
	if !ok || post.Status != models.PostStatusOtpRequired {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Post is not awaiting OTP verification",
		})
	}

	if err := h.h.Open(body.PostID); err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.Status(fiber.StatusOK).JSON(h.h.Snapshot())
}

func (h *OtpHandler) Submit(c *fiber.Ctx) error {
	var body otpSubmitBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if body.Otp != "" {
		if err := h.h.SetCode(body.Otp); err != nil {
			return otpErrorResponse(c, err)
		}
	}

	if err := h.h.Submit(c.Context()); err != nil {
		return otpErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "OTP verified, post will be published shortly",
	})
}

func (h *OtpHandler) Cancel(c *fiber.Ctx) error {
	if err := h.h.Cancel(); err != nil {
		return otpErrorResponse(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"success": true})
}

func otpErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusBadGateway
	switch {
	case errors.Is(err, otp.ErrEmptyCode), errors.Is(err, otp.ErrNoChallenge):
		status = fiber.StatusBadRequest
	case errors.Is(err, otp.ErrSubmitting):
		status = fiber.StatusConflict
	}
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}
