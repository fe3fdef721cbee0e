package handlers

import "github.com/gofiber/fiber/v2"

func GetUsername(c *fiber.Ctx) string {
	username, _ := c.Locals("username").(string)
	return username
}
