package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"teamkasse/internal/services"
)

// fail maps service errors to HTTP statuses. The taxonomy is flat: callers
// get a human-readable message, not a machine code.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrTeamNotFound),
		errors.Is(err, services.ErrPurchaseNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrSlugTaken),
		errors.Is(err, services.ErrDeleteWindow),
		errors.Is(err, services.ErrCartEmpty),
		errors.Is(err, services.ErrTeamInvalid),
		errors.Is(err, services.ErrCategoryInvalid),
		errors.Is(err, services.ErrProductInvalid),
		errors.Is(err, services.ErrNegativePrice):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}
