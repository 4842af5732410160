package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "teamkasse/internal/log"
	"teamkasse/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type verifyReq struct {
	Password string `json:"password"`
}

// POST /api/v1/auth/verify: admin password check. Errors (unconfigured
// secret) surface as 500 with the German message; a wrong password is a
// normal false result, not an error.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req verifyReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	ok, err := h.Auth.VerifyPassword(req.Password)
	if err != nil {
		applog.Error(c, "auth.verify.unconfigured", err, nil)
		return fail(c, err)
	}
	if !ok {
		applog.Security(c, "auth.verify.denied", nil)
	}
	return c.JSON(fiber.Map{"ok": ok})
}
