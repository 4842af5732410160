package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "teamkasse/internal/log"
	"teamkasse/internal/services"
	"teamkasse/internal/validate"
)

type SettingsHandler struct {
	Settings *services.SettingsService
}

// GET /api/v1/settings/:key
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return badRequest(c, "Schlüssel fehlt")
	}
	value, err := h.Settings.Get(key)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"key": key, "value": value})
}

type setSettingReq struct {
	Value string `json:"value"`
}

// PUT /api/v1/admin/settings/:key
func (h *SettingsHandler) Set(c *fiber.Ctx) error {
	key := c.Params("key")
	if key == "" {
		return badRequest(c, "Schlüssel fehlt")
	}
	var req setSettingReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	if err := h.Settings.Set(key, req.Value); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "settings.set", map[string]any{"key": key})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/settings/template/active
func (h *SettingsHandler) GetActiveTemplate(c *fiber.Ctx) error {
	template, err := h.Settings.ActiveTemplate()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"template": template})
}

type setTemplateReq struct {
	Template string `json:"template"`
}

// POST /api/v1/admin/settings/template/active
func (h *SettingsHandler) SetActiveTemplate(c *fiber.Ctx) error {
	var req setTemplateReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	template, ok := validate.Template(req.Template)
	if !ok {
		return badRequest(c, "ungültige Vorlage")
	}
	if err := h.Settings.SetActiveTemplate(template); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "settings.template", map[string]any{"template": template})
	return c.SendStatus(fiber.StatusNoContent)
}

// GET /api/v1/settings/template/names
func (h *SettingsHandler) GetTemplateNames(c *fiber.Ctx) error {
	names, err := h.Settings.TemplateNames()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(names)
}

type setTemplateNamesReq struct {
	NameA string `json:"nameA"`
	NameB string `json:"nameB"`
}

// POST /api/v1/admin/settings/template/names
func (h *SettingsHandler) SetTemplateNames(c *fiber.Ctx) error {
	var req setTemplateNamesReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	if err := h.Settings.SetTemplateNames(req.NameA, req.NameB); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "settings.template_names", nil)
	return c.SendStatus(fiber.StatusNoContent)
}
