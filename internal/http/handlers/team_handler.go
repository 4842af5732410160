package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "teamkasse/internal/log"
	"teamkasse/internal/repos"
	"teamkasse/internal/services"
	"teamkasse/internal/validate"
)

type TeamHandler struct {
	Teams *services.TeamService
}

// GET /api/v1/teams
func (h *TeamHandler) List(c *fiber.Ctx) error {
	teams, err := h.Teams.List()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(teams)
}

// GET /api/v1/admin/teams
func (h *TeamHandler) ListForAdmin(c *fiber.Ctx) error {
	teams, err := h.Teams.ListForAdmin()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(teams)
}

// GET /api/v1/teams/slug/:slug: null body for unknown/hidden slugs.
func (h *TeamHandler) GetBySlug(c *fiber.Ctx) error {
	slug, ok := validate.Slug(c.Params("slug"))
	if !ok {
		return badRequest(c, "ungültiger Slug")
	}
	team, err := h.Teams.GetBySlug(slug)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(team)
}

type createTeamReq struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// POST /api/v1/admin/teams
func (h *TeamHandler) Create(c *fiber.Ctx) error {
	var req createTeamReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, services.ErrTeamInvalid)
	}
	// slug derives from the name when left blank
	if req.Slug == "" {
		req.Slug = validate.Slugify(name)
	}
	slug, ok := validate.Slug(req.Slug)
	if !ok {
		return fail(c, services.ErrTeamInvalid)
	}
	id, err := h.Teams.Create(name, slug)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "team.create", map[string]any{"team_id": id, "slug": slug})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type updateTeamReq struct {
	Name   *string `json:"name"`
	Slug   *string `json:"slug"`
	Active *bool   `json:"active"`
}

// PATCH /api/v1/admin/teams/:id
func (h *TeamHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	var req updateTeamReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	if req.Slug != nil {
		slug, ok := validate.Slug(*req.Slug)
		if !ok {
			return badRequest(c, "ungültiger Slug")
		}
		req.Slug = &slug
	}
	patch := repos.TeamPatch{Name: req.Name, Slug: req.Slug, Active: req.Active}
	if err := h.Teams.Update(id, patch); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "team.update", map[string]any{"team_id": id})
	return c.JSON(fiber.Map{"id": id})
}

// DELETE /api/v1/admin/teams/:id
func (h *TeamHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	if err := h.Teams.Remove(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "team.delete", map[string]any{"team_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
