package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "teamkasse/internal/log"
	"teamkasse/internal/repos"
	"teamkasse/internal/services"
	"teamkasse/internal/validate"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/categories
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cats)
}

// GET /api/v1/categories/nonempty: only categories with sellable products.
func (h *CategoryHandler) ListNonEmpty(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListNonEmptyCategories()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cats)
}

// GET /api/v1/admin/categories: includes hidden/deleted, with product counts.
func (h *CategoryHandler) ListForAdmin(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategoriesForAdmin()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cats)
}

type createCategoryReq struct {
	Name   string `json:"name"`
	Order  *int   `json:"order"`
	Active *bool  `json:"active"`
}

// POST /api/v1/admin/categories
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req createCategoryReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, services.ErrCategoryInvalid)
	}
	id, err := h.Catalog.CreateCategory(name, req.Order, req.Active)
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.create", map[string]any{"category_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type updateCategoryReq struct {
	Name   *string `json:"name"`
	Order  *int    `json:"order"`
	Active *bool   `json:"active"`
}

// PATCH /api/v1/admin/categories/:id
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	var req updateCategoryReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	patch := repos.CategoryPatch{Name: req.Name, Order: req.Order, Active: req.Active}
	if err := h.Catalog.UpdateCategory(id, patch); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.update", map[string]any{"category_id": id})
	return c.JSON(fiber.Map{"id": id})
}

type reorderReq struct {
	OrderedIDs []string `json:"orderedIds"`
}

// POST /api/v1/admin/categories/reorder
func (h *CategoryHandler) Reorder(c *fiber.Ctx) error {
	var req reorderReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	for _, id := range req.OrderedIDs {
		if _, ok := validate.ID(id); !ok {
			return badRequest(c, "ungültige ID")
		}
	}
	if err := h.Catalog.ReorderCategories(req.OrderedIDs); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.reorder", map[string]any{"count": len(req.OrderedIDs)})
	return c.SendStatus(fiber.StatusNoContent)
}

type bulkActiveReq struct {
	IDs    []string `json:"ids"`
	Active bool     `json:"active"`
}

// POST /api/v1/admin/categories/activate
func (h *CategoryHandler) SetManyActive(c *fiber.Ctx) error {
	var req bulkActiveReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	if err := h.Catalog.SetCategoriesActive(req.IDs, req.Active); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.bulk_active", map[string]any{"count": len(req.IDs), "active": req.Active})
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/v1/admin/categories/:id
func (h *CategoryHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	if err := h.Catalog.RemoveCategory(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "category.delete", map[string]any{"category_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
