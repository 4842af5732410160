package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "teamkasse/internal/log"
	"teamkasse/internal/repos"
	"teamkasse/internal/services"
	"teamkasse/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

// GET /api/v1/products?categoryId=...: active products with the live
// template price resolved; without categoryId the whole active catalog.
func (h *ProductHandler) ListActive(c *fiber.Ctx) error {
	categoryID := c.Query("categoryId")
	if categoryID != "" {
		if _, ok := validate.ID(categoryID); !ok {
			return badRequest(c, "ungültige Kategorie-ID")
		}
		products, err := h.Catalog.ProductsByCategory(categoryID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(products)
	}
	products, err := h.Catalog.ListAllActiveProducts()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

// GET /api/v1/admin/products
func (h *ProductHandler) ListForAdmin(c *fiber.Ctx) error {
	products, err := h.Catalog.ListProductsForAdmin()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(products)
}

type createProductReq struct {
	CategoryID  string  `json:"categoryId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Active      *bool   `json:"active"`
	IsFavorite  *bool   `json:"isFavorite"`
	PriceA      int64   `json:"priceA"`
	PriceB      int64   `json:"priceB"`
}

// POST /api/v1/admin/products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	if _, ok := validate.ID(req.CategoryID); !ok {
		return badRequest(c, "ungültige Kategorie-ID")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return fail(c, services.ErrProductInvalid)
	}
	id, err := h.Catalog.CreateProduct(services.NewProduct{
		CategoryID:  req.CategoryID,
		Name:        name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
		IsFavorite:  req.IsFavorite,
		PriceA:      req.PriceA,
		PriceB:      req.PriceB,
	})
	if err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.create", map[string]any{"product_id": id})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

type updateProductReq struct {
	CategoryID  *string `json:"categoryId"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Active      *bool   `json:"active"`
	IsFavorite  *bool   `json:"isFavorite"`
	PriceA      *int64  `json:"priceA"`
	PriceB      *int64  `json:"priceB"`
}

// PATCH /api/v1/admin/products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	var req updateProductReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	patch := repos.ProductPatch{
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Active:      req.Active,
		IsFavorite:  req.IsFavorite,
		PriceA:      req.PriceA,
		PriceB:      req.PriceB,
	}
	if err := h.Catalog.UpdateProduct(id, patch); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.update", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"id": id})
}

type updatePriceReq struct {
	Price    int64  `json:"price"`
	Template string `json:"template"`
}

// POST /api/v1/admin/products/:id/price: patches exactly one template price.
func (h *ProductHandler) UpdatePrice(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	var req updatePriceReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	template, ok := validate.Template(req.Template)
	if !ok {
		return badRequest(c, "ungültige Vorlage")
	}
	if err := h.Catalog.UpdateProductPrice(id, req.Price, template); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.price", map[string]any{"product_id": id, "template": template, "price": req.Price})
	return c.SendStatus(fiber.StatusNoContent)
}

// POST /api/v1/admin/products/activate
func (h *ProductHandler) SetManyActive(c *fiber.Ctx) error {
	var req bulkActiveReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	if err := h.Catalog.SetProductsActive(req.IDs, req.Active); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.bulk_active", map[string]any{"count": len(req.IDs), "active": req.Active})
	return c.SendStatus(fiber.StatusNoContent)
}

// DELETE /api/v1/admin/products/:id
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	if err := h.Catalog.RemoveProduct(id); err != nil {
		return fail(c, err)
	}
	applog.Audit(c, "product.delete", map[string]any{"product_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
