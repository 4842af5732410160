package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"teamkasse/internal/domain"
	"teamkasse/internal/services"
	"teamkasse/internal/validate"
)

// CartHandler serves the session cart. Line name and price are snapshotted
// from the live catalog at add time, like a checkout would.
type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
}

func (h *CartHandler) ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{Name: "sid", Value: sid, Path: "/", HTTPOnly: true})
	}
	return sid
}

// GET /api/v1/cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	return c.JSON(h.Cart.View(h.ensureSID(c)))
}

type addCartReq struct {
	ProductID string `json:"productId"`
	Quantity  int64  `json:"quantity"`
}

// POST /api/v1/cart/items
func (h *CartHandler) Add(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	var req addCartReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	productID, ok := validate.ID(req.ProductID)
	if !ok {
		return badRequest(c, "ungültige Produkt-ID")
	}
	p, err := h.Catalog.GetProduct(productID)
	if err != nil {
		return fail(c, err)
	}
	if p == nil || p.DeletedAt != nil || !p.Active {
		return badRequest(c, "Produkt nicht verfügbar")
	}
	template, err := h.Catalog.Settings.ActiveTemplate()
	if err != nil {
		return fail(c, err)
	}
	price := int64(0)
	if template == domain.TemplateB {
		if p.PriceB != nil {
			price = *p.PriceB
		}
	} else if p.PriceA != nil {
		price = *p.PriceA
	}
	h.Cart.Add(sid, domain.PurchaseItem{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     price,
		Quantity:  validate.Quantity(req.Quantity),
	})
	return c.JSON(h.Cart.View(sid))
}

type setQtyReq struct {
	Quantity int64 `json:"quantity"`
}

// PATCH /api/v1/cart/items/:productId: quantity <= 0 removes the line.
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	sid := h.ensureSID(c)
	productID, ok := validate.ID(c.Params("productId"))
	if !ok {
		return badRequest(c, "ungültige Produkt-ID")
	}
	var req setQtyReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	h.Cart.SetQuantity(sid, productID, req.Quantity)
	return c.JSON(h.Cart.View(sid))
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	h.Cart.Clear(h.ensureSID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
