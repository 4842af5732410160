package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"teamkasse/internal/domain"
	applog "teamkasse/internal/log"
	"teamkasse/internal/repos"
	"teamkasse/internal/services"
	"teamkasse/internal/validate"
)

type PurchaseHandler struct {
	Purchases *services.PurchaseService
}

type createPurchaseReq struct {
	TeamID      string                `json:"teamId"`
	Items       []domain.PurchaseItem `json:"items"`
	TotalAmount int64                 `json:"totalAmount"`
	CreatedBy   *string               `json:"createdBy"`
}

// POST /api/v1/purchases: checkout. The total is stored as sent; a
// mismatch against the line items is only audit-logged.
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var req createPurchaseReq
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "ungültige Anfrage")
	}
	if _, ok := validate.ID(req.TeamID); !ok {
		return badRequest(c, "ungültige Team-ID")
	}
	for _, item := range req.Items {
		if _, ok := validate.ID(item.ProductID); !ok || item.Quantity < 1 || item.Price < 0 {
			return badRequest(c, "ungültige Position")
		}
	}
	id, err := h.Purchases.Create(services.NewPurchase{
		TeamID:      req.TeamID,
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		return fail(c, err)
	}
	itemsSum := services.ItemsSum(req.Items)
	applog.Audit(c, "purchase.create", map[string]any{
		"purchase_id":  id,
		"team_id":      req.TeamID,
		"total":        req.TotalAmount,
		"items_sum":    itemsSum,
		"sum_mismatch": itemsSum != req.TotalAmount,
	})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id})
}

// GET /api/v1/teams/:id/purchases
// ?limit=N caps to the N most recent; ?startMs=&endMs= filters a range.
func (h *PurchaseHandler) ListByTeam(c *fiber.Ctx) error {
	teamID, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige Team-ID")
	}

	if c.Query("startMs") != "" || c.Query("endMs") != "" {
		startMs, err1 := strconv.ParseInt(c.Query("startMs"), 10, 64)
		endMs, err2 := strconv.ParseInt(c.Query("endMs"), 10, 64)
		if err1 != nil || err2 != nil {
			return badRequest(c, "ungültiger Zeitraum")
		}
		purchases, err := h.Purchases.GetByTeamInRange(teamID, startMs, endMs)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(purchases)
	}

	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return badRequest(c, "ungültiges Limit")
		}
		purchases, err := h.Purchases.GetRecentByTeam(teamID, limit)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(purchases)
	}

	purchases, err := h.Purchases.GetByTeam(teamID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}

// GET /api/v1/admin/purchases: full global listing.
func (h *PurchaseHandler) ListAll(c *fiber.Ctx) error {
	purchases, err := h.Purchases.GetAll()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}

// GET /api/v1/admin/purchases/today
func (h *PurchaseHandler) ListToday(c *fiber.Ctx) error {
	purchases, err := h.Purchases.GetToday()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(purchases)
}

func pageArgs(c *fiber.Ctx) (repos.PageOpts, repos.PageFilter, error) {
	opts := repos.PageOpts{Cursor: c.Query("cursor")}
	if n := c.Query("numItems"); n != "" {
		v, err := strconv.Atoi(n)
		if err != nil || v < 1 {
			return opts, repos.PageFilter{}, errBadPage
		}
		opts.NumItems = v
	}
	filter := repos.PageFilter{}
	if teamID := c.Query("teamId"); teamID != "" {
		if _, ok := validate.ID(teamID); !ok {
			return opts, filter, errBadPage
		}
		filter.TeamID = &teamID
	}
	if from := c.Query("dateFrom"); from != "" {
		v, err := strconv.ParseInt(from, 10, 64)
		if err != nil {
			return opts, filter, errBadPage
		}
		filter.DateFrom = &v
	}
	if to := c.Query("dateTo"); to != "" {
		v, err := strconv.ParseInt(to, 10, 64)
		if err != nil {
			return opts, filter, errBadPage
		}
		filter.DateTo = &v
	}
	return opts, filter, nil
}

var errBadPage = fiber.NewError(fiber.StatusBadRequest, "ungültige Paginierung")

// GET /api/v1/admin/purchases/page: cursor-paginated, full documents.
func (h *PurchaseHandler) ListPaginated(c *fiber.Ctx) error {
	opts, filter, err := pageArgs(c)
	if err != nil {
		return badRequest(c, "ungültige Paginierung")
	}
	page, err := h.Purchases.GetPaginated(opts, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// GET /api/v1/admin/purchases/page/list: slim rows without items.
func (h *PurchaseHandler) ListPaginatedSlim(c *fiber.Ctx) error {
	opts, filter, err := pageArgs(c)
	if err != nil {
		return badRequest(c, "ungültige Paginierung")
	}
	page, err := h.Purchases.GetPaginatedList(opts, filter)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(page)
}

// GET /api/v1/purchases/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	p, err := h.Purchases.GetByID(id)
	if err != nil {
		return fail(c, err)
	}
	if p == nil {
		return fail(c, services.ErrPurchaseNotFound)
	}
	return c.JSON(p)
}

// DELETE /api/v1/purchases/:id?isAdmin=true: admin mode bypasses the
// 5-minute window; the flag is caller-asserted.
func (h *PurchaseHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "ungültige ID")
	}
	isAdmin := c.Query("isAdmin") == "true"
	if err := h.Purchases.Remove(id, isAdmin); err != nil {
		applog.Security(c, "purchase.delete.denied", map[string]any{"purchase_id": id, "error": err.Error()})
		return fail(c, err)
	}
	applog.Audit(c, "purchase.delete", map[string]any{"purchase_id": id, "is_admin": isAdmin})
	return c.SendStatus(fiber.StatusNoContent)
}
