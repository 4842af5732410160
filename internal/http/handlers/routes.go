package handlers

import "github.com/gofiber/fiber/v2"

// Register mounts the full query/mutation surface under /api/v1.
// Admin variants live under /api/v1/admin; purchase deletion trusts the
// caller-asserted isAdmin flag like the rest of the admin surface.
func Register(app *fiber.App, deps *Deps) {
	api := app.Group("/api/v1")

	// Teams
	api.Get("/teams", deps.TeamHandler.List)
	api.Get("/teams/slug/:slug", deps.TeamHandler.GetBySlug)
	api.Get("/admin/teams", deps.TeamHandler.ListForAdmin)
	api.Post("/admin/teams", deps.TeamHandler.Create)
	api.Patch("/admin/teams/:id", deps.TeamHandler.Update)
	api.Delete("/admin/teams/:id", deps.TeamHandler.Remove)

	// Categories
	api.Get("/categories", deps.CategoryHandler.List)
	api.Get("/categories/nonempty", deps.CategoryHandler.ListNonEmpty)
	api.Get("/admin/categories", deps.CategoryHandler.ListForAdmin)
	api.Post("/admin/categories", deps.CategoryHandler.Create)
	api.Post("/admin/categories/reorder", deps.CategoryHandler.Reorder)
	api.Post("/admin/categories/activate", deps.CategoryHandler.SetManyActive)
	api.Patch("/admin/categories/:id", deps.CategoryHandler.Update)
	api.Delete("/admin/categories/:id", deps.CategoryHandler.Remove)

	// Products
	api.Get("/products", deps.ProductHandler.ListActive)
	api.Get("/admin/products", deps.ProductHandler.ListForAdmin)
	api.Post("/admin/products", deps.ProductHandler.Create)
	api.Post("/admin/products/activate", deps.ProductHandler.SetManyActive)
	api.Post("/admin/products/:id/price", deps.ProductHandler.UpdatePrice)
	api.Patch("/admin/products/:id", deps.ProductHandler.Update)
	api.Delete("/admin/products/:id", deps.ProductHandler.Remove)

	// Purchases
	api.Post("/purchases", deps.PurchaseHandler.Create)
	api.Get("/purchases/:id", deps.PurchaseHandler.GetByID)
	api.Delete("/purchases/:id", deps.PurchaseHandler.Remove)
	api.Get("/teams/:id/purchases", deps.PurchaseHandler.ListByTeam)
	api.Get("/admin/purchases", deps.PurchaseHandler.ListAll)
	api.Get("/admin/purchases/today", deps.PurchaseHandler.ListToday)
	api.Get("/admin/purchases/page", deps.PurchaseHandler.ListPaginated)
	api.Get("/admin/purchases/page/list", deps.PurchaseHandler.ListPaginatedSlim)

	// Settings
	api.Get("/settings/template/active", deps.SettingsHandler.GetActiveTemplate)
	api.Get("/settings/template/names", deps.SettingsHandler.GetTemplateNames)
	api.Get("/settings/:key", deps.SettingsHandler.Get)
	api.Post("/admin/settings/template/active", deps.SettingsHandler.SetActiveTemplate)
	api.Post("/admin/settings/template/names", deps.SettingsHandler.SetTemplateNames)
	api.Put("/admin/settings/:key", deps.SettingsHandler.Set)

	// Cart
	api.Get("/cart", deps.CartHandler.View)
	api.Post("/cart/items", deps.CartHandler.Add)
	api.Patch("/cart/items/:productId", deps.CartHandler.SetQuantity)
	api.Delete("/cart", deps.CartHandler.Clear)

	// Auth & change stream
	api.Post("/auth/verify", deps.AuthHandler.Verify)
	api.Get("/events", deps.EventsHandler.Stream)
}
