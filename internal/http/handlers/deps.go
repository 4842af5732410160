package handlers

import (
	"github.com/jmoiron/sqlx"

	"teamkasse/internal/config"
	"teamkasse/internal/events"
	"teamkasse/internal/repos"
	"teamkasse/internal/services"
)

type Deps struct {
	TeamHandler     *TeamHandler
	CategoryHandler *CategoryHandler
	ProductHandler  *ProductHandler
	PurchaseHandler *PurchaseHandler
	SettingsHandler *SettingsHandler
	CartHandler     *CartHandler
	AuthHandler     *AuthHandler
	EventsHandler   *EventsHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, bus *events.Bus) *Deps {
	teamRepo := repos.NewTeamRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	purchRepo := repos.NewPurchaseRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	settingsSvc := services.NewSettingsService(settingsRepo, bus)
	catalogSvc := services.NewCatalogService(catRepo, prodRepo, settingsSvc, bus)
	purchaseSvc := services.NewPurchaseService(purchRepo, bus)
	teamSvc := services.NewTeamService(teamRepo, bus)
	cartSvc := services.NewCartService()
	authSvc := &services.AuthService{Password: cfg.AdminPassword, PasswordHash: cfg.AdminPasswordHash}

	return &Deps{
		TeamHandler:     &TeamHandler{Teams: teamSvc},
		CategoryHandler: &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:  &ProductHandler{Catalog: catalogSvc},
		PurchaseHandler: &PurchaseHandler{Purchases: purchaseSvc},
		SettingsHandler: &SettingsHandler{Settings: settingsSvc},
		CartHandler:     &CartHandler{Cart: cartSvc, Catalog: catalogSvc},
		AuthHandler:     &AuthHandler{Auth: authSvc},
		EventsHandler:   &EventsHandler{Bus: bus},
	}
}
