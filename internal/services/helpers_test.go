package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"

	"teamkasse/internal/events"
	"teamkasse/internal/repos"
	"teamkasse/internal/services"
)

// env wires every service against one in-memory store, the same way the
// server does at startup.
type env struct {
	db        *sqlx.DB
	bus       *events.Bus
	teams     *services.TeamService
	catalog   *services.CatalogService
	purchases *services.PurchaseService
	settings  *services.SettingsService

	teamRepo     *repos.TeamRepo
	purchaseRepo *repos.PurchaseRepo
	prodRepo     *repos.ProductRepo
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	bus := events.NewBus()
	teamRepo := repos.NewTeamRepo(db)
	catRepo := repos.NewCategoryRepo(db)
	prodRepo := repos.NewProductRepo(db)
	purchaseRepo := repos.NewPurchaseRepo(db)
	settingsRepo := repos.NewSettingsRepo(db)

	settingsSvc := services.NewSettingsService(settingsRepo, bus)
	return &env{
		db:           db,
		bus:          bus,
		teams:        services.NewTeamService(teamRepo, bus),
		catalog:      services.NewCatalogService(catRepo, prodRepo, settingsSvc, bus),
		purchases:    services.NewPurchaseService(purchaseRepo, bus),
		settings:     settingsSvc,
		teamRepo:     teamRepo,
		purchaseRepo: purchaseRepo,
		prodRepo:     prodRepo,
	}
}

func (e *env) mustCategory(t *testing.T, name string) string {
	t.Helper()
	id, err := e.catalog.CreateCategory(name, nil, nil)
	if err != nil {
		t.Fatalf("create category %s: %v", name, err)
	}
	return id
}

func (e *env) mustProduct(t *testing.T, categoryID, name string, priceA, priceB int64) string {
	t.Helper()
	id, err := e.catalog.CreateProduct(services.NewProduct{
		CategoryID: categoryID,
		Name:       name,
		PriceA:     priceA,
		PriceB:     priceB,
	})
	if err != nil {
		t.Fatalf("create product %s: %v", name, err)
	}
	return id
}

func (e *env) mustTeam(t *testing.T, name, slug string) string {
	t.Helper()
	id, err := e.teams.Create(name, slug)
	if err != nil {
		t.Fatalf("create team %s: %v", slug, err)
	}
	return id
}
