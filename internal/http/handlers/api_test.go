package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"teamkasse/internal/config"
	"teamkasse/internal/domain"
	"teamkasse/internal/events"
	"teamkasse/internal/http/handlers"
	"teamkasse/internal/repos"
)

func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	cfg := config.Config{AdminPassword: "geheim"}
	deps := handlers.NewDeps(db, cfg, events.NewBus())
	app := fiber.New()
	handlers.Register(app, deps)
	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return out
}

func TestTeamLifecycleOverAPI(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/admin/teams", fiber.Map{"name": "Team Alpha", "slug": "alpha"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: want 201, got %d", resp.StatusCode)
	}
	created := decode[map[string]string](t, resp)
	id := created["id"]
	if id == "" {
		t.Fatal("create returned no id")
	}

	// duplicate slug refused with the German message
	resp = doJSON(t, app, "POST", "/api/v1/admin/teams", fiber.Map{"name": "Nochmal", "slug": "alpha"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate: want 400, got %d", resp.StatusCode)
	}
	errBody := decode[map[string]string](t, resp)
	if errBody["error"] != "Team mit diesem Slug existiert bereits" {
		t.Fatalf("duplicate message: %q", errBody["error"])
	}

	resp = doJSON(t, app, "GET", "/api/v1/teams/slug/alpha", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get by slug: %d", resp.StatusCode)
	}
	team := decode[domain.Team](t, resp)
	if team.ID != id || team.Name != "Team Alpha" {
		t.Fatalf("get by slug body: %+v", team)
	}

	resp = doJSON(t, app, "DELETE", "/api/v1/admin/teams/"+id, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete: %d", resp.StatusCode)
	}

	// deleted slug resolves to JSON null
	resp = doJSON(t, app, "GET", "/api/v1/teams/slug/alpha", nil)
	buf, _ := io.ReadAll(resp.Body)
	if string(bytes.TrimSpace(buf)) != "null" {
		t.Fatalf("deleted slug should read null, got %s", buf)
	}
}

func TestTeamCreateDerivesSlugFromName(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/admin/teams", fiber.Map{"name": "Blaue Baeren"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create: %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/v1/teams", nil)
	teams := decode[[]domain.Team](t, resp)
	if len(teams) != 1 || teams[0].Slug != "blaue-baeren" {
		t.Fatalf("derived slug: %+v", teams)
	}
}

func TestCatalogAndCheckoutOverAPI(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/admin/teams", fiber.Map{"name": "Alpha", "slug": "alpha"})
	teamID := decode[map[string]string](t, resp)["id"]

	resp = doJSON(t, app, "POST", "/api/v1/admin/categories", fiber.Map{"name": "Getränke"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create category: %d", resp.StatusCode)
	}
	catID := decode[map[string]string](t, resp)["id"]

	resp = doJSON(t, app, "POST", "/api/v1/admin/products", fiber.Map{
		"categoryId": catID, "name": "Cola", "priceA": 150, "priceB": 200,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create product: %d", resp.StatusCode)
	}

	// switch to template B, the public price must follow
	resp = doJSON(t, app, "POST", "/api/v1/admin/settings/template/active", fiber.Map{"template": "B"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("set template: %d", resp.StatusCode)
	}
	resp = doJSON(t, app, "GET", "/api/v1/products?categoryId="+catID, nil)
	products := decode[[]domain.PricedProduct](t, resp)
	if len(products) != 1 || products[0].Price != 200 {
		t.Fatalf("template B price: %+v", products)
	}

	resp = doJSON(t, app, "POST", "/api/v1/purchases", fiber.Map{
		"teamId": teamID,
		"items": []fiber.Map{
			{"productId": products[0].ID, "name": "Cola", "price": 200, "quantity": 2},
		},
		"totalAmount": 400,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("checkout: %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/v1/teams/"+teamID+"/purchases", nil)
	purchases := decode[[]domain.Purchase](t, resp)
	if len(purchases) != 1 || purchases[0].TotalAmount != 400 {
		t.Fatalf("team purchases: %+v", purchases)
	}
}

func TestPurchaseDeleteWindowOverAPI(t *testing.T) {
	app, db := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/admin/teams", fiber.Map{"name": "Alpha", "slug": "alpha"})
	teamID := decode[map[string]string](t, resp)["id"]

	// seed a stale purchase directly; the API has no way to backdate
	purchRepo := repos.NewPurchaseRepo(db)
	err := purchRepo.Insert(domain.Purchase{
		ID:          "stale",
		TeamID:      teamID,
		Items:       []domain.PurchaseItem{{ProductID: "p1", Name: "Cola", Price: 150, Quantity: 1}},
		TotalAmount: 150,
		CreatedAt:   time.Now().Add(-time.Hour).UnixMilli(),
	})
	if err != nil {
		t.Fatal(err)
	}

	resp = doJSON(t, app, "DELETE", "/api/v1/purchases/stale", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("stale delete: want 400, got %d", resp.StatusCode)
	}
	errBody := decode[map[string]string](t, resp)
	if errBody["error"] != "Buchung kann nur innerhalb von 5 Minuten gelöscht werden" {
		t.Fatalf("window message: %q", errBody["error"])
	}

	resp = doJSON(t, app, "DELETE", "/api/v1/purchases/stale?isAdmin=true", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("admin delete: %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/v1/purchases/stale", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("after delete: want 404, got %d", resp.StatusCode)
	}
}

func TestAuthVerifyOverAPI(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/auth/verify", fiber.Map{"password": "geheim"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("verify: %d", resp.StatusCode)
	}
	if body := decode[map[string]bool](t, resp); !body["ok"] {
		t.Fatal("correct password should verify")
	}

	resp = doJSON(t, app, "POST", "/api/v1/auth/verify", fiber.Map{"password": "falsch"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("wrong password is not an http error: %d", resp.StatusCode)
	}
	if body := decode[map[string]bool](t, resp); body["ok"] {
		t.Fatal("wrong password must not verify")
	}
}

func TestCartFlowOverAPI(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, "POST", "/api/v1/admin/categories", fiber.Map{"name": "Getränke"})
	catID := decode[map[string]string](t, resp)["id"]
	resp = doJSON(t, app, "POST", "/api/v1/admin/products", fiber.Map{
		"categoryId": catID, "name": "Cola", "priceA": 150, "priceB": 200,
	})
	prodID := decode[map[string]string](t, resp)["id"]

	// first request mints the session cookie
	req := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader(mustJSON(t, fiber.Map{
		"productId": prodID, "quantity": 2,
	})))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("cart add: %d", resp.StatusCode)
	}
	var sid string
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			sid = c.Value
		}
	}
	if sid == "" {
		t.Fatal("no sid cookie issued")
	}

	req = httptest.NewRequest("GET", "/api/v1/cart", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: sid})
	resp, err = app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	var view struct {
		Items []domain.PurchaseItem `json:"items"`
		Total int64                 `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatal(err)
	}
	// price snapshot follows the active template (A)
	if len(view.Items) != 1 || view.Items[0].Price != 150 || view.Total != 300 {
		t.Fatalf("cart view: %+v", view)
	}
}

func TestBadInputsAreRejected(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []struct {
		method, path string
		body         any
	}{
		{"POST", "/api/v1/admin/teams", fiber.Map{"name": "X", "slug": "Bad Slug!"}},
		{"GET", "/api/v1/teams/slug/NOT--a--slug!", nil},
		{"GET", "/api/v1/admin/purchases/page?numItems=zero", nil},
		{"GET", "/api/v1/admin/purchases/page?teamId=sp%20ace", nil},
		{"POST", "/api/v1/purchases", fiber.Map{"teamId": "t", "items": []fiber.Map{{"productId": "p", "price": -1, "quantity": 1}}}},
	}
	for _, tc := range cases {
		resp := doJSON(t, app, tc.method, tc.path, tc.body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("%s %s: want 400, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}
}

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	buf, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}
