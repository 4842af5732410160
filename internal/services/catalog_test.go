package services_test

import (
	"errors"
	"testing"

	"teamkasse/internal/domain"
	"teamkasse/internal/services"
)

func TestCreateCategoryAppendsOrder(t *testing.T) {
	e := newEnv(t)

	e.mustCategory(t, "Getränke")
	e.mustCategory(t, "Snacks")

	cats, err := e.catalog.ListCategories()
	if err != nil {
		t.Fatal(err)
	}
	if len(cats) != 2 {
		t.Fatalf("want 2 categories, got %d", len(cats))
	}
	if cats[0].Order != 0 || cats[1].Order != 1 {
		t.Fatalf("want orders 0,1 got %d,%d", cats[0].Order, cats[1].Order)
	}
	if cats[0].Name != "Getränke" {
		t.Fatalf("order should follow creation, got %q first", cats[0].Name)
	}
}

func TestReorderCategoriesIsDense(t *testing.T) {
	e := newEnv(t)

	a := e.mustCategory(t, "A")
	b := e.mustCategory(t, "B")
	c := e.mustCategory(t, "C")

	if err := e.catalog.ReorderCategories([]string{c, a, b}); err != nil {
		t.Fatal(err)
	}
	cats, err := e.catalog.ListCategories()
	if err != nil {
		t.Fatal(err)
	}
	names := []string{cats[0].Name, cats[1].Name, cats[2].Name}
	if names[0] != "C" || names[1] != "A" || names[2] != "B" {
		t.Fatalf("bad order after reorder: %v", names)
	}
	for i, cat := range cats {
		if cat.Order != i {
			t.Fatalf("orders should be dense 0..n-1, got %d at %d", cat.Order, i)
		}
	}
}

func TestBulkActivateCategories(t *testing.T) {
	e := newEnv(t)

	a := e.mustCategory(t, "A")
	b := e.mustCategory(t, "B")

	if err := e.catalog.SetCategoriesActive([]string{a, b}, false); err != nil {
		t.Fatal(err)
	}
	visible, err := e.catalog.ListCategories()
	if err != nil {
		t.Fatal(err)
	}
	if len(visible) != 0 {
		t.Fatalf("all categories deactivated, want empty listing, got %d", len(visible))
	}

	// no-op on empty id list
	if err := e.catalog.SetCategoriesActive(nil, true); err != nil {
		t.Fatal(err)
	}
}

func TestNonEmptyCategoriesNeedLiveProduct(t *testing.T) {
	e := newEnv(t)

	drinks := e.mustCategory(t, "Getränke")
	e.mustCategory(t, "Leer")
	pid := e.mustProduct(t, drinks, "Cola", 150, 200)

	nonEmpty, err := e.catalog.ListNonEmptyCategories()
	if err != nil {
		t.Fatal(err)
	}
	if len(nonEmpty) != 1 || nonEmpty[0].ID != drinks {
		t.Fatalf("want only %s, got %+v", drinks, nonEmpty)
	}

	// removing the last product empties the category again
	if err := e.catalog.RemoveProduct(pid); err != nil {
		t.Fatal(err)
	}
	nonEmpty, err = e.catalog.ListNonEmptyCategories()
	if err != nil {
		t.Fatal(err)
	}
	if len(nonEmpty) != 0 {
		t.Fatalf("want no non-empty categories, got %d", len(nonEmpty))
	}
}

func TestPriceFollowsActiveTemplate(t *testing.T) {
	e := newEnv(t)

	drinks := e.mustCategory(t, "Getränke")
	e.mustProduct(t, drinks, "Cola", 150, 200)

	list, err := e.catalog.ProductsByCategory(drinks)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Price != 150 {
		t.Fatalf("template A should price Cola at 150, got %+v", list)
	}

	if err := e.settings.SetActiveTemplate("B"); err != nil {
		t.Fatal(err)
	}
	list, err = e.catalog.ProductsByCategory(drinks)
	if err != nil {
		t.Fatal(err)
	}
	if list[0].Price != 200 {
		t.Fatalf("template B should price Cola at 200, got %d", list[0].Price)
	}
}

func TestUnsetPriceResolvesToZero(t *testing.T) {
	e := newEnv(t)

	drinks := e.mustCategory(t, "Getränke")
	priceA := int64(120)
	// B price never set; no fallback to the A price
	err := e.prodRepo.Insert(domain.Product{
		ID:         "p-water",
		CategoryID: drinks,
		Name:       "Wasser",
		Active:     true,
		PriceA:     &priceA,
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := e.settings.SetActiveTemplate("B"); err != nil {
		t.Fatal(err)
	}
	list, err := e.catalog.ProductsByCategory(drinks)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Price != 0 {
		t.Fatalf("unset template price should read 0, got %+v", list)
	}
}

func TestUpdatePriceTouchesOnlyOneTemplate(t *testing.T) {
	e := newEnv(t)

	drinks := e.mustCategory(t, "Getränke")
	pid := e.mustProduct(t, drinks, "Cola", 150, 200)

	if err := e.catalog.UpdateProductPrice(pid, 180, "A"); err != nil {
		t.Fatal(err)
	}
	p, err := e.catalog.GetProduct(pid)
	if err != nil {
		t.Fatal(err)
	}
	if p.PriceA == nil || *p.PriceA != 180 {
		t.Fatalf("want priceA=180, got %+v", p.PriceA)
	}
	if p.PriceB == nil || *p.PriceB != 200 {
		t.Fatalf("priceB must stay 200, got %+v", p.PriceB)
	}

	if err := e.catalog.UpdateProductPrice(pid, -1, "A"); !errors.Is(err, services.ErrNegativePrice) {
		t.Fatalf("want ErrNegativePrice, got %v", err)
	}
}

func TestRemovedProductHiddenEverywhere(t *testing.T) {
	e := newEnv(t)

	drinks := e.mustCategory(t, "Getränke")
	pid := e.mustProduct(t, drinks, "Cola", 150, 200)

	if err := e.catalog.RemoveProduct(pid); err != nil {
		t.Fatal(err)
	}

	list, err := e.catalog.ProductsByCategory(drinks)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("deleted product must not be listed, got %+v", list)
	}

	// admin listing still includes it, flagged as deleted
	all, err := e.catalog.ListProductsForAdmin()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].DeletedAt == nil {
		t.Fatalf("admin listing should keep the row with deletedAt set, got %+v", all)
	}
}

func TestCreateProductValidation(t *testing.T) {
	e := newEnv(t)
	drinks := e.mustCategory(t, "Getränke")

	if _, err := e.catalog.CreateProduct(services.NewProduct{CategoryID: drinks}); !errors.Is(err, services.ErrProductInvalid) {
		t.Fatalf("want ErrProductInvalid, got %v", err)
	}
	if _, err := e.catalog.CreateProduct(services.NewProduct{CategoryID: drinks, Name: "X", PriceA: -5}); !errors.Is(err, services.ErrNegativePrice) {
		t.Fatalf("want ErrNegativePrice, got %v", err)
	}
}
