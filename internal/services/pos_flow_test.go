package services_test

import (
	"testing"

	"teamkasse/internal/domain"
	"teamkasse/internal/services"
)

// Full counter flow: set up the catalog, switch the price template,
// check out a cart and read the booking back.
func TestPosFlowCheckout(t *testing.T) {
	e := newEnv(t)

	team := e.mustTeam(t, "Team Alpha", "alpha")
	drinks := e.mustCategory(t, "Getränke")
	cola := e.mustProduct(t, drinks, "Cola", 150, 200)

	if err := e.settings.SetActiveTemplate("B"); err != nil {
		t.Fatal(err)
	}

	list, err := e.catalog.ProductsByCategory(drinks)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Price != 200 {
		t.Fatalf("template B price: %+v", list)
	}

	cart := services.NewCartService()
	sid := "kasse-1"
	cart.Add(sid, domain.PurchaseItem{
		ProductID: cola,
		Name:      list[0].Name,
		Price:     list[0].Price,
		Quantity:  1,
	})
	cart.Add(sid, domain.PurchaseItem{
		ProductID: cola,
		Name:      list[0].Name,
		Price:     list[0].Price,
		Quantity:  1,
	})

	view := cart.View(sid)
	if len(view.Items) != 1 || view.Items[0].Quantity != 2 || view.Total != 400 {
		t.Fatalf("cart before checkout: %+v", view)
	}

	id, err := e.purchases.Create(services.NewPurchase{
		TeamID:      team,
		Items:       view.Items,
		TotalAmount: view.Total,
	})
	if err != nil {
		t.Fatal(err)
	}
	cart.Clear(sid)

	bookings, err := e.purchases.GetByTeam(team)
	if err != nil {
		t.Fatal(err)
	}
	if len(bookings) != 1 || bookings[0].ID != id {
		t.Fatalf("bookings after checkout: %+v", bookings)
	}
	if bookings[0].TotalAmount != 400 || services.ItemsSum(bookings[0].Items) != 400 {
		t.Fatalf("booking totals: %+v", bookings[0])
	}

	// the booking is immutable against later catalog edits
	if err := e.catalog.UpdateProductPrice(cola, 999, "B"); err != nil {
		t.Fatal(err)
	}
	got, err := e.purchases.GetByID(id)
	if err != nil {
		t.Fatal(err)
	}
	if got.Items[0].Price != 200 {
		t.Fatalf("snapshot price changed: %+v", got.Items[0])
	}
}
