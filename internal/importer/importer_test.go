package importer

import "testing"

func TestEurosToCents(t *testing.T) {
	cases := []struct {
		euros float64
		cents int64
	}{
		{0, 0},
		{1.5, 150},
		{2.0, 200},
		{0.01, 1},
		// binary float artifacts must round cleanly
		{19.99, 1999},
		{26.65, 2665},
	}
	for _, c := range cases {
		if got := EurosToCents(c.euros); got != c.cents {
			t.Fatalf("%v euros: want %d cents, got %d", c.euros, c.cents, got)
		}
	}
}

func TestProductName(t *testing.T) {
	cases := []struct {
		name, name2, want string
	}{
		{"Cola", "0,5l", "Cola 0,5l"},
		{"Brezel", "", "Brezel"},
		{"", "Spezial", "Spezial"},
	}
	for _, c := range cases {
		if got := ProductName(c.name, c.name2); got != c.want {
			t.Fatalf("ProductName(%q, %q) = %q, want %q", c.name, c.name2, got, c.want)
		}
	}
}
