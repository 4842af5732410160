package services

import (
	"sync"

	"teamkasse/internal/domain"
)

// CartService keeps one in-memory cart per browser session. Carts are
// scoped to a single session cookie and vanish on restart; the durable
// record is the purchase created at checkout.
type CartService struct {
	mu    sync.Mutex
	carts map[string][]domain.PurchaseItem
}

func NewCartService() *CartService {
	return &CartService{carts: map[string][]domain.PurchaseItem{}}
}

// normalizeByProduct merges duplicate lines so each productId appears at
// most once, with quantities summed.
func normalizeByProduct(items []domain.PurchaseItem) []domain.PurchaseItem {
	out := make([]domain.PurchaseItem, 0, len(items))
	index := map[string]int{}
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			out[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(out)
		out = append(out, item)
	}
	return out
}

// Add puts an item into the session cart, merging with an existing line
// for the same product.
func (s *CartService) Add(sessionID string, item domain.PurchaseItem) {
	if item.Quantity < 1 {
		item.Quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionID] = normalizeByProduct(append(s.carts[sessionID], item))
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(sessionID, productID string, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.carts[sessionID]
	out := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
			continue
		}
		if quantity > 0 {
			item.Quantity = quantity
			out = append(out, item)
		}
	}
	s.carts[sessionID] = out
}

func (s *CartService) Remove(sessionID, productID string) {
	s.SetQuantity(sessionID, productID, 0)
}

func (s *CartService) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

type CartView struct {
	Items     []domain.PurchaseItem `json:"items"`
	Total     int64                 `json:"total"`
	ItemCount int64                 `json:"itemCount"`
}

func (s *CartService) View(sessionID string) CartView {
	s.mu.Lock()
	items := s.carts[sessionID]
	view := CartView{Items: make([]domain.PurchaseItem, len(items))}
	copy(view.Items, items)
	s.mu.Unlock()

	for _, item := range view.Items {
		view.Total += item.Price * item.Quantity
		view.ItemCount += item.Quantity
	}
	return view
}
