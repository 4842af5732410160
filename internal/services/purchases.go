package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"teamkasse/internal/domain"
	"teamkasse/internal/events"
	"teamkasse/internal/repos"
)

var (
	ErrCartEmpty        = errors.New("Warenkorb ist leer")
	ErrPurchaseNotFound = errors.New("Buchung nicht gefunden")
	ErrDeleteWindow     = errors.New("Buchung kann nur innerhalb von 5 Minuten gelöscht werden")
)

// DeleteWindow is how long a purchase stays deletable without admin rights.
const DeleteWindow = 5 * time.Minute

// PurchaseService is the append-only ledger. Records are immutable except
// for removal, which is a hard delete.
type PurchaseService struct {
	Purchases *repos.PurchaseRepo
	Bus       *events.Bus
}

func NewPurchaseService(purchases *repos.PurchaseRepo, bus *events.Bus) *PurchaseService {
	return &PurchaseService{Purchases: purchases, Bus: bus}
}

type NewPurchase struct {
	TeamID      string
	Items       []domain.PurchaseItem
	TotalAmount int64
	CreatedBy   *string
}

// Create appends a purchase from a cart snapshot. The total is caller-
// supplied and stored as-is; ItemsSum exists so callers can audit-log a
// mismatch without rejecting it.
func (s *PurchaseService) Create(in NewPurchase) (string, error) {
	if len(in.Items) == 0 {
		return "", ErrCartEmpty
	}
	p := domain.Purchase{
		ID:          uuid.NewString(),
		TeamID:      in.TeamID,
		Items:       in.Items,
		TotalAmount: in.TotalAmount,
		CreatedAt:   time.Now().UnixMilli(),
		CreatedBy:   in.CreatedBy,
	}
	if err := s.Purchases.Insert(p); err != nil {
		return "", err
	}
	s.Bus.Publish(events.TopicPurchases)
	return p.ID, nil
}

// ItemsSum computes Σ price*quantity over a cart snapshot.
func ItemsSum(items []domain.PurchaseItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Price * it.Quantity
	}
	return sum
}

func (s *PurchaseService) GetByID(id string) (*domain.Purchase, error) {
	return s.Purchases.Get(id)
}

func (s *PurchaseService) GetByTeam(teamID string) ([]domain.Purchase, error) {
	return s.Purchases.ListByTeam(teamID, 0)
}

// GetRecentByTeam caps the listing at limit, defaulting to 20.
func (s *PurchaseService) GetRecentByTeam(teamID string, limit int) ([]domain.Purchase, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.Purchases.ListByTeam(teamID, limit)
}

func (s *PurchaseService) GetByTeamInRange(teamID string, startMs, endMs int64) ([]domain.Purchase, error) {
	return s.Purchases.ListByTeamInRange(teamID, startMs, endMs)
}

func (s *PurchaseService) GetAll() ([]domain.Purchase, error) {
	return s.Purchases.ListAll()
}

// GetToday lists purchases from local midnight through end of day.
func (s *PurchaseService) GetToday() ([]domain.Purchase, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startMs := start.UnixMilli()
	endMs := startMs + 24*time.Hour.Milliseconds() - 1
	return s.Purchases.ListInRange(startMs, endMs)
}

func (s *PurchaseService) GetPaginated(opts repos.PageOpts, filter repos.PageFilter) (repos.Page, error) {
	return s.Purchases.ListPaginated(opts, filter, false)
}

// GetPaginatedList is the slim projection (no items) for the admin table.
func (s *PurchaseService) GetPaginatedList(opts repos.PageOpts, filter repos.PageFilter) (repos.Page, error) {
	return s.Purchases.ListPaginated(opts, filter, true)
}

// Remove hard-deletes a purchase. Without admin rights the record must be
// younger than the 5-minute window.
func (s *PurchaseService) Remove(id string, isAdmin bool) error {
	p, err := s.Purchases.Get(id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPurchaseNotFound
	}
	if !isAdmin {
		age := time.Now().UnixMilli() - p.CreatedAt
		if age > DeleteWindow.Milliseconds() {
			return ErrDeleteWindow
		}
	}
	existed, err := s.Purchases.Delete(id)
	if err != nil {
		return err
	}
	if !existed {
		return ErrPurchaseNotFound
	}
	s.Bus.Publish(events.TopicPurchases)
	return nil
}
