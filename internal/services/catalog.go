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
	ErrCategoryInvalid = errors.New("Kategoriename darf nicht leer sein")
	ErrProductInvalid  = errors.New("Produktname darf nicht leer sein")
	ErrNegativePrice   = errors.New("Preis darf nicht negativ sein")
)

// CatalogService covers categories and products, including per-template
// price resolution for the public views.
type CatalogService struct {
	Cats     *repos.CategoryRepo
	Prods    *repos.ProductRepo
	Settings *SettingsService
	Bus      *events.Bus
}

func NewCatalogService(cats *repos.CategoryRepo, prods *repos.ProductRepo, settings *SettingsService, bus *events.Bus) *CatalogService {
	return &CatalogService{Cats: cats, Prods: prods, Settings: settings, Bus: bus}
}

// ---------- Categories ----------

func (s *CatalogService) ListCategories() ([]domain.Category, error) {
	return s.Cats.ListVisible()
}

func (s *CatalogService) ListNonEmptyCategories() ([]domain.Category, error) {
	return s.Cats.ListNonEmpty()
}

func (s *CatalogService) ListCategoriesForAdmin() ([]repos.CategoryWithCount, error) {
	return s.Cats.ListAllWithCounts()
}

// CreateCategory appends at the end of the visible ordering when no
// explicit order is given.
func (s *CatalogService) CreateCategory(name string, order *int, active *bool) (string, error) {
	if name == "" {
		return "", ErrCategoryInvalid
	}
	ord := 0
	if order != nil {
		ord = *order
	} else {
		next, err := s.Cats.NextOrder()
		if err != nil {
			return "", err
		}
		ord = next
	}
	c := domain.Category{
		ID:        uuid.NewString(),
		Name:      name,
		Order:     ord,
		Active:    active == nil || *active,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := s.Cats.Insert(c); err != nil {
		return "", err
	}
	s.Bus.Publish(events.TopicCategories)
	return c.ID, nil
}

func (s *CatalogService) UpdateCategory(id string, patch repos.CategoryPatch) error {
	if err := s.Cats.Update(id, patch); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicCategories)
	return nil
}

// ReorderCategories assigns ord 0..n-1 following the given sequence.
func (s *CatalogService) ReorderCategories(orderedIDs []string) error {
	if err := s.Cats.Reorder(orderedIDs); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicCategories)
	return nil
}

func (s *CatalogService) SetCategoriesActive(ids []string, active bool) error {
	if err := s.Cats.SetManyActive(ids, active); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicCategories)
	return nil
}

func (s *CatalogService) RemoveCategory(id string) error {
	if err := s.Cats.SoftDelete(id, time.Now().UnixMilli()); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicCategories)
	return nil
}

// ---------- Products ----------

// effectivePrice resolves the live price of a product under the given
// template, 0 when the matching price field was never set.
func effectivePrice(p domain.Product, template string) int64 {
	var v *int64
	if template == domain.TemplateB {
		v = p.PriceB
	} else {
		v = p.PriceA
	}
	if v == nil {
		return 0
	}
	return *v
}

func (s *CatalogService) withPrices(list []domain.Product) ([]domain.PricedProduct, error) {
	template, err := s.Settings.ActiveTemplate()
	if err != nil {
		return nil, err
	}
	out := make([]domain.PricedProduct, 0, len(list))
	for _, p := range list {
		out = append(out, domain.PricedProduct{Product: p, Price: effectivePrice(p, template)})
	}
	return out, nil
}

func (s *CatalogService) ProductsByCategory(categoryID string) ([]domain.PricedProduct, error) {
	list, err := s.Prods.ListActiveByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	return s.withPrices(list)
}

func (s *CatalogService) ListAllActiveProducts() ([]domain.PricedProduct, error) {
	list, err := s.Prods.ListAllActive()
	if err != nil {
		return nil, err
	}
	return s.withPrices(list)
}

func (s *CatalogService) ListProductsForAdmin() ([]domain.Product, error) {
	return s.Prods.ListAll()
}

func (s *CatalogService) GetProduct(id string) (*domain.Product, error) {
	return s.Prods.Get(id)
}

type NewProduct struct {
	CategoryID  string
	Name        string
	Description *string
	ImageURL    *string
	Active      *bool
	IsFavorite  *bool
	PriceA      int64
	PriceB      int64
}

func (s *CatalogService) CreateProduct(in NewProduct) (string, error) {
	if in.Name == "" {
		return "", ErrProductInvalid
	}
	if in.PriceA < 0 || in.PriceB < 0 {
		return "", ErrNegativePrice
	}
	now := time.Now().UnixMilli()
	p := domain.Product{
		ID:          uuid.NewString(),
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Active:      in.Active == nil || *in.Active,
		IsFavorite:  in.IsFavorite != nil && *in.IsFavorite,
		PriceA:      &in.PriceA,
		PriceB:      &in.PriceB,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Prods.Insert(p); err != nil {
		return "", err
	}
	s.Bus.Publish(events.TopicProducts)
	return p.ID, nil
}

func (s *CatalogService) UpdateProduct(id string, patch repos.ProductPatch) error {
	if (patch.PriceA != nil && *patch.PriceA < 0) || (patch.PriceB != nil && *patch.PriceB < 0) {
		return ErrNegativePrice
	}
	if err := s.Prods.Update(id, patch, time.Now().UnixMilli()); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicProducts)
	return nil
}

// UpdateProductPrice patches exactly one of the two template prices.
func (s *CatalogService) UpdateProductPrice(id string, price int64, template string) error {
	if price < 0 {
		return ErrNegativePrice
	}
	patch := repos.ProductPatch{}
	if template == domain.TemplateB {
		patch.PriceB = &price
	} else {
		patch.PriceA = &price
	}
	if err := s.Prods.Update(id, patch, time.Now().UnixMilli()); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicProducts)
	return nil
}

func (s *CatalogService) SetProductsActive(ids []string, active bool) error {
	if err := s.Prods.SetManyActive(ids, active, time.Now().UnixMilli()); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicProducts)
	return nil
}

func (s *CatalogService) RemoveProduct(id string) error {
	if err := s.Prods.SoftDelete(id, time.Now().UnixMilli()); err != nil {
		return err
	}
	s.Bus.Publish(events.TopicProducts)
	return nil
}
