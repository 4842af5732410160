package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"teamkasse/internal/domain"
	"teamkasse/internal/repos"
)

// One-shot import from the legacy Postgres schema (teams/products/bills)
// into the current store. Designed to be re-runnable: teams whose slug is
// already taken are reused instead of duplicated.

const pageSize = 1000

// FallbackProductName labels purchase lines whose legacy product row no
// longer exists.
const FallbackProductName = "Unbekanntes Produkt (Migration)"

type legacyTeam struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Name      string    `gorm:"column:name"`
	UUID      string    `gorm:"column:uuid"`
	ShortName string    `gorm:"column:shortName"`
	Visible   bool      `gorm:"column:visible"`
	Deleted   bool      `gorm:"column:deleted"`
}

func (legacyTeam) TableName() string { return "teams" }

type legacyProduct struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Price     float64   `gorm:"column:price"`
	Name      string    `gorm:"column:name"`
	Name2     string    `gorm:"column:name2"`
	Icon      string    `gorm:"column:icon"`
	Visible   bool      `gorm:"column:visible"`
	Deleted   bool      `gorm:"column:deleted"`
}

func (legacyProduct) TableName() string { return "products" }

type legacyBill struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	CreatedAt time.Time `gorm:"column:created_at"`
	Products  []byte    `gorm:"column:products"` // jsonb line array
	Team      string    `gorm:"column:team"`     // team uuid
	Sum       float64   `gorm:"column:sum"`
}

func (legacyBill) TableName() string { return "bills" }

type billLine struct {
	ID     int64   `json:"id"`
	Price  float64 `json:"price"`
	Amount int64   `json:"amount"`
}

// EurosToCents converts a legacy euro amount to integer cents.
func EurosToCents(euros float64) int64 {
	return int64(math.Round(euros * 100))
}

// ProductName joins the legacy two-part name into one.
func ProductName(name, name2 string) string {
	return strings.TrimSpace(name + " " + name2)
}

type Result struct {
	Categories      int
	Teams           int
	TeamsReused     int
	Products        int
	ProductsSkipped int
	Purchases       int
	BillsSkipped    int
}

type Importer struct {
	Legacy    *gorm.DB
	Teams     *repos.TeamRepo
	Cats      *repos.CategoryRepo
	Prods     *repos.ProductRepo
	Purchases *repos.PurchaseRepo
	Log       zerolog.Logger
}

func New(legacy *gorm.DB, teams *repos.TeamRepo, cats *repos.CategoryRepo, prods *repos.ProductRepo, purchases *repos.PurchaseRepo, log zerolog.Logger) *Importer {
	return &Importer{Legacy: legacy, Teams: teams, Cats: cats, Prods: prods, Purchases: purchases, Log: log}
}

// fetchAll reads a legacy table in id-ordered pages of pageSize rows.
func fetchAll[T any](ctx context.Context, db *gorm.DB) ([]T, error) {
	all := []T{}
	offset := 0
	for {
		page := []T{}
		if err := db.WithContext(ctx).Order("id").Limit(pageSize).Offset(offset).Find(&page).Error; err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
		offset += pageSize
	}
}

func (im *Importer) Run(ctx context.Context) (Result, error) {
	var res Result

	teams, err := fetchAll[legacyTeam](ctx, im.Legacy)
	if err != nil {
		return res, fmt.Errorf("load teams: %w", err)
	}
	products, err := fetchAll[legacyProduct](ctx, im.Legacy)
	if err != nil {
		return res, fmt.Errorf("load products: %w", err)
	}
	bills, err := fetchAll[legacyBill](ctx, im.Legacy)
	if err != nil {
		return res, fmt.Errorf("load bills: %w", err)
	}
	im.Log.Info().Int("teams", len(teams)).Int("products", len(products)).Int("bills", len(bills)).Msg("legacy data loaded")

	epoch := int64(0)

	// Categories come from the distinct product icons, in first-seen order.
	iconToCategory := map[string]string{}
	firstCategoryID := ""
	order := 0
	for _, p := range products {
		if p.Icon == "" {
			continue
		}
		if _, ok := iconToCategory[p.Icon]; ok {
			continue
		}
		order++
		c := domain.Category{
			ID:        uuid.NewString(),
			Name:      p.Icon,
			Order:     order,
			Active:    true,
			CreatedAt: epoch,
		}
		if err := im.Cats.Insert(c); err != nil {
			return res, fmt.Errorf("category %s: %w", p.Icon, err)
		}
		iconToCategory[p.Icon] = c.ID
		if firstCategoryID == "" {
			firstCategoryID = c.ID
		}
		res.Categories++
	}
	if firstCategoryID == "" {
		return res, fmt.Errorf("no categories derivable from legacy products")
	}

	// Teams. A slug already in use means the team was imported before;
	// reuse it so bills still find their target.
	uuidToTeam := map[string]string{}
	for _, t := range teams {
		taken, err := im.Teams.SlugTaken(t.ShortName, "")
		if err != nil {
			return res, fmt.Errorf("team %s: %w", t.ShortName, err)
		}
		if taken {
			existing, err := im.Teams.GetBySlug(t.ShortName)
			if err != nil {
				return res, fmt.Errorf("team %s: %w", t.ShortName, err)
			}
			if existing != nil {
				uuidToTeam[t.UUID] = existing.ID
				res.TeamsReused++
				im.Log.Warn().Str("slug", t.ShortName).Msg("team already present, reusing")
			}
			continue
		}
		nt := domain.Team{
			ID:        uuid.NewString(),
			Name:      t.Name,
			Slug:      t.ShortName,
			Active:    t.Visible,
			CreatedAt: t.CreatedAt.UnixMilli(),
		}
		if err := im.Teams.Insert(nt); err != nil {
			return res, fmt.Errorf("team %s: %w", t.ShortName, err)
		}
		uuidToTeam[t.UUID] = nt.ID
		res.Teams++
	}

	// Products. The legacy schema had a single price; it becomes both
	// template prices. Deleted rows keep their data with an epoch DeletedAt
	// since the actual deletion time was never recorded.
	legacyIDToProduct := map[int64]domain.Product{}
	for _, p := range products {
		categoryID, ok := iconToCategory[p.Icon]
		if !ok {
			im.Log.Warn().Str("name", p.Name).Str("icon", p.Icon).Msg("product has unknown icon, skipping")
			res.ProductsSkipped++
			continue
		}
		cents := EurosToCents(p.Price)
		createdAt := p.CreatedAt.UnixMilli()
		np := domain.Product{
			ID:         uuid.NewString(),
			CategoryID: categoryID,
			Name:       ProductName(p.Name, p.Name2),
			Active:     p.Visible,
			PriceA:     &cents,
			PriceB:     &cents,
			CreatedAt:  createdAt,
			UpdatedAt:  createdAt,
		}
		if p.Deleted {
			np.DeletedAt = &epoch
		}
		if err := im.Prods.Insert(np); err != nil {
			return res, fmt.Errorf("product %s: %w", np.Name, err)
		}
		legacyIDToProduct[p.ID] = np
		res.Products++
	}

	// Bill lines referencing vanished products get pinned to this row.
	zero := int64(0)
	fallback := domain.Product{
		ID:         uuid.NewString(),
		CategoryID: firstCategoryID,
		Name:       FallbackProductName,
		Active:     false,
		PriceA:     &zero,
		PriceB:     &zero,
		CreatedAt:  epoch,
		UpdatedAt:  epoch,
		DeletedAt:  &epoch,
	}
	if err := im.Prods.Insert(fallback); err != nil {
		return res, fmt.Errorf("fallback product: %w", err)
	}

	for i, b := range bills {
		teamID, ok := uuidToTeam[b.Team]
		if !ok {
			im.Log.Warn().Int64("bill", b.ID).Str("team_uuid", b.Team).Msg("bill has unknown team, skipping")
			res.BillsSkipped++
			continue
		}

		lines := []billLine{}
		if len(b.Products) > 0 {
			if err := json.Unmarshal(b.Products, &lines); err != nil {
				return res, fmt.Errorf("bill %d: decode lines: %w", b.ID, err)
			}
		}

		totalCents := EurosToCents(b.Sum)
		items := make([]domain.PurchaseItem, 0, len(lines))
		for _, line := range lines {
			item := domain.PurchaseItem{
				Price:    EurosToCents(line.Price),
				Quantity: line.Amount,
			}
			if p, ok := legacyIDToProduct[line.ID]; ok {
				item.ProductID = p.ID
				item.Name = p.Name
			} else {
				item.ProductID = fallback.ID
				item.Name = fmt.Sprintf("Unbekannt (Supabase-ID: %d)", line.ID)
			}
			items = append(items, item)
		}
		// A bill without lines still carries its total.
		if len(items) == 0 {
			items = append(items, domain.PurchaseItem{
				ProductID: fallback.ID,
				Name:      FallbackProductName,
				Price:     totalCents,
				Quantity:  1,
			})
		}

		err := im.Purchases.Insert(domain.Purchase{
			ID:          uuid.NewString(),
			TeamID:      teamID,
			Items:       items,
			TotalAmount: totalCents,
			CreatedAt:   b.CreatedAt.UnixMilli(),
		})
		if err != nil {
			return res, fmt.Errorf("bill %d: %w", b.ID, err)
		}
		res.Purchases++
		if (i+1)%500 == 0 {
			im.Log.Info().Int("done", i+1).Int("total", len(bills)).Msg("bills imported")
		}
	}

	return res, nil
}
