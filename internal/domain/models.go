package domain

// Timestamps are unix milliseconds throughout. Soft-deleted rows keep their
// data and carry a non-null DeletedAt; purchases are the one hard-deleted
// collection (corrections, not historical record).

type Team struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Slug      string `db:"slug" json:"slug"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt int64  `db:"created_at" json:"createdAt"`
	DeletedAt *int64 `db:"deleted_at" json:"deletedAt,omitempty"`
}

// Visible reports whether the team shows up in public listings.
func (t Team) Visible() bool { return t.DeletedAt == nil && t.Active }

type Category struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Order     int    `db:"ord" json:"order"`
	Active    bool   `db:"active" json:"active"`
	CreatedAt int64  `db:"created_at" json:"createdAt"`
	DeletedAt *int64 `db:"deleted_at" json:"deletedAt,omitempty"`
}

type Product struct {
	ID          string  `db:"id" json:"id"`
	CategoryID  string  `db:"category_id" json:"categoryId"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description,omitempty"`
	ImageURL    *string `db:"image_url" json:"imageUrl,omitempty"`
	Active      bool    `db:"active" json:"active"`
	IsFavorite  bool    `db:"is_favorite" json:"isFavorite"`
	PriceA      *int64  `db:"price_a" json:"priceA,omitempty"`
	PriceB      *int64  `db:"price_b" json:"priceB,omitempty"`
	CreatedAt   int64   `db:"created_at" json:"createdAt"`
	UpdatedAt   int64   `db:"updated_at" json:"updatedAt"`
	DeletedAt   *int64  `db:"deleted_at" json:"deletedAt,omitempty"`
}

// PricedProduct is a Product annotated with the price of the currently
// active template, as served to the public catalog.
type PricedProduct struct {
	Product
	Price int64 `json:"price"`
}

// PurchaseItem carries name and price captured at checkout time,
// decoupled from the live product rows.
type PurchaseItem struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type Purchase struct {
	ID          string         `db:"id" json:"id"`
	TeamID      string         `db:"team_id" json:"teamId"`
	Items       []PurchaseItem `db:"-" json:"items,omitempty"`
	TotalAmount int64          `db:"total_amount" json:"totalAmount"`
	CreatedAt   int64          `db:"created_at" json:"createdAt"`
	CreatedBy   *string        `db:"created_by" json:"createdBy,omitempty"`
}

type Setting struct {
	Key   string `db:"key" json:"key"`
	Value string `db:"value" json:"value"`
}

// Price templates: every product carries two prices, one of which is live.
const (
	TemplateA = "A"
	TemplateB = "B"
)
