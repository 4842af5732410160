package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"teamkasse/internal/domain"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

const productCols = `id, category_id, name, description, image_url, active, is_favorite,
	  price_a, price_b, created_at, updated_at, deleted_at`

// ListActiveByCategory returns live active products of one category,
// alphabetically by name.
func (r *ProductRepo) ListActiveByCategory(categoryID string) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE category_id = ? AND active = 1 AND deleted_at IS NULL
	  ORDER BY name COLLATE NOCASE
	`, categoryID)
	return out, err
}

// ListAllActive returns all live active products regardless of category.
func (r *ProductRepo) ListAllActive() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT `+productCols+`
	  FROM products
	  WHERE active = 1 AND deleted_at IS NULL
	  ORDER BY name COLLATE NOCASE
	`)
	return out, err
}

// ListAll returns every product including inactive and soft-deleted ones,
// with prices defaulted to 0 for the admin table.
func (r *ProductRepo) ListAll() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, category_id, name, description, image_url, active, is_favorite,
	         COALESCE(price_a, 0) AS price_a, COALESCE(price_b, 0) AS price_b,
	         created_at, updated_at, deleted_at
	  FROM products
	  ORDER BY name COLLATE NOCASE
	`)
	return out, err
}

func (r *ProductRepo) Get(id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT `+productCols+` FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Insert(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, category_id, name, description, image_url, active,
	                       is_favorite, price_a, price_b, created_at, updated_at, deleted_at)
	  VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, p.ID, p.CategoryID, p.Name, p.Description, p.ImageURL, p.Active,
		p.IsFavorite, p.PriceA, p.PriceB, p.CreatedAt, p.UpdatedAt, p.DeletedAt)
	return err
}

type ProductPatch struct {
	CategoryID  *string
	Name        *string
	Description *string
	ImageURL    *string
	Active      *bool
	IsFavorite  *bool
	PriceA      *int64
	PriceB      *int64
}

// Update applies the set fields and refreshes updated_at.
func (r *ProductRepo) Update(id string, p ProductPatch, now int64) error {
	set := ""
	args := []any{}
	add := func(col string, v any) {
		set += col + ` = ?, `
		args = append(args, v)
	}
	if p.CategoryID != nil {
		add("category_id", *p.CategoryID)
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Description != nil {
		add("description", *p.Description)
	}
	if p.ImageURL != nil {
		add("image_url", *p.ImageURL)
	}
	if p.Active != nil {
		add("active", *p.Active)
	}
	if p.IsFavorite != nil {
		add("is_favorite", *p.IsFavorite)
	}
	if p.PriceA != nil {
		add("price_a", *p.PriceA)
	}
	if p.PriceB != nil {
		add("price_b", *p.PriceB)
	}
	add("updated_at", now)
	args = append(args, id)
	_, err := r.db.Exec(`UPDATE products SET `+set[:len(set)-2]+` WHERE id = ?`, args...)
	return err
}

// SetManyActive toggles active for a list of ids in one statement,
// refreshing updated_at.
func (r *ProductRepo) SetManyActive(ids []string, active bool, now int64) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(
		`UPDATE products SET active = ?, updated_at = ? WHERE id IN (?)`, active, now, ids)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(query, args...)
	return err
}

func (r *ProductRepo) SoftDelete(id string, now int64) error {
	_, err := r.db.Exec(`UPDATE products SET deleted_at = ?, updated_at = ? WHERE id = ?`, now, now, id)
	return err
}
