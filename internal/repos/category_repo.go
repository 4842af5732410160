package repos

import (
	"github.com/jmoiron/sqlx"

	"teamkasse/internal/domain"
)

type CategoryRepo struct{ db *sqlx.DB }

func NewCategoryRepo(db *sqlx.DB) *CategoryRepo { return &CategoryRepo{db: db} }

const categoryCols = `id, name, ord, active, created_at, deleted_at`

// ListVisible returns non-deleted active categories in display order.
func (r *CategoryRepo) ListVisible() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT `+categoryCols+`
	  FROM categories
	  WHERE deleted_at IS NULL AND active = 1
	  ORDER BY ord
	`)
	return out, err
}

// ListNonEmpty returns visible categories that still have at least one
// live, active product.
func (r *CategoryRepo) ListNonEmpty() ([]domain.Category, error) {
	out := []domain.Category{}
	err := r.db.Select(&out, `
	  SELECT `+categoryCols+`
	  FROM categories c
	  WHERE c.deleted_at IS NULL AND c.active = 1
	    AND EXISTS (
	      SELECT 1 FROM products p
	      WHERE p.category_id = c.id AND p.deleted_at IS NULL AND p.active = 1
	    )
	  ORDER BY c.ord
	`)
	return out, err
}

// CategoryWithCount annotates a category with its live product count for
// the admin table.
type CategoryWithCount struct {
	domain.Category
	ProductCount int `db:"product_count" json:"productCount"`
}

func (r *CategoryRepo) ListAllWithCounts() ([]CategoryWithCount, error) {
	out := []CategoryWithCount{}
	err := r.db.Select(&out, `
	  SELECT c.id, c.name, c.ord, c.active, c.created_at, c.deleted_at,
	         (SELECT COUNT(*) FROM products p
	          WHERE p.category_id = c.id AND p.deleted_at IS NULL) AS product_count
	  FROM categories c
	  ORDER BY c.ord
	`)
	return out, err
}

// NextOrder returns max(ord)+1 among visible categories, 0 when none exist.
func (r *CategoryRepo) NextOrder() (int, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COALESCE(MAX(ord) + 1, 0) FROM categories WHERE deleted_at IS NULL
	`)
	return n, err
}

func (r *CategoryRepo) Insert(c domain.Category) error {
	_, err := r.db.Exec(`
	  INSERT INTO categories(id, name, ord, active, created_at)
	  VALUES(?, ?, ?, ?, ?)
	`, c.ID, c.Name, c.Order, c.Active, c.CreatedAt)
	return err
}

type CategoryPatch struct {
	Name   *string
	Order  *int
	Active *bool
}

func (r *CategoryRepo) Update(id string, p CategoryPatch) error {
	set := ""
	args := []any{}
	if p.Name != nil {
		set += `name = ?, `
		args = append(args, *p.Name)
	}
	if p.Order != nil {
		set += `ord = ?, `
		args = append(args, *p.Order)
	}
	if p.Active != nil {
		set += `active = ?, `
		args = append(args, *p.Active)
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	_, err := r.db.Exec(`UPDATE categories SET `+set[:len(set)-2]+` WHERE id = ?`, args...)
	return err
}

// Reorder persists ord = positional index for the given sequence.
// Runs in one transaction so a failure leaves no partial ordering.
func (r *CategoryRepo) Reorder(orderedIDs []string) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for i, id := range orderedIDs {
		if _, err := tx.Exec(`UPDATE categories SET ord = ? WHERE id = ?`, i, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// SetManyActive toggles active for a list of ids, all-or-nothing.
func (r *CategoryRepo) SetManyActive(ids []string, active bool) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`UPDATE categories SET active = ? WHERE id IN (?)`, active, ids)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(query, args...)
	return err
}

func (r *CategoryRepo) SoftDelete(id string, now int64) error {
	_, err := r.db.Exec(`UPDATE categories SET deleted_at = ? WHERE id = ?`, now, id)
	return err
}
