package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"teamkasse/internal/domain"
)

type TeamRepo struct{ db *sqlx.DB }

func NewTeamRepo(db *sqlx.DB) *TeamRepo { return &TeamRepo{db: db} }

const teamCols = `id, name, slug, active, created_at, deleted_at`

// ListVisible returns non-deleted active teams, newest first.
func (r *TeamRepo) ListVisible() ([]domain.Team, error) {
	out := []domain.Team{}
	err := r.db.Select(&out, `
	  SELECT `+teamCols+`
	  FROM teams
	  WHERE deleted_at IS NULL AND active = 1
	  ORDER BY created_at DESC
	`)
	return out, err
}

// ListAll returns every team including hidden and soft-deleted ones.
func (r *TeamRepo) ListAll() ([]domain.Team, error) {
	out := []domain.Team{}
	err := r.db.Select(&out, `
	  SELECT `+teamCols+`
	  FROM teams
	  ORDER BY created_at DESC
	`)
	return out, err
}

func (r *TeamRepo) Get(id string) (*domain.Team, error) {
	var t domain.Team
	err := r.db.Get(&t, `SELECT `+teamCols+` FROM teams WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetBySlug resolves a slug to its non-deleted team, nil when absent.
// Soft-deleted rows are skipped so their slug can be reused.
func (r *TeamRepo) GetBySlug(slug string) (*domain.Team, error) {
	var t domain.Team
	err := r.db.Get(&t, `
	  SELECT `+teamCols+`
	  FROM teams
	  WHERE slug = ? AND deleted_at IS NULL
	  LIMIT 1
	`, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SlugTaken reports whether a non-deleted team other than excludeID holds slug.
func (r *TeamRepo) SlugTaken(slug, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM teams
	  WHERE slug = ? AND deleted_at IS NULL AND id != ?
	`, slug, excludeID)
	return n > 0, err
}

func (r *TeamRepo) Insert(t domain.Team) error {
	_, err := r.db.Exec(`
	  INSERT INTO teams(id, name, slug, active, created_at)
	  VALUES(?, ?, ?, ?, ?)
	`, t.ID, t.Name, t.Slug, t.Active, t.CreatedAt)
	return err
}

// TeamPatch applies only the fields that are set.
type TeamPatch struct {
	Name   *string
	Slug   *string
	Active *bool
}

func (p TeamPatch) Empty() bool { return p.Name == nil && p.Slug == nil && p.Active == nil }

func (r *TeamRepo) Update(id string, p TeamPatch) error {
	set := ""
	args := []any{}
	if p.Name != nil {
		set += `name = ?, `
		args = append(args, *p.Name)
	}
	if p.Slug != nil {
		set += `slug = ?, `
		args = append(args, *p.Slug)
	}
	if p.Active != nil {
		set += `active = ?, `
		args = append(args, *p.Active)
	}
	if set == "" {
		return nil
	}
	args = append(args, id)
	_, err := r.db.Exec(`UPDATE teams SET `+set[:len(set)-2]+` WHERE id = ?`, args...)
	return err
}

func (r *TeamRepo) SoftDelete(id string, now int64) error {
	_, err := r.db.Exec(`UPDATE teams SET deleted_at = ? WHERE id = ?`, now, id)
	return err
}
