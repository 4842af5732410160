package repos

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"

	"teamkasse/internal/domain"
)

type PurchaseRepo struct{ db *sqlx.DB }

func NewPurchaseRepo(db *sqlx.DB) *PurchaseRepo { return &PurchaseRepo{db: db} }

// purchaseRow is the scan target; Items is stored as a JSON snapshot.
type purchaseRow struct {
	ID          string  `db:"id"`
	TeamID      string  `db:"team_id"`
	ItemsJSON   string  `db:"items_json"`
	TotalAmount int64   `db:"total_amount"`
	CreatedAt   int64   `db:"created_at"`
	CreatedBy   *string `db:"created_by"`
}

func (row purchaseRow) toDomain() (domain.Purchase, error) {
	p := domain.Purchase{
		ID:          row.ID,
		TeamID:      row.TeamID,
		TotalAmount: row.TotalAmount,
		CreatedAt:   row.CreatedAt,
		CreatedBy:   row.CreatedBy,
	}
	if row.ItemsJSON != "" {
		if err := json.Unmarshal([]byte(row.ItemsJSON), &p.Items); err != nil {
			return p, fmt.Errorf("purchase %s: decode items: %w", row.ID, err)
		}
	}
	return p, nil
}

func rowsToDomain(rows []purchaseRow) ([]domain.Purchase, error) {
	out := make([]domain.Purchase, 0, len(rows))
	for _, row := range rows {
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PurchaseRepo) Insert(p domain.Purchase) error {
	items, err := json.Marshal(p.Items)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(`
	  INSERT INTO purchases(id, team_id, items_json, total_amount, created_at, created_by)
	  VALUES(?, ?, ?, ?, ?, ?)
	`, p.ID, p.TeamID, string(items), p.TotalAmount, p.CreatedAt, p.CreatedBy)
	return err
}

func (r *PurchaseRepo) Get(id string) (*domain.Purchase, error) {
	var row purchaseRow
	err := r.db.Get(&row, `
	  SELECT id, team_id, items_json, total_amount, created_at, created_by
	  FROM purchases WHERE id = ?
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p, err := row.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByTeam returns a team's purchases, newest first. limit <= 0 means all.
func (r *PurchaseRepo) ListByTeam(teamID string, limit int) ([]domain.Purchase, error) {
	q := `
	  SELECT id, team_id, items_json, total_amount, created_at, created_by
	  FROM purchases
	  WHERE team_id = ?
	  ORDER BY created_at DESC, id DESC`
	args := []any{teamID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows := []purchaseRow{}
	if err := r.db.Select(&rows, q, args...); err != nil {
		return nil, err
	}
	return rowsToDomain(rows)
}

// ListByTeamInRange returns a team's purchases with createdAt in
// [startMs, endMs], newest first.
func (r *PurchaseRepo) ListByTeamInRange(teamID string, startMs, endMs int64) ([]domain.Purchase, error) {
	rows := []purchaseRow{}
	err := r.db.Select(&rows, `
	  SELECT id, team_id, items_json, total_amount, created_at, created_by
	  FROM purchases
	  WHERE team_id = ? AND created_at >= ? AND created_at <= ?
	  ORDER BY created_at DESC, id DESC
	`, teamID, startMs, endMs)
	if err != nil {
		return nil, err
	}
	return rowsToDomain(rows)
}

func (r *PurchaseRepo) ListAll() ([]domain.Purchase, error) {
	rows := []purchaseRow{}
	err := r.db.Select(&rows, `
	  SELECT id, team_id, items_json, total_amount, created_at, created_by
	  FROM purchases
	  ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return rowsToDomain(rows)
}

// ListInRange returns all purchases with createdAt in [startMs, endMs].
func (r *PurchaseRepo) ListInRange(startMs, endMs int64) ([]domain.Purchase, error) {
	rows := []purchaseRow{}
	err := r.db.Select(&rows, `
	  SELECT id, team_id, items_json, total_amount, created_at, created_by
	  FROM purchases
	  WHERE created_at >= ? AND created_at <= ?
	  ORDER BY created_at DESC, id DESC
	`, startMs, endMs)
	if err != nil {
		return nil, err
	}
	return rowsToDomain(rows)
}

// PageOpts drives cursor pagination: Cursor is an opaque token from a
// previous page ("" for the first page), NumItems caps the page size.
type PageOpts struct {
	Cursor   string
	NumItems int
}

// PageFilter narrows the paginated listing. TeamID uses the team+createdAt
// index path; nil bounds are open.
type PageFilter struct {
	TeamID   *string
	DateFrom *int64
	DateTo   *int64
}

// Page is one slice of a descending-by-createdAt listing.
type Page struct {
	Page           []domain.Purchase `json:"page"`
	IsDone         bool              `json:"isDone"`
	ContinueCursor string            `json:"continueCursor"`
}

// cursor encodes the keyset position (created_at, id) of the last row served.
func encodeCursor(p domain.Purchase) string {
	return strconv.FormatInt(p.CreatedAt, 10) + ":" + p.ID
}

func decodeCursor(s string) (int64, string, error) {
	ts, id, ok := strings.Cut(s, ":")
	if !ok {
		return 0, "", fmt.Errorf("invalid cursor %q", s)
	}
	n, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("invalid cursor %q", s)
	}
	return n, id, nil
}

// ListPaginated serves one page ordered descending by createdAt, using
// keyset pagination so late inserts never shift earlier pages.
// slim drops the items snapshot for fast list views.
func (r *PurchaseRepo) ListPaginated(opts PageOpts, f PageFilter, slim bool) (Page, error) {
	if opts.NumItems <= 0 {
		opts.NumItems = 50
	}

	cols := `id, team_id, items_json, total_amount, created_at, created_by`
	if slim {
		cols = `id, team_id, '' AS items_json, total_amount, created_at, created_by`
	}

	where := `1=1`
	args := []any{}
	if f.TeamID != nil {
		where += ` AND team_id = ?`
		args = append(args, *f.TeamID)
	}
	if f.DateFrom != nil {
		where += ` AND created_at >= ?`
		args = append(args, *f.DateFrom)
	}
	if f.DateTo != nil {
		where += ` AND created_at <= ?`
		args = append(args, *f.DateTo)
	}
	if opts.Cursor != "" {
		ts, id, err := decodeCursor(opts.Cursor)
		if err != nil {
			return Page{}, err
		}
		where += ` AND (created_at < ? OR (created_at = ? AND id < ?))`
		args = append(args, ts, ts, id)
	}

	// one extra row decides IsDone
	args = append(args, opts.NumItems+1)
	rows := []purchaseRow{}
	err := r.db.Select(&rows, `
	  SELECT `+cols+`
	  FROM purchases
	  WHERE `+where+`
	  ORDER BY created_at DESC, id DESC
	  LIMIT ?
	`, args...)
	if err != nil {
		return Page{}, err
	}

	isDone := len(rows) <= opts.NumItems
	if !isDone {
		rows = rows[:opts.NumItems]
	}
	page, err := rowsToDomain(rows)
	if err != nil {
		return Page{}, err
	}
	out := Page{Page: page, IsDone: isDone}
	if len(page) > 0 {
		out.ContinueCursor = encodeCursor(page[len(page)-1])
	}
	return out, nil
}

// Delete removes the row permanently and reports whether it existed.
func (r *PurchaseRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM purchases WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
