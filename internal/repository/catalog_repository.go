package repository

import (
	"context"
	"database/sql"

	"github.com/kitswap/kitswap-backend/internal/model"
)

// CatalogRepo reads the taxonomy tables. The taxonomy is seeded at startup
// and never written on any request path, so this repository is read-only.
type CatalogRepo struct{ DB *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{DB: db} }

// ListCategories returns every category.
func (r *CatalogRepo) ListCategories(ctx context.Context) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, slug, icon, created_at FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListItemTypesByCategory returns the item types belonging to a category.
func (r *CatalogRepo) ListItemTypesByCategory(ctx context.Context, categoryID uint64) ([]model.ItemType, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, category_id, subcategory_id, sport_id, name, slug, created_at
		 FROM item_types WHERE category_id=? ORDER BY id`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ItemType{}
	for rows.Next() {
		var (
			t             model.ItemType
			subcat, sport sql.NullInt64
		)
		if err := rows.Scan(&t.ID, &t.CategoryID, &subcat, &sport, &t.Name, &t.Slug, &t.CreatedAt); err != nil {
			return nil, err
		}
		if subcat.Valid {
			v := uint64(subcat.Int64)
			t.SubcategoryID = &v
		}
		if sport.Valid {
			v := uint64(sport.Int64)
			t.SportID = &v
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
