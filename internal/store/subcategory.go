package store

import (
	"context"
	"database/sql"

	"github.com/archivo-digital/apiserver/types"
)

// SubcategoryRepository handles persistence for subcategories.
type SubcategoryRepository struct {
	db *sql.DB
}

func NewSubcategoryRepository(db *sql.DB) *SubcategoryRepository {
	return &SubcategoryRepository{db: db}
}

func (r *SubcategoryRepository) ListByCategory(ctx context.Context, categoryID int) ([]types.Subcategory, error) {
	const query = `
		SELECT id, name, category_id
		FROM subcategories
		WHERE category_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subcategories := make([]types.Subcategory, 0)
	for rows.Next() {
		var subcategory types.Subcategory
		if err := rows.Scan(&subcategory.ID, &subcategory.Name, &subcategory.CategoryID); err != nil {
			return nil, err
		}
		subcategories = append(subcategories, subcategory)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return subcategories, nil
}

func (r *SubcategoryRepository) Get(ctx context.Context, id int) (types.Subcategory, error) {
	const query = `SELECT id, name, category_id FROM subcategories WHERE id = $1`
	var subcategory types.Subcategory
	err := r.db.QueryRowContext(ctx, query, id).Scan(&subcategory.ID, &subcategory.Name, &subcategory.CategoryID)
	if err != nil {
		return types.Subcategory{}, classify(err)
	}
	return subcategory, nil
}

func (r *SubcategoryRepository) Create(ctx context.Context, subcategory types.Subcategory) (types.Subcategory, error) {
	const query = `
		INSERT INTO subcategories (name, category_id)
		VALUES ($1, $2)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, subcategory.Name, subcategory.CategoryID).Scan(&subcategory.ID)
	if err != nil {
		return types.Subcategory{}, classify(err)
	}
	return subcategory, nil
}
