package store

import (
	"context"
	"database/sql"

	"github.com/archivo-digital/apiserver/types"
)

// FolderRepository handles persistence for folders.
type FolderRepository struct {
	db *sql.DB
}

func NewFolderRepository(db *sql.DB) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) ListBySubcategory(ctx context.Context, subcategoryID int) ([]types.Folder, error) {
	const query = `
		SELECT id, name, subcategory_id
		FROM folders
		WHERE subcategory_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, subcategoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	folders := make([]types.Folder, 0)
	for rows.Next() {
		var folder types.Folder
		if err := rows.Scan(&folder.ID, &folder.Name, &folder.SubcategoryID); err != nil {
			return nil, err
		}
		folders = append(folders, folder)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *FolderRepository) Get(ctx context.Context, id int) (types.Folder, error) {
	const query = `SELECT id, name, subcategory_id FROM folders WHERE id = $1`
	var folder types.Folder
	err := r.db.QueryRowContext(ctx, query, id).Scan(&folder.ID, &folder.Name, &folder.SubcategoryID)
	if err != nil {
		return types.Folder{}, classify(err)
	}
	return folder, nil
}

func (r *FolderRepository) Create(ctx context.Context, folder types.Folder) (types.Folder, error) {
	const query = `
		INSERT INTO folders (name, subcategory_id)
		VALUES ($1, $2)
		RETURNING id`
	err := r.db.QueryRowContext(ctx, query, folder.Name, folder.SubcategoryID).Scan(&folder.ID)
	if err != nil {
		return types.Folder{}, classify(err)
	}
	return folder, nil
}
