package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/archivo-digital/apiserver/types"
)

// FileRepository handles persistence for file records.
type FileRepository struct {
	db *sql.DB
}

func NewFileRepository(db *sql.DB) *FileRepository {
	return &FileRepository{db: db}
}

// SearchFilter narrows a file search. A nil CategoryID searches every category.
type SearchFilter struct {
	Term       string
	CategoryID *int
}

const fileColumns = `files.id, files.name, files.src, files.folder_id, files.created_at, files.updated_at`

// Create inserts a file record. Zero timestamps are set to the current time.
func (r *FileRepository) Create(ctx context.Context, file types.File) (types.File, error) {
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now()
	}
	if file.UpdatedAt.IsZero() {
		file.UpdatedAt = file.CreatedAt
	}

	const query = `
		INSERT INTO files (name, src, folder_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		file.Name,
		file.Src,
		file.FolderID,
		file.CreatedAt,
		file.UpdatedAt,
	).Scan(&file.ID); err != nil {
		return types.File{}, classify(err)
	}
	return file, nil
}

func (r *FileRepository) Get(ctx context.Context, id int) (types.File, error) {
	const query = `SELECT ` + fileColumns + ` FROM files WHERE files.id = $1`
	file, err := scanFile(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.File{}, classify(err)
	}
	return file, nil
}

// ListByFolder returns the files filed directly under a folder.
func (r *FileRepository) ListByFolder(ctx context.Context, folderID int) ([]types.File, error) {
	const query = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE files.folder_id = $1
		ORDER BY files.id`
	return r.queryFiles(ctx, query, folderID)
}

// Search matches file names case-insensitively against a literal substring,
// walking the taxonomy so results can be narrowed to one category.
func (r *FileRepository) Search(ctx context.Context, filter SearchFilter) ([]types.File, error) {
	query := `
		SELECT ` + fileColumns + `
		FROM files
		INNER JOIN folders ON files.folder_id = folders.id
		INNER JOIN subcategories ON folders.subcategory_id = subcategories.id
		INNER JOIN categories ON subcategories.category_id = categories.id
		WHERE files.name ILIKE $1 ESCAPE '\'`
	args := []any{"%" + escapeLike(filter.Term) + "%"}

	if filter.CategoryID != nil {
		query += ` AND categories.id = $2`
		args = append(args, *filter.CategoryID)
	}
	query += ` ORDER BY files.id`

	return r.queryFiles(ctx, query, args...)
}

func (r *FileRepository) queryFiles(ctx context.Context, query string, args ...any) ([]types.File, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := make([]types.File, 0)
	for rows.Next() {
		file, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFile(row rowScanner) (types.File, error) {
	var file types.File
	err := row.Scan(
		&file.ID,
		&file.Name,
		&file.Src,
		&file.FolderID,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	return file, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}
