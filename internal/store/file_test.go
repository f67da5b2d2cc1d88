package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/archivo-digital/apiserver/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fileRowColumns = []string{"id", "name", "src", "folder_id", "created_at", "updated_at"}

func TestFileRepositoryCreateDefaultsTimestamps(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFileRepository(db)

	mock.ExpectQuery(q("INSERT INTO files (name, src, folder_id, created_at, updated_at)")).
		WithArgs("report.pdf", "files/report.pdf", 3, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(21))

	file, err := repo.Create(context.Background(), types.File{Name: "report.pdf", Src: "files/report.pdf", FolderID: 3})
	require.NoError(t, err)
	assert.Equal(t, 21, file.ID)
	assert.False(t, file.CreatedAt.IsZero())
	assert.Equal(t, file.CreatedAt, file.UpdatedAt)
}

func TestFileRepositoryCreateKeepsGivenTimestamp(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFileRepository(db)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("INSERT INTO files")).
		WithArgs("a.txt", "files/a.txt", 1, at, at).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err := repo.Create(context.Background(), types.File{Name: "a.txt", Src: "files/a.txt", FolderID: 1, CreatedAt: at})
	require.NoError(t, err)
}

func TestFileRepositoryListByFolderFiltersFilesDirectly(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFileRepository(db)
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("FROM files WHERE files.folder_id = $1")).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(fileRowColumns).AddRow(1, "acta.pdf", "files/acta.pdf", 7, at, at))

	files, err := repo.ListByFolder(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "acta.pdf", files[0].Name)
	assert.Equal(t, 7, files[0].FolderID)
}

func TestFileRepositoryGetNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFileRepository(db)

	mock.ExpectQuery(q("WHERE files.id = $1")).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(fileRowColumns))

	_, err := repo.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepositorySearchWithoutCategory(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFileRepository(db)
	at := time.Now()

	mock.ExpectQuery(q(`WHERE files.name ILIKE $1 ESCAPE '\' ORDER BY files.id`)).
		WithArgs("%report.pdf%").
		WillReturnRows(sqlmock.NewRows(fileRowColumns).AddRow(4, "report.pdf", "files/report.pdf", 2, at, at))

	files, err := repo.Search(context.Background(), SearchFilter{Term: "report.pdf"})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "report.pdf", files[0].Name)
}

func TestFileRepositorySearchWithCategoryEscapesWildcards(t *testing.T) {
	db, mock := newMock(t)
	repo := NewFileRepository(db)
	categoryID := 6

	mock.ExpectQuery(q("AND categories.id = $2")).
		WithArgs(`%50\%\_off%`, 6).
		WillReturnRows(sqlmock.NewRows(fileRowColumns))

	files, err := repo.Search(context.Background(), SearchFilter{Term: "50%_off", CategoryID: &categoryID})
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "", escapeLike(""))
	assert.Equal(t, "plain", escapeLike("plain"))
	assert.Equal(t, `a\\b\%c\_d`, escapeLike(`a\b%c_d`))
}
